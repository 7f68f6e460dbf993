package models

import "time"

// SwapStatus is the lifecycle state of a swap intent.
//
// The status graph is a strict finite-state machine: every swap is created
// in StatusEncryptedPending and moves exactly once into one of the three
// terminal states. Terminal states are never left; transitions out of them
// are rejected at the persistence layer with a conditional update.
type SwapStatus string

const (
	// StatusEncryptedPending is the initial state of every swap. The intent
	// has been recorded (and, in privacy mode, the confidential deposit may
	// be in flight) but no terminal outcome has been reached.
	StatusEncryptedPending SwapStatus = "ENCRYPTED_PENDING"

	// StatusCompleted means the swap executed and settled. Terminal.
	StatusCompleted SwapStatus = "COMPLETED"

	// StatusFailed means the swap aborted with an error. Terminal.
	StatusFailed SwapStatus = "FAILED"

	// StatusCancelled means the user cancelled the swap while it was still
	// pending. Terminal.
	StatusCancelled SwapStatus = "CANCELLED"
)

// Valid reports whether s is one of the known lifecycle states.
func (s SwapStatus) Valid() bool {
	switch s {
	case StatusEncryptedPending, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is a final state that cannot be left.
func (s SwapStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Well-known stage names appended by the lifecycle recorder. The stage
// vocabulary is open (AddStage accepts any label), these are the milestones
// the service itself emits.
const (
	StageInitiated = "swap_initiated"
	StageWrapped   = "tokens_wrapped"
	StageExecuted  = "swap_executed"
	StageFailed    = "swap_failed"
	StageCancelled = "swap_cancelled"
	StageSettled   = "swap_settled"
)

// ErrKindDepositConfirmedExecutionFailed tags the one distinguished critical
// failure: execution failed after a confidential deposit was already
// confirmed upstream. Funds recovery is manual; the status payload carries
// recovery instructions instead of any automated compensation.
const ErrKindDepositConfirmedExecutionFailed = "DEPOSIT_CONFIRMED_EXECUTION_FAILED"

// Swap is the central lifecycle record for a single swap intent.
type Swap struct {
	// ID is the internal primary key (UUID).
	ID string `json:"-"`

	// IntentID is the externally visible correlation key. Globally unique
	// and immutable after creation.
	IntentID string `json:"intent_id"`

	// UserAddress is the owning wallet address.
	UserAddress string `json:"user_address"`

	// InputToken and OutputToken are base58 mint addresses.
	InputToken  string `json:"input_token"`
	OutputToken string `json:"output_token"`

	// InputAmount and OutputAmount are arbitrary-precision integer amounts
	// in base units, carried as decimal strings. OutputAmount is empty until
	// the swap settles.
	InputAmount  string `json:"input_amount"`
	OutputAmount string `json:"output_amount,omitempty"`

	FeeBps      int  `json:"fee_bps"`
	SlippageBps int  `json:"slippage_bps"`
	PrivacyMode bool `json:"privacy_mode"`

	// RouteID identifies the upstream route used for execution, when known.
	RouteID string `json:"route_id,omitempty"`

	Status SwapStatus `json:"status"`

	// TxHash is the settlement transaction signature, set on completion.
	TxHash string `json:"tx_hash,omitempty"`

	// Error is the diagnostic string recorded on failure.
	Error string `json:"error,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the Swap model.
func (s Swap) TableName() string {
	return "swaps"
}

// SwapStage is an ordered sub-event of a Swap. Stages are append-only; the
// only permitted mutation is setting the completion fields once.
type SwapStage struct {
	ID     int64  `json:"-"`
	SwapID string `json:"-"`

	// Name is a free-text milestone label (see the Stage* constants for the
	// labels emitted by the service itself).
	Name string `json:"name"`

	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// TableName returns the name of the database table
// associated with the SwapStage model.
func (s SwapStage) TableName() string {
	return "swap_stages"
}

// CreateSwapParams carries the validated inputs for recording a new swap.
type CreateSwapParams struct {
	// ID is the internal primary key, generated by the service.
	ID string

	UserAddress string
	InputToken  string
	OutputToken string
	InputAmount string
	FeeBps      int
	SlippageBps int
	PrivacyMode bool
	RouteID     string
}

// StatusExtra carries the optional fields written alongside a status
// transition. Nil pointer fields are left untouched.
type StatusExtra struct {
	TxHash       *string
	Error        *string
	OutputAmount *string
	SettledAt    *time.Time
}
