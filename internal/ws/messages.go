package ws

// Inbound message types.
const (
	msgPing         = "ping"
	msgSubscribe    = "subscribe_swap_status"
	msgUnsubscribe  = "unsubscribe_swap_status"
	msgAuthenticate = "authenticate"
)

// Outbound message types.
const (
	msgPong             = "pong"
	msgConnected        = "connected"
	msgSubscribed       = "subscribed"
	msgUnsubscribed     = "unsubscribed"
	msgAuthenticated    = "authenticated"
	msgError            = "error"
	msgSwapStatusUpdate = "swap_status_update"
)

// clientMessage is the envelope for everything a client sends.
type clientMessage struct {
	Type     string `json:"type"`
	IntentID string `json:"intent_id,omitempty"`
	Token    string `json:"token,omitempty"`
}

// serverMessage is the envelope for everything the server sends. Fields not
// relevant to the message type are omitted.
type serverMessage struct {
	Type         string `json:"type"`
	ClientID     string `json:"client_id,omitempty"`
	IntentID     string `json:"intent_id,omitempty"`
	Status       string `json:"status,omitempty"`
	TxHash       string `json:"tx_hash,omitempty"`
	Error        string `json:"error,omitempty"`
	OutputAmount string `json:"output_amount,omitempty"`
	UserAddress  string `json:"user_address,omitempty"`
	Message      string `json:"message,omitempty"`
}
