package models

// Lock types understood by the staking program.
const (
	// LockTypeFlexible positions can unstake at any time, multiplier 1x.
	LockTypeFlexible uint8 = 0
	// LockTypeLocked positions earn a bonus multiplier but cannot unstake
	// before the lock end timestamp.
	LockTypeLocked uint8 = 1
)

// MultiplierBase is the basis-point denominator used by the staking program:
// a bonus multiplier of 10000 is 1x.
const MultiplierBase = 10000

// StakePool mirrors the on-chain pool account fields that feed the reward
// projection. All token quantities are u64 base units.
type StakePool struct {
	PoolID              string `json:"pool_id"`
	StakeMint           string `json:"stake_mint"`
	RewardMint          string `json:"reward_mint"`
	RewardPerSecond     uint64 `json:"reward_per_second"`
	TotalStaked         uint64 `json:"total_staked"`
	LockDuration        uint64 `json:"lock_duration"`
	LockBonusPercentage uint16 `json:"lock_bonus_percentage"`
}

// StakePosition mirrors the on-chain user account for a pool.
type StakePosition struct {
	Amount             uint64 `json:"amount"`
	LockType           uint8  `json:"lock_type"`
	LockStartTimestamp int64  `json:"lock_start_timestamp"`
	LockEndTimestamp   int64  `json:"lock_end_timestamp"`

	// BonusMultiplier is in MultiplierBase units: 10000 = 1x.
	BonusMultiplier uint16 `json:"bonus_multiplier"`

	LastRewardClaimTimestamp int64 `json:"last_reward_claim_timestamp"`
}

// RewardProjection is the read-only result of projecting a position's
// accrual to a point in time.
type RewardProjection struct {
	// PendingRewards is the claimable reward amount at AsOf.
	PendingRewards uint64 `json:"pending_rewards"`

	// ShareBps is the position's share of the pool in basis points.
	ShareBps uint64 `json:"share_bps"`

	// Unlockable reports whether the position may unstake at AsOf.
	Unlockable bool `json:"unlockable"`

	// UnlockAt is the lock end timestamp for locked positions, zero for
	// flexible ones.
	UnlockAt int64 `json:"unlock_at,omitempty"`

	AsOf int64 `json:"as_of"`
}
