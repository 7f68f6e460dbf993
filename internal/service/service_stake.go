package service

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/waveswap/waveswap/internal/logger"
	"github.com/waveswap/waveswap/models"
)

// stakeService is the concrete implementation of StakeService. It is a pure
// calculation service: the caller supplies the on-chain pool and position
// account fields and the projection reproduces the program's checked reward
// math without touching the chain.
type stakeService struct {
	logger *logger.Logger
}

// NewStakeService constructs a StakeService.
func NewStakeService(logger *logger.Logger) StakeService {
	return &stakeService{logger: logger}
}

var u64Max = new(big.Int).SetUint64(math.MaxUint64)

// checkedMul multiplies a by b and errors when the product leaves the u64
// range, mirroring the program's checked_mul semantics. Each step is checked
// individually: an intermediate overflow fails the projection even when the
// final quotient would fit.
func checkedMul(a *big.Int, b uint64) (*big.Int, error) {
	product := new(big.Int).Mul(a, new(big.Int).SetUint64(b))
	if product.Cmp(u64Max) > 0 {
		return nil, ErrMathOverflow
	}
	return product, nil
}

// ProjectRewards computes the position's claimable rewards at the requested
// timestamp:
//
//	share   = amount * 10000 / totalStaked          (zero when the pool is empty)
//	rewards = rewardPerSecond * elapsed * share * bonusMultiplier / 10000
//
// and reports whether the position may unstake at that moment.
func (s *stakeService) ProjectRewards(_ context.Context, req models.StakeRewardsRequest) (models.RewardProjection, error) {
	pool, position := req.Pool, req.Position

	if position.LockType != models.LockTypeFlexible && position.LockType != models.LockTypeLocked {
		return models.RewardProjection{}, fmt.Errorf("%w: unknown lock type %d", ErrInvalidDataProvided, position.LockType)
	}
	if position.Amount > pool.TotalStaked {
		return models.RewardProjection{}, fmt.Errorf("%w: position exceeds pool total", ErrInvalidDataProvided)
	}

	asOf := req.AsOf
	if asOf == 0 {
		asOf = time.Now().Unix()
	}

	multiplier := uint64(position.BonusMultiplier)
	if multiplier == 0 {
		multiplier = models.MultiplierBase
		if position.LockType == models.LockTypeLocked {
			multiplier += uint64(pool.LockBonusPercentage)
		}
	}

	var shareBps uint64
	if pool.TotalStaked > 0 {
		share := new(big.Int).SetUint64(position.Amount)
		share.Mul(share, big.NewInt(models.MultiplierBase))
		share.Quo(share, new(big.Int).SetUint64(pool.TotalStaked))
		shareBps = share.Uint64()
	}

	pending, err := pendingRewards(pool.RewardPerSecond, position.LastRewardClaimTimestamp, asOf, shareBps, multiplier)
	if err != nil {
		return models.RewardProjection{}, err
	}

	unlockable := true
	var unlockAt int64
	if position.LockType == models.LockTypeLocked {
		unlockAt = position.LockEndTimestamp
		unlockable = asOf >= position.LockEndTimestamp
	}

	return models.RewardProjection{
		PendingRewards: pending,
		ShareBps:       shareBps,
		Unlockable:     unlockable,
		UnlockAt:       unlockAt,
		AsOf:           asOf,
	}, nil
}

// pendingRewards runs the accrual formula step by step with u64 overflow
// checks after every multiplication. The full undivided product is checked
// against the u64 range before the single basis-point division at the end.
func pendingRewards(rewardPerSecond uint64, lastClaim, asOf int64, shareBps, multiplier uint64) (uint64, error) {
	if asOf <= lastClaim || shareBps == 0 || rewardPerSecond == 0 {
		return 0, nil
	}
	elapsed := uint64(asOf - lastClaim)

	acc, err := checkedMul(new(big.Int).SetUint64(rewardPerSecond), elapsed)
	if err != nil {
		return 0, err
	}
	acc, err = checkedMul(acc, shareBps)
	if err != nil {
		return 0, err
	}
	acc, err = checkedMul(acc, multiplier)
	if err != nil {
		return 0, err
	}
	acc.Quo(acc, big.NewInt(models.MultiplierBase))

	return acc.Uint64(), nil
}
