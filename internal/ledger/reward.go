package ledger

import (
	"time"

	sdkmath "cosmossdk.io/math"
)

// secondsPerYear uses a 365-day year, matching the rate's percent-per-year unit.
const secondsPerYear = 365 * 24 * 60 * 60

// positionReward computes the simple-interest reward a single position has
// accrued over elapsed time at the given rate.
//
// The operation order is part of the contract: multiply amount by rate by
// elapsed seconds before any division, then floor-divide by 100 and by
// seconds-per-year. Dividing earlier would truncate differently.
func positionReward(amount, ratePercent uint64, elapsed time.Duration) sdkmath.Int {
	seconds := int64(elapsed / time.Second)
	if seconds <= 0 {
		return sdkmath.ZeroInt()
	}

	return sdkmath.NewIntFromUint64(amount).
		Mul(sdkmath.NewIntFromUint64(ratePercent)).
		Mul(sdkmath.NewInt(seconds)).
		Quo(sdkmath.NewInt(100)).
		Quo(sdkmath.NewInt(secondsPerYear))
}

// rewardOf sums each position's reward at the current rate. Truncation error
// is additive per position; no aggregate correction is applied.
// Callers must hold l.mu.
func (l *Ledger) rewardOf(participant string) (uint64, error) {
	now := l.now()
	total := sdkmath.ZeroInt()
	for _, pos := range l.positions[participant] {
		total = total.Add(positionReward(pos.Amount, l.params.AnnualRatePercent, now.Sub(pos.CreatedAt)))
	}
	if !total.IsUint64() {
		return 0, ErrRewardOverflow
	}
	return total.Uint64(), nil
}
