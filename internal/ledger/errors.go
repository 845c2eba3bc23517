package ledger

import "errors"

var (
	// ErrNoStaking rejects a claim application when the participant holds no
	// unapplied principal.
	ErrNoStaking = errors.New("no staking")
	// ErrNoRewards rejects a claim application whose computed reward
	// truncates to zero.
	ErrNoRewards = errors.New("no rewards")
	// ErrClaimPending rejects a claim application while an earlier one is
	// still unsettled.
	ErrClaimPending = errors.New("claim already applied")
	// ErrNoPendingClaim rejects settlement when nothing was applied.
	ErrNoPendingClaim = errors.New("no pending claim")
	// ErrClaimTooEarly rejects settlement before the unlock time.
	ErrClaimTooEarly = errors.New("claim too early")

	ErrNotOwner           = errors.New("caller is not the owner")
	ErrRateOutOfRange     = errors.New("annual rate out of range")
	ErrCooldownOutOfRange = errors.New("cooldown out of range")
	ErrRewardOverflow     = errors.New("computed reward overflows uint64")
)
