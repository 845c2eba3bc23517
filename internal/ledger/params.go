package ledger

import "time"

const (
	MaxAnnualRatePercent = 100
	MaxCooldown          = 365 * 24 * time.Hour
)

// Params is the process-wide accrual configuration. It is read at computation
// time, never snapshotted at stake time: interest for unsettled positions
// always uses the current rate across the position's full elapsed life.
type Params struct {
	AnnualRatePercent uint64
	Cooldown          time.Duration
}

func (p Params) Validate() error {
	if p.AnnualRatePercent > MaxAnnualRatePercent {
		return ErrRateOutOfRange
	}
	if p.Cooldown < 0 || p.Cooldown > MaxCooldown {
		return ErrCooldownOutOfRange
	}
	return nil
}

// Params returns the current accrual parameters.
func (l *Ledger) Params() Params {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.params
}

// Owner returns the current privileged identity. Empty means renounced.
func (l *Ledger) Owner() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owner
}

// SetAnnualRate sets the rate, bounded 0-100 percent per year. Owner only.
// Out-of-range values are rejected before any state change.
func (l *Ledger) SetAnnualRate(caller string, percent uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOwner(caller); err != nil {
		return err
	}
	if percent > MaxAnnualRatePercent {
		return ErrRateOutOfRange
	}
	l.params.AnnualRatePercent = percent
	return nil
}

// SetCooldown sets the settlement cooldown, bounded 0-365 days. Owner only.
func (l *Ledger) SetCooldown(caller string, cooldown time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOwner(caller); err != nil {
		return err
	}
	if cooldown < 0 || cooldown > MaxCooldown {
		return ErrCooldownOutOfRange
	}
	l.params.Cooldown = cooldown
	return nil
}

// SetBaseToken swaps the custody collaborator. Owner only.
func (l *Ledger) SetBaseToken(caller string, svc BaseTokenService) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOwner(caller); err != nil {
		return err
	}
	l.baseToken = svc
	return nil
}

// SetRewardToken swaps the issuance collaborator. Owner only.
func (l *Ledger) SetRewardToken(caller string, svc RewardTokenIssuer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOwner(caller); err != nil {
		return err
	}
	l.rewardToken = svc
	return nil
}

// TransferOwnership hands the privileged identity to newOwner.
func (l *Ledger) TransferOwnership(caller, newOwner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOwner(caller); err != nil {
		return err
	}
	l.owner = newOwner
	return nil
}

// RenounceOwnership clears the privileged identity, permanently locking every
// owner-gated operation.
func (l *Ledger) RenounceOwnership(caller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOwner(caller); err != nil {
		return err
	}
	l.owner = ""
	return nil
}

// requireOwner checks the explicit caller identity against the stored owner.
// A renounced ledger (empty owner) rejects every caller.
// Callers must hold l.mu.
func (l *Ledger) requireOwner(caller string) error {
	if l.owner == "" || caller != l.owner {
		return ErrNotOwner
	}
	return nil
}
