package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

// Position is a single deposit record. It is immutable once created and is
// consumed all-at-once, together with the participant's other positions, by
// ApplyClaim.
type Position struct {
	ID          string
	Participant string
	Amount      uint64
	CreatedAt   time.Time
}

// PendingClaim is the frozen snapshot of a participant's principal and reward
// awaiting the cooldown. At most one exists per participant.
type PendingClaim struct {
	Participant string
	Principal   uint64
	Reward      uint64
	UnlockAt    time.Time
}

// BaseTokenService moves the staked token in and out of the ledger's custody.
type BaseTokenService interface {
	TransferIn(ctx context.Context, from string, amount uint64) error
	TransferOut(ctx context.Context, to string, amount uint64) error
}

// RewardTokenIssuer mints the reward token at settlement. Rewards are issued
// fresh, not drawn from a pooled balance.
type RewardTokenIssuer interface {
	Issue(ctx context.Context, to string, amount uint64) error
}

// Ledger is the staking ledger core: per-participant position sequences, at
// most one pending claim per participant, the mutable accrual parameters and
// the aggregate outstanding-principal counter.
//
// A single mutex serializes operations. External token calls are issued only
// after the state mutation they depend on has been committed, and a failed
// call rolls the operation back before returning.
type Ledger struct {
	mu sync.Mutex

	positions   map[string][]Position
	claims      map[string]PendingClaim
	params      Params
	owner       string
	totalStaked uint64

	baseToken   BaseTokenService
	rewardToken RewardTokenIssuer

	now func() time.Time
}

type Option func(*Ledger)

// WithClock overrides the ledger's time source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func New(params Params, owner string, baseToken BaseTokenService, rewardToken RewardTokenIssuer, opts ...Option) (*Ledger, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	l := &Ledger{
		positions:   make(map[string][]Position),
		claims:      make(map[string]PendingClaim),
		params:      params,
		owner:       owner,
		baseToken:   baseToken,
		rewardToken: rewardToken,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Restore overwrites the ledger's books with a previously persisted state
// surface. Used once at startup, before any operation is served.
func (l *Ledger) Restore(positions []Position, claims []PendingClaim, params Params, owner string, totalStaked uint64) error {
	if err := params.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.positions = make(map[string][]Position)
	for _, pos := range positions {
		l.positions[pos.Participant] = append(l.positions[pos.Participant], pos)
	}
	l.claims = make(map[string]PendingClaim)
	for _, claim := range claims {
		l.claims[claim.Participant] = claim
	}
	l.params = params
	l.owner = owner
	l.totalStaked = totalStaked
	return nil
}

// Stake transfers amount into custody and appends a position stamped with the
// current time. A failed transfer aborts with no state change. There is no
// cap on the number of concurrent positions per participant.
func (l *Ledger) Stake(ctx context.Context, participant string, amount uint64) (Position, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.baseToken.TransferIn(ctx, participant, amount); err != nil {
		return Position{}, fmt.Errorf("base token transfer in failed: %w", err)
	}

	pos := Position{
		ID:          uuid.NewString(),
		Participant: participant,
		Amount:      amount,
		CreatedAt:   l.now(),
	}
	l.positions[participant] = append(l.positions[participant], pos)
	l.totalStaked += amount

	return pos, nil
}

// ApplyClaim freezes the participant's aggregate principal and reward,
// computed with the current parameters, into a single pending claim and
// clears the position sequence. The aggregate total is untouched here; it
// still counts the frozen principal as owed until settlement.
func (l *Ledger) ApplyClaim(ctx context.Context, participant string) (PendingClaim, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.claims[participant]; ok {
		return PendingClaim{}, ErrClaimPending
	}

	principal := l.principalOf(participant)
	if principal == 0 {
		return PendingClaim{}, ErrNoStaking
	}
	reward, err := l.rewardOf(participant)
	if err != nil {
		return PendingClaim{}, err
	}
	if reward == 0 {
		return PendingClaim{}, ErrNoRewards
	}

	claim := PendingClaim{
		Participant: participant,
		Principal:   principal,
		Reward:      reward,
		UnlockAt:    l.now().Add(l.params.Cooldown),
	}
	l.claims[participant] = claim
	delete(l.positions, participant)

	return claim, nil
}

// Claim settles the pending claim once the unlock time is reached
// (inclusive). The claim is deleted and the aggregate total decremented
// before any transfer is attempted; a failed transfer reinstates both, so a
// rejected settlement never leaves funds off the books.
func (l *Ledger) Claim(ctx context.Context, participant string) (PendingClaim, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	claim, ok := l.claims[participant]
	if !ok {
		return PendingClaim{}, ErrNoPendingClaim
	}
	if l.now().Before(claim.UnlockAt) {
		return PendingClaim{}, ErrClaimTooEarly
	}

	delete(l.claims, participant)
	l.totalStaked -= claim.Principal

	rollback := func() {
		l.claims[participant] = claim
		l.totalStaked += claim.Principal
	}

	if err := l.baseToken.TransferOut(ctx, participant, claim.Principal); err != nil {
		rollback()
		return PendingClaim{}, fmt.Errorf("base token transfer out failed: %w", err)
	}
	if claim.Reward > 0 {
		if err := l.rewardToken.Issue(ctx, participant, claim.Reward); err != nil {
			rollback()
			return PendingClaim{}, fmt.Errorf("reward token issuance failed: %w", err)
		}
	}

	return claim, nil
}

// StakedTotal returns still-staked plus applied-but-unsettled principal as
// one figure.
func (l *Ledger) StakedTotal(participant string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := l.principalOf(participant)
	if claim, ok := l.claims[participant]; ok {
		total += claim.Principal
	}
	return total
}

// RewardView returns the already-snapshotted pending reward (zero if none)
// and the live reward recomputed over current positions. The two figures are
// independent: one is frozen, the other still accruing.
func (l *Ledger) RewardView(participant string) (pending uint64, accruing uint64, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if claim, ok := l.claims[participant]; ok {
		pending = claim.Reward
	}
	accruing, err = l.rewardOf(participant)
	if err != nil {
		return 0, 0, err
	}
	return pending, accruing, nil
}

// TotalStaked returns the sum of all outstanding principal across
// participants, spanning positions and pending claims.
func (l *Ledger) TotalStaked() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalStaked
}

// StateOf reports the participant's place in the
// Idle -> Staked -> Applied -> Unlocked cycle. A pending claim dominates:
// fresh positions staked while a claim is in flight keep the participant in
// Applied/Unlocked until that claim settles.
func (l *Ledger) StateOf(participant string) types.ParticipantState {
	l.mu.Lock()
	defer l.mu.Unlock()

	if claim, ok := l.claims[participant]; ok {
		if !l.now().Before(claim.UnlockAt) {
			return types.StateUnlocked
		}
		return types.StateApplied
	}
	if len(l.positions[participant]) > 0 {
		return types.StateStaked
	}
	return types.StateIdle
}

// PositionsOf returns a copy of the participant's current position sequence.
func (l *Ledger) PositionsOf(participant string) []Position {
	l.mu.Lock()
	defer l.mu.Unlock()

	positions := make([]Position, len(l.positions[participant]))
	copy(positions, l.positions[participant])
	return positions
}

// PendingClaimOf returns the participant's pending claim, if any.
func (l *Ledger) PendingClaimOf(participant string) (PendingClaim, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	claim, ok := l.claims[participant]
	return claim, ok
}

// Snapshot returns a copy of the full state surface: every position, every
// pending claim, the parameters, the owner and the aggregate total. Used to
// persist the books as one consistent cut.
func (l *Ledger) Snapshot() ([]Position, []PendingClaim, Params, string, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var positions []Position
	for _, seq := range l.positions {
		positions = append(positions, seq...)
	}
	claims := make([]PendingClaim, 0, len(l.claims))
	for _, claim := range l.claims {
		claims = append(claims, claim)
	}
	return positions, claims, l.params, l.owner, l.totalStaked
}

// principalOf sums the participant's unapplied position amounts.
// Callers must hold l.mu.
func (l *Ledger) principalOf(participant string) uint64 {
	var sum uint64
	for _, pos := range l.positions[participant] {
		sum += pos.Amount
	}
	return sum
}
