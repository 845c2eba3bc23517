package services

import (
	"context"

	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

// RewardView pairs the frozen pending reward with the reward still accruing
// over the participant's current positions.
type RewardView struct {
	Pending  uint64 `json:"pending"`
	Accruing uint64 `json:"accruing"`
}

// GetStakedTotal returns still-staked plus applied-but-unsettled principal.
func (s *Service) GetStakedTotal(ctx context.Context, participant string) uint64 {
	return s.ledger.StakedTotal(participant)
}

// GetRewardView returns the participant's frozen and accruing rewards as two
// independent figures.
func (s *Service) GetRewardView(ctx context.Context, participant string) (RewardView, *types.Error) {
	pending, accruing, err := s.ledger.RewardView(participant)
	if err != nil {
		return RewardView{}, mapLedgerError(err)
	}
	return RewardView{Pending: pending, Accruing: accruing}, nil
}

// GetParticipantState reports where the participant sits in the staking
// lifecycle.
func (s *Service) GetParticipantState(ctx context.Context, participant string) types.ParticipantState {
	return s.ledger.StateOf(participant)
}

// GetPositions returns the participant's unapplied positions.
func (s *Service) GetPositions(ctx context.Context, participant string) []ledger.Position {
	return s.ledger.PositionsOf(participant)
}

// GetPendingClaim returns the participant's pending claim, if one exists.
func (s *Service) GetPendingClaim(ctx context.Context, participant string) (ledger.PendingClaim, bool) {
	return s.ledger.PendingClaimOf(participant)
}

// GetTotalStaked returns outstanding principal across all participants.
func (s *Service) GetTotalStaked(ctx context.Context) uint64 {
	return s.ledger.TotalStaked()
}
