package services

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/token-staking-ledger/internal/db/model"
	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/observability/metrics"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

// Stake pulls amount into custody and records a new position for the
// participant. Staking is legal in every participant state, including while a
// claim is pending.
func (s *Service) Stake(ctx context.Context, participant string, amount uint64) (ledger.Position, *types.Error) {
	if participant == "" {
		return ledger.Position{}, types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, "participant is required",
		)
	}
	if amount == 0 {
		return ledger.Position{}, types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, "amount must be positive",
		)
	}

	stateBefore := s.ledger.StateOf(participant)
	start := time.Now()
	pos, err := s.ledger.Stake(ctx, participant, amount)
	metrics.RecordLedgerOpDuration(time.Since(start), "stake", err != nil)
	if err != nil {
		return ledger.Position{}, mapLedgerError(err)
	}
	s.checkStateTransition(ctx, participant, stateBefore)

	if dbErr := s.db.SavePosition(ctx, model.FromPosition(pos)); dbErr != nil {
		// Snapshot poller reconciles the miss.
		log.Ctx(ctx).Warn().Err(dbErr).
			Str("participant", participant).
			Str("position_id", pos.ID).
			Msg("Failed to persist position")
	}
	s.persistTotalStaked(ctx)

	if pubErr := s.eventPublisher.PublishStakedEvent(ctx, &types.StakedEvent{
		EventType:   types.EventStakedType,
		Participant: participant,
		PositionID:  pos.ID,
		Amount:      pos.Amount,
		StakedAt:    pos.CreatedAt,
	}); pubErr != nil {
		log.Ctx(ctx).Warn().Err(pubErr).
			Str("participant", participant).
			Msg("Failed to publish staked event")
	}

	return pos, nil
}

func (s *Service) persistTotalStaked(ctx context.Context) {
	total := s.ledger.TotalStaked()
	metrics.RecordTotalStaked(total)
	if err := s.db.UpdateTotalStaked(ctx, total); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Failed to persist total staked")
	}
}
