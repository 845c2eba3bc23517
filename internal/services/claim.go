package services

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/token-staking-ledger/internal/db"
	"github.com/stakelabs-io/token-staking-ledger/internal/db/model"
	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/observability/metrics"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

// ApplyClaim freezes the participant's principal and accrued reward into a
// pending claim and starts the cooldown.
func (s *Service) ApplyClaim(ctx context.Context, participant string) (ledger.PendingClaim, *types.Error) {
	if participant == "" {
		return ledger.PendingClaim{}, types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, "participant is required",
		)
	}

	stateBefore := s.ledger.StateOf(participant)
	start := time.Now()
	claim, err := s.ledger.ApplyClaim(ctx, participant)
	metrics.RecordLedgerOpDuration(time.Since(start), "apply_claim", err != nil)
	if err != nil {
		return ledger.PendingClaim{}, mapLedgerError(err)
	}
	s.checkStateTransition(ctx, participant, stateBefore)

	if dbErr := s.db.DeletePositions(ctx, participant); dbErr != nil {
		log.Ctx(ctx).Warn().Err(dbErr).
			Str("participant", participant).
			Msg("Failed to delete applied positions")
	}
	if dbErr := s.db.SavePendingClaim(ctx, model.FromPendingClaim(claim)); dbErr != nil {
		log.Ctx(ctx).Warn().Err(dbErr).
			Str("participant", participant).
			Msg("Failed to persist pending claim")
	}

	if pubErr := s.eventPublisher.PublishClaimAppliedEvent(ctx, &types.ClaimAppliedEvent{
		EventType:   types.EventClaimAppliedType,
		Participant: participant,
		Principal:   claim.Principal,
		Reward:      claim.Reward,
		UnlockAt:    claim.UnlockAt,
	}); pubErr != nil {
		log.Ctx(ctx).Warn().Err(pubErr).
			Str("participant", participant).
			Msg("Failed to publish claim applied event")
	}

	return claim, nil
}

// Claim settles a pending claim past its unlock time: principal is returned
// from custody and the reward is issued fresh.
func (s *Service) Claim(ctx context.Context, participant string) (ledger.PendingClaim, *types.Error) {
	if participant == "" {
		return ledger.PendingClaim{}, types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, "participant is required",
		)
	}

	stateBefore := s.ledger.StateOf(participant)
	start := time.Now()
	claim, err := s.ledger.Claim(ctx, participant)
	metrics.RecordLedgerOpDuration(time.Since(start), "claim", err != nil)
	if err != nil {
		return ledger.PendingClaim{}, mapLedgerError(err)
	}
	s.checkStateTransition(ctx, participant, stateBefore)

	if dbErr := s.db.DeletePendingClaim(ctx, participant); dbErr != nil && !db.IsNotFoundError(dbErr) {
		log.Ctx(ctx).Warn().Err(dbErr).
			Str("participant", participant).
			Msg("Failed to delete settled claim")
	}
	s.persistTotalStaked(ctx)

	if pubErr := s.eventPublisher.PublishClaimedEvent(ctx, &types.ClaimedEvent{
		EventType:   types.EventClaimedType,
		Participant: participant,
		Principal:   claim.Principal,
		Reward:      claim.Reward,
	}); pubErr != nil {
		log.Ctx(ctx).Warn().Err(pubErr).
			Str("participant", participant).
			Msg("Failed to publish claimed event")
	}

	return claim, nil
}
