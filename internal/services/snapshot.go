package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/token-staking-ledger/internal/db"
	"github.com/stakelabs-io/token-staking-ledger/internal/db/model"
	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/observability/metrics"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

// SyncLedgerSnapshot re-persists the full in-memory state surface and prunes
// database documents the books no longer hold. Individual write failures
// during operations leave the database behind the books; this poll method
// brings it back in line.
func (s *Service) SyncLedgerSnapshot(ctx context.Context) *types.Error {
	positions, claims, params, owner, totalStaked := s.ledger.Snapshot()

	paramsDoc := &model.LedgerParamsDocument{
		AnnualRatePercent: params.AnnualRatePercent,
		CooldownSeconds:   int64(params.Cooldown / time.Second),
		Owner:             owner,
	}
	if err := s.db.SaveLedgerParams(ctx, paramsDoc); err != nil {
		return types.NewInternalServiceError(err)
	}
	if err := s.db.UpdateTotalStaked(ctx, totalStaked); err != nil {
		return types.NewInternalServiceError(err)
	}

	if err := s.syncPositions(ctx, positions); err != nil {
		return err
	}
	if err := s.syncPendingClaims(ctx, claims); err != nil {
		return err
	}

	metrics.RecordTotalStaked(totalStaked)
	metrics.RecordPendingClaimsCount(len(claims))

	log.Ctx(ctx).Debug().
		Int("positions", len(positions)).
		Int("pending_claims", len(claims)).
		Uint64("total_staked", totalStaked).
		Msg("Synced ledger snapshot")

	return nil
}

// syncPositions inserts positions missing from the database and deletes
// persisted positions for participants whose sequences were since cleared.
func (s *Service) syncPositions(ctx context.Context, positions []ledger.Position) *types.Error {
	current := make(map[string]bool)
	for _, pos := range positions {
		current[pos.Participant] = true
		if err := s.db.SavePosition(ctx, model.FromPosition(pos)); err != nil {
			if db.IsDuplicateKeyError(err) {
				continue
			}
			return types.NewInternalServiceError(err)
		}
	}

	persisted, err := s.db.GetAllPositions(ctx)
	if err != nil {
		return types.NewInternalServiceError(err)
	}
	pruned := make(map[string]bool)
	for _, doc := range persisted {
		if current[doc.Participant] || pruned[doc.Participant] {
			continue
		}
		pruned[doc.Participant] = true
		if err := s.db.DeletePositions(ctx, doc.Participant); err != nil {
			return types.NewInternalServiceError(err)
		}
	}

	return nil
}

// syncPendingClaims upserts the in-memory claims and deletes persisted claims
// that settled since the last sync.
func (s *Service) syncPendingClaims(ctx context.Context, claims []ledger.PendingClaim) *types.Error {
	current := make(map[string]bool)
	for _, claim := range claims {
		current[claim.Participant] = true
		if err := s.db.SavePendingClaim(ctx, model.FromPendingClaim(claim)); err != nil {
			return types.NewInternalServiceError(err)
		}
	}

	persisted, err := s.db.GetAllPendingClaims(ctx)
	if err != nil {
		return types.NewInternalServiceError(err)
	}
	for _, doc := range persisted {
		if current[doc.Participant] {
			continue
		}
		if err := s.db.DeletePendingClaim(ctx, doc.Participant); err != nil && !db.IsNotFoundError(err) {
			return types.NewInternalServiceError(err)
		}
	}

	return nil
}
