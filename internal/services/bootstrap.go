package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/token-staking-ledger/internal/db"
	"github.com/stakelabs-io/token-staking-ledger/internal/db/model"
	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

// Bootstrap restores the ledger books from the database. On a fresh database
// it seeds the parameters and owner from config and persists them; on every
// later start the persisted values win over config.
func (s *Service) Bootstrap(ctx context.Context) *types.Error {
	paramsDoc, err := s.db.GetLedgerParams(ctx)
	if err != nil {
		if !db.IsNotFoundError(err) {
			return types.NewInternalServiceError(err)
		}
		paramsDoc = &model.LedgerParamsDocument{
			AnnualRatePercent: s.cfg.Ledger.AnnualRatePercent,
			CooldownSeconds:   int64(s.cfg.Ledger.Cooldown / time.Second),
			Owner:             s.cfg.Ledger.Owner,
		}
		if err := s.db.SaveLedgerParams(ctx, paramsDoc); err != nil {
			return types.NewInternalServiceError(err)
		}
		log.Ctx(ctx).Info().
			Str("owner", paramsDoc.Owner).
			Uint64("annual_rate_percent", paramsDoc.AnnualRatePercent).
			Msg("Seeded ledger params from config")
	}

	positionDocs, err := s.db.GetAllPositions(ctx)
	if err != nil {
		return types.NewInternalServiceError(err)
	}
	claimDocs, err := s.db.GetAllPendingClaims(ctx)
	if err != nil {
		return types.NewInternalServiceError(err)
	}
	totalStaked, err := s.db.GetTotalStaked(ctx)
	if err != nil {
		return types.NewInternalServiceError(err)
	}

	positions := make([]ledger.Position, 0, len(positionDocs))
	for _, doc := range positionDocs {
		positions = append(positions, doc.ToPosition())
	}
	claims := make([]ledger.PendingClaim, 0, len(claimDocs))
	for _, doc := range claimDocs {
		claims = append(claims, doc.ToPendingClaim())
	}

	params := ledger.Params{
		AnnualRatePercent: paramsDoc.AnnualRatePercent,
		Cooldown:          time.Duration(paramsDoc.CooldownSeconds) * time.Second,
	}
	if err := s.ledger.Restore(positions, claims, params, paramsDoc.Owner, totalStaked); err != nil {
		return types.NewInternalServiceError(err)
	}

	log.Ctx(ctx).Info().
		Int("positions", len(positions)).
		Int("pending_claims", len(claims)).
		Uint64("total_staked", totalStaked).
		Msg("Restored ledger state from database")

	return nil
}
