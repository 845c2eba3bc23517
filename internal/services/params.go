package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/token-staking-ledger/internal/db/model"
	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

// GetParams returns the current accrual parameters and owner.
func (s *Service) GetParams(ctx context.Context) (ledger.Params, string) {
	return s.ledger.Params(), s.ledger.Owner()
}

// SetAnnualRate changes the annual interest rate. The new rate applies
// retroactively over the full elapsed life of every unapplied position.
func (s *Service) SetAnnualRate(ctx context.Context, caller string, percent uint64) *types.Error {
	if err := s.ledger.SetAnnualRate(caller, percent); err != nil {
		return mapLedgerError(err)
	}
	s.persistParams(ctx)
	return nil
}

// SetCooldown changes the settlement cooldown for claims applied after this
// call. In-flight claims keep their original unlock time.
func (s *Service) SetCooldown(ctx context.Context, caller string, cooldown time.Duration) *types.Error {
	if err := s.ledger.SetCooldown(caller, cooldown); err != nil {
		return mapLedgerError(err)
	}
	s.persistParams(ctx)
	return nil
}

// TransferOwnership hands the privileged identity to newOwner.
func (s *Service) TransferOwnership(ctx context.Context, caller, newOwner string) *types.Error {
	if err := s.ledger.TransferOwnership(caller, newOwner); err != nil {
		return mapLedgerError(err)
	}
	s.persistParams(ctx)
	s.publishOwnershipTransferred(ctx, caller, newOwner)
	return nil
}

// RenounceOwnership permanently clears the privileged identity.
func (s *Service) RenounceOwnership(ctx context.Context, caller string) *types.Error {
	if err := s.ledger.RenounceOwnership(caller); err != nil {
		return mapLedgerError(err)
	}
	s.persistParams(ctx)
	s.publishOwnershipTransferred(ctx, caller, "")
	return nil
}

func (s *Service) persistParams(ctx context.Context) {
	params := s.ledger.Params()
	doc := &model.LedgerParamsDocument{
		AnnualRatePercent: params.AnnualRatePercent,
		CooldownSeconds:   int64(params.Cooldown / time.Second),
		Owner:             s.ledger.Owner(),
	}
	if err := s.db.SaveLedgerParams(ctx, doc); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("Failed to persist ledger params")
	}
}

func (s *Service) publishOwnershipTransferred(ctx context.Context, previousOwner, newOwner string) {
	if pubErr := s.eventPublisher.PublishOwnershipTransferredEvent(ctx, &types.OwnershipTransferredEvent{
		EventType:     types.EventOwnershipTransferredType,
		PreviousOwner: previousOwner,
		NewOwner:      newOwner,
	}); pubErr != nil {
		log.Ctx(ctx).Warn().Err(pubErr).Msg("Failed to publish ownership transferred event")
	}
}
