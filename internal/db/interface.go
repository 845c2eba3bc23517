package db

import (
	"context"

	"github.com/stakelabs-io/token-staking-ledger/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error

	SavePosition(ctx context.Context, position *model.PositionDocument) error
	GetPositions(ctx context.Context, participant string) ([]model.PositionDocument, error)
	GetAllPositions(ctx context.Context) ([]model.PositionDocument, error)
	DeletePositions(ctx context.Context, participant string) error

	SavePendingClaim(ctx context.Context, claim *model.PendingClaimDocument) error
	GetPendingClaim(ctx context.Context, participant string) (*model.PendingClaimDocument, error)
	GetAllPendingClaims(ctx context.Context) ([]model.PendingClaimDocument, error)
	DeletePendingClaim(ctx context.Context, participant string) error

	SaveLedgerParams(ctx context.Context, params *model.LedgerParamsDocument) error
	GetLedgerParams(ctx context.Context) (*model.LedgerParamsDocument, error)

	UpdateTotalStaked(ctx context.Context, totalStaked uint64) error
	GetTotalStaked(ctx context.Context) (uint64, error)
}
