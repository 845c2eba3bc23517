package db

import (
	"context"
	"time"

	"github.com/stakelabs-io/token-staking-ledger/internal/db/model"
	"github.com/stakelabs-io/token-staking-ledger/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SavePosition(ctx context.Context, position *model.PositionDocument) error {
	return d.run("SavePosition", func() error {
		return d.db.SavePosition(ctx, position)
	})
}

func (d *DbWithMetrics) GetPositions(ctx context.Context, participant string) (result []model.PositionDocument, err error) {
	//nolint:errcheck
	d.run("GetPositions", func() error {
		result, err = d.db.GetPositions(ctx, participant)
		return err
	})
	return
}

func (d *DbWithMetrics) GetAllPositions(ctx context.Context) (result []model.PositionDocument, err error) {
	//nolint:errcheck
	d.run("GetAllPositions", func() error {
		result, err = d.db.GetAllPositions(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) DeletePositions(ctx context.Context, participant string) error {
	return d.run("DeletePositions", func() error {
		return d.db.DeletePositions(ctx, participant)
	})
}

func (d *DbWithMetrics) SavePendingClaim(ctx context.Context, claim *model.PendingClaimDocument) error {
	return d.run("SavePendingClaim", func() error {
		return d.db.SavePendingClaim(ctx, claim)
	})
}

func (d *DbWithMetrics) GetPendingClaim(ctx context.Context, participant string) (result *model.PendingClaimDocument, err error) {
	//nolint:errcheck
	d.run("GetPendingClaim", func() error {
		result, err = d.db.GetPendingClaim(ctx, participant)
		return err
	})
	return
}

func (d *DbWithMetrics) GetAllPendingClaims(ctx context.Context) (result []model.PendingClaimDocument, err error) {
	//nolint:errcheck
	d.run("GetAllPendingClaims", func() error {
		result, err = d.db.GetAllPendingClaims(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) DeletePendingClaim(ctx context.Context, participant string) error {
	return d.run("DeletePendingClaim", func() error {
		return d.db.DeletePendingClaim(ctx, participant)
	})
}

func (d *DbWithMetrics) SaveLedgerParams(ctx context.Context, params *model.LedgerParamsDocument) error {
	return d.run("SaveLedgerParams", func() error {
		return d.db.SaveLedgerParams(ctx, params)
	})
}

func (d *DbWithMetrics) GetLedgerParams(ctx context.Context) (result *model.LedgerParamsDocument, err error) {
	//nolint:errcheck
	d.run("GetLedgerParams", func() error {
		result, err = d.db.GetLedgerParams(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) UpdateTotalStaked(ctx context.Context, totalStaked uint64) error {
	return d.run("UpdateTotalStaked", func() error {
		return d.db.UpdateTotalStaked(ctx, totalStaked)
	})
}

func (d *DbWithMetrics) GetTotalStaked(ctx context.Context) (result uint64, err error) {
	//nolint:errcheck
	d.run("GetTotalStaked", func() error {
		result, err = d.db.GetTotalStaked(ctx)
		return err
	})
	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
