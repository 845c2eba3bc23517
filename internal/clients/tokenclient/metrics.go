package tokenclient

import (
	"context"
	"time"

	"github.com/stakelabs-io/token-staking-ledger/internal/observability/metrics"
)

// TokenClientWithMetrics records call latency for every token service call.
type TokenClientWithMetrics struct {
	client TokenServiceInterface
}

func NewTokenClientWithMetrics(client TokenServiceInterface) *TokenClientWithMetrics {
	return &TokenClientWithMetrics{client: client}
}

func (t *TokenClientWithMetrics) run(method string, f func() error) error {
	start := time.Now()
	err := f()
	duration := time.Since(start)

	metrics.RecordTokenClientLatency(duration, method, err != nil)
	return err
}

func (t *TokenClientWithMetrics) TransferIn(ctx context.Context, from string, amount uint64) error {
	return t.run("TransferIn", func() error {
		return t.client.TransferIn(ctx, from, amount)
	})
}

func (t *TokenClientWithMetrics) TransferOut(ctx context.Context, to string, amount uint64) error {
	return t.run("TransferOut", func() error {
		return t.client.TransferOut(ctx, to, amount)
	})
}

func (t *TokenClientWithMetrics) Issue(ctx context.Context, to string, amount uint64) error {
	return t.run("Issue", func() error {
		return t.client.Issue(ctx, to, amount)
	})
}
