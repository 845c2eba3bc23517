package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testOwner = "owner"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type transferRecord struct {
	participant string
	amount      uint64
}

type fakeBaseToken struct {
	transferInErr  error
	transferOutErr error

	transfersIn  []transferRecord
	transfersOut []transferRecord
}

func (f *fakeBaseToken) TransferIn(_ context.Context, from string, amount uint64) error {
	if f.transferInErr != nil {
		return f.transferInErr
	}
	f.transfersIn = append(f.transfersIn, transferRecord{from, amount})
	return nil
}

func (f *fakeBaseToken) TransferOut(_ context.Context, to string, amount uint64) error {
	if f.transferOutErr != nil {
		return f.transferOutErr
	}
	f.transfersOut = append(f.transfersOut, transferRecord{to, amount})
	return nil
}

type fakeRewardToken struct {
	issueErr error
	issued   []transferRecord
}

func (f *fakeRewardToken) Issue(_ context.Context, to string, amount uint64) error {
	if f.issueErr != nil {
		return f.issueErr
	}
	f.issued = append(f.issued, transferRecord{to, amount})
	return nil
}

func newTestLedger(t *testing.T, params Params, clock *fakeClock) *Ledger {
	t.Helper()
	l, err := New(params, testOwner, &fakeBaseToken{}, &fakeRewardToken{}, WithClock(clock.Now))
	require.NoError(t, err)
	return l
}

func newTestLedgerWithTokens(t *testing.T, params Params, clock *fakeClock, base *fakeBaseToken, reward *fakeRewardToken) *Ledger {
	t.Helper()
	l, err := New(params, testOwner, base, reward, WithClock(clock.Now))
	require.NoError(t, err)
	return l
}
