package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stakelabs-io/token-staking-ledger/internal/config"
	"github.com/stakelabs-io/token-staking-ledger/internal/db"
	"github.com/stakelabs-io/token-staking-ledger/internal/db/model"
	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
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

// fakeDb is an in-memory DbInterface with the same duplicate-key and
// not-found semantics as the mongo implementation.
type fakeDb struct {
	mu          sync.Mutex
	positions   map[string]model.PositionDocument
	claims      map[string]model.PendingClaimDocument
	params      *model.LedgerParamsDocument
	totalStaked uint64

	failSavePosition bool
}

func newFakeDb() *fakeDb {
	return &fakeDb{
		positions: make(map[string]model.PositionDocument),
		claims:    make(map[string]model.PendingClaimDocument),
	}
}

func (f *fakeDb) Ping(ctx context.Context) error { return nil }

func (f *fakeDb) SavePosition(ctx context.Context, position *model.PositionDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSavePosition {
		return errors.New("db unavailable")
	}
	if _, ok := f.positions[position.ID]; ok {
		return &db.DuplicateKeyError{Key: position.ID, Message: "position already exists"}
	}
	f.positions[position.ID] = *position
	return nil
}

func (f *fakeDb) GetPositions(ctx context.Context, participant string) ([]model.PositionDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.PositionDocument
	for _, doc := range f.positions {
		if doc.Participant == participant {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *fakeDb) GetAllPositions(ctx context.Context) ([]model.PositionDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.PositionDocument, 0, len(f.positions))
	for _, doc := range f.positions {
		out = append(out, doc)
	}
	return out, nil
}

func (f *fakeDb) DeletePositions(ctx context.Context, participant string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, doc := range f.positions {
		if doc.Participant == participant {
			delete(f.positions, id)
		}
	}
	return nil
}

func (f *fakeDb) SavePendingClaim(ctx context.Context, claim *model.PendingClaimDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if claim == nil {
		return errors.New("nil pending claim")
	}
	f.claims[claim.Participant] = *claim
	return nil
}

func (f *fakeDb) GetPendingClaim(ctx context.Context, participant string) (*model.PendingClaimDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.claims[participant]
	if !ok {
		return nil, &db.NotFoundError{Key: participant, Message: "pending claim not found"}
	}
	return &doc, nil
}

func (f *fakeDb) GetAllPendingClaims(ctx context.Context) ([]model.PendingClaimDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.PendingClaimDocument, 0, len(f.claims))
	for _, doc := range f.claims {
		out = append(out, doc)
	}
	return out, nil
}

func (f *fakeDb) DeletePendingClaim(ctx context.Context, participant string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.claims[participant]; !ok {
		return &db.NotFoundError{Key: participant, Message: "pending claim not found"}
	}
	delete(f.claims, participant)
	return nil
}

func (f *fakeDb) SaveLedgerParams(ctx context.Context, params *model.LedgerParamsDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if params == nil {
		return errors.New("nil ledger params")
	}
	doc := *params
	f.params = &doc
	return nil
}

func (f *fakeDb) GetLedgerParams(ctx context.Context) (*model.LedgerParamsDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.params == nil {
		return nil, &db.NotFoundError{Key: "LEDGER", Message: "ledger params not found"}
	}
	doc := *f.params
	return &doc, nil
}

func (f *fakeDb) UpdateTotalStaked(ctx context.Context, totalStaked uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.totalStaked = totalStaked
	return nil
}

func (f *fakeDb) GetTotalStaked(ctx context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.totalStaked, nil
}

type fakePublisher struct {
	mu                   sync.Mutex
	staked               []*types.StakedEvent
	claimApplied         []*types.ClaimAppliedEvent
	claimed              []*types.ClaimedEvent
	ownershipTransferred []*types.OwnershipTransferredEvent
}

func (f *fakePublisher) PublishStakedEvent(ctx context.Context, event *types.StakedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staked = append(f.staked, event)
	return nil
}

func (f *fakePublisher) PublishClaimAppliedEvent(ctx context.Context, event *types.ClaimAppliedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claimApplied = append(f.claimApplied, event)
	return nil
}

func (f *fakePublisher) PublishClaimedEvent(ctx context.Context, event *types.ClaimedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claimed = append(f.claimed, event)
	return nil
}

func (f *fakePublisher) PublishOwnershipTransferredEvent(ctx context.Context, event *types.OwnershipTransferredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ownershipTransferred = append(f.ownershipTransferred, event)
	return nil
}

type fakeTokenService struct {
	transferInErr  error
	transferOutErr error
	issueErr       error
}

func (f *fakeTokenService) TransferIn(ctx context.Context, from string, amount uint64) error {
	return f.transferInErr
}

func (f *fakeTokenService) TransferOut(ctx context.Context, to string, amount uint64) error {
	return f.transferOutErr
}

func (f *fakeTokenService) Issue(ctx context.Context, to string, amount uint64) error {
	return f.issueErr
}

func testConfig() *config.Config {
	return &config.Config{
		Ledger: config.LedgerConfig{
			Owner:             testOwner,
			AnnualRatePercent: 12,
			Cooldown:          24 * time.Hour,
		},
		Poller: config.PollerConfig{
			SnapshotInterval: time.Minute,
		},
	}
}

type testEnv struct {
	service   *Service
	ledger    *ledger.Ledger
	db        *fakeDb
	publisher *fakePublisher
	clock     *fakeClock
	tokens    *fakeTokenService
}

func newTestEnv(t *testing.T) *testEnv {
	cfg := testConfig()
	clock := newFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	tokens := &fakeTokenService{}

	ldgr, err := ledger.New(
		ledger.Params{AnnualRatePercent: cfg.Ledger.AnnualRatePercent, Cooldown: cfg.Ledger.Cooldown},
		cfg.Ledger.Owner,
		tokens,
		tokens,
		ledger.WithClock(clock.Now),
	)
	if err != nil {
		t.Fatalf("failed to build ledger: %v", err)
	}

	fdb := newFakeDb()
	publisher := &fakePublisher{}
	return &testEnv{
		service:   NewService(cfg, fdb, ldgr, publisher),
		ledger:    ldgr,
		db:        fdb,
		publisher: publisher,
		clock:     clock,
		tokens:    tokens,
	}
}
