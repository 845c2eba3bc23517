package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/token-staking-ledger/internal/config"
	"github.com/stakelabs-io/token-staking-ledger/internal/db"
	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
	"github.com/stakelabs-io/token-staking-ledger/internal/utils/poller"
	"github.com/stakelabs-io/token-staking-ledger/internal/utils/state"
)

// EventPublisher emits ledger events for downstream consumers.
type EventPublisher interface {
	PublishStakedEvent(ctx context.Context, event *types.StakedEvent) error
	PublishClaimAppliedEvent(ctx context.Context, event *types.ClaimAppliedEvent) error
	PublishClaimedEvent(ctx context.Context, event *types.ClaimedEvent) error
	PublishOwnershipTransferredEvent(ctx context.Context, event *types.OwnershipTransferredEvent) error
}

// Service drives the ledger core: it validates requests, runs the operation,
// writes the resulting state through to the database and publishes the event.
// Database writes are write-behind relative to the in-memory books; the
// snapshot poller reconciles any write that failed.
type Service struct {
	cfg            *config.Config
	db             db.DbInterface
	ledger         *ledger.Ledger
	eventPublisher EventPublisher
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	ledger *ledger.Ledger,
	eventPublisher EventPublisher,
) *Service {
	return &Service{
		cfg:            cfg,
		db:             db,
		ledger:         ledger,
		eventPublisher: eventPublisher,
	}
}

// checkStateTransition verifies that a committed operation moved the
// participant along a qualified lifecycle edge. A violation points at a bug
// in the ledger core and is logged loudly, never acted on.
func (s *Service) checkStateTransition(ctx context.Context, participant string, from types.ParticipantState) {
	to := s.ledger.StateOf(participant)
	if !state.IsQualifiedStateChange(from.String(), to.String()) {
		log.Ctx(ctx).Error().
			Str("participant", participant).
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("Unqualified participant state transition")
	}
}

// StartSnapshotPoller keeps re-persisting the full state surface in the
// background until ctx is cancelled.
func (s *Service) StartSnapshotPoller(ctx context.Context) {
	snapshotPoller := poller.NewPoller(
		"ledger-snapshot",
		s.cfg.Poller.SnapshotInterval,
		s.SyncLedgerSnapshot,
	)
	go snapshotPoller.Start(ctx)
}
