package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/stakelabs-io/token-staking-ledger/internal/config"
	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/observability/tracing"
	"github.com/stakelabs-io/token-staking-ledger/internal/services"
	"github.com/stakelabs-io/token-staking-ledger/internal/types"
)

// LedgerService is the slice of the service layer the HTTP surface needs.
type LedgerService interface {
	Stake(ctx context.Context, participant string, amount uint64) (ledger.Position, *types.Error)
	ApplyClaim(ctx context.Context, participant string) (ledger.PendingClaim, *types.Error)
	Claim(ctx context.Context, participant string) (ledger.PendingClaim, *types.Error)

	GetStakedTotal(ctx context.Context, participant string) uint64
	GetRewardView(ctx context.Context, participant string) (services.RewardView, *types.Error)
	GetParticipantState(ctx context.Context, participant string) types.ParticipantState
	GetPositions(ctx context.Context, participant string) []ledger.Position
	GetPendingClaim(ctx context.Context, participant string) (ledger.PendingClaim, bool)
	GetTotalStaked(ctx context.Context) uint64
	GetParams(ctx context.Context) (ledger.Params, string)

	SetAnnualRate(ctx context.Context, caller string, percent uint64) *types.Error
	SetCooldown(ctx context.Context, caller string, cooldown time.Duration) *types.Error
	TransferOwnership(ctx context.Context, caller, newOwner string) *types.Error
	RenounceOwnership(ctx context.Context, caller string) *types.Error
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	httpServer *http.Server
	service    LedgerService
	health     HealthChecker
}

func New(cfg *config.ServerConfig, service LedgerService, health HealthChecker) *Server {
	s := &Server{
		service: service,
		health:  health,
	}

	r := chi.NewRouter()
	r.Use(traceMiddleware)
	s.registerRoutes(r)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      r,
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
	}

	return s
}

func (s *Server) registerRoutes(r *chi.Mux) {
	r.Get("/healthcheck", s.handleHealthcheck)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/stake", s.handleStake)
		r.Post("/apply-claim", s.handleApplyClaim)
		r.Post("/claim", s.handleClaim)

		r.Route("/participants/{participant}", func(r chi.Router) {
			r.Get("/staked", s.handleStakedTotal)
			r.Get("/rewards", s.handleRewardView)
			r.Get("/state", s.handleParticipantState)
			r.Get("/positions", s.handlePositions)
			r.Get("/pending-claim", s.handlePendingClaim)
		})

		r.Get("/params", s.handleGetParams)
		r.Get("/total-staked", s.handleTotalStaked)

		r.Post("/params/rate", s.handleSetAnnualRate)
		r.Post("/params/cooldown", s.handleSetCooldown)
		r.Post("/owner/transfer", s.handleTransferOwnership)
		r.Post("/owner/renounce", s.handleRenounceOwnership)
	})
}

func (s *Server) Start() error {
	log.Info().Msgf("Starting ledger API server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("ledger API server failed: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.InjectTraceID(r.Context())
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		log.Ctx(ctx).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}
