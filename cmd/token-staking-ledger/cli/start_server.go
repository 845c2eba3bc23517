package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stakelabs-io/token-staking-ledger/internal/api"
	"github.com/stakelabs-io/token-staking-ledger/internal/clients/tokenclient"
	"github.com/stakelabs-io/token-staking-ledger/internal/config"
	"github.com/stakelabs-io/token-staking-ledger/internal/db"
	dbmodel "github.com/stakelabs-io/token-staking-ledger/internal/db/model"
	"github.com/stakelabs-io/token-staking-ledger/internal/ledger"
	"github.com/stakelabs-io/token-staking-ledger/internal/observability/metrics"
	"github.com/stakelabs-io/token-staking-ledger/internal/observability/tracing"
	"github.com/stakelabs-io/token-staking-ledger/internal/queue"
	"github.com/stakelabs-io/token-staking-ledger/internal/services"
)

const shutdownTimeout = 10 * time.Second

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the token staking ledger server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up ledger db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	var tokenService tokenclient.TokenServiceInterface
	tokenService = tokenclient.NewClient(&cfg.TokenService)
	tokenService = tokenclient.NewTokenClientWithMetrics(tokenService)

	queueManager, err := queue.NewQueueManager(&cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating queue manager")
	}
	defer queueManager.Shutdown()

	ledgerCore, err := ledger.New(
		ledger.Params{
			AnnualRatePercent: cfg.Ledger.AnnualRatePercent,
			Cooldown:          cfg.Ledger.Cooldown,
		},
		cfg.Ledger.Owner,
		tokenService,
		tokenService,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating ledger")
	}

	service := services.NewService(cfg, dbClient, ledgerCore, queueManager)
	if bootstrapErr := service.Bootstrap(ctx); bootstrapErr != nil {
		log.Fatal().Err(bootstrapErr).Msg("error while restoring ledger state")
	}

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service.StartSnapshotPoller(ctx)

	apiServer := api.New(&cfg.Server, service, dbClient)
	go func() {
		if serveErr := apiServer.Start(); serveErr != nil {
			log.Error().Err(serveErr).Msg("ledger API server stopped")
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error while stopping ledger API server")
	}

	return nil
}
