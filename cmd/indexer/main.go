package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goran-ethernal/TicketIndexor/internal/common"
	"github.com/goran-ethernal/TicketIndexor/internal/config"
	"github.com/goran-ethernal/TicketIndexor/internal/content"
	"github.com/goran-ethernal/TicketIndexor/internal/db"
	"github.com/goran-ethernal/TicketIndexor/internal/decoder"
	"github.com/goran-ethernal/TicketIndexor/internal/downloader"
	"github.com/goran-ethernal/TicketIndexor/internal/logger"
	"github.com/goran-ethernal/TicketIndexor/internal/metrics"
	"github.com/goran-ethernal/TicketIndexor/internal/migrations"
	"github.com/goran-ethernal/TicketIndexor/internal/projector"
	"github.com/goran-ethernal/TicketIndexor/internal/reaper"
	"github.com/goran-ethernal/TicketIndexor/internal/rpc"
	"github.com/goran-ethernal/TicketIndexor/pkg/api"
	pkgconfig "github.com/goran-ethernal/TicketIndexor/pkg/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║           TicketIndexor v%s            ║
║   Ticketing contracts event indexer       ║
╚═══════════════════════════════════════════╝
`
)

var (
	configPath string
	fromBlock  uint64
	noSync     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "indexer",
	Short: "TicketIndexor - indexer for the event ticketing contracts",
	Long: `TicketIndexor follows the place, event, ticket and role contracts, projects
their logs into a relational read model and quarantines logs that fail to project.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runIndexer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	rootCmd.Flags().Uint64Var(&fromBlock, "from-block", 0, "start the historical scan at this block instead of the checkpoint")
	rootCmd.Flags().BoolVar(&noSync, "no-sync", false, "skip the historical scan and only follow new logs")

	rootCmd.AddCommand(listCmd, schemaCmd, reaperCmd, replayCmd, grantRoleCmd, contentCmd)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			fmt.Println("\n\nShutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func loadConfig() (*pkgconfig.Config, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openDatabase migrates and opens the indexer database.
func openDatabase(cfg *pkgconfig.Config, log *logger.Logger) (*sql.DB, error) {
	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(cfg.Indexer.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	database, err := db.NewSQLiteDBFromConfig(cfg.Indexer.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	return database, nil
}

// newProcessor builds the decode and projection stage shared by the worker and
// the offline replay.
func newProcessor(cfg *pkgconfig.Config, database *sql.DB, maintenance db.Maintenance,
	resolver projector.ContentResolver) (*downloader.Processor, *downloader.QuarantineStore, *downloader.SyncManager, error) {
	dec, err := decoder.New()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build decoder: %w", err)
	}

	proj := projector.New(database, resolver,
		logger.NewComponentLoggerFromConfig(common.ComponentProjector, cfg.Logging))

	syncManager := downloader.NewSyncManager(database,
		logger.NewComponentLoggerFromConfig(common.ComponentSyncManager, cfg.Logging), maintenance)
	quarantine := downloader.NewQuarantineStore(database,
		logger.NewComponentLoggerFromConfig(common.ComponentQuarantine, cfg.Logging), maintenance)

	processor := downloader.NewProcessor(dec, proj, quarantine, syncManager,
		logger.NewComponentLoggerFromConfig(common.ComponentProcessor, cfg.Logging))

	return processor, quarantine, syncManager, nil
}

func runIndexer(cmd *cobra.Command, _ []string) error {
	fmt.Printf(banner, version)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log := logger.NewComponentLoggerFromConfig(common.ComponentDownloader, cfg.Logging)
	logger.SetDefaultLogger(log)

	log.Info("Connecting to Ethereum node...")
	ethClient, err := rpc.NewClient(ctx, cfg.Chain.HTTPURL, cfg.Chain.WSURL, cfg.Chain.Retry)
	if err != nil {
		return fmt.Errorf("failed to create RPC client: %w", err)
	}
	defer ethClient.Close()
	log.Infof("Connected to Ethereum node: %s", cfg.Chain.HTTPURL)

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics,
			logger.NewComponentLoggerFromConfig(common.ComponentMetrics, cfg.Logging))
		if err := metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			if err := metricsServer.Stop(context.Background()); err != nil {
				log.Warnf("Failed to stop metrics server: %v", err)
			}
		}()
	}

	database, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	dbMaintenance := db.NewMaintenanceCoordinator(
		cfg.Indexer.DB.Path,
		database,
		cfg.Indexer.Maintenance,
		logger.NewComponentLoggerFromConfig(common.ComponentMaintenance, cfg.Logging),
	)
	if err := dbMaintenance.Start(ctx); err != nil {
		return fmt.Errorf("failed to start database maintenance: %w", err)
	}
	defer func() {
		if err := dbMaintenance.Stop(); err != nil {
			log.Warnf("Failed to stop database maintenance: %v", err)
		}
	}()

	resolver, closeCache, err := content.NewResolverFromConfig(cfg.Content,
		logger.NewComponentLoggerFromConfig(common.ComponentContent, cfg.Logging))
	if err != nil {
		return fmt.Errorf("failed to create content resolver: %w", err)
	}
	defer func() {
		if err := closeCache(); err != nil {
			log.Warnf("Failed to close content cache: %v", err)
		}
	}()

	processor, quarantine, syncManager, err := newProcessor(cfg, database, dbMaintenance, resolver)
	if err != nil {
		return err
	}

	opts := downloader.Options{NoSync: noSync}
	if cmd.Flags().Changed("from-block") {
		opts.FromBlock = &fromBlock
	}

	dl, err := downloader.New(
		cfg.Indexer,
		cfg.Chain.ContractAddresses(),
		ethClient,
		processor,
		syncManager,
		quarantine,
		logger.NewComponentLoggerFromConfig(common.ComponentDownloader, cfg.Logging),
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to create downloader: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.API != nil && cfg.API.Enabled {
		apiServer := api.NewServer(cfg.API, dl, quarantine, ethClient,
			logger.NewComponentLoggerFromConfig(common.ComponentAPI, cfg.Logging))
		g.Go(func() error { return apiServer.Start(gctx) })
	}

	if cfg.Reaper != nil && cfg.Reaper.Enabled {
		reaperLog := logger.NewComponentLoggerFromConfig(common.ComponentReaper, cfg.Logging)
		r := reaper.New(database, cfg.Reaper.Interval.Duration, reaper.NewLogSink(reaperLog), reaperLog)
		g.Go(func() error { return r.Run(gctx) })
	}

	log.Info("Starting TicketIndexor...")
	g.Go(func() error { return dl.Download(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("indexer failed: %w", err)
	}

	log.Info("TicketIndexor stopped successfully")
	return nil
}
