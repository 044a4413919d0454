package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tawsil-ops/ops-atlas/pkg/server"
	"github.com/tawsil-ops/ops-atlas/pkg/services/analytics"
	"github.com/tawsil-ops/ops-atlas/pkg/services/config"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources/business"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources/express"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources/ledger"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources/rates"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources/treasury"
	"github.com/tawsil-ops/ops-atlas/pkg/services/transfer"
	"github.com/tawsil-ops/ops-atlas/pkg/store/sqlite"
	"github.com/tawsil-ops/ops-atlas/pkg/store/sqlite/snapshot"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the ops-atlas analytics server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml",
		"Path to the configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: cfg.DbPath})
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}

	snapshotStore, err := snapshot.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create snapshot store: %w", err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	treasurySource := treasury.NewHistoricalSource(
		treasury.NewClient(cfg.Sources.TreasuryURL, httpClient),
		treasury.NewStoreReader(snapshotStore),
	)
	rateProvider := rates.NewProvider(
		cfg.Sources.SettingsURL, httpClient,
		cfg.Rates.CacheTTL, decimal.NewFromFloat(cfg.Rates.Default),
	)

	engine := analytics.NewEngine(analytics.Config{
		Business:             business.NewClient(cfg.Sources.BusinessURL, httpClient),
		Express:              express.NewClient(cfg.Sources.ExpressURL, httpClient),
		Treasury:             treasurySource,
		Rates:                rateProvider,
		Snapshots:            snapshotStore,
		MaxConcurrentFetches: cfg.MaxFetch,
	})
	composer := transfer.NewComposer(ledger.NewClient(cfg.Sources.LedgerURL, httpClient))

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Engine:   engine,
			Composer: composer,
		},
	})

	return api.Start()
}
