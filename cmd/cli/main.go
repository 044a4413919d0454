package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
	"github.com/tawsil-ops/ops-atlas/pkg/runtime/terminal"
	"github.com/tawsil-ops/ops-atlas/pkg/services/analytics"
	"github.com/tawsil-ops/ops-atlas/pkg/services/config"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources/business"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources/express"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources/rates"
	"github.com/tawsil-ops/ops-atlas/pkg/services/sources/treasury"
)

type summaryCmd struct {
	cfgPath string
	period  string
	role    string
}

func main() {
	sc := &summaryCmd{}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the aggregate KPI summary for a period",
		RunE:  sc.run,
	}

	cmd.Flags().StringVarP(&sc.cfgPath, "config", "c", "config.yaml", "Path to the configuration file")
	cmd.Flags().StringVar(&sc.period, "period", "month", "Period to summarize (day|week|month|quarter|year)")
	cmd.Flags().StringVar(&sc.role, "role", "admin", "Role to filter metrics by")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (sc *summaryCmd) run(cmd *cobra.Command, _ []string) error {
	p, err := domain.ParsePeriod(sc.period)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(sc.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx, cancel := context.WithTimeout(logger.WithContext(cmd.Context()), 60*time.Second)
	defer cancel()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	engine := analytics.NewEngine(analytics.Config{
		Business: business.NewClient(cfg.Sources.BusinessURL, httpClient),
		Express:  express.NewClient(cfg.Sources.ExpressURL, httpClient),
		Treasury: treasury.NewClient(cfg.Sources.TreasuryURL, httpClient),
		Rates: rates.NewProvider(cfg.Sources.SettingsURL, httpClient,
			cfg.Rates.CacheTTL, decimal.NewFromFloat(cfg.Rates.Default)),
	})

	summary, err := engine.SummarizePeriod(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to summarize period: %w", err)
	}
	summary = analytics.FilterSummary(summary, []domain.Role{domain.Role(sc.role)})

	reporter := terminal.NewReporter(os.Stdout)
	return reporter.Handle(summary)
}
