package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bobmcallan/folio/internal/app"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/performance"
)

func main() {
	var (
		configPath     = flag.String("config", "", "config file (default: FOLIO_CONFIG, ./folio.toml, config/folio.toml)")
		portfolioID    = flag.String("portfolio", "", "portfolio id (default: storage.portfolio)")
		persona        = flag.String("persona", "", "investor persona for alignment")
		asOf           = flag.String("as-of", "", "valuation date YYYY-MM-DD (default: now)")
		chartDir       = flag.String("charts", "", "write growth and drawdown PNG charts to this directory")
		metricsFile    = flag.String("metrics-file", "", "write Prometheus metrics in text format to this file")
		skipBenchmarks = flag.Bool("skip-benchmarks", false, "do not load benchmark index series")
		timeout        = flag.Duration("timeout", 30*time.Second, "snapshot timeout")
		showVersion    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(common.GetFullVersion())
		return
	}

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	common.PrintBanner(os.Stderr, a.Config, a.Logger)

	opts := interfaces.SnapshotOptions{Persona: *persona, SkipBenchmarks: *skipBenchmarks}
	if *asOf != "" {
		t, err := time.Parse("2006-01-02", *asOf)
		if err != nil {
			a.Logger.Error().Err(err).Str("as_of", *asOf).Msg("Invalid -as-of date")
			a.Close()
			os.Exit(2)
		}
		opts.Now = t.UTC()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := run(ctx, a, *portfolioID, opts, *chartDir, *metricsFile); err != nil {
		a.Logger.Error().Err(err).Msg("Snapshot failed")
		a.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, portfolioID string, opts interfaces.SnapshotOptions, chartDir, metricsFile string) error {
	snap, err := a.Snapshot(ctx, portfolioID, opts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if chartDir != "" {
		if err := writeCharts(chartDir, snap, a.Logger); err != nil {
			return err
		}
	}

	if metricsFile != "" {
		if a.Metrics == nil {
			a.Logger.Warn().Msg("Metrics disabled in config, -metrics-file ignored")
		} else if err := prometheus.WriteToTextfile(metricsFile, a.Metrics.Registry()); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// writeCharts renders the growth curve and drawdown series as PNG files.
func writeCharts(dir string, snap *models.Snapshot, logger *common.Logger) error {
	if snap.History == nil {
		logger.Warn().Msg("No performance history, charts skipped")
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %w", err)
	}

	growth, err := performance.RenderGrowthChart(snap.History.Growth)
	if err != nil {
		return fmt.Errorf("failed to render growth chart: %w", err)
	}
	growthPath := filepath.Join(dir, snap.PortfolioID+"-growth.png")
	if err := os.WriteFile(growthPath, growth, 0644); err != nil {
		return fmt.Errorf("failed to write growth chart: %w", err)
	}

	drawdown, err := performance.RenderDrawdownChart(snap.History.Drawdowns)
	if err != nil {
		return fmt.Errorf("failed to render drawdown chart: %w", err)
	}
	drawdownPath := filepath.Join(dir, snap.PortfolioID+"-drawdown.png")
	if err := os.WriteFile(drawdownPath, drawdown, 0644); err != nil {
		return fmt.Errorf("failed to write drawdown chart: %w", err)
	}

	logger.Info().Str("growth", growthPath).Str("drawdown", drawdownPath).Msg("Charts written")
	return nil
}
