// Package snapshot assembles the full analytics snapshot of a portfolio
package snapshot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/allocation"
	"github.com/bobmcallan/folio/internal/services/benchmark"
	"github.com/bobmcallan/folio/internal/services/performance"
)

// Section names reported in Snapshot.Unavailable
const (
	SectionXIRR       = "xirr"
	SectionHistory    = "history"
	SectionVolatility = "volatility"
	SectionBenchmark  = "benchmark"
	SectionSeries     = "benchmark_series"
)

// Service implements SnapshotService
type Service struct {
	storage    interfaces.StorageManager
	config     *common.Config
	comparator *benchmark.Comparator
	metrics    *Metrics
	logger     *common.Logger
}

// NewService creates a new snapshot service. metrics may be nil.
func NewService(
	storage interfaces.StorageManager,
	config *common.Config,
	metrics *Metrics,
	logger *common.Logger,
) *Service {
	return &Service{
		storage:    storage,
		config:     config,
		comparator: benchmark.NewComparator(config.Benchmarks),
		metrics:    metrics,
		logger:     logger,
	}
}

// inputs is everything fetched from the collaborators for one snapshot
type inputs struct {
	holdings     []models.Holding
	transactions []models.Transaction
	series       map[string]models.BenchmarkSeries
	seriesFailed bool
}

// GetSnapshot fetches portfolio data and computes every analytics section.
func (s *Service) GetSnapshot(ctx context.Context, portfolioID string, opts interfaces.SnapshotOptions) (*models.Snapshot, error) {
	start := time.Now()
	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.logger.Info().Str("portfolio", portfolioID).Time("as_of", now).Msg("Computing snapshot")

	in, err := s.fetch(ctx, portfolioID, opts)
	if err != nil {
		s.metrics.ObserveFailure()
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		s.metrics.ObserveFailure()
		return nil, err
	}

	snap := s.compute(in, opts.Persona, now)
	snap.ID = uuid.New().String()
	snap.PortfolioID = portfolioID
	snap.GeneratedAt = now
	snap.ComputeDuration = time.Since(start)

	s.metrics.ObserveSnapshot(snap.ComputeDuration, snap.Unavailable)

	if len(snap.Unavailable) > 0 {
		s.logger.Warn().Str("portfolio", portfolioID).Strs("unavailable", snap.Unavailable).Msg("Snapshot computed with missing sections")
	}
	s.logger.Info().
		Str("portfolio", portfolioID).
		Str("id", snap.ID).
		Int("holdings", snap.Analysis.Summary.TotalHoldings).
		Float64("total_value", snap.Analysis.TotalValue).
		Dur("elapsed", snap.ComputeDuration).
		Msg("Snapshot computed")

	return snap, nil
}

// fetch loads holdings and transactions concurrently, then the benchmark series the
// holdings reference. Benchmark failures degrade rather than fail.
func (s *Service) fetch(ctx context.Context, portfolioID string, opts interfaces.SnapshotOptions) (*inputs, error) {
	in := &inputs{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		holdings, err := s.storage.HoldingsProvider().GetHoldings(gctx, portfolioID)
		if err != nil {
			return fmt.Errorf("failed to get holdings for %s: %w", portfolioID, err)
		}
		in.holdings = holdings
		return nil
	})
	g.Go(func() error {
		txs, err := s.storage.TransactionLedger().GetTransactions(gctx, portfolioID)
		if err != nil {
			return fmt.Errorf("failed to get transactions for %s: %w", portfolioID, err)
		}
		in.transactions = txs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	keys := seriesKeys(in.holdings)
	if opts.SkipBenchmarks || len(keys) == 0 {
		return in, nil
	}

	series, err := s.storage.BenchmarkIndexProvider().GetBenchmarkSeries(ctx, keys)
	if err != nil {
		s.logger.Warn().Err(err).Strs("keys", keys).Msg("Benchmark series unavailable, using flat prices")
		in.seriesFailed = true
		return in, nil
	}
	in.series = series
	return in, nil
}

// seriesKeys returns the distinct benchmark series keys referenced by holdings, sorted.
func seriesKeys(holdings []models.Holding) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, h := range holdings {
		k := h.SeriesKey()
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// compute runs the analytics sections concurrently. Each goroutine writes only to
// its own fields of the snapshot.
func (s *Service) compute(in *inputs, persona string, now time.Time) *models.Snapshot {
	cfg := s.config.Analytics
	solve := performance.SolveOptions{
		Guess:         cfg.XIRR.Guess,
		Tolerance:     cfg.XIRR.Tolerance,
		MaxIterations: cfg.XIRR.MaxIterations,
	}

	analysis := allocation.Analyze(in.holdings)
	snap := &models.Snapshot{Analysis: analysis}

	var g errgroup.Group

	g.Go(func() error {
		snap.Risk.Concentration = allocation.Score(analysis, allocation.ThresholdsFromConfig(cfg.Concentration))
		weights := allocation.HoldingWeights(analysis)
		snap.Risk.TopHoldings = allocation.DetectTopHoldingsRisk(weights)
		snap.Risk.OverDiversification = allocation.DetectOverDiversification(weights)
		return nil
	})

	g.Go(func() error {
		snap.XIRR = performance.CalculateXIRR(in.transactions, analysis.TotalValue, now, solve)
		snap.Schemes = performance.SchemePerformances(analysis.Holdings, in.transactions, now, solve)
		snap.Risk.RiskReturnMatrix = allocation.RiskReturnMatrix(analysis, snap.Schemes, allocation.VolatilityFromConfig(cfg))

		if snap.XIRR != nil {
			rate := snap.XIRR.RatePct
			snap.Benchmark = s.comparator.Compare(&rate, analysis.CategoryValues())
		}
		snap.SchemeBenchmarks = s.comparator.CompareSchemes(snap.Schemes)
		return nil
	})

	g.Go(func() error {
		curve := performance.ReconstructGrowthCurve(in.transactions, in.holdings, in.series, now, performance.GrowthOptions{MinPoints: cfg.MinGrowthPoints})
		if len(curve) == 0 {
			return nil
		}
		rolling := performance.RollingReturns(curve)
		snap.History = &models.PerformanceHistory{
			Growth:              curve,
			RollingReturns:      rolling,
			LatestRollingReturn: performance.LatestRollingReturn(rolling),
			Drawdowns:           performance.DrawdownSeries(curve),
			MaxDrawdown:         performance.FindMaxDrawdown(curve),
		}
		snap.Risk.Volatility = performance.CalculateVolatility(curve)
		return nil
	})

	g.Go(func() error {
		name, alloc := cfg.ResolvePersona(persona)
		result := allocation.Align(
			allocation.ActualAllocation(analysis),
			name,
			allocation.IdealFromPersona(alloc),
			analysis.Holdings,
			allocation.AlignmentRulesFromConfig(cfg.Alignment),
		)
		snap.Alignment = &result
		return nil
	})

	_ = g.Wait()

	s.logger.Debug().Int("transactions", len(in.transactions)).Int("series", len(in.series)).Msg("Snapshot sections computed")

	snap.Unavailable = unavailableSections(snap, in.seriesFailed)
	return snap
}

func unavailableSections(snap *models.Snapshot, seriesFailed bool) []string {
	var out []string
	if seriesFailed {
		out = append(out, SectionSeries)
	}
	if snap.XIRR == nil {
		out = append(out, SectionXIRR)
	}
	if snap.History == nil {
		out = append(out, SectionHistory)
	}
	if snap.Risk.Volatility == nil {
		out = append(out, SectionVolatility)
	}
	if snap.Benchmark == nil {
		out = append(out, SectionBenchmark)
	}
	return out
}
