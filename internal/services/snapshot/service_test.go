package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// fakeStorage serves fixed data for a single portfolio
type fakeStorage struct {
	holdings     []models.Holding
	transactions []models.Transaction
	series       map[string]models.BenchmarkSeries

	holdingsErr error
	seriesErr   error
	seriesCalls int
}

func (f *fakeStorage) HoldingsProvider() interfaces.HoldingsProvider             { return f }
func (f *fakeStorage) TransactionLedger() interfaces.TransactionLedger           { return f }
func (f *fakeStorage) BenchmarkIndexProvider() interfaces.BenchmarkIndexProvider { return f }
func (f *fakeStorage) Close() error                                              { return nil }

func (f *fakeStorage) GetHoldings(_ context.Context, _ string) ([]models.Holding, error) {
	return f.holdings, f.holdingsErr
}

func (f *fakeStorage) GetTransactions(_ context.Context, _ string) ([]models.Transaction, error) {
	return f.transactions, nil
}

func (f *fakeStorage) GetBenchmarkSeries(_ context.Context, _ []string) (map[string]models.BenchmarkSeries, error) {
	f.seriesCalls++
	return f.series, f.seriesErr
}

var asOf = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

func largeCapFixture() *fakeStorage {
	return &fakeStorage{
		holdings: []models.Holding{{
			Code:          "LC1",
			Name:          "Large Cap Fund",
			Type:          models.AssetTypeFund,
			Category:      "Large Cap",
			Quantity:      1000,
			LastValuation: models.Float(150000),
		}},
		transactions: []models.Transaction{{
			Code:   "LC1",
			Date:   asOf.AddDate(0, 0, -730),
			Type:   models.TxBuy,
			Units:  1000,
			Amount: 100000,
		}},
		series: map[string]models.BenchmarkSeries{},
	}
}

func newTestService(store *fakeStorage, metrics *Metrics) *Service {
	return NewService(store, common.NewDefaultConfig(), metrics, common.NewSilentLogger())
}

func TestGetSnapshot_EndToEnd(t *testing.T) {
	svc := newTestService(largeCapFixture(), nil)

	snap, err := svc.GetSnapshot(context.Background(), "default", interfaces.SnapshotOptions{Now: asOf})
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "default", snap.PortfolioID)
	assert.Equal(t, asOf, snap.GeneratedAt)
	assert.Equal(t, 150000.0, snap.Analysis.TotalValue)

	require.NotNil(t, snap.XIRR)
	require.NotNil(t, snap.XIRR.AbsoluteReturnPct)
	assert.Equal(t, 50.0, *snap.XIRR.AbsoluteReturnPct)
	assert.InDelta(t, 22.47, snap.XIRR.RatePct, 0.01)

	require.Len(t, snap.Schemes, 1)
	require.NotNil(t, snap.Schemes[0].XIRR)
	assert.InDelta(t, 22.47, snap.Schemes[0].XIRR.RatePct, 0.01)

	require.NotNil(t, snap.Benchmark)
	assert.Equal(t, 12.0, snap.Benchmark.BenchmarkReturn)
	assert.Equal(t, models.PerformanceOutperforming, snap.Benchmark.Performance)
	require.Len(t, snap.SchemeBenchmarks, 1)
	assert.Equal(t, "NIFTY 50", snap.SchemeBenchmarks[0].Benchmark)

	require.NotNil(t, snap.History)
	assert.GreaterOrEqual(t, len(snap.History.Growth), 12)
	assert.Equal(t, 150000.0, snap.History.Growth[len(snap.History.Growth)-1].Value)

	require.NotNil(t, snap.Alignment)
	assert.Equal(t, "General", snap.Alignment.Persona)

	require.Len(t, snap.Risk.RiskReturnMatrix, 1)
	assert.NotContains(t, snap.Unavailable, SectionXIRR)
	assert.NotContains(t, snap.Unavailable, SectionBenchmark)
	assert.NotContains(t, snap.Unavailable, SectionHistory)
}

func TestGetSnapshot_HoldingsErrorFails(t *testing.T) {
	store := largeCapFixture()
	store.holdingsErr = errors.New("disk on fire")
	metrics := NewMetrics()
	svc := newTestService(store, metrics)

	snap, err := svc.GetSnapshot(context.Background(), "default", interfaces.SnapshotOptions{Now: asOf})

	require.Error(t, err)
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, store.holdingsErr)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.failures))
}

func TestGetSnapshot_BenchmarkFailureDegrades(t *testing.T) {
	store := largeCapFixture()
	store.seriesErr = errors.New("index feed down")
	metrics := NewMetrics()
	svc := newTestService(store, metrics)

	snap, err := svc.GetSnapshot(context.Background(), "default", interfaces.SnapshotOptions{Now: asOf})
	require.NoError(t, err)

	assert.Contains(t, snap.Unavailable, SectionSeries)
	require.NotNil(t, snap.History)
	assert.NotNil(t, snap.Benchmark)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.unavailable.WithLabelValues(SectionSeries)))
}

func TestGetSnapshot_SkipBenchmarks(t *testing.T) {
	store := largeCapFixture()
	svc := newTestService(store, nil)

	_, err := svc.GetSnapshot(context.Background(), "default", interfaces.SnapshotOptions{Now: asOf, SkipBenchmarks: true})
	require.NoError(t, err)
	assert.Equal(t, 0, store.seriesCalls)
}

func TestGetSnapshot_EmptyPortfolio(t *testing.T) {
	svc := newTestService(&fakeStorage{}, nil)

	snap, err := svc.GetSnapshot(context.Background(), "empty", interfaces.SnapshotOptions{Now: asOf, Persona: "Aggressive"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, snap.Analysis.TotalValue)
	assert.Nil(t, snap.XIRR)
	assert.Nil(t, snap.History)
	assert.Nil(t, snap.Benchmark)
	assert.Nil(t, snap.Risk.Volatility)
	assert.ElementsMatch(t, []string{SectionXIRR, SectionHistory, SectionVolatility, SectionBenchmark}, snap.Unavailable)
	require.NotNil(t, snap.Alignment)
	assert.Equal(t, "Aggressive", snap.Alignment.Persona)
}

func TestGetSnapshot_CancelledContext(t *testing.T) {
	svc := newTestService(largeCapFixture(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GetSnapshot(ctx, "default", interfaces.SnapshotOptions{Now: asOf})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeriesKeys(t *testing.T) {
	keys := seriesKeys([]models.Holding{
		{Code: "A", Category: "Mid Cap"},
		{Code: "B", Category: "Large Cap", BenchmarkKey: "NIFTY50"},
		{Code: "C", Category: "Mid Cap"},
		{Code: "D"},
	})
	assert.Equal(t, []string{"Mid Cap", "NIFTY50"}, keys)
}
