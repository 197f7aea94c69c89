package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioStore_HoldingsAndTransactions(t *testing.T) {
	db := testDB(t)
	store := NewPortfolioStore(db, testLogger())
	ctx := context.Background()

	bought := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	seedPortfolio(t, db, "main",
		[]models.Holding{
			{Code: "LC1", Name: "Bluechip", Type: models.AssetTypeFund, Category: "Large Cap", Quantity: 1000, LastValuation: models.Float(150000)},
			{Code: "INFY", Type: models.AssetTypeEquity, Quantity: 10, CurrentPrice: models.Float(1500)},
		},
		[]models.Transaction{
			{Code: "LC1", Date: bought, Type: models.TxBuy, Units: 1000, Amount: 100000},
		},
	)

	holdings, err := store.GetHoldings(ctx, "main")
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.Equal(t, "INFY", holdings[0].Code)
	require.NotNil(t, holdings[0].CurrentPrice)
	assert.Nil(t, holdings[0].LastValuation)
	assert.Equal(t, models.AssetTypeFund, holdings[1].Type)

	txs, err := store.GetTransactions(ctx, "main")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.True(t, bought.Equal(txs[0].Date))
	assert.Equal(t, 100000.0, txs[0].Amount)
}

func TestPortfolioStore_UnknownPortfolio(t *testing.T) {
	db := testDB(t)
	store := NewPortfolioStore(db, testLogger())

	_, err := store.GetHoldings(context.Background(), "ghost")
	assert.ErrorIs(t, err, interfaces.ErrPortfolioNotFound)

	_, err = store.GetTransactions(context.Background(), "ghost")
	assert.ErrorIs(t, err, interfaces.ErrPortfolioNotFound)
}

func TestPortfolioStore_EmptyPortfolio(t *testing.T) {
	db := testDB(t)
	store := NewPortfolioStore(db, testLogger())
	seedPortfolio(t, db, "empty", nil, nil)

	holdings, err := store.GetHoldings(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, holdings)
}

func TestBenchmarkStore_GetBenchmarkSeries(t *testing.T) {
	db := testDB(t)
	store := NewBenchmarkStore(db, testLogger())
	ctx := context.Background()

	for i, level := range []float64{110, 100, 120} {
		exec(t, db, "CREATE benchmark_point CONTENT $data", map[string]any{"data": map[string]any{
			"key":   "Large Cap",
			"date":  time.Date(2024, time.Month(3-i), 1, 0, 0, 0, 0, time.UTC),
			"level": level,
		}})
	}

	series, err := store.GetBenchmarkSeries(ctx, []string{"Large Cap", "Debt"})
	require.NoError(t, err)
	require.Len(t, series, 1)

	lc := series["Large Cap"]
	require.Len(t, lc.Points, 3)
	assert.Equal(t, 120.0, lc.Points[0].Level)
	assert.Equal(t, 100.0, lc.Points[1].Level)
	assert.Equal(t, 110.0, lc.Points[2].Level)
	latest, ok := lc.Latest()
	assert.True(t, ok)
	assert.Equal(t, 110.0, latest)
}

func TestBenchmarkStore_NoKeys(t *testing.T) {
	db := testDB(t)
	store := NewBenchmarkStore(db, testLogger())

	series, err := store.GetBenchmarkSeries(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestDefineTables_LeavesRecordsUntouched(t *testing.T) {
	db := testDB(t)
	store := NewPortfolioStore(db, testLogger())
	ctx := context.Background()

	seedPortfolio(t, db, "main",
		[]models.Holding{{Code: "LC1", Type: models.AssetTypeFund, Category: "Large Cap", Quantity: 10, LastValuation: models.Float(1000)}},
		[]models.Transaction{{Code: "LC1", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Type: models.TxBuy, Units: 10, Amount: 900}},
	)

	require.NoError(t, defineTables(ctx, db))
	require.NoError(t, defineTables(ctx, db))

	holdings, err := store.GetHoldings(ctx, "main")
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, 1000.0, *holdings[0].LastValuation)

	txs, err := store.GetTransactions(ctx, "main")
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}
