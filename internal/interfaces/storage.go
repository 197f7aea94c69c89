// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"
	"errors"

	"github.com/bobmcallan/folio/internal/models"
)

// ErrPortfolioNotFound is returned by providers when the portfolio has no data at all
var ErrPortfolioNotFound = errors.New("portfolio not found")

// StorageManager exposes the read-only data sources behind one backend
type StorageManager interface {
	HoldingsProvider() HoldingsProvider
	TransactionLedger() TransactionLedger
	BenchmarkIndexProvider() BenchmarkIndexProvider

	// Close releases backend resources
	Close() error
}

// HoldingsProvider returns the current holdings of a portfolio
type HoldingsProvider interface {
	GetHoldings(ctx context.Context, portfolioID string) ([]models.Holding, error)
}

// TransactionLedger returns the full transaction history of a portfolio.
// Transactions are returned in no particular order.
type TransactionLedger interface {
	GetTransactions(ctx context.Context, portfolioID string) ([]models.Transaction, error)
}

// BenchmarkIndexProvider returns index level series for the requested keys.
// Keys without data are absent from the result; that is not an error.
type BenchmarkIndexProvider interface {
	GetBenchmarkSeries(ctx context.Context, keys []string) (map[string]models.BenchmarkSeries, error)
}
