// Package surrealdb provides read-only portfolio and benchmark providers backed by
// SurrealDB. The only statements it issues besides SELECT are idempotent
// DEFINE TABLE IF NOT EXISTS schema definitions at connect time; it never creates,
// updates or deletes records.
package surrealdb

import (
	"context"
	"fmt"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/surrealdb/surrealdb.go"
)

// Table names
const (
	tablePortfolio      = "portfolio"
	tableHolding        = "holding"
	tableTransaction    = "transaction"
	tableBenchmarkPoint = "benchmark_point"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	portfolioStore *PortfolioStore
	benchmarkStore *BenchmarkStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	// Connect to SurrealDB
	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// SurrealDB v3 errors on querying non-existent tables. Schema only, no records.
	if err := defineTables(ctx, db); err != nil {
		return nil, err
	}

	m := &Manager{
		db:             db,
		logger:         logger,
		portfolioStore: NewPortfolioStore(db, logger),
		benchmarkStore: NewBenchmarkStore(db, logger),
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// defineTables declares the tables the providers read from. Existing tables and
// their records are left as they are.
func defineTables(ctx context.Context, db *surrealdb.DB) error {
	tables := []string{tablePortfolio, tableHolding, tableTransaction, tableBenchmarkPoint}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}
	return nil
}

func (m *Manager) HoldingsProvider() interfaces.HoldingsProvider {
	return m.portfolioStore
}

func (m *Manager) TransactionLedger() interfaces.TransactionLedger {
	return m.portfolioStore
}

func (m *Manager) BenchmarkIndexProvider() interfaces.BenchmarkIndexProvider {
	return m.benchmarkStore
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
