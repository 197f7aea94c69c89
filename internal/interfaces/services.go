// Package interfaces defines service contracts for Folio
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/folio/internal/models"
)

// SnapshotService computes portfolio analytics snapshots
type SnapshotService interface {
	// GetSnapshot fetches holdings, transactions and benchmarks for a portfolio and
	// computes every analytics section. Sections that cannot be computed are omitted.
	GetSnapshot(ctx context.Context, portfolioID string, opts SnapshotOptions) (*models.Snapshot, error)
}

// SnapshotOptions configures a snapshot computation
type SnapshotOptions struct {
	Persona        string    // Investor persona for alignment; empty uses the configured default
	Now            time.Time // Valuation instant; zero means time.Now()
	SkipBenchmarks bool      // Do not query the benchmark provider
}
