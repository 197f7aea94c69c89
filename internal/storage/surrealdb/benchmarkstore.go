package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// benchmarkPointRecord is one row of the benchmark_point table
type benchmarkPointRecord struct {
	Key   string    `json:"key"`
	Date  time.Time `json:"date"`
	Level float64   `json:"level"`
}

// BenchmarkStore reads benchmark index levels.
type BenchmarkStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewBenchmarkStore(db *surrealdb.DB, logger *common.Logger) *BenchmarkStore {
	return &BenchmarkStore{db: db, logger: logger}
}

// GetBenchmarkSeries implements interfaces.BenchmarkIndexProvider.
func (s *BenchmarkStore) GetBenchmarkSeries(ctx context.Context, keys []string) (map[string]models.BenchmarkSeries, error) {
	out := make(map[string]models.BenchmarkSeries, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	sql := "SELECT key, date, level FROM benchmark_point WHERE key IN $keys ORDER BY date ASC"
	vars := map[string]any{"keys": keys}

	results, err := surrealdb.Query[[]benchmarkPointRecord](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to get benchmark series: %w", err)
	}

	if results != nil && len(*results) > 0 {
		for _, r := range (*results)[0].Result {
			series := out[r.Key]
			series.Key = r.Key
			series.Points = append(series.Points, models.IndexPoint{Date: r.Date.UTC(), Level: r.Level})
			out[r.Key] = series
		}
	}

	for k, series := range out {
		out[k] = series.Sorted()
	}

	s.logger.Debug().Strs("keys", keys).Int("found", len(out)).Msg("Benchmark series loaded")
	return out, nil
}
