package models

import (
	"sort"
	"time"
)

// IndexPoint is one observation of a benchmark index level.
type IndexPoint struct {
	Date  time.Time `json:"date"`
	Level float64   `json:"level"`
}

// BenchmarkSeries holds index levels for one benchmark key, ascending by date.
type BenchmarkSeries struct {
	Key    string       `json:"key"`
	Points []IndexPoint `json:"points"`
}

// Sorted returns a copy of the series with points in ascending date order.
func (s BenchmarkSeries) Sorted() BenchmarkSeries {
	pts := make([]IndexPoint, len(s.Points))
	copy(pts, s.Points)
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Date.Before(pts[j].Date) })
	return BenchmarkSeries{Key: s.Key, Points: pts}
}

// LevelAt returns the last level at or before d. Points must be sorted ascending.
func (s BenchmarkSeries) LevelAt(d time.Time) (float64, bool) {
	idx := sort.Search(len(s.Points), func(i int) bool {
		return s.Points[i].Date.After(d)
	})
	if idx == 0 {
		return 0, false
	}
	return s.Points[idx-1].Level, true
}

// Latest returns the most recent level in the series.
func (s BenchmarkSeries) Latest() (float64, bool) {
	if len(s.Points) == 0 {
		return 0, false
	}
	return s.Points[len(s.Points)-1].Level, true
}

// BenchmarkComparison is the portfolio-level comparison against a value-weighted static benchmark rate.
type BenchmarkComparison struct {
	PortfolioXIRR      float64                `json:"portfolio_xirr"`      // percent
	BenchmarkReturn    float64                `json:"benchmark_return"`    // percent
	Outperformance     float64                `json:"outperformance"`      // percentage points
	Performance        PerformanceClass       `json:"performance"`
	CategoryBenchmarks []CategoryBenchmarkUse `json:"category_benchmarks"`
	Explanation        string                 `json:"explanation"`
}

// CategoryBenchmarkUse records which benchmark and weight a category contributed.
type CategoryBenchmarkUse struct {
	Category   string  `json:"category"`
	Benchmark  string  `json:"benchmark"`
	StaticRate float64 `json:"static_rate"`
	Weight     float64 `json:"weight"` // fraction of total value
}

// SchemeBenchmarkComparison compares a single holding's XIRR against its category benchmark.
type SchemeBenchmarkComparison struct {
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	Benchmark       string           `json:"benchmark"`
	SchemeXIRR      float64          `json:"scheme_xirr"`
	BenchmarkReturn float64          `json:"benchmark_return"`
	Outperformance  float64          `json:"outperformance"`
	Performance     PerformanceClass `json:"performance"`
}

// PerformanceClass is the relative-performance classification.
type PerformanceClass string

const (
	PerformanceOutperforming   PerformanceClass = "Outperforming"
	PerformanceMatching        PerformanceClass = "Matching"
	PerformanceUnderperforming PerformanceClass = "Underperforming"
)
