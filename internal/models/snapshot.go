package models

import "time"

// RiskProfile groups the risk signals of a snapshot.
type RiskProfile struct {
	Concentration       ConcentrationResult `json:"concentration"`
	TopHoldings         TopHoldingsRisk     `json:"top_holdings"`
	OverDiversification OverDiversification `json:"over_diversification"`
	RiskReturnMatrix    []RiskReturnPoint   `json:"risk_return_matrix"`
	Volatility          *Volatility         `json:"volatility,omitempty"`
}

// Snapshot is the full analytics result for one portfolio at one instant.
// Sections that could not be computed are nil and omitted from JSON.
type Snapshot struct {
	ID               string                      `json:"id"`
	PortfolioID      string                      `json:"portfolio_id"`
	GeneratedAt      time.Time                   `json:"generated_at"`
	Analysis         PortfolioAnalysis           `json:"analysis"`
	Risk             RiskProfile                 `json:"risk"`
	XIRR             *XIRRResult                 `json:"xirr,omitempty"`
	Schemes          []SchemePerformance         `json:"schemes"`
	History          *PerformanceHistory         `json:"history,omitempty"`
	Benchmark        *BenchmarkComparison        `json:"benchmark,omitempty"`
	SchemeBenchmarks []SchemeBenchmarkComparison `json:"scheme_benchmarks,omitempty"`
	Alignment        *AlignmentResult            `json:"alignment,omitempty"`
	Unavailable      []string                    `json:"unavailable,omitempty"`
	ComputeDuration  time.Duration               `json:"compute_duration"`
}
