package models

// HoldingAnalysis is the valued view of one active holding.
type HoldingAnalysis struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Type          AssetType `json:"type"`
	Category      string    `json:"category"`
	Quantity      float64   `json:"quantity"`
	Value         float64   `json:"value"`
	Invested      *float64  `json:"invested,omitempty"`
	GainLoss      *float64  `json:"gain_loss,omitempty"`
	GainLossPct   *float64  `json:"gain_loss_pct,omitempty"`
	PortfolioPct  float64   `json:"portfolio_pct"`
	CurrentPrice  *float64  `json:"current_price,omitempty"`
	BenchmarkKey  string    `json:"benchmark_key,omitempty"`
}

// AllocationEntry is the value and share of one bucket (asset type or category).
type AllocationEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Pct   float64 `json:"pct"`
	Count int     `json:"count"`
}

// PortfolioSummary carries headline counts for the analysed holdings.
type PortfolioSummary struct {
	TotalHoldings     int     `json:"total_holdings"`
	EquityCount       int     `json:"equity_count"`
	FundCount         int     `json:"fund_count"`
	LargestHolding    string  `json:"largest_holding,omitempty"`
	LargestHoldingPct float64 `json:"largest_holding_pct"`
}

// PortfolioAnalysis is the valuation and allocation breakdown of a set of holdings.
// Allocation slices are sorted by value descending.
type PortfolioAnalysis struct {
	TotalValue       float64           `json:"total_value"`
	AssetAllocation  []AllocationEntry `json:"asset_allocation"`
	CategoryExposure []AllocationEntry `json:"category_exposure"`
	Holdings         []HoldingAnalysis `json:"holdings"`
	Summary          PortfolioSummary  `json:"summary"`
}

// AssetTypePct returns the share of the portfolio held in the given asset type.
func (a PortfolioAnalysis) AssetTypePct(t AssetType) float64 {
	for _, e := range a.AssetAllocation {
		if e.Key == string(t) {
			return e.Pct
		}
	}
	return 0
}

// CategoryValues returns total value per category.
func (a PortfolioAnalysis) CategoryValues() map[string]float64 {
	out := make(map[string]float64, len(a.CategoryExposure))
	for _, e := range a.CategoryExposure {
		out[e.Key] = e.Value
	}
	return out
}
