package models

import "time"

// XIRRResult is the annualised return of a set of cashflows plus the totals that produced it.
type XIRRResult struct {
	Rate              float64  `json:"rate"`     // decimal, e.g. 0.1225
	RatePct           float64  `json:"rate_pct"` // percent, 2 dp
	Invested          float64  `json:"invested"` // purchases less redemptions
	CurrentValue      float64  `json:"current_value"`
	AbsoluteReturn    float64  `json:"absolute_return"`
	AbsoluteReturnPct *float64 `json:"absolute_return_pct,omitempty"`
	CashFlows         int      `json:"cash_flows"`
}

// SchemePerformance is the return of a single holding.
type SchemePerformance struct {
	Code     string      `json:"code"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Value    float64     `json:"value"`
	XIRR     *XIRRResult `json:"xirr,omitempty"`
}

// GrowthPoint is the estimated portfolio value at the start of a month.
type GrowthPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// SeriesPoint is a dated percentage observation (rolling return or drawdown).
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// MaxDrawdown is the deepest peak-to-trough decline in the growth curve.
type MaxDrawdown struct {
	Pct         float64   `json:"pct"` // <= 0
	PeakDate    time.Time `json:"peak_date"`
	PeakValue   float64   `json:"peak_value"`
	TroughDate  time.Time `json:"trough_date"`
	TroughValue float64   `json:"trough_value"`
}

// PerformanceHistory groups the curve-derived series of a snapshot.
type PerformanceHistory struct {
	Growth              []GrowthPoint `json:"growth"`
	RollingReturns      []SeriesPoint `json:"rolling_returns,omitempty"`
	LatestRollingReturn *float64      `json:"latest_rolling_return,omitempty"`
	Drawdowns           []SeriesPoint `json:"drawdowns,omitempty"`
	MaxDrawdown         *MaxDrawdown  `json:"max_drawdown,omitempty"`
}
