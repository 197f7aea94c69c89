package models

// RiskSeverity grades a concentration flag.
type RiskSeverity string

const (
	SeverityHigh   RiskSeverity = "HIGH"
	SeverityMedium RiskSeverity = "MEDIUM"
)

// RiskScope identifies what a concentration flag was raised against.
type RiskScope string

const (
	ScopeHolding   RiskScope = "HOLDING"
	ScopeCategory  RiskScope = "CATEGORY"
	ScopeAssetType RiskScope = "ASSET_TYPE"
)

// ConcentrationRisk is one threshold breach. Flags are independent; a single
// holding may appear alongside its category and asset type.
type ConcentrationRisk struct {
	Scope     RiskScope    `json:"scope"`
	Name      string       `json:"name"`
	Pct       float64      `json:"pct"`
	Threshold float64      `json:"threshold"`
	Severity  RiskSeverity `json:"severity"`
	Message   string       `json:"message"`
}

// ConcentrationResult is the scorer output. Risks are ordered HIGH before MEDIUM.
type ConcentrationResult struct {
	Risks                []ConcentrationRisk `json:"risks"`
	DiversificationScore float64             `json:"diversification_score"`
	HHI                  float64             `json:"hhi"`
}

// HighCount returns the number of HIGH flags.
func (r ConcentrationResult) HighCount() int {
	n := 0
	for _, risk := range r.Risks {
		if risk.Severity == SeverityHigh {
			n++
		}
	}
	return n
}

// MediumCount returns the number of MEDIUM flags.
func (r ConcentrationResult) MediumCount() int {
	n := 0
	for _, risk := range r.Risks {
		if risk.Severity == SeverityMedium {
			n++
		}
	}
	return n
}

// RiskLevel is the coarse grading used by the top-holdings and volatility checks.
type RiskLevel string

const (
	RiskLevelNone     RiskLevel = "None"
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelModerate RiskLevel = "Moderate"
	RiskLevelHigh     RiskLevel = "High"
)

// HoldingWeight is a holding's share of the portfolio.
type HoldingWeight struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

// TopHoldingsRisk checks whether the largest positions dominate the portfolio.
type TopHoldingsRisk struct {
	HasRisk     bool            `json:"has_risk"`
	Severity    RiskLevel       `json:"severity"`
	TopHoldings []HoldingWeight `json:"top_holdings"`
	Top3Pct     float64         `json:"top3_pct"`
	Explanation string          `json:"explanation"`
}

// OverDiversification flags portfolios spread across many small positions.
type OverDiversification struct {
	IsOverDiversified bool    `json:"is_over_diversified"`
	TotalHoldings     int     `json:"total_holdings"`
	SmallHoldings     int     `json:"small_holdings"`
	SmallHoldingsPct  float64 `json:"small_holdings_pct"`
	Explanation       string  `json:"explanation"`
}

// RiskReturnQuadrant places a holding by return and assumed category volatility.
type RiskReturnQuadrant string

const (
	QuadrantHighReturnLowRisk  RiskReturnQuadrant = "HighReturn-LowRisk"
	QuadrantHighReturnHighRisk RiskReturnQuadrant = "HighReturn-HighRisk"
	QuadrantLowReturnLowRisk   RiskReturnQuadrant = "LowReturn-LowRisk"
	QuadrantLowReturnHighRisk  RiskReturnQuadrant = "LowReturn-HighRisk"
)

// RiskReturnPoint is one entry of the risk-return matrix.
type RiskReturnPoint struct {
	Code     string             `json:"code"`
	Name     string             `json:"name"`
	Category string             `json:"category"`
	Return   *float64           `json:"return,omitempty"` // scheme XIRR percent; nil when unavailable
	Risk     float64            `json:"risk"`             // assumed annualised volatility percent
	Weight   float64            `json:"weight"`
	Quadrant RiskReturnQuadrant `json:"quadrant"`
}

// Volatility is the annualised standard deviation of monthly portfolio returns.
type Volatility struct {
	Annualized  float64   `json:"annualized"` // percent
	Monthly     float64   `json:"monthly"`    // percent
	Samples     int       `json:"samples"`
	Level       RiskLevel `json:"level"`
	Explanation string    `json:"explanation"`
}
