package models

// AllocationSplit is the equity versus other-asset split in percent.
type AllocationSplit struct {
	EquityPct float64 `json:"equity_pct"`
	OtherPct  float64 `json:"other_pct"`
}

// ActualAllocation is the observed split together with the value it was measured on.
type ActualAllocation struct {
	AllocationSplit
	EquityValue float64 `json:"equity_value"`
	OtherValue  float64 `json:"other_value"`
	TotalValue  float64 `json:"total_value"`
}

// IdealAllocation is the target split for a persona.
type IdealAllocation struct {
	AllocationSplit
	Description string `json:"description"`
}

// FlagType is the urgency class of an advisory flag.
type FlagType string

const (
	FlagWarning    FlagType = "warning"
	FlagSuggestion FlagType = "suggestion"
	FlagInfo       FlagType = "info"
)

// Advisory flag identifiers.
const (
	FlagEquityOverweight   = "equity_overweight"
	FlagOtherUnderweight   = "underallocated_to_debt"
	FlagHighConcentration  = "high_concentration_risk"
	FlagLowDiversification = "low_diversification"
	FlagEquityUnderweight  = "equity_underweight"
	FlagEmptyPortfolio     = "empty_portfolio"
	FlagWellAligned        = "well_aligned"
)

// AdvisoryFlag is one alignment observation. Lower priority numbers are more urgent.
type AdvisoryFlag struct {
	ID       string   `json:"id"`
	Type     FlagType `json:"type"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Priority int      `json:"priority"`
}

// AlignmentResult compares actual allocation with a persona's ideal.
type AlignmentResult struct {
	Persona   string           `json:"persona"`
	Score     float64          `json:"score"`
	Actual    ActualAllocation `json:"actual"`
	Ideal     IdealAllocation  `json:"ideal"`
	Deviation AllocationSplit  `json:"deviation"`
	Flags     []AdvisoryFlag   `json:"flags"`
	Summary   string           `json:"summary"`
}
