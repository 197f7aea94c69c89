package allocation

import (
	"fmt"
	"math"
	"sort"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// AlignmentRules holds the thresholds used to raise advisory flags.
type AlignmentRules struct {
	DeviationPct     float64 // class over/underweight tolerance
	WellAlignedPct   float64
	ConcentrationPct float64 // single holding share
	Top3Pct          float64
	Top3MinHoldings  int
	DominantClassPct float64
	MinHoldings      int
}

// DefaultAlignmentRules returns deviation 10, well-aligned 5, single holding 40,
// top-3 70 with at least 5 holdings, dominant class 90 and minimum 3 holdings.
func DefaultAlignmentRules() AlignmentRules {
	return AlignmentRulesFromConfig(common.NewDefaultConfig().Analytics.Alignment)
}

// AlignmentRulesFromConfig maps the config section onto AlignmentRules.
func AlignmentRulesFromConfig(c common.AlignmentConfig) AlignmentRules {
	return AlignmentRules{
		DeviationPct:     c.DeviationPct,
		WellAlignedPct:   c.WellAlignedPct,
		ConcentrationPct: c.ConcentrationPct,
		Top3Pct:          c.Top3Pct,
		Top3MinHoldings:  c.Top3MinHoldings,
		DominantClassPct: c.DominantClassPct,
		MinHoldings:      c.MinHoldings,
	}
}

// ActualAllocation splits the analysed value into direct equity and everything else.
func ActualAllocation(analysis models.PortfolioAnalysis) models.ActualAllocation {
	var a models.ActualAllocation
	for _, h := range analysis.Holdings {
		if h.Type == models.AssetTypeEquity {
			a.EquityValue += h.Value
		} else {
			a.OtherValue += h.Value
		}
	}
	a.TotalValue = a.EquityValue + a.OtherValue
	if a.TotalValue > 0 {
		a.EquityPct = a.EquityValue / a.TotalValue * 100
		a.OtherPct = a.OtherValue / a.TotalValue * 100
	}
	return a
}

// AlignmentScore is 100 minus the mean absolute deviation of the two classes, in [0, 100].
func AlignmentScore(actual, ideal models.AllocationSplit) float64 {
	avg := (math.Abs(actual.EquityPct-ideal.EquityPct) + math.Abs(actual.OtherPct-ideal.OtherPct)) / 2
	score := 100 - avg
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Align scores the actual allocation against the persona's ideal and raises advisory flags.
func Align(actual models.ActualAllocation, persona string, ideal models.IdealAllocation, holdings []models.HoldingAnalysis, rules AlignmentRules) models.AlignmentResult {
	score := AlignmentScore(actual.AllocationSplit, ideal.AllocationSplit)
	return models.AlignmentResult{
		Persona: persona,
		Score:   common.Round1(score),
		Actual:  actual,
		Ideal:   ideal,
		Deviation: models.AllocationSplit{
			EquityPct: common.Round2(actual.EquityPct - ideal.EquityPct),
			OtherPct:  common.Round2(actual.OtherPct - ideal.OtherPct),
		},
		Flags:   AdvisoryFlags(actual, ideal.AllocationSplit, persona, holdings, rules),
		Summary: AlignmentSummary(score, persona),
	}
}

// AdvisoryFlags evaluates every alignment rule independently and returns the raised
// flags ordered by priority (stable within a priority).
func AdvisoryFlags(actual models.ActualAllocation, ideal models.AllocationSplit, persona string, holdings []models.HoldingAnalysis, rules AlignmentRules) []models.AdvisoryFlag {
	flags := []models.AdvisoryFlag{}
	eqDev := actual.EquityPct - ideal.EquityPct
	otherDev := actual.OtherPct - ideal.OtherPct

	if eqDev > rules.DeviationPct {
		flags = append(flags, models.AdvisoryFlag{
			ID:       models.FlagEquityOverweight,
			Type:     models.FlagWarning,
			Title:    fmt.Sprintf("Equity Overweight by %.1f%%", eqDev),
			Message:  fmt.Sprintf("Your equity allocation is %.1f%% vs recommended %.0f%% for your %s profile. This exposes you to higher volatility. Consider shifting %.1f%% toward debt instruments.", actual.EquityPct, ideal.EquityPct, persona, eqDev),
			Priority: 1,
		})
	}

	if otherDev < -rules.DeviationPct {
		under := math.Abs(otherDev)
		flags = append(flags, models.AdvisoryFlag{
			ID:       models.FlagOtherUnderweight,
			Type:     models.FlagWarning,
			Title:    fmt.Sprintf("Underallocated to Debt by %.1f%%", under),
			Message:  fmt.Sprintf("Your debt/mutual fund allocation is %.1f%% vs recommended %.0f%% for your %s profile. Increasing debt exposure can provide stability and regular income.", actual.OtherPct, ideal.OtherPct, persona),
			Priority: 1,
		})
	}

	if f, ok := concentrationFlag(actual.TotalValue, holdings, rules); ok {
		flags = append(flags, f)
	}

	switch {
	case actual.EquityPct >= rules.DominantClassPct || actual.OtherPct >= rules.DominantClassPct:
		dominant := "mutual funds/debt"
		if actual.EquityPct >= rules.DominantClassPct {
			dominant = "equity"
		}
		flags = append(flags, models.AdvisoryFlag{
			ID:       models.FlagLowDiversification,
			Type:     models.FlagWarning,
			Title:    "Low Diversification",
			Message:  fmt.Sprintf("Your portfolio is %.1f%% in %s. Such concentration increases risk. Aim for a balanced mix aligned with your %s profile.", math.Max(actual.EquityPct, actual.OtherPct), dominant, persona),
			Priority: 1,
		})
	case len(holdings) < rules.MinHoldings && actual.TotalValue > 0:
		flags = append(flags, models.AdvisoryFlag{
			ID:       models.FlagLowDiversification,
			Type:     models.FlagSuggestion,
			Title:    "Low Diversification",
			Message:  fmt.Sprintf("With only %d holding(s), your portfolio lacks diversification. Consider adding more instruments across different sectors and asset types.", len(holdings)),
			Priority: 2,
		})
	}

	if eqDev < -rules.DeviationPct && actual.TotalValue > 0 {
		flags = append(flags, models.AdvisoryFlag{
			ID:       models.FlagEquityUnderweight,
			Type:     models.FlagSuggestion,
			Title:    "Equity Underweight",
			Message:  fmt.Sprintf("Your equity allocation (%.1f%%) is %.1f%% below the recommended %.0f%% for your %s profile. You may be missing growth opportunities.", actual.EquityPct, math.Abs(eqDev), ideal.EquityPct, persona),
			Priority: 2,
		})
	}

	if actual.TotalValue == 0 {
		flags = append(flags, models.AdvisoryFlag{
			ID:       models.FlagEmptyPortfolio,
			Type:     models.FlagInfo,
			Title:    "Empty Portfolio",
			Message:  "Add holdings to your portfolio to see alignment analysis and personalized recommendations.",
			Priority: 3,
		})
	}

	if math.Abs(eqDev) <= rules.WellAlignedPct && actual.TotalValue > 0 {
		flags = append(flags, models.AdvisoryFlag{
			ID:       models.FlagWellAligned,
			Type:     models.FlagInfo,
			Title:    "Well Aligned",
			Message:  fmt.Sprintf("Your portfolio allocation closely matches the recommended allocation for your %s profile.", persona),
			Priority: 3,
		})
	}

	sort.SliceStable(flags, func(i, j int) bool { return flags[i].Priority < flags[j].Priority })
	return flags
}

// concentrationFlag raises a warning for a single holding above ConcentrationPct, or a
// suggestion when the top three exceed Top3Pct with at least Top3MinHoldings holdings.
func concentrationFlag(total float64, holdings []models.HoldingAnalysis, rules AlignmentRules) (models.AdvisoryFlag, bool) {
	if len(holdings) == 0 || total <= 0 {
		return models.AdvisoryFlag{}, false
	}

	sorted := SortedByValue(holdings)
	topPct := sorted[0].Value / total * 100
	top3 := 0.0
	for i := 0; i < len(sorted) && i < 3; i++ {
		top3 += sorted[i].Value
	}
	top3Pct := top3 / total * 100

	switch {
	case topPct > rules.ConcentrationPct:
		return models.AdvisoryFlag{
			ID:       models.FlagHighConcentration,
			Type:     models.FlagWarning,
			Title:    "High Concentration Risk",
			Message:  fmt.Sprintf("%q represents %.1f%% of your portfolio. A single holding above %.0f%% creates significant concentration risk. Consider diversifying across more instruments.", sorted[0].Name, topPct, rules.ConcentrationPct),
			Priority: 1,
		}, true
	case top3Pct > rules.Top3Pct && len(holdings) >= rules.Top3MinHoldings:
		return models.AdvisoryFlag{
			ID:       models.FlagHighConcentration,
			Type:     models.FlagSuggestion,
			Title:    "High Concentration Risk",
			Message:  fmt.Sprintf("Your top 3 holdings represent %.1f%% of your portfolio. Consider spreading investments more evenly to reduce concentration risk.", top3Pct),
			Priority: 2,
		}, true
	}
	return models.AdvisoryFlag{}, false
}

// AlignmentSummary describes the score in bands of 90, 70 and 50.
func AlignmentSummary(score float64, persona string) string {
	switch {
	case score >= 90:
		return fmt.Sprintf("Excellent alignment with your %s profile. Your portfolio is well-positioned for your risk tolerance.", persona)
	case score >= 70:
		return fmt.Sprintf("Good alignment with your %s profile. Minor adjustments could optimize your risk-return balance.", persona)
	case score >= 50:
		return fmt.Sprintf("Moderate alignment with your %s profile. Consider rebalancing to better match your risk tolerance.", persona)
	default:
		return fmt.Sprintf("Low alignment with your %s profile. Significant rebalancing is recommended to align with your risk preferences.", persona)
	}
}

// IdealFromPersona converts a configured persona allocation to the model type.
func IdealFromPersona(p common.PersonaAllocation) models.IdealAllocation {
	return models.IdealAllocation{
		AllocationSplit: models.AllocationSplit{EquityPct: p.Equity, OtherPct: p.Other},
		Description:     p.Description,
	}
}
