package allocation

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// Thresholds are the percentage cut-offs for concentration flags.
type Thresholds struct {
	SingleHoldingMedium float64
	SingleHoldingHigh   float64
	CategoryMedium      float64
	CategoryHigh        float64
	AssetTypeMedium     float64
	AssetTypeHigh       float64
}

// DefaultThresholds returns holding 15/25, category 40/60 and asset type 60/80.
func DefaultThresholds() Thresholds {
	return ThresholdsFromConfig(common.NewDefaultConfig().Analytics.Concentration)
}

// ThresholdsFromConfig maps the config section onto Thresholds.
func ThresholdsFromConfig(c common.ConcentrationConfig) Thresholds {
	return Thresholds{
		SingleHoldingMedium: c.SingleHoldingMedium,
		SingleHoldingHigh:   c.SingleHoldingHigh,
		CategoryMedium:      c.CategoryMedium,
		CategoryHigh:        c.CategoryHigh,
		AssetTypeMedium:     c.AssetTypeMedium,
		AssetTypeHigh:       c.AssetTypeHigh,
	}
}

// Diversification score penalties.
const (
	penaltyFewHoldings     = 30 // fewer than 5 holdings
	penaltyLimitedHoldings = 15 // 5 to 9 holdings
	penaltyExcessHoldings  = 5  // more than 30 holdings
	penaltyHighFlag        = 20
	penaltyMediumFlag      = 10
	penaltyHHIHigh         = 25 // HHI above 2500
	penaltyHHIModerate     = 10 // HHI above 1500
	hhiHighThreshold       = 2500
	hhiModerateThreshold   = 1500
)

// Score flags concentration at holding, category and asset-type level and derives a
// 0-100 diversification score. A portfolio with no holdings or no value scores 0.
func Score(analysis models.PortfolioAnalysis, th Thresholds) models.ConcentrationResult {
	result := models.ConcentrationResult{Risks: []models.ConcentrationRisk{}}
	if len(analysis.Holdings) == 0 || analysis.TotalValue <= 0 {
		return result
	}

	for _, h := range analysis.Holdings {
		if r, ok := classify(models.ScopeHolding, h.Name, h.PortfolioPct, th.SingleHoldingMedium, th.SingleHoldingHigh); ok {
			result.Risks = append(result.Risks, r)
		}
	}
	for _, c := range analysis.CategoryExposure {
		if r, ok := classify(models.ScopeCategory, c.Key, c.Pct, th.CategoryMedium, th.CategoryHigh); ok {
			result.Risks = append(result.Risks, r)
		}
	}
	for _, a := range analysis.AssetAllocation {
		if r, ok := classify(models.ScopeAssetType, a.Key, a.Pct, th.AssetTypeMedium, th.AssetTypeHigh); ok {
			result.Risks = append(result.Risks, r)
		}
	}

	sort.SliceStable(result.Risks, func(i, j int) bool {
		return severityRank(result.Risks[i].Severity) < severityRank(result.Risks[j].Severity)
	})

	result.HHI = HHI(analysis.Holdings)
	result.DiversificationScore = diversificationScore(len(analysis.Holdings), result.HighCount(), result.MediumCount(), result.HHI)
	result.HHI = common.Round2(result.HHI)
	return result
}

// HHI returns the Herfindahl-Hirschman index of holding weights on the 0-10000 scale
// (sum of squared percentages).
func HHI(holdings []models.HoldingAnalysis) float64 {
	pcts := make([]float64, len(holdings))
	for i, h := range holdings {
		pcts[i] = h.PortfolioPct
	}
	return floats.Dot(pcts, pcts)
}

func diversificationScore(count, high, medium int, hhi float64) float64 {
	score := 100.0

	switch {
	case count < 5:
		score -= penaltyFewHoldings
	case count < 10:
		score -= penaltyLimitedHoldings
	case count > 30:
		score -= penaltyExcessHoldings
	}

	score -= float64(high * penaltyHighFlag)
	score -= float64(medium * penaltyMediumFlag)

	switch {
	case hhi > hhiHighThreshold:
		score -= penaltyHHIHigh
	case hhi > hhiModerateThreshold:
		score -= penaltyHHIModerate
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func classify(scope models.RiskScope, name string, pct, medium, high float64) (models.ConcentrationRisk, bool) {
	var severity models.RiskSeverity
	var threshold float64
	switch {
	case pct >= high:
		severity, threshold = models.SeverityHigh, high
	case pct >= medium:
		severity, threshold = models.SeverityMedium, medium
	default:
		return models.ConcentrationRisk{}, false
	}

	return models.ConcentrationRisk{
		Scope:     scope,
		Name:      name,
		Pct:       common.Round2(pct),
		Threshold: threshold,
		Severity:  severity,
		Message:   riskMessage(scope, name, pct, threshold, severity),
	}, true
}

func riskMessage(scope models.RiskScope, name string, pct, threshold float64, severity models.RiskSeverity) string {
	var subject string
	switch scope {
	case models.ScopeHolding:
		subject = fmt.Sprintf("Holding %q", name)
	case models.ScopeCategory:
		subject = fmt.Sprintf("Category %q", name)
	default:
		subject = fmt.Sprintf("Asset type %s", name)
	}
	level := "elevated"
	if severity == models.SeverityHigh {
		level = "high"
	}
	return fmt.Sprintf("%s is %.1f%% of the portfolio, at or above the %.0f%% %s-concentration threshold", subject, pct, threshold, level)
}

func severityRank(s models.RiskSeverity) int {
	if s == models.SeverityHigh {
		return 0
	}
	return 1
}
