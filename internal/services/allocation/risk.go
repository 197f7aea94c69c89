package allocation

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	topHoldingRiskPct     = 25.0
	topHoldingHighPct     = 40.0
	top3RiskPct           = 50.0
	overDiversifiedCount  = 15
	smallHoldingPct       = 5.0
	smallHoldingsSharePct = 50.0
	highReturnPct         = 10.0
	highRiskPct           = 15.0
	equityVolatilityKey   = "EQUITY"
)

// HoldingWeights returns each holding's share of the portfolio, largest first.
func HoldingWeights(analysis models.PortfolioAnalysis) []models.HoldingWeight {
	if analysis.TotalValue <= 0 {
		return []models.HoldingWeight{}
	}
	out := make([]models.HoldingWeight, 0, len(analysis.Holdings))
	for _, h := range SortedByValue(analysis.Holdings) {
		out = append(out, models.HoldingWeight{
			Code:   h.Code,
			Name:   h.Name,
			Value:  common.Round2(h.Value),
			Weight: common.Round2(h.PortfolioPct),
		})
	}
	return out
}

// DetectTopHoldingsRisk flags a single holding above 25% (High above 40%), or the top
// three above 50% when there are more than three holdings.
func DetectTopHoldingsRisk(weights []models.HoldingWeight) models.TopHoldingsRisk {
	if len(weights) == 0 {
		return models.TopHoldingsRisk{
			Severity:    models.RiskLevelNone,
			TopHoldings: []models.HoldingWeight{},
			Explanation: "No holdings in portfolio",
		}
	}

	top3 := weights
	if len(top3) > 3 {
		top3 = top3[:3]
	}
	top3Pct := 0.0
	names := make([]string, 0, len(top3))
	for _, w := range top3 {
		top3Pct += w.Weight
		names = append(names, w.Name)
	}
	top := weights[0]

	res := models.TopHoldingsRisk{
		Severity:    models.RiskLevelNone,
		TopHoldings: append([]models.HoldingWeight(nil), top3...),
		Top3Pct:     common.Round2(top3Pct),
	}

	switch {
	case top.Weight > topHoldingRiskPct:
		res.HasRisk = true
		res.Severity = models.RiskLevelModerate
		if top.Weight > topHoldingHighPct {
			res.Severity = models.RiskLevelHigh
		}
		res.Explanation = fmt.Sprintf("High concentration risk: %s accounts for %.1f%% of your portfolio. Consider diversifying to reduce risk.", top.Name, top.Weight)
	case top3Pct > top3RiskPct && len(weights) > 3:
		res.HasRisk = true
		res.Severity = models.RiskLevelModerate
		res.Explanation = fmt.Sprintf("Moderate concentration risk: Top 3 holdings (%s) account for %.1f%% of your portfolio.", strings.Join(names, ", "), top3Pct)
	default:
		res.Explanation = "Portfolio concentration is within healthy limits."
	}
	return res
}

// DetectOverDiversification flags more than 15 holdings where over half are below 5% each.
func DetectOverDiversification(weights []models.HoldingWeight) models.OverDiversification {
	n := len(weights)
	if n == 0 {
		return models.OverDiversification{Explanation: "No holdings in portfolio"}
	}

	small := 0
	for _, w := range weights {
		if w.Weight < smallHoldingPct {
			small++
		}
	}
	smallPct := float64(small) / float64(n) * 100

	res := models.OverDiversification{
		TotalHoldings:    n,
		SmallHoldings:    small,
		SmallHoldingsPct: common.Round1(smallPct),
	}

	switch {
	case n > overDiversifiedCount && smallPct > smallHoldingsSharePct:
		res.IsOverDiversified = true
		res.Explanation = fmt.Sprintf("Portfolio may be over-diversified with %d holdings, where %d holdings are less than 5%% each. Consider consolidating smaller positions.", n, small)
	case n > overDiversifiedCount:
		res.Explanation = fmt.Sprintf("Portfolio has %d holdings. Consider reviewing if all positions add meaningful value.", n)
	case n >= 8:
		res.Explanation = fmt.Sprintf("Portfolio has healthy diversification with %d holdings.", n)
	default:
		res.Explanation = fmt.Sprintf("Portfolio has %d holdings. Consider adding more holdings to improve diversification if risk tolerance allows.", n)
	}
	return res
}

// VolatilityAssumptions maps a category to an assumed annualised volatility in percent.
type VolatilityAssumptions struct {
	ByCategory map[string]float64
	Default    float64
}

// VolatilityFromConfig builds assumptions from the analytics config.
func VolatilityFromConfig(c common.AnalyticsConfig) VolatilityAssumptions {
	return VolatilityAssumptions{ByCategory: c.CategoryVolatility, Default: c.DefaultVolatility}
}

// For returns the assumed volatility for a holding: its category, then the direct
// equity bucket for EQUITY holdings, then the default.
func (v VolatilityAssumptions) For(h models.HoldingAnalysis) float64 {
	if vol, ok := v.ByCategory[h.Category]; ok {
		return vol
	}
	if h.Type == models.AssetTypeEquity {
		if vol, ok := v.ByCategory[equityVolatilityKey]; ok {
			return vol
		}
	}
	return v.Default
}

// RiskReturnMatrix places each holding in a quadrant by its scheme XIRR (high above 10%)
// and assumed category volatility (high above 15%). Holdings without an XIRR count as
// low return. Entries are ordered by weight descending.
func RiskReturnMatrix(analysis models.PortfolioAnalysis, schemes []models.SchemePerformance, vol VolatilityAssumptions) []models.RiskReturnPoint {
	if analysis.TotalValue <= 0 {
		return []models.RiskReturnPoint{}
	}

	returns := make(map[string]*float64, len(schemes))
	for _, s := range schemes {
		if s.XIRR != nil {
			r := s.XIRR.RatePct
			returns[s.Code] = &r
		}
	}

	out := make([]models.RiskReturnPoint, 0, len(analysis.Holdings))
	for _, h := range SortedByValue(analysis.Holdings) {
		ret := returns[h.Code]
		risk := vol.For(h)

		highReturn := ret != nil && *ret > highReturnPct
		highRisk := risk > highRiskPct
		var q models.RiskReturnQuadrant
		switch {
		case highReturn && !highRisk:
			q = models.QuadrantHighReturnLowRisk
		case highReturn && highRisk:
			q = models.QuadrantHighReturnHighRisk
		case !highRisk:
			q = models.QuadrantLowReturnLowRisk
		default:
			q = models.QuadrantLowReturnHighRisk
		}

		out = append(out, models.RiskReturnPoint{
			Code:     h.Code,
			Name:     h.Name,
			Category: h.Category,
			Return:   ret,
			Risk:     risk,
			Weight:   common.Round2(h.PortfolioPct),
			Quadrant: q,
		})
	}
	return out
}
