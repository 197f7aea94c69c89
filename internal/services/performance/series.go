package performance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

const (
	rollingWindow       = 12 // months in a one-year window
	minDrawdownPoints   = 12
	minVolatilityPoints = 12
	monthsPerYear       = 12
)

// RollingReturns computes the 1-year rolling return at each index i >= 12 as
// (v[i] - v[i-12]) / v[i-12] * 100. Windows starting at zero value are skipped.
// Requires at least 13 points.
func RollingReturns(curve []models.GrowthPoint) []models.SeriesPoint {
	if len(curve) < rollingWindow+1 {
		return []models.SeriesPoint{}
	}

	out := make([]models.SeriesPoint, 0, len(curve)-rollingWindow)
	for i := rollingWindow; i < len(curve); i++ {
		prev := curve[i-rollingWindow].Value
		if prev == 0 {
			continue
		}
		out = append(out, models.SeriesPoint{
			Date:  curve[i].Date,
			Value: common.Round2((curve[i].Value - prev) / prev * 100),
		})
	}
	return out
}

// LatestRollingReturn returns the most recent rolling return, or nil when there is none.
func LatestRollingReturn(rolling []models.SeriesPoint) *float64 {
	if len(rolling) == 0 {
		return nil
	}
	v := rolling[len(rolling)-1].Value
	return &v
}

// DrawdownSeries computes the percentage decline from the running peak at each point.
// The peak is raised before the drawdown is measured, so every value is <= 0 and the
// first is 0. Requires at least 12 points.
func DrawdownSeries(curve []models.GrowthPoint) []models.SeriesPoint {
	if len(curve) < minDrawdownPoints {
		return []models.SeriesPoint{}
	}

	out := make([]models.SeriesPoint, 0, len(curve))
	peak := 0.0
	for _, p := range curve {
		if p.Value > peak {
			peak = p.Value
		}
		dd := 0.0
		if peak > 0 {
			dd = (p.Value - peak) / peak * 100
		}
		out = append(out, models.SeriesPoint{Date: p.Date, Value: common.Round2(dd)})
	}
	return out
}

// FindMaxDrawdown returns the deepest peak-to-trough decline, or nil when the curve is
// too short or never declines.
func FindMaxDrawdown(curve []models.GrowthPoint) *models.MaxDrawdown {
	if len(curve) < minDrawdownPoints {
		return nil
	}

	var best *models.MaxDrawdown
	peakIdx := 0
	for i, p := range curve {
		if p.Value > curve[peakIdx].Value {
			peakIdx = i
		}
		peak := curve[peakIdx].Value
		if peak <= 0 || p.Value >= peak {
			continue
		}
		dd := (p.Value - peak) / peak * 100
		if best == nil || dd < best.Pct {
			best = &models.MaxDrawdown{
				Pct:         dd,
				PeakDate:    curve[peakIdx].Date,
				PeakValue:   peak,
				TroughDate:  p.Date,
				TroughValue: p.Value,
			}
		}
	}
	if best != nil {
		best.Pct = common.Round2(best.Pct)
	}
	return best
}

// MonthlyReturns returns simple month-over-month returns as decimals, skipping months
// that start from zero value.
func MonthlyReturns(curve []models.GrowthPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}
	out := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Value
		if prev <= 0 {
			continue
		}
		out = append(out, (curve[i].Value-prev)/prev)
	}
	return out
}

// CalculateVolatility returns the annualised standard deviation of monthly returns
// derived from the growth curve. Returns nil when fewer than 12 monthly returns exist.
func CalculateVolatility(curve []models.GrowthPoint) *models.Volatility {
	returns := MonthlyReturns(curve)
	if len(returns) < minVolatilityPoints {
		return nil
	}

	monthly := stat.StdDev(returns, nil)
	if math.IsNaN(monthly) {
		return nil
	}
	annual := monthly * math.Sqrt(monthsPerYear) * 100
	level := volatilityLevel(annual)

	return &models.Volatility{
		Annualized:  common.Round2(annual),
		Monthly:     common.Round2(monthly * 100),
		Samples:     len(returns),
		Level:       level,
		Explanation: fmt.Sprintf("Annualised volatility of %.1f%% from %d monthly returns of the estimated growth curve (%s).", annual, len(returns), level),
	}
}

// volatilityLevel grades annualised volatility: below 10% Low, up to 20% Moderate, above High.
func volatilityLevel(annualPct float64) models.RiskLevel {
	switch {
	case annualPct < 10:
		return models.RiskLevelLow
	case annualPct <= 20:
		return models.RiskLevelModerate
	default:
		return models.RiskLevelHigh
	}
}
