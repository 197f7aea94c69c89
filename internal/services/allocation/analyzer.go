// Package allocation values holdings and scores how they are spread.
package allocation

import (
	"sort"

	"github.com/bobmcallan/folio/internal/models"
)

// HoldingValue returns the current value of a holding. Priority: last valuation when
// positive, else quantity x current price, else quantity x average cost, else 0.
func HoldingValue(h models.Holding) float64 {
	if h.LastValuation != nil && *h.LastValuation > 0 {
		return *h.LastValuation
	}
	if h.CurrentPrice != nil && *h.CurrentPrice > 0 {
		return h.Quantity * *h.CurrentPrice
	}
	if h.AverageCost != nil && *h.AverageCost > 0 {
		return h.Quantity * *h.AverageCost
	}
	return 0
}

// Analyze values each active holding and breaks the total down by asset type and
// category. Holdings with zero quantity are excluded. Percentages are computed in a
// second pass against the final total.
func Analyze(holdings []models.Holding) models.PortfolioAnalysis {
	result := models.PortfolioAnalysis{
		AssetAllocation:  []models.AllocationEntry{},
		CategoryExposure: []models.AllocationEntry{},
		Holdings:         []models.HoldingAnalysis{},
	}

	// Pass 1: values and totals
	byType := make(map[string]*models.AllocationEntry)
	byCategory := make(map[string]*models.AllocationEntry)
	for _, h := range holdings {
		if !h.Active() {
			continue
		}

		value := HoldingValue(h)
		ha := models.HoldingAnalysis{
			Code:         h.Code,
			Name:         h.DisplayName(),
			Type:         h.Type,
			Category:     h.CategoryOrDefault(),
			Quantity:     h.Quantity,
			Value:        value,
			CurrentPrice: h.CurrentPrice,
			BenchmarkKey: h.BenchmarkKey,
		}
		if h.AverageCost != nil && *h.AverageCost > 0 {
			invested := h.Quantity * *h.AverageCost
			ha.Invested = &invested
			if value > 0 {
				gl := value - invested
				glPct := gl / invested * 100
				ha.GainLoss = &gl
				ha.GainLossPct = &glPct
			}
		}

		result.Holdings = append(result.Holdings, ha)
		result.TotalValue += value
		accumulate(byType, string(h.Type), value)
		accumulate(byCategory, ha.Category, value)
	}

	// Pass 2: percentages
	for i := range result.Holdings {
		result.Holdings[i].PortfolioPct = pctOf(result.Holdings[i].Value, result.TotalValue)
	}
	result.AssetAllocation = finalizeEntries(byType, result.TotalValue)
	result.CategoryExposure = finalizeEntries(byCategory, result.TotalValue)
	result.Summary = summarize(result)

	return result
}

func accumulate(m map[string]*models.AllocationEntry, key string, value float64) {
	e, ok := m[key]
	if !ok {
		e = &models.AllocationEntry{Key: key}
		m[key] = e
	}
	e.Value += value
	e.Count++
}

// finalizeEntries converts buckets to a slice sorted by value descending, then key.
func finalizeEntries(m map[string]*models.AllocationEntry, total float64) []models.AllocationEntry {
	out := make([]models.AllocationEntry, 0, len(m))
	for _, e := range m {
		e.Pct = pctOf(e.Value, total)
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func pctOf(value, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return value / total * 100
}

func summarize(a models.PortfolioAnalysis) models.PortfolioSummary {
	s := models.PortfolioSummary{TotalHoldings: len(a.Holdings)}
	largest := -1
	for i, h := range a.Holdings {
		switch h.Type {
		case models.AssetTypeEquity:
			s.EquityCount++
		case models.AssetTypeFund:
			s.FundCount++
		}
		if largest < 0 || h.Value > a.Holdings[largest].Value {
			largest = i
		}
	}
	if largest >= 0 && a.TotalValue > 0 {
		s.LargestHolding = a.Holdings[largest].Name
		s.LargestHoldingPct = a.Holdings[largest].PortfolioPct
	}
	return s
}

// SortedByValue returns a copy of the analysed holdings ordered by value descending.
func SortedByValue(holdings []models.HoldingAnalysis) []models.HoldingAnalysis {
	out := make([]models.HoldingAnalysis, len(holdings))
	copy(out, holdings)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}
