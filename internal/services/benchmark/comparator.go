// Package benchmark compares portfolio returns against category benchmark rates.
package benchmark

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// Classification band in percentage points around the benchmark.
const matchingBandPct = 1.0

// Comparator holds the static category benchmark table.
type Comparator struct {
	rates           map[string]common.BenchmarkRate
	defaultCategory string
}

// NewComparator creates a comparator from the benchmarks config section.
func NewComparator(cfg common.BenchmarksConfig) *Comparator {
	rates := make(map[string]common.BenchmarkRate, len(cfg.Categories))
	for k, v := range cfg.Categories {
		rates[k] = v
	}
	def := cfg.DefaultCategory
	if _, ok := rates[def]; !ok {
		def = "Other"
		if _, ok := rates[def]; !ok {
			rates[def] = common.DefaultBenchmarks()["Other"]
		}
	}
	return &Comparator{rates: rates, defaultCategory: def}
}

// RateFor returns the benchmark used for a category, falling back to the default
// category's benchmark when the category has no entry.
func (c *Comparator) RateFor(category string) common.BenchmarkRate {
	if r, ok := c.rates[category]; ok {
		return r
	}
	return c.rates[c.defaultCategory]
}

// CategoryWeights converts category values to fractions of their total.
// Returns nil when the total is not positive.
func CategoryWeights(values map[string]float64) map[string]float64 {
	total := 0.0
	for _, k := range sortedKeys(values) {
		total += values[k]
	}
	if total <= 0 {
		return nil
	}
	out := make(map[string]float64, len(values))
	for k, v := range values {
		out[k] = v / total
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WeightedRate returns sum(weight_c * staticRate_c) and the per-category breakdown,
// ordered by weight descending. Categories are summed in name order so the result
// is identical across calls.
func (c *Comparator) WeightedRate(weights map[string]float64) (float64, []models.CategoryBenchmarkUse) {
	uses := make([]models.CategoryBenchmarkUse, 0, len(weights))
	rate := 0.0
	for _, cat := range sortedKeys(weights) {
		w := weights[cat]
		r := c.RateFor(cat)
		rate += w * r.StaticRate
		uses = append(uses, models.CategoryBenchmarkUse{
			Category:   cat,
			Benchmark:  r.Index,
			StaticRate: r.StaticRate,
			Weight:     w,
		})
	}
	sort.Slice(uses, func(i, j int) bool {
		if uses[i].Weight != uses[j].Weight {
			return uses[i].Weight > uses[j].Weight
		}
		return uses[i].Category < uses[j].Category
	})
	return rate, uses
}

// Classify maps outperformance in percentage points to a class: above +1 is
// Outperforming, below -1 Underperforming, otherwise Matching. Callers pass the
// outperformance rounded to 2 decimals, as displayed.
func Classify(outperformance float64) models.PerformanceClass {
	switch {
	case outperformance > matchingBandPct:
		return models.PerformanceOutperforming
	case outperformance < -matchingBandPct:
		return models.PerformanceUnderperforming
	default:
		return models.PerformanceMatching
	}
}

// Compare compares the portfolio XIRR (percent) against the value-weighted static
// benchmark rate of its categories. Returns nil when the XIRR is unavailable or the
// portfolio has no value.
func (c *Comparator) Compare(portfolioXIRRPct *float64, categoryValues map[string]float64) *models.BenchmarkComparison {
	if portfolioXIRRPct == nil {
		return nil
	}
	weights := CategoryWeights(categoryValues)
	if weights == nil {
		return nil
	}

	rate, uses := c.WeightedRate(weights)
	outperf := *portfolioXIRRPct - rate
	class := Classify(common.Round2(outperf))

	for i := range uses {
		uses[i].Weight = common.Round2(uses[i].Weight)
	}

	return &models.BenchmarkComparison{
		PortfolioXIRR:      common.Round2(*portfolioXIRRPct),
		BenchmarkReturn:    common.Round2(rate),
		Outperformance:     common.Round2(outperf),
		Performance:        class,
		CategoryBenchmarks: uses,
		Explanation:        explain(*portfolioXIRRPct, rate, outperf, class, uses),
	}
}

func explain(xirr, rate, outperf float64, class models.PerformanceClass, uses []models.CategoryBenchmarkUse) string {
	parts := make([]string, 0, len(uses))
	for _, u := range uses {
		parts = append(parts, fmt.Sprintf("%s %.0f%%", u.Benchmark, u.Weight*100))
	}
	mix := strings.Join(parts, ", ")

	switch class {
	case models.PerformanceOutperforming:
		return fmt.Sprintf("Your portfolio XIRR of %.2f%% beats the weighted benchmark return of %.2f%% (%s) by %.2f percentage points.", xirr, rate, mix, outperf)
	case models.PerformanceUnderperforming:
		return fmt.Sprintf("Your portfolio XIRR of %.2f%% trails the weighted benchmark return of %.2f%% (%s) by %.2f percentage points.", xirr, rate, mix, -outperf)
	default:
		return fmt.Sprintf("Your portfolio XIRR of %.2f%% is in line with the weighted benchmark return of %.2f%% (%s).", xirr, rate, mix)
	}
}

// CompareSchemes compares each scheme with an available XIRR against its own
// category benchmark.
func (c *Comparator) CompareSchemes(schemes []models.SchemePerformance) []models.SchemeBenchmarkComparison {
	out := make([]models.SchemeBenchmarkComparison, 0, len(schemes))
	for _, s := range schemes {
		if s.XIRR == nil {
			continue
		}
		r := c.RateFor(s.Category)
		outperf := common.Round2(s.XIRR.RatePct - r.StaticRate)
		out = append(out, models.SchemeBenchmarkComparison{
			Code:            s.Code,
			Name:            s.Name,
			Category:        s.Category,
			Benchmark:       r.Index,
			SchemeXIRR:      s.XIRR.RatePct,
			BenchmarkReturn: r.StaticRate,
			Outperformance:  outperf,
			Performance:     Classify(outperf),
		})
	}
	return out
}
