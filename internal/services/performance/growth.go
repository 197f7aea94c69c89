package performance

import (
	"sort"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// DefaultMinGrowthPoints is the minimum curve length; shorter curves are discarded.
const DefaultMinGrowthPoints = 12

// holdingGrowthState tracks incremental transaction replay for a holding.
// Transactions are sorted by date ascending; the cursor advances as month dates progress.
type holdingGrowthState struct {
	Holding   models.Holding
	SortedTxs []models.Transaction
	Cursor    int // next transaction index to process
	Units     float64
	Price     float64 // current reference price
	Series    *models.BenchmarkSeries
	Latest    float64 // latest level of Series
}

// advanceTo applies all transactions dated on or before cutoff.
func (s *holdingGrowthState) advanceTo(cutoff time.Time) {
	for s.Cursor < len(s.SortedTxs) {
		t := s.SortedTxs[s.Cursor]
		if t.Date.After(cutoff) {
			break
		}
		s.Units += t.UnitDelta()
		s.Cursor++
	}
}

// priceAt estimates the holding price at d by scaling the current price with the
// benchmark ratio level(d)/level(latest). Without a usable series the price is flat.
func (s *holdingGrowthState) priceAt(d time.Time) float64 {
	if s.Series == nil || s.Latest <= 0 {
		return s.Price
	}
	level, ok := s.Series.LevelAt(d)
	if !ok {
		return s.Price
	}
	return s.Price * level / s.Latest
}

// newHoldingGrowthState creates a state for a holding with transactions sorted by date.
func newHoldingGrowthState(h models.Holding, txs []models.Transaction, series map[string]models.BenchmarkSeries) *holdingGrowthState {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	s := &holdingGrowthState{
		Holding:   h,
		SortedTxs: sorted,
		Price:     ReferencePrice(h),
	}

	if key := h.SeriesKey(); key != "" {
		if bs, ok := series[key]; ok && len(bs.Points) > 0 {
			ordered := bs.Sorted()
			s.Series = &ordered
			s.Latest, _ = ordered.Latest()
		}
	}
	return s
}

// ReferencePrice returns the per-unit price used to value history for a holding:
// current price, else last valuation per unit, else average cost.
func ReferencePrice(h models.Holding) float64 {
	if h.CurrentPrice != nil && *h.CurrentPrice > 0 {
		return *h.CurrentPrice
	}
	if h.LastValuation != nil && *h.LastValuation > 0 && h.Quantity > 0 {
		return *h.LastValuation / h.Quantity
	}
	if h.AverageCost != nil && *h.AverageCost > 0 {
		return *h.AverageCost
	}
	return 0
}

// GrowthOptions configures curve reconstruction.
type GrowthOptions struct {
	MinPoints int // curves shorter than this are discarded; defaults to 12
}

// ReconstructGrowthCurve estimates portfolio value at the start of each month from the
// month of the first transaction through the month containing now.
// Units per holding come from replaying its transactions; the price is the current
// reference price scaled by the holding's benchmark series. Returns an empty slice
// when fewer than MinPoints months are covered.
func ReconstructGrowthCurve(txs []models.Transaction, holdings []models.Holding, series map[string]models.BenchmarkSeries, now time.Time, opts GrowthOptions) []models.GrowthPoint {
	minPoints := opts.MinPoints
	if minPoints <= 0 {
		minPoints = DefaultMinGrowthPoints
	}
	if len(txs) == 0 || len(holdings) == 0 {
		return []models.GrowthPoint{}
	}

	first := txs[0].Date
	for _, t := range txs[1:] {
		if t.Date.Before(first) {
			first = t.Date
		}
	}

	dates := generateMonthStarts(first, now)
	if len(dates) < minPoints {
		return []models.GrowthPoint{}
	}

	byCode := GroupByCode(txs)
	states := make([]*holdingGrowthState, 0, len(holdings))
	for _, h := range holdings {
		if len(byCode[h.Code]) == 0 {
			continue
		}
		states = append(states, newHoldingGrowthState(h, byCode[h.Code], series))
	}

	points := make([]models.GrowthPoint, 0, len(dates))
	for _, d := range dates {
		total := 0.0
		for _, s := range states {
			s.advanceTo(d)
			if s.Units <= 0 {
				continue
			}
			total += s.Units * s.priceAt(d)
		}
		points = append(points, models.GrowthPoint{Date: d, Value: common.Round2(total)})
	}

	return points
}

// generateMonthStarts returns the first day of each month from the month of from
// through the month containing to, in UTC.
func generateMonthStarts(from, to time.Time) []time.Time {
	from = from.UTC()
	to = to.UTC()
	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)

	var dates []time.Time
	for !cur.After(to) {
		dates = append(dates, cur)
		cur = cur.AddDate(0, 1, 0)
	}
	return dates
}
