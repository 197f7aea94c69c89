// Package performance computes returns and value history for a portfolio.
package performance

import (
	"math"
	"sort"

	"github.com/bobmcallan/folio/internal/models"
)

const (
	daysPerYear   = 365.0
	minDerivative = 1e-10
)

// SolveOptions configures the Newton-Raphson XIRR solver.
type SolveOptions struct {
	Guess         float64
	Tolerance     float64
	MaxIterations int
}

// DefaultSolveOptions returns guess 10%, tolerance 1e-4 and 100 iterations.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{Guess: 0.1, Tolerance: 1e-4, MaxIterations: 100}
}

func (o SolveOptions) withDefaults() SolveOptions {
	d := DefaultSolveOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.Guess <= -1 || math.IsNaN(o.Guess) {
		o.Guess = d.Guess
	}
	return o
}

// Solve finds the annualised rate r at which the net present value of flows is zero.
// NPV(r) = sum of amount_i / (1 + r)^(years_i), years_i = days from the earliest flow / 365.
// Returns the rate as a decimal (e.g. 0.12 for 12%) and false when there are fewer than
// two flows, the derivative vanishes, or the iteration does not converge.
func Solve(flows []models.CashFlow, opts SolveOptions) (float64, bool) {
	if len(flows) < 2 {
		return 0, false
	}
	opts = opts.withDefaults()

	sorted := make([]models.CashFlow, len(flows))
	copy(sorted, flows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	years := yearFractions(sorted)
	rate := opts.Guess

	for iter := 0; iter < opts.MaxIterations; iter++ {
		npv, dnpv := npvAndDerivative(sorted, years, rate)
		if math.IsNaN(npv) || math.IsNaN(dnpv) || math.IsInf(npv, 0) || math.IsInf(dnpv, 0) {
			return 0, false
		}
		if math.Abs(dnpv) < minDerivative {
			return 0, false
		}

		newRate := rate - npv/dnpv
		if math.IsNaN(newRate) || math.IsInf(newRate, 0) {
			return 0, false
		}
		if math.Abs(newRate-rate) < opts.Tolerance {
			return newRate, true
		}
		rate = newRate
	}

	return 0, false
}

// yearFractions converts flow dates to years from the first (sorted) flow.
func yearFractions(flows []models.CashFlow) []float64 {
	base := flows[0].Date
	years := make([]float64, len(flows))
	for i, f := range flows {
		days := f.Date.Sub(base).Hours() / 24
		years[i] = days / daysPerYear
	}
	return years
}

// npvAndDerivative evaluates NPV(r) and dNPV/dr.
func npvAndDerivative(flows []models.CashFlow, years []float64, rate float64) (npv, dnpv float64) {
	base := 1 + rate
	for i, f := range flows {
		y := years[i]
		discount := math.Pow(base, y)
		npv += f.Amount / discount
		dnpv -= y * f.Amount / (discount * base)
	}
	return npv, dnpv
}
