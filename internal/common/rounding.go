package common

import "github.com/shopspring/decimal"

// Round2 rounds a float to two decimal places using half-away-from-zero decimal
// rounding. Used for presentation values only; calculations keep full precision.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Round1 rounds a float to one decimal place.
func Round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

