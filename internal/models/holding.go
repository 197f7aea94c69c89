// Package models defines data structures for Folio
package models

import "strings"

// AssetType distinguishes directly held equities from pooled funds.
type AssetType string

const (
	AssetTypeEquity AssetType = "EQUITY"
	AssetTypeFund   AssetType = "FUND"
)

// DefaultCategory is used for holdings that carry no category.
const DefaultCategory = "Uncategorized"

// Holding is a position in one instrument as reported by the holdings provider.
// Optional monetary fields are pointers; nil means "not known", which is distinct from zero.
type Holding struct {
	Code          string    `json:"code" validate:"required"`
	Name          string    `json:"name,omitempty"`
	Type          AssetType `json:"type" validate:"required,oneof=EQUITY FUND"`
	Category      string    `json:"category,omitempty"`
	Quantity      float64   `json:"quantity" validate:"gte=0"`
	AverageCost   *float64  `json:"average_cost,omitempty" validate:"omitempty,gte=0"`
	LastValuation *float64  `json:"last_valuation,omitempty" validate:"omitempty,gte=0"`
	CurrentPrice  *float64  `json:"current_price,omitempty" validate:"omitempty,gte=0"`
	BenchmarkKey  string    `json:"benchmark_key,omitempty"` // explicit benchmark series id; category is used when empty
}

// DisplayName returns the holding name, falling back to the instrument code.
func (h Holding) DisplayName() string {
	if strings.TrimSpace(h.Name) != "" {
		return h.Name
	}
	return h.Code
}

// CategoryOrDefault returns the category, or DefaultCategory when blank.
func (h Holding) CategoryOrDefault() string {
	if strings.TrimSpace(h.Category) != "" {
		return h.Category
	}
	return DefaultCategory
}

// SeriesKey returns the benchmark series key used to scale this holding's price history.
func (h Holding) SeriesKey() string {
	if h.BenchmarkKey != "" {
		return h.BenchmarkKey
	}
	return h.Category
}

// Active reports whether the holding takes part in analytics.
func (h Holding) Active() bool {
	return h.Quantity > 0
}

// Float returns a pointer to v. Convenience for optional fields.
func Float(v float64) *float64 {
	return &v
}
