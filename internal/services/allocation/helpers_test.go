package allocation

import (
	"fmt"

	"github.com/bobmcallan/folio/internal/models"
)

func valued(code string, typ models.AssetType, category string, value float64) models.Holding {
	return models.Holding{
		Code:          code,
		Name:          code,
		Type:          typ,
		Category:      category,
		Quantity:      1,
		LastValuation: models.Float(value),
	}
}

func equalFunds(n int, value float64) []models.Holding {
	out := make([]models.Holding, n)
	for i := range out {
		out[i] = valued(fmt.Sprintf("F%02d", i), models.AssetTypeFund, fmt.Sprintf("Cat%02d", i), value)
	}
	return out
}
