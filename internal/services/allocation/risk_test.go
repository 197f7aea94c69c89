package allocation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/models"
)

func TestDetectTopHoldingsRisk(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		severity models.RiskLevel
		hasRisk  bool
	}{
		{"single holding above 40", []float64{45, 20, 20, 15}, models.RiskLevelHigh, true},
		{"single holding above 25", []float64{30, 25, 25, 20}, models.RiskLevelModerate, true},
		{"top three above 50", []float64{20, 20, 20, 20, 20}, models.RiskLevelModerate, true},
		{"leading holding above 25 of three", []float64{34, 33, 33}, models.RiskLevelModerate, true},
		{"healthy", []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}, models.RiskLevelNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var holdings []models.Holding
			for i, v := range tt.values {
				holdings = append(holdings, valued(fmt.Sprintf("H%d", i), models.AssetTypeFund, "Large Cap", v))
			}
			res := DetectTopHoldingsRisk(HoldingWeights(Analyze(holdings)))
			assert.Equal(t, tt.hasRisk, res.HasRisk)
			assert.Equal(t, tt.severity, res.Severity)
			assert.NotEmpty(t, res.Explanation)
		})
	}
}

func TestDetectTopHoldingsRisk_Empty(t *testing.T) {
	res := DetectTopHoldingsRisk(nil)
	assert.False(t, res.HasRisk)
	assert.Equal(t, models.RiskLevelNone, res.Severity)
}

func TestDetectOverDiversification(t *testing.T) {
	values := []float64{30, 20}
	for i := 0; i < 16; i++ {
		values = append(values, 50.0/16)
	}
	var holdings []models.Holding
	for i, v := range values {
		holdings = append(holdings, valued(fmt.Sprintf("H%02d", i), models.AssetTypeFund, "Large Cap", v))
	}

	res := DetectOverDiversification(HoldingWeights(Analyze(holdings)))

	assert.True(t, res.IsOverDiversified)
	assert.Equal(t, 18, res.TotalHoldings)
	assert.Equal(t, 16, res.SmallHoldings)

	few := DetectOverDiversification(HoldingWeights(Analyze(equalFunds(5, 100))))
	assert.False(t, few.IsOverDiversified)
	assert.Equal(t, 0, few.SmallHoldings)
}

func TestRiskReturnMatrix_Quadrants(t *testing.T) {
	a := Analyze([]models.Holding{
		valued("LC", models.AssetTypeFund, "Large Cap", 400),
		valued("SC", models.AssetTypeFund, "Small Cap", 300),
		valued("DB", models.AssetTypeFund, "Debt", 200),
		valued("EQ", models.AssetTypeEquity, "Banking", 100),
	})
	schemes := []models.SchemePerformance{
		{Code: "LC", XIRR: &models.XIRRResult{RatePct: 14}},
		{Code: "SC", XIRR: &models.XIRRResult{RatePct: 25}},
		{Code: "DB", XIRR: &models.XIRRResult{RatePct: 7}},
	}
	vol := VolatilityAssumptions{ByCategory: map[string]float64{"Large Cap": 15, "Small Cap": 28, "Debt": 5, "EQUITY": 20}, Default: 15}

	m := RiskReturnMatrix(a, schemes, vol)

	require.Len(t, m, 4)
	assert.Equal(t, models.QuadrantHighReturnLowRisk, m[0].Quadrant, "15 is not above the risk threshold")
	assert.Equal(t, models.QuadrantHighReturnHighRisk, m[1].Quadrant)
	assert.Equal(t, models.QuadrantLowReturnLowRisk, m[2].Quadrant)
	assert.Equal(t, models.QuadrantLowReturnHighRisk, m[3].Quadrant)
	assert.Nil(t, m[3].Return, "no XIRR for direct equity")
	assert.Equal(t, 20.0, m[3].Risk, "equity bucket used for uncategorised equity")
	assert.Equal(t, 40.0, m[0].Weight)
}
