package allocation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

func flagIDs(flags []models.AdvisoryFlag) []string {
	ids := make([]string, len(flags))
	for i, f := range flags {
		ids[i] = f.ID
	}
	return ids
}

func general() models.IdealAllocation {
	_, p := common.NewDefaultConfig().Analytics.ResolvePersona("General")
	return IdealFromPersona(p)
}

func TestAlignmentScore(t *testing.T) {
	ideal := models.AllocationSplit{EquityPct: 35, OtherPct: 65}

	assert.Equal(t, 100.0, AlignmentScore(ideal, ideal))
	assert.Equal(t, 80.0, AlignmentScore(models.AllocationSplit{EquityPct: 55, OtherPct: 45}, ideal))
	assert.Equal(t, 35.0, AlignmentScore(models.AllocationSplit{EquityPct: 100, OtherPct: 0}, ideal))
	assert.Equal(t, 0.0, AlignmentScore(models.AllocationSplit{EquityPct: 100, OtherPct: 0}, models.AllocationSplit{EquityPct: 0, OtherPct: 100}))
}

func TestActualAllocation(t *testing.T) {
	a := Analyze([]models.Holding{
		valued("E", models.AssetTypeEquity, "Banking", 300),
		valued("F", models.AssetTypeFund, "Debt", 700),
	})

	actual := ActualAllocation(a)

	assert.Equal(t, 30.0, actual.EquityPct)
	assert.Equal(t, 70.0, actual.OtherPct)
	assert.Equal(t, 1000.0, actual.TotalValue)
}

func TestAlign_EquityHeavyPortfolio(t *testing.T) {
	var holdings []models.Holding
	for i := 0; i < 6; i++ {
		holdings = append(holdings, valued(fmt.Sprintf("E%d", i), models.AssetTypeEquity, "Large Cap", 100))
	}
	holdings = append(holdings, valued("F", models.AssetTypeFund, "Debt", 60))
	a := Analyze(holdings)

	res := Align(ActualAllocation(a), "General", general(), a.Holdings, DefaultAlignmentRules())

	ids := flagIDs(res.Flags)
	assert.Contains(t, ids, models.FlagEquityOverweight)
	assert.Contains(t, ids, models.FlagOtherUnderweight)
	assert.Contains(t, ids, models.FlagLowDiversification, "equity above 90%")
	assert.NotContains(t, ids, models.FlagWellAligned)
	assert.Less(t, res.Score, 50.0)
	assert.Contains(t, res.Summary, "Low alignment")
	for i := 1; i < len(res.Flags); i++ {
		assert.LessOrEqual(t, res.Flags[i-1].Priority, res.Flags[i].Priority)
	}
}

func TestAlign_WellAligned(t *testing.T) {
	holdings := []models.Holding{
		valued("E1", models.AssetTypeEquity, "Large Cap", 18),
		valued("E2", models.AssetTypeEquity, "Mid Cap", 18),
		valued("F1", models.AssetTypeFund, "Debt", 22),
		valued("F2", models.AssetTypeFund, "Hybrid", 21),
		valued("F3", models.AssetTypeFund, "Debt", 21),
	}
	a := Analyze(holdings)

	res := Align(ActualAllocation(a), "General", general(), a.Holdings, DefaultAlignmentRules())

	assert.Equal(t, []string{models.FlagWellAligned}, flagIDs(res.Flags))
	assert.Equal(t, models.FlagInfo, res.Flags[0].Type)
	assert.Equal(t, 99.0, res.Score)
	assert.Contains(t, res.Summary, "Excellent alignment")
	assert.Equal(t, 1.0, res.Deviation.EquityPct)
}

func TestAlign_EmptyPortfolio(t *testing.T) {
	a := Analyze(nil)

	res := Align(ActualAllocation(a), "General", general(), a.Holdings, DefaultAlignmentRules())

	require.Len(t, res.Flags, 2)
	assert.Equal(t, models.FlagOtherUnderweight, res.Flags[0].ID)
	assert.Equal(t, models.FlagEmptyPortfolio, res.Flags[1].ID)
	assert.Equal(t, 3, res.Flags[1].Priority)
}

func TestAdvisoryFlags_Concentration(t *testing.T) {
	rules := DefaultAlignmentRules()

	single := Analyze([]models.Holding{
		valued("BIG", models.AssetTypeFund, "Debt", 45),
		valued("E1", models.AssetTypeEquity, "Large Cap", 35),
		valued("F1", models.AssetTypeFund, "Debt", 20),
	})
	flags := AdvisoryFlags(ActualAllocation(single), models.AllocationSplit{EquityPct: 35, OtherPct: 65}, "General", single.Holdings, rules)
	require.NotEmpty(t, flags)
	assert.Equal(t, models.FlagHighConcentration, flags[0].ID)
	assert.Equal(t, models.FlagWarning, flags[0].Type)

	top3 := Analyze([]models.Holding{
		valued("A", models.AssetTypeFund, "Debt", 25),
		valued("B", models.AssetTypeEquity, "Large Cap", 25),
		valued("C", models.AssetTypeFund, "Hybrid", 25),
		valued("D", models.AssetTypeEquity, "Mid Cap", 13),
		valued("E", models.AssetTypeFund, "Debt", 12),
	})
	flags = AdvisoryFlags(ActualAllocation(top3), models.AllocationSplit{EquityPct: 35, OtherPct: 65}, "General", top3.Holdings, rules)
	var found *models.AdvisoryFlag
	for i := range flags {
		if flags[i].ID == models.FlagHighConcentration {
			found = &flags[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, models.FlagSuggestion, found.Type)
	assert.Equal(t, 2, found.Priority)
}

func TestAdvisoryFlags_FewHoldingsAndUnderweight(t *testing.T) {
	a := Analyze([]models.Holding{
		valued("F1", models.AssetTypeFund, "Debt", 85),
		valued("E1", models.AssetTypeEquity, "Large Cap", 15),
	})

	flags := AdvisoryFlags(ActualAllocation(a), models.AllocationSplit{EquityPct: 70, OtherPct: 30}, "Aggressive", a.Holdings, DefaultAlignmentRules())

	ids := flagIDs(flags)
	assert.Contains(t, ids, models.FlagLowDiversification)
	assert.Contains(t, ids, models.FlagEquityUnderweight)
	assert.Contains(t, ids, models.FlagHighConcentration)
}

func TestAlignmentSummary_Bands(t *testing.T) {
	assert.Contains(t, AlignmentSummary(90, "Moderate"), "Excellent")
	assert.Contains(t, AlignmentSummary(70, "Moderate"), "Good")
	assert.Contains(t, AlignmentSummary(50, "Moderate"), "Moderate alignment")
	assert.Contains(t, AlignmentSummary(49.9, "Moderate"), "Low")
}
