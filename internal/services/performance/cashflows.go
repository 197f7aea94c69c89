package performance

import (
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/models"
)

// BuildCashFlows converts ledger entries into signed cashflows.
// Purchases and transfers in are negative, redemptions and transfers out positive.
// Income moves no money for return purposes. The current value is appended as a terminal inflow at now
// when positive. invested is purchases less redemptions.
func BuildCashFlows(txs []models.Transaction, currentValue float64, now time.Time) (flows []models.CashFlow, invested float64) {
	for _, t := range txs {
		switch {
		case t.Type.IsPurchase():
			flows = append(flows, models.CashFlow{Date: t.Date, Amount: -t.Amount})
			invested += t.Amount
		case t.Type.IsRedemption():
			flows = append(flows, models.CashFlow{Date: t.Date, Amount: t.Amount})
			invested -= t.Amount
		}
	}

	if len(flows) > 0 && currentValue > 0 {
		flows = append(flows, models.CashFlow{Date: now, Amount: currentValue})
	}
	return flows, invested
}

// CalculateXIRR computes the XIRR result for a set of transactions valued at currentValue.
// Returns nil when there are no money-moving transactions or the solver does not converge.
func CalculateXIRR(txs []models.Transaction, currentValue float64, now time.Time, opts SolveOptions) *models.XIRRResult {
	flows, invested := BuildCashFlows(txs, currentValue, now)
	if len(flows) == 0 {
		return nil
	}

	rate, ok := Solve(flows, opts)
	if !ok {
		return nil
	}

	absolute := currentValue - invested
	result := &models.XIRRResult{
		Rate:           rate,
		RatePct:        common.Round2(rate * 100),
		Invested:       common.Round2(invested),
		CurrentValue:   common.Round2(currentValue),
		AbsoluteReturn: common.Round2(absolute),
		CashFlows:      len(flows),
	}
	if invested > 0 {
		pct := common.Round2(absolute / invested * 100)
		result.AbsoluteReturnPct = &pct
	}
	return result
}

// GroupByCode partitions transactions by instrument code.
func GroupByCode(txs []models.Transaction) map[string][]models.Transaction {
	out := make(map[string][]models.Transaction)
	for _, t := range txs {
		out[t.Code] = append(out[t.Code], t)
	}
	return out
}

// SchemePerformances computes the XIRR of each analysed holding from its own transactions.
// Holdings whose XIRR is unavailable keep a nil XIRR.
func SchemePerformances(holdings []models.HoldingAnalysis, txs []models.Transaction, now time.Time, opts SolveOptions) []models.SchemePerformance {
	byCode := GroupByCode(txs)
	out := make([]models.SchemePerformance, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, models.SchemePerformance{
			Code:     h.Code,
			Name:     h.Name,
			Category: h.Category,
			Value:    h.Value,
			XIRR:     CalculateXIRR(byCode[h.Code], h.Value, now, opts),
		})
	}
	return out
}
