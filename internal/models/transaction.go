package models

import "time"

// TransactionType classifies ledger entries. Cashflow sign and unit direction derive from the type.
type TransactionType string

const (
	TxBuy          TransactionType = "BUY"
	TxSell         TransactionType = "SELL"
	TxRecurringBuy TransactionType = "RECURRING_BUY"
	TxTransferIn   TransactionType = "TRANSFER_IN"
	TxTransferOut  TransactionType = "TRANSFER_OUT"
	TxIncome       TransactionType = "INCOME"
	TxRedemption   TransactionType = "REDEMPTION"
)

// Transaction is a single ledger entry for an instrument.
type Transaction struct {
	Code   string          `json:"code" validate:"required"`
	Date   time.Time       `json:"date" validate:"required"`
	Type   TransactionType `json:"type" validate:"required,oneof=BUY SELL RECURRING_BUY TRANSFER_IN TRANSFER_OUT INCOME REDEMPTION"`
	Units  float64         `json:"units" validate:"gte=0"`
	Amount float64         `json:"amount" validate:"gte=0"`
	Price  *float64        `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// IsPurchase reports money leaving the investor (negative cashflow). A transfer in
// is booked at its amount like a buy.
func (t TransactionType) IsPurchase() bool {
	return t == TxBuy || t == TxRecurringBuy || t == TxTransferIn
}

// IsRedemption reports money returning to the investor (positive cashflow).
func (t TransactionType) IsRedemption() bool {
	return t == TxSell || t == TxRedemption || t == TxTransferOut
}

// UnitDelta returns the signed effect of the transaction on units held.
func (t Transaction) UnitDelta() float64 {
	switch t.Type {
	case TxBuy, TxRecurringBuy, TxTransferIn:
		return t.Units
	case TxSell, TxRedemption, TxTransferOut:
		return -t.Units
	default:
		return 0
	}
}

// CashFlow is a dated signed amount. Purchases are negative, redemptions and valuations positive.
type CashFlow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}
