package dto

import "github.com/shopspring/decimal"

// DailyLedgerResponse aggregates one local calendar day of sales.
type DailyLedgerResponse struct {
	Date       string          `json:"date"` // YYYY-MM-DD
	CashTotal  decimal.Decimal `json:"cash_total"`
	UpiTotal   decimal.Decimal `json:"upi_total"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	SalesCount int64           `json:"sales_count"`
}

// EmailLedgerRequest asks for the daily ledger summary to be mailed.
// Empty fields fall back to today / the configured recipient.
type EmailLedgerRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to"   validate:"omitempty,email"`
}
