package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AddLineRequest is the body of POST /v1/rooms/:number/lines.
// StaffID is optional: when present the line is attributed to that runner and
// merges only with lines served by the same person.
type AddLineRequest struct {
	ItemID   string  `json:"item_id"  validate:"required,uuid"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	StaffID  *string `json:"staff_id" validate:"omitempty,uuid"`
}

// CheckoutRequest is the body of POST /v1/rooms/:number/checkout.
type CheckoutRequest struct {
	PaymentMode string `json:"payment_mode" validate:"required,oneof=cash upi"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineResponse struct {
	ItemID      string          `json:"item_id"`
	DisplayName string          `json:"display_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	StaffID     *string         `json:"staff_id,omitempty"`
	StaffName   *string         `json:"staff_name,omitempty"`
}

type RoomResponse struct {
	Number    string          `json:"number"`
	Status    string          `json:"status"`
	Lines     []LineResponse  `json:"lines"`
	OpenTotal decimal.Decimal `json:"open_total"`
}
