package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date  string `form:"date"`              // YYYY-MM-DD; empty = all days
	Kind  string `form:"kind,default=all"`  // room | walkIn | all
	Page  int    `form:"page,default=1"     validate:"min=1"`
	Limit int    `form:"limit,default=50"   validate:"min=1,max=200"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// WalkInLineRequest is one cart entry of a walk-in sale. The same item may
// appear on multiple entries (e.g. split between runners); availability is
// validated against the summed quantity.
type WalkInLineRequest struct {
	ItemID   string  `json:"item_id"  validate:"required,uuid"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	StaffID  *string `json:"staff_id" validate:"omitempty,uuid"`
}

type WalkInSaleRequest struct {
	Lines       []WalkInLineRequest `json:"lines"        validate:"required,min=1,dive"`
	PaymentMode string              `json:"payment_mode" validate:"required,oneof=cash upi"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	RoomNumber  *string         `json:"room_number,omitempty"`
	Lines       []LineResponse  `json:"lines"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaymentMode string          `json:"payment_mode"`
	CreatedAt   string          `json:"created_at"`
}
