package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateItemRequest struct {
	Name      string          `json:"name"       validate:"required"`
	Volume    string          `json:"volume"     validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required,gt=0"`
	Stock     int             `json:"stock"      validate:"min=0"`
}

// RestockRequest adjusts stock by a signed delta: positive for a delivery,
// negative for a manual correction. Adjustments that would take stock below
// zero are rejected.
type RestockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type SetPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Volume    string          `json:"volume"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
}

type PriceChangeResponse struct {
	ItemID      string          `json:"item_id"`
	PriceBefore decimal.Decimal `json:"price_before"`
	PriceAfter  decimal.Decimal `json:"price_after"`
	ChangedBy   *string         `json:"changed_by,omitempty"`
	CreatedAt   string          `json:"created_at"`
}
