package service

import "errors"

// Sentinel errors for expected business conditions. Handlers map these onto
// HTTP statuses with errors.Is; anything else is treated as a store failure
// and surfaced as "try again" — never silently swallowed.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrItemNotFound      = errors.New("item not found")
	ErrItemInUse         = errors.New("item is part of an open room order")
	ErrRoomNotFound      = errors.New("room not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrStaffNotFound     = errors.New("staff member not found")
)
