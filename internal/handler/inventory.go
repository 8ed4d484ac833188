package handler

import (
	"net/http"

	"github.com/anish435/Hotel-Inventory-management-system/internal/apierror"
	"github.com/anish435/Hotel-Inventory-management-system/internal/dto"
	"github.com/anish435/Hotel-Inventory-management-system/internal/middleware"
	"github.com/anish435/Hotel-Inventory-management-system/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct{ svc service.LedgerService }

func NewInventoryHandler(svc service.LedgerService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) List(c *gin.Context) {
	resp, err := h.svc.ListInventory(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddInventoryItem(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	if err := h.svc.RemoveInventoryItem(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.RestockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Restock(c.Request.Context(), id, req.Delta); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) SetPrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	var req dto.SetPriceRequest
	if !bindAndValidate(c, &req) {
		return
	}

	// Attribute the price change to the authenticated user when possible.
	var changedBy *uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		if uid, err := uuid.Parse(claims.UserID); err == nil {
			changedBy = &uid
		}
	}

	if err := h.svc.SetPrice(c.Request.Context(), id, req.UnitPrice, changedBy); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) PriceHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.PriceHistory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
