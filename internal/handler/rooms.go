package handler

import (
	"net/http"
	"strconv"

	"github.com/anish435/Hotel-Inventory-management-system/internal/apierror"
	"github.com/anish435/Hotel-Inventory-management-system/internal/dto"
	"github.com/anish435/Hotel-Inventory-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type RoomsHandler struct{ svc service.LedgerService }

func NewRoomsHandler(svc service.LedgerService) *RoomsHandler {
	return &RoomsHandler{svc: svc}
}

func (h *RoomsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListRooms(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RoomsHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetRoom(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RoomsHandler) AddLine(c *gin.Context) {
	var req dto.AddLineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddLineToRoom(c.Request.Context(), c.Param("number"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RoomsHandler) RemoveLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid line index"))
		return
	}
	if err := h.svc.RemoveLineFromRoom(c.Request.Context(), c.Param("number"), index); err != nil {
		respondServiceError(c, err)
		return
	}
	resp, err := h.svc.GetRoom(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RoomsHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.svc.CheckoutRoom(c.Request.Context(), c.Param("number"), req.PaymentMode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if sale == nil {
		// Nothing consumed; checking out an empty room is a no-op.
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, sale)
}
