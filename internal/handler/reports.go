package handler

import (
	"net/http"

	"github.com/anish435/Hotel-Inventory-management-system/internal/apierror"
	"github.com/anish435/Hotel-Inventory-management-system/internal/dto"
	"github.com/anish435/Hotel-Inventory-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) DailyLedger(c *gin.Context) {
	resp, err := h.svc.DailyLedger(c.Request.Context(), c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) EmailDailyLedger(c *gin.Context) {
	var req dto.EmailLedgerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EmailDailyLedger(c.Request.Context(), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}
