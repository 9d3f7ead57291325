package handler

import (
	"net/http"

	"screenstock/internal/apierror"
	"screenstock/internal/dto"
	"screenstock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler exposes the stock mutation and history endpoints.
type LedgerHandler struct{ svc service.LedgerService }

func NewLedgerHandler(svc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

func (h *LedgerHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.RestockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Restock(c.Request.Context(), id, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LedgerHandler) Adjust(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Adjust(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LedgerHandler) Movements(c *gin.Context) {
	var filter dto.MovementFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LedgerHandler) Alerts(c *gin.Context) {
	resp, err := h.svc.ListLowStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
