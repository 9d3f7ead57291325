package handler

import (
	"net/http"

	"screenstock/internal/apierror"
	"screenstock/internal/dto"
	"screenstock/internal/infra"
	"screenstock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesHandler exposes sale creation (delegated to the ledger), queries, and
// the invoice PDF.
type SalesHandler struct {
	ledger         service.LedgerService
	sales          service.SaleService
	pdfStoragePath string
}

func NewSalesHandler(ledger service.LedgerService, sales service.SaleService, pdfStoragePath string) *SalesHandler {
	return &SalesHandler{ledger: ledger, sales: sales, pdfStoragePath: pdfStoragePath}
}

func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledger.Sell(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.sales.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.sales.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Invoice generates (or regenerates) the sale's PDF invoice and streams it.
func (h *SalesHandler) Invoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	sale, err := h.sales.FindForInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	path, err := infra.GenerateInvoicePDF(sale, h.pdfStoragePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "invoice_"+id.String()+".pdf")
}
