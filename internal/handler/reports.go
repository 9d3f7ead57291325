package handler

import (
	"errors"
	"net/http"
	"strconv"

	"screenstock/internal/apierror"
	"screenstock/internal/dto"
	"screenstock/internal/infra"
	"screenstock/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) RevenueMonthly(c *gin.Context) {
	resp, err := h.svc.RevenueByMonth(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) SalesByBrand(c *gin.Context) {
	resp, err := h.svc.QuantityByBrand(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Forecast extrapolates monthly revenue. With fewer than two month buckets
// on record the response says so explicitly instead of fitting a degenerate
// line.
func (h *ReportsHandler) Forecast(c *gin.Context) {
	months, err := strconv.Atoi(c.DefaultQuery("months", "3"))
	if err != nil || months < 1 || months > 24 {
		c.JSON(http.StatusBadRequest, apierror.New("months must be an integer between 1 and 24"))
		return
	}
	resp, err := h.svc.Forecast(c.Request.Context(), months)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientData) {
			c.JSON(http.StatusOK, &dto.ForecastResponse{
				InsufficientData: true,
				Points:           []dto.MonthBucket{},
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) RevenueChart(c *gin.Context) {
	buckets, err := h.svc.RevenueByMonth(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(buckets) == 0 {
		c.JSON(http.StatusNotFound, apierror.New("no sales recorded yet"))
		return
	}
	png, err := infra.RenderRevenueChart(buckets)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *ReportsHandler) BrandChart(c *gin.Context) {
	rows, err := h.svc.QuantityByBrand(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, apierror.New("no sales recorded yet"))
		return
	}
	png, err := infra.RenderBrandChart(rows)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
