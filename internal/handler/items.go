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

type ItemsHandler struct{ svc service.ItemService }

func NewItemsHandler(svc service.ItemService) *ItemsHandler {
	return &ItemsHandler{svc: svc}
}

func (h *ItemsHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ItemsHandler) List(c *gin.Context) {
	var filter dto.ItemFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Search(c *gin.Context) {
	var q dto.ItemSearchQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LookupBarcode is the public price-check endpoint: no auth, cached.
func (h *ItemsHandler) LookupBarcode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, apierror.New("missing barcode"))
		return
	}
	resp, err := h.svc.GetByBarcode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BarcodePNG renders the item's Code 128 barcode as a PNG label.
func (h *ItemsHandler) BarcodePNG(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	item, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	png, err := infra.RenderBarcodePNG(item.Barcode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *ItemsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
