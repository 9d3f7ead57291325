package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateItemRequest struct {
	Barcode       string          `json:"barcode"         validate:"required,min=4,max=100"`
	Name          string          `json:"name"            validate:"required,min=2,max=120"`
	PurchasePrice decimal.Decimal `json:"purchase_price"  validate:"min=0"`
	SalePrice     decimal.Decimal `json:"sale_price"      validate:"min=0"`
	// Quantity is the initial stock; when positive an initial restock
	// movement is recorded in the same transaction as the item.
	Quantity       int    `json:"quantity"        validate:"min=0"`
	AlertThreshold *int   `json:"alert_threshold" validate:"omitempty,min=0"`
	BrandID        string `json:"brand_id"        validate:"required,uuid"`
}

type UpdateItemRequest struct {
	Barcode        *string          `json:"barcode"         validate:"omitempty,min=4,max=100"`
	Name           *string          `json:"name"            validate:"omitempty,min=2,max=120"`
	PurchasePrice  *decimal.Decimal `json:"purchase_price"  validate:"omitempty,min=0"`
	SalePrice      *decimal.Decimal `json:"sale_price"      validate:"omitempty,min=0"`
	AlertThreshold *int             `json:"alert_threshold" validate:"omitempty,min=0"`
	BrandID        *string          `json:"brand_id"        validate:"omitempty,uuid"`
	// Quantity, when present, is applied as a ledger adjustment: the diff
	// against the current quantity produces a movement record.
	Quantity *int `json:"quantity" validate:"omitempty,min=0"`
}

// ─── Filter / Search ─────────────────────────────────────────────────────────

type ItemFilter struct {
	BrandID string `form:"brand_id"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ItemSearchQuery is bound from GET /v1/items/search. Criterion selects the
// field to match: name (substring), barcode (substring), quantity (exact).
type ItemSearchQuery struct {
	Term      string `form:"term"      validate:"required"`
	Criterion string `form:"criterion,default=name" validate:"oneof=name barcode quantity"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemResponse struct {
	ID             string          `json:"id"`
	Barcode        string          `json:"barcode"`
	Name           string          `json:"name"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	QuantityOnHand int             `json:"quantity_on_hand"`
	AlertThreshold int             `json:"alert_threshold"`
	BrandID        string          `json:"brand_id"`
	BrandName      string          `json:"brand_name,omitempty"`
}

type ItemListResponse struct {
	Data  []ItemResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// BarcodeLookupResponse is returned by the public price-check endpoint.
type BarcodeLookupResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Available int             `json:"available"`
}
