package dto

// ─── Stock mutation requests ─────────────────────────────────────────────────

type RestockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type AdjustStockRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}

// ─── Movement history ────────────────────────────────────────────────────────

// MovementFilter is bound from the query string of GET /v1/stock/movements.
type MovementFilter struct {
	ItemID string `form:"item_id" validate:"omitempty,uuid"`
	Kind   string `form:"kind"    validate:"omitempty,oneof=restock withdrawal"`
	Page   int    `form:"page,default=1"    validate:"min=1"`
	Limit  int    `form:"limit,default=50"  validate:"min=1,max=500"`
}

type MovementResponse struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Quantity  int     `json:"quantity"`
	ItemID    string  `json:"item_id"`
	ItemName  string  `json:"item_name,omitempty"`
	SaleID    *string `json:"sale_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type MovementListResponse struct {
	Data  []MovementResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// AdjustResponse reports the adjustment outcome. Movement is nil when the
// requested quantity equalled the current one and nothing was recorded.
type AdjustResponse struct {
	Item     ItemResponse      `json:"item"`
	Movement *MovementResponse `json:"movement"`
}

type RestockResponse struct {
	Item     ItemResponse     `json:"item"`
	Movement MovementResponse `json:"movement"`
}
