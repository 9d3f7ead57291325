package dto

import "github.com/shopspring/decimal"

type CreateSaleRequest struct {
	ItemID     string `json:"item_id"     validate:"required,uuid"`
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"    validate:"required,min=1"`
}

type SaleFilter struct {
	ItemID     string `form:"item_id"     validate:"omitempty,uuid"`
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleResponse struct {
	ID           string          `json:"id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	ItemID       string          `json:"item_id"`
	ItemName     string          `json:"item_name,omitempty"`
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	MovementID   string          `json:"movement_id,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
