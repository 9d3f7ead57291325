package dto

import "github.com/google/uuid"

type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpdateBrandRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type BrandResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ItemCount int64     `json:"item_count"`
}
