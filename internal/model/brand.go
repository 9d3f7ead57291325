package model

import (
	"time"

	"github.com/google/uuid"
)

// Brand groups the screen models of one manufacturer.
// Deleting a brand cascades to its items and their history. The cascade is
// executed explicitly by BrandService inside one transaction; the FK
// constraints below are the storage-level backstop.
type Brand struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []Item `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE"`
}
