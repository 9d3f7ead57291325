package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a stocked screen variant, identified by a unique barcode.
// QuantityOnHand is only ever mutated through LedgerService so that it stays
// equal to the signed sum of the item's movements and never goes negative.
type Item struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Barcode        string          `gorm:"uniqueIndex;not null"`
	Name           string          `gorm:"index;not null"`
	PurchasePrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SalePrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	QuantityOnHand int             `gorm:"not null;default:0"`
	AlertThreshold int             `gorm:"not null;default:5"`
	BrandID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Brand *Brand `gorm:"foreignKey:BrandID"`
}
