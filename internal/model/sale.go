package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a customer transaction consuming stock. UnitPrice is copied from
// the item's sale price at transaction time and never re-derived, so later
// price edits do not rewrite revenue history. Every sale is created in the
// same transaction as exactly one withdrawal Movement of equal quantity.
type Sale struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time

	Item     *Item     `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Customer *Customer `gorm:"foreignKey:CustomerID"`
}
