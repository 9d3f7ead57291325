package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement kinds. Every quantity-on-hand change is one of the two.
const (
	MovementRestock    = "restock"
	MovementWithdrawal = "withdrawal"
)

// Movement is an append-only record of one quantity-on-hand change.
// Quantity is always positive; Kind carries the sign. SaleID is set on the
// withdrawal that a sale creates, nil for manual restocks and adjustments.
// Movements are never updated or deleted individually; they only disappear
// when their item is deleted (history belongs to the item).
type Movement struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind      string     `gorm:"type:varchar(20);not null"`
	Quantity  int        `gorm:"not null"`
	ItemID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SaleID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	Item *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}
