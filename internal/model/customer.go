package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a buyer. No uniqueness constraint: two customers may share a
// name, a phone, or nothing at all beyond the required names.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LastName  string    `gorm:"not null"`
	FirstName string    `gorm:"not null"`
	Phone     *string
	Email     *string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// RESTRICT backs the service policy: a customer with recorded sales
	// cannot be deleted.
	Sales []Sale `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
}
