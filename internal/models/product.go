package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a raw stock item. Quantity is the on-hand amount and may only be
// changed through restock and order consumption; it never goes below zero.
type Product struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	Name       string           `json:"name" db:"name"`
	Weight     *decimal.Decimal `json:"weight" db:"weight"`
	ExpiryDate *time.Time       `json:"expiry_date" db:"expiry_date"`
	Quantity   decimal.Decimal  `json:"quantity" db:"quantity"`
	Category   *string          `json:"category" db:"category"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at" db:"updated_at"`
}
