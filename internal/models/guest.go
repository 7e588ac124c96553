package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Guest carries denormalized loyalty counters (TotalOrders, TotalDiscount)
// that are bumped when an order is paid.
type Guest struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	LastName      string          `json:"last_name" db:"last_name"`
	FirstName     string          `json:"first_name" db:"first_name"`
	MiddleName    *string         `json:"middle_name" db:"middle_name"`
	BirthDate     *time.Time      `json:"birth_date" db:"birth_date"`
	TotalOrders   int             `json:"total_orders" db:"total_orders"`
	TotalDiscount decimal.Decimal `json:"total_discount" db:"total_discount"`
}
