package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order, keyed by (order, dish). Repeated adds of
// the same dish merge into a single row by summing quantity. UnitPrice is the
// dish price snapshotted when the row was first inserted; later dish price
// edits do not touch it.
type OrderItem struct {
	OrderID   uuid.UUID       `json:"order_id" db:"order_id"`
	DishID    uuid.UUID       `json:"dish_id" db:"dish_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderItemRow is an item joined with its dish for display, including the
// extended line total.
type OrderItemRow struct {
	OrderID   uuid.UUID       `json:"order_id"`
	DishID    uuid.UUID       `json:"dish_id"`
	DishName  string          `json:"dish_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderItemRequest is the caller-facing shape for adding or changing a line.
type OrderItemRequest struct {
	DishID   uuid.UUID `json:"dish_id"`
	Quantity int       `json:"quantity"`
}
