package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. Line items may only be mutated while the order is in
// StatusCreated; consumption moves it to StatusConsumed exactly once.
const (
	OrderStatusCreated   = "created"
	OrderStatusConsumed  = "consumed"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	GuestID     uuid.UUID       `json:"guest_id" db:"guest_id"`
	TableID     *uuid.UUID      `json:"table_id" db:"table_id"`
	WaiterID    *uuid.UUID      `json:"waiter_id" db:"waiter_id"`
	BookingID   *uuid.UUID      `json:"booking_id" db:"booking_id"`
	OrderTime   time.Time       `json:"order_time" db:"order_time"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderSearchRow is one result of the order search by guest/dish name.
type OrderSearchRow struct {
	OrderID     uuid.UUID       `json:"order_id"`
	GuestName   string          `json:"guest_name"`
	OrderTime   time.Time       `json:"order_time"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
