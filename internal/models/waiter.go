package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Waiter struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	LastName   string           `json:"last_name" db:"last_name"`
	FirstName  string           `json:"first_name" db:"first_name"`
	MiddleName *string          `json:"middle_name" db:"middle_name"`
	Salary     *decimal.Decimal `json:"salary" db:"salary"`
}
