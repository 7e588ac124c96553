package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Dish struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Category        *string         `json:"category" db:"category"`
	Price           decimal.Decimal `json:"price" db:"price"`
	CountryOfOrigin *string         `json:"country_of_origin" db:"country_of_origin"`
	PhotoObject     *string         `json:"photo_object,omitempty" db:"photo_object"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}
