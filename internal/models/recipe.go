package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecipeLine says how much of one product a single serving of a dish uses.
type RecipeLine struct {
	DishID    uuid.UUID       `json:"dish_id" db:"dish_id"`
	ProductID uuid.UUID       `json:"product_id" db:"product_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
}

// ProductRequirement is the aggregated amount of one product an entire order
// needs, summed over its items' recipes.
type ProductRequirement struct {
	ProductID uuid.UUID       `json:"product_id"`
	Amount    decimal.Decimal `json:"amount"`
}
