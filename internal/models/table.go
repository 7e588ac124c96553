package models

import "github.com/google/uuid"

const (
	TableStatusFree     = "free"
	TableStatusOccupied = "occupied"
	TableStatusReserved = "reserved"
)

type Table struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TableNumber int       `json:"table_number" db:"table_number"`
	Seats       int       `json:"seats" db:"seats"`
	Status      string    `json:"status" db:"status"`
}
