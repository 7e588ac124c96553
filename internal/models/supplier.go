package models

import "github.com/google/uuid"

type Supplier struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Address       *string   `json:"address" db:"address"`
	ContactPerson *string   `json:"contact_person" db:"contact_person"`
	Phone         *string   `json:"phone" db:"phone"`
	Email         *string   `json:"email" db:"email"`
}
