package models

import "github.com/google/uuid"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Login        string     `json:"login" db:"login"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	GuestID      *uuid.UUID `json:"guest_id" db:"guest_id"`
}
