package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking reserves a table for a half-open time window [BookingStart,
// BookingEnd) on BookingDate. Times are clock times in "HH:MM" form; the
// half-open convention lets back-to-back bookings share a boundary minute.
type Booking struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TableID      uuid.UUID `json:"table_id" db:"table_id"`
	GuestID      uuid.UUID `json:"guest_id" db:"guest_id"`
	BookingDate  time.Time `json:"booking_date" db:"booking_date"`
	GuestsCount  int       `json:"guests_count" db:"guests_count"`
	BookingStart string    `json:"booking_start" db:"booking_start"`
	BookingEnd   string    `json:"booking_end" db:"booking_end"`
}
