package repositories

import (
	"context"
	"errors"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDate(ctx context.Context, date time.Time) ([]*models.Booking, error)
	FindOverlapping(ctx context.Context, tableID uuid.UUID, date time.Time, start, end string, excludeID *uuid.UUID) (*models.Booking, error)
}

type bookingRepo struct {
	db DBTX
}

func NewBookingRepo(db DBTX) BookingRepository {
	return &bookingRepo{db: db}
}

// Clock times travel as "HH:MM" strings and are cast at the SQL boundary;
// to_char brings them back in the same form.
const bookingColumns = `id, table_id, guest_id, booking_date, guests_count,
	to_char(booking_start, 'HH24:MI'), to_char(booking_end, 'HH24:MI')`

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, table_id, guest_id, booking_date, guests_count, booking_start, booking_end)
		VALUES ($1, $2, $3, $4, $5, $6::time, $7::time)
	`
	_, err := r.db.Exec(ctx, query, booking.ID, booking.TableID, booking.GuestID,
		booking.BookingDate, booking.GuestsCount, booking.BookingStart, booking.BookingEnd)
	return err
}

func (r *bookingRepo) scanBooking(row interface{ Scan(dest ...any) error }) (*models.Booking, error) {
	booking := &models.Booking{}
	err := row.Scan(&booking.ID, &booking.TableID, &booking.GuestID, &booking.BookingDate,
		&booking.GuestsCount, &booking.BookingStart, &booking.BookingEnd)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.db.QueryRow(ctx, query, id))
}

func (r *bookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET table_id = $2, guest_id = $3, booking_date = $4, guests_count = $5,
		    booking_start = $6::time, booking_end = $7::time
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, booking.ID, booking.TableID, booking.GuestID,
		booking.BookingDate, booking.GuestsCount, booking.BookingStart, booking.BookingEnd)
	return err
}

func (r *bookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *bookingRepo) ListByDate(ctx context.Context, date time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_date = $1 ORDER BY booking_start`
	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// FindOverlapping returns one booking on the same table and date whose
// half-open window [start, end) intersects the given one, or nil if none.
// Two windows overlap iff a.start < b.end AND b.start < a.end, so bookings
// that merely touch at a boundary do not conflict. excludeID skips the
// booking currently being edited.
func (r *bookingRepo) FindOverlapping(ctx context.Context, tableID uuid.UUID, date time.Time, start, end string, excludeID *uuid.UUID) (*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE table_id = $1 AND booking_date = $2
		  AND booking_start < $4::time AND $3::time < booking_end
		  AND ($5::uuid IS NULL OR id <> $5)
		LIMIT 1
	`
	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, tableID, date, start, end, excludeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return booking, nil
}
