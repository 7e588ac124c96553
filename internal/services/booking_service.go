package services

import (
	"context"
	"fmt"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

type BookingServiceInterface interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDate(ctx context.Context, date time.Time) ([]*models.Booking, error)
	FindFreeTables(ctx context.Context, date time.Time, start, end string, minSeats int) ([]*models.Table, error)
}

type bookingService struct {
	db repositories.TxStarter
}

func NewBookingService(db repositories.TxStarter) BookingServiceInterface {
	return &bookingService{db: db}
}

// validateWindow checks the HH:MM pair forms a non-empty window within one
// day. Equal endpoints are an empty window and rejected.
func validateWindow(start, end string) error {
	if err := common.ValidateClockTime(start, "booking_start"); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidArgument, err)
	}
	if err := common.ValidateClockTime(end, "booking_end"); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidArgument, err)
	}
	if start >= end {
		return fmt.Errorf("%w: booking_start must be before booking_end", common.ErrInvalidArgument)
	}
	return nil
}

func (s *bookingService) validateBooking(booking *models.Booking) error {
	if booking.TableID == uuid.Nil {
		return fmt.Errorf("%w: table is required", common.ErrInvalidArgument)
	}
	if booking.GuestID == uuid.Nil {
		return fmt.Errorf("%w: guest is required", common.ErrInvalidArgument)
	}
	if booking.GuestsCount <= 0 {
		return fmt.Errorf("%w: guests_count must be positive", common.ErrInvalidArgument)
	}
	if booking.BookingDate.IsZero() {
		return fmt.Errorf("%w: booking_date is required", common.ErrInvalidArgument)
	}
	return s.validateWindowFor(booking)
}

func (s *bookingService) validateWindowFor(booking *models.Booking) error {
	return validateWindow(booking.BookingStart, booking.BookingEnd)
}

// Create reserves a table for a half-open window. The overlap probe and the
// insert run in one transaction; the bookings exclusion constraint catches
// the race where two probes pass concurrently, surfacing as ErrConflict.
func (s *bookingService) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := s.validateBooking(booking); err != nil {
		return nil, err
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.ClassifyDBError("begin create booking", err)
	}
	defer tx.Rollback(ctx)

	table, err := repositories.NewTableRepo(tx).GetByID(ctx, booking.TableID)
	if err != nil {
		return nil, common.ClassifyDBError("lookup table", err)
	}
	if booking.GuestsCount > table.Seats {
		return nil, fmt.Errorf("%w: table %d seats %d, booking is for %d guests",
			common.ErrInvalidArgument, table.TableNumber, table.Seats, booking.GuestsCount)
	}
	if _, err := repositories.NewGuestRepo(tx).GetByID(ctx, booking.GuestID); err != nil {
		return nil, common.ClassifyDBError("lookup guest", err)
	}

	bookings := repositories.NewBookingRepo(tx)
	clash, err := bookings.FindOverlapping(ctx, booking.TableID, booking.BookingDate,
		booking.BookingStart, booking.BookingEnd, nil)
	if err != nil {
		return nil, common.ClassifyDBError("check booking overlap", err)
	}
	if clash != nil {
		return nil, fmt.Errorf("%w: table already booked %s-%s",
			common.ErrConflict, clash.BookingStart, clash.BookingEnd)
	}

	if err := bookings.Create(ctx, booking); err != nil {
		return nil, common.ClassifyDBError("create booking", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.ClassifyDBError("commit create booking", err)
	}
	return booking, nil
}

// Update rewrites a booking, re-running the overlap probe against every
// booking except the one being edited.
func (s *bookingService) Update(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := s.validateBooking(booking); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.ClassifyDBError("begin update booking", err)
	}
	defer tx.Rollback(ctx)

	bookings := repositories.NewBookingRepo(tx)
	if _, err := bookings.GetByID(ctx, booking.ID); err != nil {
		return nil, common.ClassifyDBError("get booking", err)
	}

	table, err := repositories.NewTableRepo(tx).GetByID(ctx, booking.TableID)
	if err != nil {
		return nil, common.ClassifyDBError("lookup table", err)
	}
	if booking.GuestsCount > table.Seats {
		return nil, fmt.Errorf("%w: table %d seats %d, booking is for %d guests",
			common.ErrInvalidArgument, table.TableNumber, table.Seats, booking.GuestsCount)
	}

	clash, err := bookings.FindOverlapping(ctx, booking.TableID, booking.BookingDate,
		booking.BookingStart, booking.BookingEnd, &booking.ID)
	if err != nil {
		return nil, common.ClassifyDBError("check booking overlap", err)
	}
	if clash != nil {
		return nil, fmt.Errorf("%w: table already booked %s-%s",
			common.ErrConflict, clash.BookingStart, clash.BookingEnd)
	}

	if err := bookings.Update(ctx, booking); err != nil {
		return nil, common.ClassifyDBError("update booking", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.ClassifyDBError("commit update booking", err)
	}
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := repositories.NewBookingRepo(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, common.ClassifyDBError("get booking", err)
	}
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id uuid.UUID) error {
	bookings := repositories.NewBookingRepo(s.db)
	if _, err := bookings.GetByID(ctx, id); err != nil {
		return common.ClassifyDBError("get booking", err)
	}
	if err := bookings.Delete(ctx, id); err != nil {
		return common.ClassifyDBError("delete booking", err)
	}
	return nil
}

func (s *bookingService) ListByDate(ctx context.Context, date time.Time) ([]*models.Booking, error) {
	bookings, err := repositories.NewBookingRepo(s.db).ListByDate(ctx, date)
	if err != nil {
		return nil, common.ClassifyDBError("list bookings", err)
	}
	return bookings, nil
}

// FindFreeTables lists tables that can seat minSeats guests and have no
// booking intersecting [start, end) on the date.
func (s *bookingService) FindFreeTables(ctx context.Context, date time.Time, start, end string, minSeats int) ([]*models.Table, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	if minSeats <= 0 {
		return nil, fmt.Errorf("%w: guests_count must be positive", common.ErrInvalidArgument)
	}
	tables, err := repositories.NewTableRepo(s.db).FindFree(ctx, date, start, end, minSeats)
	if err != nil {
		return nil, common.ClassifyDBError("find free tables", err)
	}
	return tables, nil
}
