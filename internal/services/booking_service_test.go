package services

import (
	"context"
	"testing"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BookingServiceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	service BookingServiceInterface
	tableID uuid.UUID
	guestID uuid.UUID
	date    time.Time
	context context.Context
}

func (suite *BookingServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.service = NewBookingService(mock)
	suite.tableID = uuid.New()
	suite.guestID = uuid.New()
	suite.date = time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	suite.context = context.Background()
}

func (suite *BookingServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}

func (suite *BookingServiceTestSuite) booking(start, end string) *models.Booking {
	return &models.Booking{
		TableID:      suite.tableID,
		GuestID:      suite.guestID,
		BookingDate:  suite.date,
		GuestsCount:  2,
		BookingStart: start,
		BookingEnd:   end,
	}
}

func (suite *BookingServiceTestSuite) expectTableLookup(seats int) {
	rows := pgxmock.NewRows([]string{"id", "table_number", "seats", "status"}).
		AddRow(suite.tableID, 7, seats, models.TableStatusFree)

	suite.mock.ExpectQuery(`FROM tables WHERE id = \$1`).
		WithArgs(suite.tableID).
		WillReturnRows(rows)
}

func (suite *BookingServiceTestSuite) expectGuestLookup() {
	rows := pgxmock.NewRows([]string{"id", "last_name", "first_name", "middle_name",
		"birth_date", "total_orders", "total_discount"}).
		AddRow(suite.guestID, "Ivanova", "Anna", nil, nil, 0, decimal.Zero)

	suite.mock.ExpectQuery(`FROM guests WHERE id = \$1`).
		WithArgs(suite.guestID).
		WillReturnRows(rows)
}

func (suite *BookingServiceTestSuite) TestCreate() {
	booking := suite.booking("18:00", "20:00")

	suite.mock.ExpectBegin()
	suite.expectTableLookup(4)
	suite.expectGuestLookup()
	suite.mock.ExpectQuery(`FROM bookings`).
		WithArgs(suite.tableID, suite.date, "18:00", "20:00", (*uuid.UUID)(nil)).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(pgxmock.AnyArg(), suite.tableID, suite.guestID, suite.date, 2, "18:00", "20:00").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	created, err := suite.service.Create(suite.context, booking)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, created.ID)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *BookingServiceTestSuite) TestCreate_OverlapRejected() {
	booking := suite.booking("19:00", "21:00")
	clashID := uuid.New()

	suite.mock.ExpectBegin()
	suite.expectTableLookup(4)
	suite.expectGuestLookup()
	suite.mock.ExpectQuery(`FROM bookings`).
		WithArgs(suite.tableID, suite.date, "19:00", "21:00", (*uuid.UUID)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "table_id", "guest_id", "booking_date",
			"guests_count", "booking_start", "booking_end"}).
			AddRow(clashID, suite.tableID, suite.guestID, suite.date, 2, "18:00", "20:00"))
	suite.mock.ExpectRollback()

	created, err := suite.service.Create(suite.context, booking)
	assert.ErrorIs(suite.T(), err, common.ErrConflict)
	assert.Nil(suite.T(), created)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *BookingServiceTestSuite) TestCreate_TouchingWindowsAllowed() {
	// A booking ending at 20:00 does not block one starting at 20:00; the
	// probe comes back empty and the insert goes through.
	booking := suite.booking("20:00", "22:00")

	suite.mock.ExpectBegin()
	suite.expectTableLookup(4)
	suite.expectGuestLookup()
	suite.mock.ExpectQuery(`FROM bookings`).
		WithArgs(suite.tableID, suite.date, "20:00", "22:00", (*uuid.UUID)(nil)).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(pgxmock.AnyArg(), suite.tableID, suite.guestID, suite.date, 2, "20:00", "22:00").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	_, err := suite.service.Create(suite.context, booking)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *BookingServiceTestSuite) TestCreate_EmptyWindowRejected() {
	_, err := suite.service.Create(suite.context, suite.booking("18:00", "18:00"))
	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *BookingServiceTestSuite) TestCreate_MalformedTimeRejected() {
	_, err := suite.service.Create(suite.context, suite.booking("25:99", "26:00"))
	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *BookingServiceTestSuite) TestCreate_TooManyGuestsForTable() {
	booking := suite.booking("18:00", "20:00")
	booking.GuestsCount = 6

	suite.mock.ExpectBegin()
	suite.expectTableLookup(4)
	suite.mock.ExpectRollback()

	_, err := suite.service.Create(suite.context, booking)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *BookingServiceTestSuite) TestFindFreeTables_BadWindow() {
	_, err := suite.service.FindFreeTables(suite.context, suite.date, "20:00", "18:00", 2)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
