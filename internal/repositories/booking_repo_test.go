package repositories

import (
	"context"
	"testing"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BookingRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    BookingRepository
	tableID uuid.UUID
	guestID uuid.UUID
	date    time.Time
	context context.Context
}

func (suite *BookingRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewBookingRepo(mock)
	suite.tableID = uuid.New()
	suite.guestID = uuid.New()
	suite.date = time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	suite.context = context.Background()
}

func (suite *BookingRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestBookingRepoTestSuite(t *testing.T) {
	suite.Run(t, new(BookingRepoTestSuite))
}

func (suite *BookingRepoTestSuite) bookingColumns() []string {
	return []string{"id", "table_id", "guest_id", "booking_date", "guests_count", "booking_start", "booking_end"}
}

func (suite *BookingRepoTestSuite) TestFindOverlapping_ReturnsClash() {
	existingID := uuid.New()

	rows := pgxmock.NewRows(suite.bookingColumns()).
		AddRow(existingID, suite.tableID, suite.guestID, suite.date, 2, "18:00", "20:00")

	suite.mock.ExpectQuery(`FROM bookings`).
		WithArgs(suite.tableID, suite.date, "19:00", "21:00", (*uuid.UUID)(nil)).
		WillReturnRows(rows)

	clash, err := suite.repo.FindOverlapping(suite.context, suite.tableID, suite.date, "19:00", "21:00", nil)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), clash)
	assert.Equal(suite.T(), existingID, clash.ID)
	assert.Equal(suite.T(), "18:00", clash.BookingStart)
}

func (suite *BookingRepoTestSuite) TestFindOverlapping_NoClashIsNil() {
	suite.mock.ExpectQuery(`FROM bookings`).
		WithArgs(suite.tableID, suite.date, "20:00", "22:00", (*uuid.UUID)(nil)).
		WillReturnError(pgx.ErrNoRows)

	clash, err := suite.repo.FindOverlapping(suite.context, suite.tableID, suite.date, "20:00", "22:00", nil)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), clash)
}

func (suite *BookingRepoTestSuite) TestFindOverlapping_ExcludesEditedBooking() {
	editedID := uuid.New()

	suite.mock.ExpectQuery(`FROM bookings`).
		WithArgs(suite.tableID, suite.date, "18:00", "20:00", &editedID).
		WillReturnError(pgx.ErrNoRows)

	clash, err := suite.repo.FindOverlapping(suite.context, suite.tableID, suite.date, "18:00", "20:00", &editedID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), clash)
}

func (suite *BookingRepoTestSuite) TestCreate() {
	bookingID := uuid.New()

	suite.mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(bookingID, suite.tableID, suite.guestID, suite.date, 4, "18:00", "20:00").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, &models.Booking{
		ID:           bookingID,
		TableID:      suite.tableID,
		GuestID:      suite.guestID,
		BookingDate:  suite.date,
		GuestsCount:  4,
		BookingStart: "18:00",
		BookingEnd:   "20:00",
	})
	assert.NoError(suite.T(), err)
}
