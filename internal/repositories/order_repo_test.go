package repositories

import (
	"context"
	"testing"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    OrderRepository
	orderID uuid.UUID
	guestID uuid.UUID
	context context.Context
}

func (suite *OrderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewOrderRepo(mock)
	suite.orderID = uuid.New()
	suite.guestID = uuid.New()
	suite.context = context.Background()
}

func (suite *OrderRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func (suite *OrderRepoTestSuite) orderRow(status string, total decimal.Decimal) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "guest_id", "table_id", "waiter_id", "booking_id",
		"order_time", "total_amount", "status", "created_at", "updated_at"}).
		AddRow(suite.orderID, suite.guestID, nil, nil, nil, now, total, status, now, now)
}

func (suite *OrderRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`SELECT .+ FROM orders WHERE id = \$1`).
		WithArgs(suite.orderID).
		WillReturnError(pgx.ErrNoRows)

	order, err := suite.repo.GetByID(suite.context, suite.orderID)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), order)
}

func (suite *OrderRepoTestSuite) TestGetByIDForUpdate_LocksRow() {
	suite.mock.ExpectQuery(`SELECT .+ FROM orders WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.orderID).
		WillReturnRows(suite.orderRow(models.OrderStatusCreated, decimal.Zero))

	order, err := suite.repo.GetByIDForUpdate(suite.context, suite.orderID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusCreated, order.Status)
}

func (suite *OrderRepoTestSuite) TestTransitionStatus_Moves() {
	suite.mock.ExpectExec(`UPDATE orders SET status = \$3`).
		WithArgs(suite.orderID, models.OrderStatusCreated, models.OrderStatusConsumed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	moved, err := suite.repo.TransitionStatus(suite.context, suite.orderID,
		models.OrderStatusCreated, models.OrderStatusConsumed)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), moved)
}

func (suite *OrderRepoTestSuite) TestTransitionStatus_AlreadyMoved() {
	// Order is no longer in fromStatus, so the conditional update touches
	// nothing. The second caller of a concurrent consumption lands here.
	suite.mock.ExpectExec(`UPDATE orders SET status = \$3`).
		WithArgs(suite.orderID, models.OrderStatusCreated, models.OrderStatusConsumed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	moved, err := suite.repo.TransitionStatus(suite.context, suite.orderID,
		models.OrderStatusCreated, models.OrderStatusConsumed)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), moved)
}

func (suite *OrderRepoTestSuite) TestRecalcTotal() {
	total := decimal.RequireFromString("41.30")

	suite.mock.ExpectQuery(`UPDATE orders`).
		WithArgs(suite.orderID).
		WillReturnRows(pgxmock.NewRows([]string{"total_amount"}).AddRow(total))

	got, err := suite.repo.RecalcTotal(suite.context, suite.orderID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), total.Equal(got))
}

func (suite *OrderRepoTestSuite) TestRecalcTotal_EmptyOrderIsZero() {
	suite.mock.ExpectQuery(`UPDATE orders`).
		WithArgs(suite.orderID).
		WillReturnRows(pgxmock.NewRows([]string{"total_amount"}).AddRow(decimal.Zero))

	got, err := suite.repo.RecalcTotal(suite.context, suite.orderID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.IsZero())
}

func (suite *OrderRepoTestSuite) TestSearch() {
	now := time.Now()
	total := decimal.RequireFromString("25.00")

	rows := pgxmock.NewRows([]string{"id", "guest_name", "order_time", "total_amount"}).
		AddRow(suite.orderID, "Ivanova Anna", now, total)

	suite.mock.ExpectQuery(`SELECT o.id, g.last_name`).
		WithArgs("Ivanova", "").
		WillReturnRows(rows)

	results, err := suite.repo.Search(suite.context, "Ivanova", "")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
	assert.Equal(suite.T(), "Ivanova Anna", results[0].GuestName)
}
