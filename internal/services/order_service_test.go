package services

import (
	"context"
	"testing"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	service OrderServiceInterface
	orderID uuid.UUID
	guestID uuid.UUID
	dishID  uuid.UUID
	context context.Context
}

func (suite *OrderServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.service = NewOrderService(mock)
	suite.orderID = uuid.New()
	suite.guestID = uuid.New()
	suite.dishID = uuid.New()
	suite.context = context.Background()
}

func (suite *OrderServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) expectOrderLocked(status string, total decimal.Decimal) {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "guest_id", "table_id", "waiter_id", "booking_id",
		"order_time", "total_amount", "status", "created_at", "updated_at"}).
		AddRow(suite.orderID, suite.guestID, nil, nil, nil, now, total, status, now, now)

	suite.mock.ExpectQuery(`FROM orders WHERE id = \$1 FOR UPDATE`).
		WithArgs(suite.orderID).
		WillReturnRows(rows)
}

func (suite *OrderServiceTestSuite) expectDishLookup(price decimal.Decimal) {
	now := time.Now()
	category := "soup"
	country := "Ukraine"
	rows := pgxmock.NewRows([]string{"id", "name", "category", "price",
		"country_of_origin", "photo_object", "created_at", "updated_at"}).
		AddRow(suite.dishID, "Borscht", &category, price, &country, nil, now, now)

	suite.mock.ExpectQuery(`FROM dishes WHERE id = \$1`).
		WithArgs(suite.dishID).
		WillReturnRows(rows)
}

func (suite *OrderServiceTestSuite) expectRecalc(total decimal.Decimal) {
	suite.mock.ExpectQuery(`UPDATE orders`).
		WithArgs(suite.orderID).
		WillReturnRows(pgxmock.NewRows([]string{"total_amount"}).AddRow(total))
}

func (suite *OrderServiceTestSuite) TestAddItem() {
	price := decimal.RequireFromString("12.50")
	total := decimal.RequireFromString("25.00")
	now := time.Now()

	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusCreated, decimal.Zero)
	suite.expectDishLookup(price)
	suite.mock.ExpectQuery(`INSERT INTO order_items`).
		WithArgs(suite.orderID, suite.dishID, 2, price).
		WillReturnRows(pgxmock.NewRows([]string{"order_id", "dish_id", "quantity",
			"unit_price", "created_at", "updated_at"}).
			AddRow(suite.orderID, suite.dishID, 2, price, now, now))
	suite.expectRecalc(total)
	suite.mock.ExpectCommit()

	order, err := suite.service.AddItem(suite.context, suite.orderID, suite.dishID, 2)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), total.Equal(order.TotalAmount))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) TestAddItem_NonPositiveQuantity() {
	order, err := suite.service.AddItem(suite.context, suite.orderID, suite.dishID, 0)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
	assert.Nil(suite.T(), order)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) TestAddItem_ConsumedOrderIsFrozen() {
	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusConsumed, decimal.RequireFromString("25.00"))
	suite.mock.ExpectRollback()

	order, err := suite.service.AddItem(suite.context, suite.orderID, suite.dishID, 1)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
	assert.Nil(suite.T(), order)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) TestUpdateItem_UnknownLine() {
	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusCreated, decimal.Zero)
	suite.mock.ExpectExec(`UPDATE order_items`).
		WithArgs(suite.orderID, suite.dishID, 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectRollback()

	order, err := suite.service.UpdateItem(suite.context, suite.orderID, suite.dishID, 3)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), order)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) TestRemoveItem_AbsentLineSucceeds() {
	total := decimal.RequireFromString("10.00")

	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusCreated, total)
	suite.mock.ExpectExec(`DELETE FROM order_items`).
		WithArgs(suite.orderID, suite.dishID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.expectRecalc(total)
	suite.mock.ExpectCommit()

	order, err := suite.service.RemoveItem(suite.context, suite.orderID, suite.dishID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), total.Equal(order.TotalAmount))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) expectTransition(from, to string, rows int64) {
	suite.mock.ExpectExec(`UPDATE orders SET status = \$3`).
		WithArgs(suite.orderID, from, to).
		WillReturnResult(pgxmock.NewResult("UPDATE", rows))
}

func (suite *OrderServiceTestSuite) TestConsumeProducts() {
	flourID := uuid.New()
	beefID := uuid.New()

	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusCreated, decimal.RequireFromString("25.00"))
	suite.expectTransition(models.OrderStatusCreated, models.OrderStatusConsumed, 1)
	suite.mock.ExpectQuery(`JOIN recipes`).
		WithArgs(suite.orderID).
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "required"}).
			AddRow(beefID, decimal.RequireFromString("0.600")).
			AddRow(flourID, decimal.RequireFromString("0.250")))
	suite.mock.ExpectExec(`UPDATE products`).
		WithArgs(beefID, decimal.RequireFromString("0.600")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`UPDATE products`).
		WithArgs(flourID, decimal.RequireFromString("0.250")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	order, err := suite.service.ConsumeProducts(suite.context, suite.orderID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusConsumed, order.Status)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) TestConsumeProducts_SecondCallRejected() {
	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusConsumed, decimal.RequireFromString("25.00"))
	suite.mock.ExpectRollback()

	order, err := suite.service.ConsumeProducts(suite.context, suite.orderID)
	assert.ErrorIs(suite.T(), err, common.ErrAlreadyConsumed)
	assert.Nil(suite.T(), order)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) TestConsumeProducts_ShortageRollsBack() {
	productID := uuid.New()
	needed := decimal.RequireFromString("5.000")
	now := time.Now()

	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusCreated, decimal.RequireFromString("25.00"))
	suite.expectTransition(models.OrderStatusCreated, models.OrderStatusConsumed, 1)
	suite.mock.ExpectQuery(`JOIN recipes`).
		WithArgs(suite.orderID).
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "required"}).
			AddRow(productID, needed))
	suite.mock.ExpectExec(`UPDATE products`).
		WithArgs(productID, needed).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	weight := decimal.RequireFromString("1.000")
	expiry := now.Add(48 * time.Hour)
	category := "meat"
	suite.mock.ExpectQuery(`FROM products WHERE id = \$1`).
		WithArgs(productID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "weight", "expiry_date",
			"quantity", "category", "created_at", "updated_at"}).
			AddRow(productID, "Beef", &weight,
				&expiry, decimal.RequireFromString("2.000"), &category, now, now))
	suite.mock.ExpectRollback()

	order, err := suite.service.ConsumeProducts(suite.context, suite.orderID)
	assert.ErrorIs(suite.T(), err, common.ErrInsufficientInventory)
	assert.Nil(suite.T(), order)
	assert.Contains(suite.T(), err.Error(), "Beef")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) TestConsumeProducts_CancelledOrder() {
	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusCancelled, decimal.Zero)
	suite.mock.ExpectRollback()

	order, err := suite.service.ConsumeProducts(suite.context, suite.orderID)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
	assert.Nil(suite.T(), order)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) TestPay_CreditsLoyaltyCounters() {
	total := decimal.RequireFromString("25.00")
	discount := decimal.RequireFromString("1.25")

	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusConsumed, total)
	suite.expectTransition(models.OrderStatusConsumed, models.OrderStatusPaid, 1)
	suite.mock.ExpectExec(`UPDATE guests`).
		WithArgs(suite.guestID, discount).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	order, err := suite.service.Pay(suite.context, suite.orderID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusPaid, order.Status)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) TestPay_CreatedOrderRejected() {
	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusCreated, decimal.Zero)
	suite.mock.ExpectRollback()

	order, err := suite.service.Pay(suite.context, suite.orderID)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
	assert.Nil(suite.T(), order)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) TestCancel_PaidOrderRejected() {
	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusPaid, decimal.RequireFromString("25.00"))
	suite.mock.ExpectRollback()

	order, err := suite.service.Cancel(suite.context, suite.orderID)
	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
	assert.Nil(suite.T(), order)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderServiceTestSuite) TestCancel_ConsumedOrderIsWaste() {
	suite.mock.ExpectBegin()
	suite.expectOrderLocked(models.OrderStatusConsumed, decimal.RequireFromString("25.00"))
	suite.expectTransition(models.OrderStatusConsumed, models.OrderStatusCancelled, 1)
	suite.mock.ExpectCommit()

	order, err := suite.service.Cancel(suite.context, suite.orderID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.OrderStatusCancelled, order.Status)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
