package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderItemRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    OrderItemRepository
	orderID uuid.UUID
	dishID  uuid.UUID
	context context.Context
}

func (suite *OrderItemRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewOrderItemRepo(mock)
	suite.orderID = uuid.New()
	suite.dishID = uuid.New()
	suite.context = context.Background()
}

func (suite *OrderItemRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestOrderItemRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderItemRepoTestSuite))
}

func (suite *OrderItemRepoTestSuite) itemColumns() []string {
	return []string{"order_id", "dish_id", "quantity", "unit_price", "created_at", "updated_at"}
}

func (suite *OrderItemRepoTestSuite) TestUpsert_NewLine() {
	price := decimal.RequireFromString("12.50")
	now := time.Now()

	suite.mock.ExpectQuery(`INSERT INTO order_items`).
		WithArgs(suite.orderID, suite.dishID, 2, price).
		WillReturnRows(pgxmock.NewRows(suite.itemColumns()).
			AddRow(suite.orderID, suite.dishID, 2, price, now, now))

	item, err := suite.repo.Upsert(suite.context, suite.orderID, suite.dishID, 2, price)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, item.Quantity)
	assert.True(suite.T(), price.Equal(item.UnitPrice))
}

func (suite *OrderItemRepoTestSuite) TestUpsert_MergesIntoExistingLine() {
	price := decimal.RequireFromString("12.50")
	now := time.Now()

	// Second add of the same dish: the row comes back with the summed
	// quantity and the original price snapshot, not the price passed in.
	newPrice := decimal.RequireFromString("14.00")
	suite.mock.ExpectQuery(`INSERT INTO order_items`).
		WithArgs(suite.orderID, suite.dishID, 3, newPrice).
		WillReturnRows(pgxmock.NewRows(suite.itemColumns()).
			AddRow(suite.orderID, suite.dishID, 5, price, now, now))

	item, err := suite.repo.Upsert(suite.context, suite.orderID, suite.dishID, 3, newPrice)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 5, item.Quantity)
	assert.True(suite.T(), price.Equal(item.UnitPrice), "merge must keep the first-insert price snapshot")
}

func (suite *OrderItemRepoTestSuite) TestSetQuantity_Found() {
	suite.mock.ExpectExec(`UPDATE order_items`).
		WithArgs(suite.orderID, suite.dishID, 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	updated, err := suite.repo.SetQuantity(suite.context, suite.orderID, suite.dishID, 4)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), updated)
}

func (suite *OrderItemRepoTestSuite) TestSetQuantity_NoSuchLine() {
	suite.mock.ExpectExec(`UPDATE order_items`).
		WithArgs(suite.orderID, suite.dishID, 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	updated, err := suite.repo.SetQuantity(suite.context, suite.orderID, suite.dishID, 4)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), updated)
}

func (suite *OrderItemRepoTestSuite) TestDelete_AbsentLineSucceeds() {
	suite.mock.ExpectExec(`DELETE FROM order_items`).
		WithArgs(suite.orderID, suite.dishID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.orderID, suite.dishID)
	assert.NoError(suite.T(), err)
}

func (suite *OrderItemRepoTestSuite) TestListByOrderID() {
	price := decimal.RequireFromString("9.90")
	lineTotal := decimal.RequireFromString("19.80")

	rows := pgxmock.NewRows([]string{"order_id", "dish_id", "name", "quantity", "unit_price", "line_total"}).
		AddRow(suite.orderID, suite.dishID, "Borscht", 2, price, lineTotal)

	suite.mock.ExpectQuery(`SELECT oi.order_id, oi.dish_id, d.name`).
		WithArgs(suite.orderID).
		WillReturnRows(rows)

	items, err := suite.repo.ListByOrderID(suite.context, suite.orderID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 1)
	assert.Equal(suite.T(), "Borscht", items[0].DishName)
	assert.True(suite.T(), lineTotal.Equal(items[0].LineTotal))
}
