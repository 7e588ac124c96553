package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ProductRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      ProductRepository
	productID uuid.UUID
	context   context.Context
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewProductRepo(mock)
	suite.productID = uuid.New()
	suite.context = context.Background()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func (suite *ProductRepoTestSuite) TestDebit_EnoughStock() {
	amount := decimal.RequireFromString("2.5")

	suite.mock.ExpectExec(`UPDATE products`).
		WithArgs(suite.productID, amount).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := suite.repo.Debit(suite.context, suite.productID, amount)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
}

func (suite *ProductRepoTestSuite) TestDebit_GuardRejectsShortage() {
	// quantity >= amount fails, so the row is untouched and the caller
	// decides between not-found and insufficient stock.
	amount := decimal.RequireFromString("99")

	suite.mock.ExpectExec(`UPDATE products`).
		WithArgs(suite.productID, amount).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := suite.repo.Debit(suite.context, suite.productID, amount)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *ProductRepoTestSuite) TestCredit() {
	amount := decimal.RequireFromString("10")

	suite.mock.ExpectExec(`UPDATE products`).
		WithArgs(suite.productID, amount).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Credit(suite.context, suite.productID, amount)
	assert.NoError(suite.T(), err)
}
