package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"restomart/internal/caching"
	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const productCacheTTL = 10 * time.Minute

// InventoryServiceInterface manages raw products: the reference data and the
// on-hand quantity ledger. Quantity only moves through Restock here; debits
// happen inside order consumption.
type InventoryServiceInterface interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	Restock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Product, error)
	ExpiringSoon(ctx context.Context, within time.Duration) ([]*models.Product, error)
	LowStock(ctx context.Context, threshold decimal.Decimal) ([]*models.Product, error)
}

type inventoryService struct {
	db    repositories.TxStarter
	cache caching.CacheService
}

func NewInventoryService(db repositories.TxStarter, cache caching.CacheService) InventoryServiceInterface {
	return &inventoryService{db: db, cache: cache}
}

func validateProduct(product *models.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", common.ErrInvalidArgument)
	}
	if product.Quantity.IsNegative() {
		return fmt.Errorf("%w: quantity must not be negative", common.ErrInvalidArgument)
	}
	return nil
}

func (s *inventoryService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := repositories.NewProductRepo(s.db).Create(ctx, product); err != nil {
		return nil, common.ClassifyDBError("create product", err)
	}
	return repositories.NewProductRepo(s.db).GetByID(ctx, product.ID)
}

func (s *inventoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if cached, err := s.cache.GetProduct(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	product, err := repositories.NewProductRepo(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, common.ClassifyDBError("get product", err)
	}

	if err := s.cache.SetProduct(ctx, product, productCacheTTL); err != nil {
		log.Printf("WARN: failed to cache product %s: %v", id, err)
	}
	return product, nil
}

func (s *inventoryService) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	products := repositories.NewProductRepo(s.db)
	if _, err := products.GetByID(ctx, product.ID); err != nil {
		return nil, common.ClassifyDBError("get product", err)
	}
	if err := products.Update(ctx, product); err != nil {
		return nil, common.ClassifyDBError("update product", err)
	}

	if err := s.cache.DeleteProduct(ctx, product.ID); err != nil {
		log.Printf("WARN: failed to invalidate product %s: %v", product.ID, err)
	}
	return products.GetByID(ctx, product.ID)
}

func (s *inventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	products := repositories.NewProductRepo(s.db)
	if _, err := products.GetByID(ctx, id); err != nil {
		return common.ClassifyDBError("get product", err)
	}
	if err := products.Delete(ctx, id); err != nil {
		return common.ClassifyDBError("delete product", err)
	}
	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate product %s: %v", id, err)
	}
	return nil
}

func (s *inventoryService) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	products, err := repositories.NewProductRepo(s.db).List(ctx, limit, offset)
	if err != nil {
		return nil, common.ClassifyDBError("list products", err)
	}
	return products, nil
}

// Restock credits on-hand quantity and returns the fresh row.
func (s *inventoryService) Restock(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Product, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: restock amount must be positive", common.ErrInvalidArgument)
	}

	products := repositories.NewProductRepo(s.db)
	if _, err := products.GetByID(ctx, id); err != nil {
		return nil, common.ClassifyDBError("get product", err)
	}
	if err := products.Credit(ctx, id, amount); err != nil {
		return nil, common.ClassifyDBError("restock product", err)
	}

	if err := s.cache.DeleteProduct(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate product %s: %v", id, err)
	}
	return products.GetByID(ctx, id)
}

func (s *inventoryService) ExpiringSoon(ctx context.Context, within time.Duration) ([]*models.Product, error) {
	cutoff := time.Now().Add(within)
	products, err := repositories.NewProductRepo(s.db).ListExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, common.ClassifyDBError("list expiring products", err)
	}
	return products, nil
}

func (s *inventoryService) LowStock(ctx context.Context, threshold decimal.Decimal) ([]*models.Product, error) {
	products, err := repositories.NewProductRepo(s.db).ListBelowQuantity(ctx, threshold)
	if err != nil {
		return nil, common.ClassifyDBError("list low-stock products", err)
	}
	return products, nil
}
