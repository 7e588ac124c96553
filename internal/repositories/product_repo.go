package repositories

import (
	"context"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Product, error)
	Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
	Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*models.Product, error)
	ListBelowQuantity(ctx context.Context, threshold decimal.Decimal) ([]*models.Product, error)
}

type productRepo struct {
	db DBTX
}

func NewProductRepo(db DBTX) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, name, weight, expiry_date, quantity, category, created_at, updated_at`

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, name, weight, expiry_date, quantity, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Weight,
		product.ExpiryDate, product.Quantity, product.Category)
	return err
}

func (r *productRepo) scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(&product.ID, &product.Name, &product.Weight, &product.ExpiryDate,
		&product.Quantity, &product.Category, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanProduct(r.db.QueryRow(ctx, query, id))
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $2, weight = $3, expiry_date = $4, category = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Name, product.Weight,
		product.ExpiryDate, product.Category)
	return err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *productRepo) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// Debit subtracts amount from on-hand quantity, guarded so the row is only
// touched when enough stock is present. Returns false when the guard failed;
// the caller decides between not-found and insufficient stock.
func (r *productRepo) Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	query := `
		UPDATE products
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2
	`
	tag, err := r.db.Exec(ctx, query, id, amount)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *productRepo) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	query := `
		UPDATE products
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, amount)
	return err
}

func (r *productRepo) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE expiry_date IS NOT NULL AND expiry_date <= $1 ORDER BY expiry_date`
	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepo) ListBelowQuantity(ctx context.Context, threshold decimal.Decimal) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE quantity <= $1 ORDER BY quantity`
	rows, err := r.db.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
