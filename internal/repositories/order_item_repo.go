package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemRepository interface {
	Upsert(ctx context.Context, orderID, dishID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*models.OrderItem, error)
	GetByKey(ctx context.Context, orderID, dishID uuid.UUID) (*models.OrderItem, error)
	SetQuantity(ctx context.Context, orderID, dishID uuid.UUID, quantity int) (bool, error)
	Delete(ctx context.Context, orderID, dishID uuid.UUID) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItemRow, error)
}

type orderItemRepo struct {
	db DBTX
}

func NewOrderItemRepo(db DBTX) OrderItemRepository {
	return &orderItemRepo{db: db}
}

// Upsert inserts a line for (order, dish) or, if one exists, adds quantity to
// it. The single statement does the read-modify-write under the row lock, so
// two concurrent adds cannot lose an update. unit_price is kept from the
// first insert; the merge never rewrites the snapshot.
func (r *orderItemRepo) Upsert(ctx context.Context, orderID, dishID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*models.OrderItem, error) {
	query := `
		INSERT INTO order_items (order_id, dish_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (order_id, dish_id)
		DO UPDATE SET quantity = order_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING order_id, dish_id, quantity, unit_price, created_at, updated_at
	`
	item := &models.OrderItem{}
	err := r.db.QueryRow(ctx, query, orderID, dishID, quantity, unitPrice).
		Scan(&item.OrderID, &item.DishID, &item.Quantity, &item.UnitPrice, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *orderItemRepo) GetByKey(ctx context.Context, orderID, dishID uuid.UUID) (*models.OrderItem, error) {
	item := &models.OrderItem{}
	query := `
		SELECT order_id, dish_id, quantity, unit_price, created_at, updated_at
		FROM order_items
		WHERE order_id = $1 AND dish_id = $2
	`
	err := r.db.QueryRow(ctx, query, orderID, dishID).
		Scan(&item.OrderID, &item.DishID, &item.Quantity, &item.UnitPrice, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// SetQuantity overwrites the quantity of an existing line. Returns false when
// no row matched.
func (r *orderItemRepo) SetQuantity(ctx context.Context, orderID, dishID uuid.UUID, quantity int) (bool, error) {
	query := `
		UPDATE order_items
		SET quantity = $3, updated_at = NOW()
		WHERE order_id = $1 AND dish_id = $2
	`
	tag, err := r.db.Exec(ctx, query, orderID, dishID, quantity)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the line if present; deleting an absent line is not an
// error.
func (r *orderItemRepo) Delete(ctx context.Context, orderID, dishID uuid.UUID) error {
	query := `DELETE FROM order_items WHERE order_id = $1 AND dish_id = $2`
	_, err := r.db.Exec(ctx, query, orderID, dishID)
	return err
}

func (r *orderItemRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItemRow, error) {
	query := `
		SELECT oi.order_id, oi.dish_id, d.name, oi.quantity, oi.unit_price,
		       (oi.quantity * oi.unit_price) AS line_total
		FROM order_items oi
		JOIN dishes d ON d.id = oi.dish_id
		WHERE oi.order_id = $1
		ORDER BY d.name
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItemRow
	for rows.Next() {
		row := &models.OrderItemRow{}
		if err := rows.Scan(&row.OrderID, &row.DishID, &row.DishName, &row.Quantity, &row.UnitPrice, &row.LineTotal); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}
