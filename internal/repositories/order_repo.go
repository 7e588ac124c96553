package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, limit, offset int) ([]*models.Order, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*models.Order, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus string) (bool, error)
	RecalcTotal(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, guestName, dishName string) ([]*models.OrderSearchRow, error)
}

type orderRepo struct {
	db DBTX
}

func NewOrderRepo(db DBTX) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `id, guest_id, table_id, waiter_id, booking_id, order_time, total_amount, status, created_at, updated_at`

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, guest_id, table_id, waiter_id, booking_id, order_time, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.GuestID, order.TableID, order.WaiterID,
		order.BookingID, order.OrderTime, order.TotalAmount, order.Status)
	return err
}

func (r *orderRepo) scanOrder(row interface{ Scan(dest ...any) error }) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(&order.ID, &order.GuestID, &order.TableID, &order.WaiterID, &order.BookingID,
		&order.OrderTime, &order.TotalAmount, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOrder(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate locks the order row for the rest of the transaction so a
// concurrent mutation cannot change its status underneath us.
func (r *orderRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return r.scanOrder(r.db.QueryRow(ctx, query, id))
}

func (r *orderRepo) List(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_time DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepo) ListByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE guest_id = $1 ORDER BY order_time DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, guestID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// TransitionStatus moves the order from one status to another only if it is
// still in fromStatus. The conditional write is what makes consumption
// single-shot under concurrent calls.
func (r *orderRepo) TransitionStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus string) (bool, error) {
	query := `UPDATE orders SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	tag, err := r.db.Exec(ctx, query, id, fromStatus, toStatus)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RecalcTotal rewrites total_amount from the current line items and returns
// the new value. Callers run it in the same transaction as the item mutation.
func (r *orderRepo) RecalcTotal(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	query := `
		UPDATE orders
		SET total_amount = COALESCE((
			SELECT SUM(oi.quantity * oi.unit_price)
			FROM order_items oi
			WHERE oi.order_id = orders.id
		), 0), updated_at = NOW()
		WHERE id = $1
		RETURNING total_amount
	`
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, id).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM orders WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// Search finds orders by guest last name and/or dish name, both optional
// substring matches.
func (r *orderRepo) Search(ctx context.Context, guestName, dishName string) ([]*models.OrderSearchRow, error) {
	query := `
		SELECT o.id, g.last_name || ' ' || g.first_name AS guest_name, o.order_time, o.total_amount
		FROM orders o
		JOIN guests g ON g.id = o.guest_id
		LEFT JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN dishes d ON d.id = oi.dish_id
		WHERE ($1 = '' OR g.last_name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR d.name ILIKE '%' || $2 || '%')
		GROUP BY o.id, guest_name, o.order_time, o.total_amount
		ORDER BY o.order_time
	`
	rows, err := r.db.Query(ctx, query, guestName, dishName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.OrderSearchRow
	for rows.Next() {
		row := &models.OrderSearchRow{}
		if err := rows.Scan(&row.OrderID, &row.GuestName, &row.OrderTime, &row.TotalAmount); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
