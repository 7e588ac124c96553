package services

import (
	"context"
	"fmt"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// OrderServiceInterface is the order consistency coordinator. Every mutation
// runs as one transaction, so the item ledger change, the total recompute and
// the product debits of a consumption commit together or not at all.
type OrderServiceInterface interface {
	Create(ctx context.Context, order *models.Order, items []models.OrderItemRequest) (*models.Order, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, limit, offset int) ([]*models.Order, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*models.Order, error)
	Search(ctx context.Context, guestName, dishName string) ([]*models.OrderSearchRow, error)
	Items(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItemRow, error)
	AddItem(ctx context.Context, orderID, dishID uuid.UUID, quantity int) (*models.Order, error)
	UpdateItem(ctx context.Context, orderID, dishID uuid.UUID, quantity int) (*models.Order, error)
	RemoveItem(ctx context.Context, orderID, dishID uuid.UUID) (*models.Order, error)
	ConsumeProducts(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	Pay(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
}

// loyaltyDiscountRate is the share of a paid order credited to the guest's
// running discount counter.
var loyaltyDiscountRate = decimal.RequireFromString("0.05")

type orderService struct {
	db repositories.TxStarter
}

func NewOrderService(db repositories.TxStarter) OrderServiceInterface {
	return &orderService{db: db}
}

// Create opens an order in status "created" with total 0. An optional table
// and booking may be attached; attaching a booking requires it to exist and
// to belong to the same table. Initial items, if any, go through the same
// merge path as later adds, all inside one transaction.
func (s *orderService) Create(ctx context.Context, order *models.Order, items []models.OrderItemRequest) (*models.Order, error) {
	if order.GuestID == uuid.Nil {
		return nil, fmt.Errorf("%w: guest is required", common.ErrInvalidArgument)
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", common.ErrInvalidArgument)
		}
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.OrderTime.IsZero() {
		order.OrderTime = time.Now()
	}
	order.Status = models.OrderStatusCreated
	order.TotalAmount = decimal.Zero

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.ClassifyDBError("begin create order", err)
	}
	defer tx.Rollback(ctx)

	guests := repositories.NewGuestRepo(tx)
	if _, err := guests.GetByID(ctx, order.GuestID); err != nil {
		return nil, common.ClassifyDBError("lookup guest", err)
	}

	if order.BookingID != nil {
		bookings := repositories.NewBookingRepo(tx)
		booking, err := bookings.GetByID(ctx, *order.BookingID)
		if err != nil {
			return nil, common.ClassifyDBError("lookup booking", err)
		}
		if order.TableID != nil && booking.TableID != *order.TableID {
			return nil, fmt.Errorf("%w: booking belongs to a different table", common.ErrInvalidArgument)
		}
	}

	orders := repositories.NewOrderRepo(tx)
	if err := orders.Create(ctx, order); err != nil {
		return nil, common.ClassifyDBError("create order", err)
	}

	if len(items) > 0 {
		dishes := repositories.NewDishRepo(tx)
		orderItems := repositories.NewOrderItemRepo(tx)
		for _, item := range items {
			dish, err := dishes.GetByID(ctx, item.DishID)
			if err != nil {
				return nil, common.ClassifyDBError("lookup dish", err)
			}
			if _, err := orderItems.Upsert(ctx, order.ID, dish.ID, item.Quantity, dish.Price); err != nil {
				return nil, common.ClassifyDBError("add order item", err)
			}
		}
		total, err := orders.RecalcTotal(ctx, order.ID)
		if err != nil {
			return nil, common.ClassifyDBError("recalculate total", err)
		}
		order.TotalAmount = total
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.ClassifyDBError("commit create order", err)
	}
	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := repositories.NewOrderRepo(s.db).GetByID(ctx, orderID)
	if err != nil {
		return nil, common.ClassifyDBError("get order", err)
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, limit, offset int) ([]*models.Order, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	orders, err := repositories.NewOrderRepo(s.db).List(ctx, limit, offset)
	if err != nil {
		return nil, common.ClassifyDBError("list orders", err)
	}
	return orders, nil
}

func (s *orderService) ListByGuest(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	orders, err := repositories.NewOrderRepo(s.db).ListByGuest(ctx, guestID, limit, offset)
	if err != nil {
		return nil, common.ClassifyDBError("list guest orders", err)
	}
	return orders, nil
}

func (s *orderService) Search(ctx context.Context, guestName, dishName string) ([]*models.OrderSearchRow, error) {
	rows, err := repositories.NewOrderRepo(s.db).Search(ctx, guestName, dishName)
	if err != nil {
		return nil, common.ClassifyDBError("search orders", err)
	}
	return rows, nil
}

func (s *orderService) Items(ctx context.Context, orderID uuid.UUID) ([]*models.OrderItemRow, error) {
	if _, err := repositories.NewOrderRepo(s.db).GetByID(ctx, orderID); err != nil {
		return nil, common.ClassifyDBError("get order", err)
	}
	items, err := repositories.NewOrderItemRepo(s.db).ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, common.ClassifyDBError("list order items", err)
	}
	return items, nil
}

// lockEditableOrder loads the order under FOR UPDATE and checks line items
// may still be mutated.
func (s *orderService) lockEditableOrder(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*models.Order, error) {
	order, err := repositories.NewOrderRepo(tx).GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, common.ClassifyDBError("get order", err)
	}
	if order.Status != models.OrderStatusCreated {
		return nil, fmt.Errorf("%w: order is %s and no longer editable", common.ErrInvalidArgument, order.Status)
	}
	return order, nil
}

// AddItem merges quantity into the (order, dish) line and recomputes the
// total, both inside one transaction. The dish's current price is captured
// only when the line is first created.
func (s *orderService) AddItem(ctx context.Context, orderID, dishID uuid.UUID, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", common.ErrInvalidArgument)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.ClassifyDBError("begin add item", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.lockEditableOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	dish, err := repositories.NewDishRepo(tx).GetByID(ctx, dishID)
	if err != nil {
		return nil, common.ClassifyDBError("lookup dish", err)
	}

	if _, err := repositories.NewOrderItemRepo(tx).Upsert(ctx, orderID, dishID, quantity, dish.Price); err != nil {
		return nil, common.ClassifyDBError("merge order item", err)
	}

	total, err := repositories.NewOrderRepo(tx).RecalcTotal(ctx, orderID)
	if err != nil {
		return nil, common.ClassifyDBError("recalculate total", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.ClassifyDBError("commit add item", err)
	}

	order.TotalAmount = total
	return order, nil
}

// UpdateItem overwrites an existing line's quantity; zero removes the line.
func (s *orderService) UpdateItem(ctx context.Context, orderID, dishID uuid.UUID, quantity int) (*models.Order, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", common.ErrInvalidArgument)
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, orderID, dishID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.ClassifyDBError("begin update item", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.lockEditableOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	updated, err := repositories.NewOrderItemRepo(tx).SetQuantity(ctx, orderID, dishID, quantity)
	if err != nil {
		return nil, common.ClassifyDBError("set item quantity", err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: order has no such item", common.ErrNotFound)
	}

	total, err := repositories.NewOrderRepo(tx).RecalcTotal(ctx, orderID)
	if err != nil {
		return nil, common.ClassifyDBError("recalculate total", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.ClassifyDBError("commit update item", err)
	}

	order.TotalAmount = total
	return order, nil
}

// RemoveItem deletes the line if present. Removing an absent line succeeds.
func (s *orderService) RemoveItem(ctx context.Context, orderID, dishID uuid.UUID) (*models.Order, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.ClassifyDBError("begin remove item", err)
	}
	defer tx.Rollback(ctx)

	order, err := s.lockEditableOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	if err := repositories.NewOrderItemRepo(tx).Delete(ctx, orderID, dishID); err != nil {
		return nil, common.ClassifyDBError("remove order item", err)
	}

	total, err := repositories.NewOrderRepo(tx).RecalcTotal(ctx, orderID)
	if err != nil {
		return nil, common.ClassifyDBError("recalculate total", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.ClassifyDBError("commit remove item", err)
	}

	order.TotalAmount = total
	return order, nil
}

// ConsumeProducts debits raw-product stock for every item of the order,
// all-or-nothing, exactly once. The created→consumed transition inside the
// same transaction is the idempotency guard: a second call, even concurrent,
// finds the order no longer in "created" and is rejected with
// ErrAlreadyConsumed before any debit happens. Requirements come back in
// product-id order so concurrent consumptions cannot deadlock on the product
// rows.
func (s *orderService) ConsumeProducts(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.ClassifyDBError("begin consume", err)
	}
	defer tx.Rollback(ctx)

	orders := repositories.NewOrderRepo(tx)
	order, err := orders.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, common.ClassifyDBError("get order", err)
	}
	switch order.Status {
	case models.OrderStatusCreated:
	case models.OrderStatusConsumed, models.OrderStatusPaid:
		return nil, fmt.Errorf("%w: products already consumed for this order", common.ErrAlreadyConsumed)
	default:
		return nil, fmt.Errorf("%w: cannot consume a %s order", common.ErrInvalidArgument, order.Status)
	}

	moved, err := orders.TransitionStatus(ctx, orderID, models.OrderStatusCreated, models.OrderStatusConsumed)
	if err != nil {
		return nil, common.ClassifyDBError("mark order consumed", err)
	}
	if !moved {
		return nil, fmt.Errorf("%w: products already consumed for this order", common.ErrAlreadyConsumed)
	}

	reqs, err := repositories.NewRecipeRepo(tx).RequirementsForOrder(ctx, orderID)
	if err != nil {
		return nil, common.ClassifyDBError("aggregate product requirements", err)
	}

	products := repositories.NewProductRepo(tx)
	for _, req := range reqs {
		ok, err := products.Debit(ctx, req.ProductID, req.Amount)
		if err != nil {
			return nil, common.ClassifyDBError("debit product", err)
		}
		if !ok {
			product, err := products.GetByID(ctx, req.ProductID)
			if err != nil {
				return nil, common.ClassifyDBError("lookup product", err)
			}
			return nil, fmt.Errorf("%w: product %q has %s on hand, order needs %s",
				common.ErrInsufficientInventory, product.Name, product.Quantity, req.Amount)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.ClassifyDBError("commit consume", err)
	}

	order.Status = models.OrderStatusConsumed
	return order, nil
}

// Pay closes a consumed order and bumps the guest's loyalty counters in the
// same transaction.
func (s *orderService) Pay(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.ClassifyDBError("begin pay", err)
	}
	defer tx.Rollback(ctx)

	orders := repositories.NewOrderRepo(tx)
	order, err := orders.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, common.ClassifyDBError("get order", err)
	}
	if order.Status != models.OrderStatusConsumed {
		return nil, fmt.Errorf("%w: only consumed orders can be paid, order is %s",
			common.ErrInvalidArgument, order.Status)
	}

	moved, err := orders.TransitionStatus(ctx, orderID, models.OrderStatusConsumed, models.OrderStatusPaid)
	if err != nil {
		return nil, common.ClassifyDBError("mark order paid", err)
	}
	if !moved {
		return nil, fmt.Errorf("%w: order status changed concurrently", common.ErrConflict)
	}

	discount := order.TotalAmount.Mul(loyaltyDiscountRate).Round(2)
	if err := repositories.NewGuestRepo(tx).IncrementTotals(ctx, order.GuestID, discount); err != nil {
		return nil, common.ClassifyDBError("update guest totals", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.ClassifyDBError("commit pay", err)
	}

	order.Status = models.OrderStatusPaid
	return order, nil
}

// Cancel abandons an order that has not been paid yet. Consumed stock is not
// credited back; cancelled-after-consumption is waste, not a refund.
func (s *orderService) Cancel(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, common.ClassifyDBError("begin cancel", err)
	}
	defer tx.Rollback(ctx)

	orders := repositories.NewOrderRepo(tx)
	order, err := orders.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, common.ClassifyDBError("get order", err)
	}
	if order.Status == models.OrderStatusPaid || order.Status == models.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: a %s order cannot be cancelled", common.ErrInvalidArgument, order.Status)
	}

	if _, err := orders.TransitionStatus(ctx, orderID, order.Status, models.OrderStatusCancelled); err != nil {
		return nil, common.ClassifyDBError("mark order cancelled", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, common.ClassifyDBError("commit cancel", err)
	}

	order.Status = models.OrderStatusCancelled
	return order, nil
}

// Delete removes the order and, through the cascade, its items.
func (s *orderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	orders := repositories.NewOrderRepo(s.db)
	if _, err := orders.GetByID(ctx, orderID); err != nil {
		return common.ClassifyDBError("get order", err)
	}
	if err := orders.Delete(ctx, orderID); err != nil {
		return common.ClassifyDBError("delete order", err)
	}
	return nil
}
