package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error)
	Update(ctx context.Context, guest *models.Guest) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Guest, error)
	IncrementTotals(ctx context.Context, id uuid.UUID, discount decimal.Decimal) error
}

type guestRepo struct {
	db DBTX
}

func NewGuestRepo(db DBTX) GuestRepository {
	return &guestRepo{db: db}
}

const guestColumns = `id, last_name, first_name, middle_name, birth_date, total_orders, total_discount`

func (r *guestRepo) Create(ctx context.Context, guest *models.Guest) error {
	query := `
		INSERT INTO guests (id, last_name, first_name, middle_name, birth_date, total_orders, total_discount)
		VALUES ($1, $2, $3, $4, $5, 0, 0)
	`
	_, err := r.db.Exec(ctx, query, guest.ID, guest.LastName, guest.FirstName,
		guest.MiddleName, guest.BirthDate)
	return err
}

func (r *guestRepo) scanGuest(row interface{ Scan(dest ...any) error }) (*models.Guest, error) {
	guest := &models.Guest{}
	err := row.Scan(&guest.ID, &guest.LastName, &guest.FirstName, &guest.MiddleName,
		&guest.BirthDate, &guest.TotalOrders, &guest.TotalDiscount)
	if err != nil {
		return nil, err
	}
	return guest, nil
}

func (r *guestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`
	return r.scanGuest(r.db.QueryRow(ctx, query, id))
}

func (r *guestRepo) Update(ctx context.Context, guest *models.Guest) error {
	query := `
		UPDATE guests
		SET last_name = $2, first_name = $3, middle_name = $4, birth_date = $5
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, guest.ID, guest.LastName, guest.FirstName,
		guest.MiddleName, guest.BirthDate)
	return err
}

func (r *guestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM guests WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *guestRepo) List(ctx context.Context, limit, offset int) ([]*models.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests ORDER BY last_name, first_name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []*models.Guest
	for rows.Next() {
		guest, err := r.scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, guest)
	}
	return guests, rows.Err()
}

// IncrementTotals bumps the guest's loyalty counters after a paid order.
func (r *guestRepo) IncrementTotals(ctx context.Context, id uuid.UUID, discount decimal.Decimal) error {
	query := `
		UPDATE guests
		SET total_orders = total_orders + 1, total_discount = total_discount + $2
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id, discount)
	return err
}
