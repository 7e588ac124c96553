package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type WaiterRepository interface {
	Create(ctx context.Context, waiter *models.Waiter) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Waiter, error)
	Update(ctx context.Context, waiter *models.Waiter) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Waiter, error)
}

type waiterRepo struct {
	db DBTX
}

func NewWaiterRepo(db DBTX) WaiterRepository {
	return &waiterRepo{db: db}
}

func (r *waiterRepo) Create(ctx context.Context, waiter *models.Waiter) error {
	query := `
		INSERT INTO waiters (id, last_name, first_name, middle_name, salary)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, waiter.ID, waiter.LastName, waiter.FirstName,
		waiter.MiddleName, waiter.Salary)
	return err
}

func (r *waiterRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Waiter, error) {
	waiter := &models.Waiter{}
	query := `SELECT id, last_name, first_name, middle_name, salary FROM waiters WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&waiter.ID, &waiter.LastName,
		&waiter.FirstName, &waiter.MiddleName, &waiter.Salary)
	if err != nil {
		return nil, err
	}
	return waiter, nil
}

func (r *waiterRepo) Update(ctx context.Context, waiter *models.Waiter) error {
	query := `
		UPDATE waiters
		SET last_name = $2, first_name = $3, middle_name = $4, salary = $5
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, waiter.ID, waiter.LastName, waiter.FirstName,
		waiter.MiddleName, waiter.Salary)
	return err
}

func (r *waiterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM waiters WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *waiterRepo) List(ctx context.Context) ([]*models.Waiter, error) {
	query := `SELECT id, last_name, first_name, middle_name, salary FROM waiters ORDER BY last_name, first_name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waiters []*models.Waiter
	for rows.Next() {
		waiter := &models.Waiter{}
		if err := rows.Scan(&waiter.ID, &waiter.LastName, &waiter.FirstName,
			&waiter.MiddleName, &waiter.Salary); err != nil {
			return nil, err
		}
		waiters = append(waiters, waiter)
	}
	return waiters, rows.Err()
}
