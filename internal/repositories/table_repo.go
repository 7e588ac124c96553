package repositories

import (
	"context"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error)
	Update(ctx context.Context, table *models.Table) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Table, error)
	FindFree(ctx context.Context, date time.Time, start, end string, minSeats int) ([]*models.Table, error)
}

type tableRepo struct {
	db DBTX
}

func NewTableRepo(db DBTX) TableRepository {
	return &tableRepo{db: db}
}

func (r *tableRepo) Create(ctx context.Context, table *models.Table) error {
	query := `
		INSERT INTO tables (id, table_number, seats, status)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query, table.ID, table.TableNumber, table.Seats, table.Status)
	return err
}

func (r *tableRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	table := &models.Table{}
	query := `SELECT id, table_number, seats, status FROM tables WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&table.ID, &table.TableNumber, &table.Seats, &table.Status)
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (r *tableRepo) Update(ctx context.Context, table *models.Table) error {
	query := `UPDATE tables SET table_number = $2, seats = $3, status = $4 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, table.ID, table.TableNumber, table.Seats, table.Status)
	return err
}

func (r *tableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tables WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *tableRepo) List(ctx context.Context) ([]*models.Table, error) {
	query := `SELECT id, table_number, seats, status FROM tables ORDER BY table_number`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		table := &models.Table{}
		if err := rows.Scan(&table.ID, &table.TableNumber, &table.Seats, &table.Status); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

// FindFree lists tables with at least minSeats seats and no booking on the
// date whose half-open window intersects [start, end), ordered by table
// number for stable display.
func (r *tableRepo) FindFree(ctx context.Context, date time.Time, start, end string, minSeats int) ([]*models.Table, error) {
	query := `
		SELECT t.id, t.table_number, t.seats, t.status
		FROM tables t
		WHERE t.seats >= $4
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.table_id = t.id AND b.booking_date = $1
			  AND b.booking_start < $3::time AND $2::time < b.booking_end
		  )
		ORDER BY t.table_number
	`
	rows, err := r.db.Query(ctx, query, date, start, end, minSeats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		table := &models.Table{}
		if err := rows.Scan(&table.ID, &table.TableNumber, &table.Seats, &table.Status); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}
