package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Supplier, error)
}

type supplierRepo struct {
	db DBTX
}

func NewSupplierRepo(db DBTX) SupplierRepository {
	return &supplierRepo{db: db}
}

func (r *supplierRepo) Create(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, address, contact_person, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, supplier.ID, supplier.Name, supplier.Address,
		supplier.ContactPerson, supplier.Phone, supplier.Email)
	return err
}

func (r *supplierRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier := &models.Supplier{}
	query := `SELECT id, name, address, contact_person, phone, email FROM suppliers WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&supplier.ID, &supplier.Name, &supplier.Address,
		&supplier.ContactPerson, &supplier.Phone, &supplier.Email)
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

func (r *supplierRepo) Update(ctx context.Context, supplier *models.Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $2, address = $3, contact_person = $4, phone = $5, email = $6
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, supplier.ID, supplier.Name, supplier.Address,
		supplier.ContactPerson, supplier.Phone, supplier.Email)
	return err
}

func (r *supplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM suppliers WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *supplierRepo) List(ctx context.Context) ([]*models.Supplier, error) {
	query := `SELECT id, name, address, contact_person, phone, email FROM suppliers ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*models.Supplier
	for rows.Next() {
		supplier := &models.Supplier{}
		if err := rows.Scan(&supplier.ID, &supplier.Name, &supplier.Address,
			&supplier.ContactPerson, &supplier.Phone, &supplier.Email); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}
