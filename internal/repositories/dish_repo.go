package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type DishRepository interface {
	Create(ctx context.Context, dish *models.Dish) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dish, error)
	Update(ctx context.Context, dish *models.Dish) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Dish, error)
	SetPhotoObject(ctx context.Context, id uuid.UUID, objectName string) error
}

type dishRepo struct {
	db DBTX
}

func NewDishRepo(db DBTX) DishRepository {
	return &dishRepo{db: db}
}

const dishColumns = `id, name, category, price, country_of_origin, photo_object, created_at, updated_at`

func (r *dishRepo) Create(ctx context.Context, dish *models.Dish) error {
	query := `
		INSERT INTO dishes (id, name, category, price, country_of_origin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, dish.ID, dish.Name, dish.Category, dish.Price, dish.CountryOfOrigin)
	return err
}

func (r *dishRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	dish := &models.Dish{}
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&dish.ID, &dish.Name, &dish.Category,
		&dish.Price, &dish.CountryOfOrigin, &dish.PhotoObject, &dish.CreatedAt, &dish.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return dish, nil
}

// Update edits the dish reference row. Existing order lines keep their
// snapshotted price; only future inserts see the new one.
func (r *dishRepo) Update(ctx context.Context, dish *models.Dish) error {
	query := `
		UPDATE dishes
		SET name = $2, category = $3, price = $4, country_of_origin = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, dish.ID, dish.Name, dish.Category, dish.Price, dish.CountryOfOrigin)
	return err
}

func (r *dishRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM dishes WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *dishRepo) List(ctx context.Context) ([]*models.Dish, error) {
	query := `SELECT ` + dishColumns + ` FROM dishes ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []*models.Dish
	for rows.Next() {
		dish := &models.Dish{}
		if err := rows.Scan(&dish.ID, &dish.Name, &dish.Category, &dish.Price,
			&dish.CountryOfOrigin, &dish.PhotoObject, &dish.CreatedAt, &dish.UpdatedAt); err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	return dishes, rows.Err()
}

func (r *dishRepo) SetPhotoObject(ctx context.Context, id uuid.UUID, objectName string) error {
	query := `UPDATE dishes SET photo_object = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, objectName)
	return err
}
