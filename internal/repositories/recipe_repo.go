package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type RecipeRepository interface {
	ListByDish(ctx context.Context, dishID uuid.UUID) ([]*models.RecipeLine, error)
	ReplaceForDish(ctx context.Context, dishID uuid.UUID, lines []*models.RecipeLine) error
	RequirementsForOrder(ctx context.Context, orderID uuid.UUID) ([]*models.ProductRequirement, error)
}

type recipeRepo struct {
	db DBTX
}

func NewRecipeRepo(db DBTX) RecipeRepository {
	return &recipeRepo{db: db}
}

func (r *recipeRepo) ListByDish(ctx context.Context, dishID uuid.UUID) ([]*models.RecipeLine, error) {
	query := `
		SELECT dish_id, product_id, amount
		FROM recipes
		WHERE dish_id = $1
		ORDER BY product_id
	`
	rows, err := r.db.Query(ctx, query, dishID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.RecipeLine
	for rows.Next() {
		line := &models.RecipeLine{}
		if err := rows.Scan(&line.DishID, &line.ProductID, &line.Amount); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ReplaceForDish swaps the dish's recipe wholesale. Callers run it inside a
// transaction so readers never observe a half-replaced recipe.
func (r *recipeRepo) ReplaceForDish(ctx context.Context, dishID uuid.UUID, lines []*models.RecipeLine) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE dish_id = $1`, dishID); err != nil {
		return err
	}
	query := `INSERT INTO recipes (dish_id, product_id, amount) VALUES ($1, $2, $3)`
	for _, line := range lines {
		if _, err := r.db.Exec(ctx, query, dishID, line.ProductID, line.Amount); err != nil {
			return err
		}
	}
	return nil
}

// RequirementsForOrder aggregates how much of each product the order's items
// need, recipe amount times line quantity. Ordered by product id so
// concurrent consumptions debit rows in the same order and cannot deadlock.
func (r *recipeRepo) RequirementsForOrder(ctx context.Context, orderID uuid.UUID) ([]*models.ProductRequirement, error) {
	query := `
		SELECT rc.product_id, SUM(rc.amount * oi.quantity) AS required
		FROM order_items oi
		JOIN recipes rc ON rc.dish_id = oi.dish_id
		WHERE oi.order_id = $1
		GROUP BY rc.product_id
		ORDER BY rc.product_id
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*models.ProductRequirement
	for rows.Next() {
		req := &models.ProductRequirement{}
		if err := rows.Scan(&req.ProductID, &req.Amount); err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
