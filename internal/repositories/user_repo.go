package repositories

import (
	"context"

	"restomart/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, login, password_hash, role, guest_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Login, user.PasswordHash, user.Role, user.GuestID)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, login, password_hash, role, guest_id FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&user.ID, &user.Login, &user.PasswordHash, &user.Role, &user.GuestID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, login, password_hash, role, guest_id FROM users WHERE login = $1`
	err := r.db.QueryRow(ctx, query, login).Scan(&user.ID, &user.Login, &user.PasswordHash, &user.Role, &user.GuestID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
