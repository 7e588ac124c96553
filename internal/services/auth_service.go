package services

import (
	"context"
	"fmt"
	"time"

	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, login, password, role string, guestID *uuid.UUID) (*models.User, error)
	Login(ctx context.Context, login, password string) (string, *models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type authService struct {
	db        repositories.TxStarter
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(db repositories.TxStarter, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{db: db, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

func (s *authService) Register(ctx context.Context, login, password, role string, guestID *uuid.UUID) (*models.User, error) {
	if login == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: login and a password of at least 8 characters are required", common.ErrInvalidArgument)
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrInvalidArgument, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: string(hash),
		Role:         role,
		GuestID:      guestID,
	}
	if err := repositories.NewUserRepo(s.db).Create(ctx, user); err != nil {
		return nil, common.ClassifyDBError("create user", err)
	}
	return user, nil
}

// Login verifies credentials and returns a signed token carrying the user id
// as subject plus a role claim.
func (s *authService) Login(ctx context.Context, login, password string) (string, *models.User, error) {
	user, err := repositories.NewUserRepo(s.db).GetByLogin(ctx, login)
	if err != nil {
		// Same error for unknown login and bad password.
		return "", nil, fmt.Errorf("%w: invalid credentials", common.ErrInvalidArgument)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", common.ErrInvalidArgument)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, user, nil
}

func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := repositories.NewUserRepo(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, common.ClassifyDBError("get user", err)
	}
	return user, nil
}
