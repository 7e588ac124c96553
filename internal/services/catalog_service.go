package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"restomart/internal/caching"
	"restomart/internal/common"
	"restomart/internal/models"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

const (
	dishCacheTTL  = 10 * time.Minute
	photoURLValid = 15 * time.Minute
)

// CatalogServiceInterface manages the menu: dishes, their recipes and their
// photos. Recipe replacement is transactional so an order consumed mid-edit
// sees either the old recipe or the new one, never a mix.
type CatalogServiceInterface interface {
	CreateDish(ctx context.Context, dish *models.Dish) (*models.Dish, error)
	GetDish(ctx context.Context, id uuid.UUID) (*models.Dish, error)
	UpdateDish(ctx context.Context, dish *models.Dish) (*models.Dish, error)
	DeleteDish(ctx context.Context, id uuid.UUID) error
	ListDishes(ctx context.Context) ([]*models.Dish, error)

	GetRecipe(ctx context.Context, dishID uuid.UUID) ([]*models.RecipeLine, error)
	ReplaceRecipe(ctx context.Context, dishID uuid.UUID, lines []*models.RecipeLine) error

	UploadDishPhoto(ctx context.Context, dishID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) error
	DishPhotoURL(ctx context.Context, dishID uuid.UUID) (string, error)
}

type catalogService struct {
	db     repositories.TxStarter
	cache  caching.CacheService
	minio  MinioService
	bucket string
}

func NewCatalogService(db repositories.TxStarter, cache caching.CacheService, minio MinioService, bucket string) CatalogServiceInterface {
	return &catalogService{db: db, cache: cache, minio: minio, bucket: bucket}
}

func validateDish(dish *models.Dish) error {
	if dish.Name == "" {
		return fmt.Errorf("%w: dish name is required", common.ErrInvalidArgument)
	}
	if dish.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", common.ErrInvalidArgument)
	}
	return nil
}

func (s *catalogService) CreateDish(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	if err := validateDish(dish); err != nil {
		return nil, err
	}
	if dish.ID == uuid.Nil {
		dish.ID = uuid.New()
	}
	dishes := repositories.NewDishRepo(s.db)
	if err := dishes.Create(ctx, dish); err != nil {
		return nil, common.ClassifyDBError("create dish", err)
	}
	return dishes.GetByID(ctx, dish.ID)
}

func (s *catalogService) GetDish(ctx context.Context, id uuid.UUID) (*models.Dish, error) {
	if cached, err := s.cache.GetDish(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	dish, err := repositories.NewDishRepo(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, common.ClassifyDBError("get dish", err)
	}

	if err := s.cache.SetDish(ctx, dish, dishCacheTTL); err != nil {
		log.Printf("WARN: failed to cache dish %s: %v", id, err)
	}
	return dish, nil
}

func (s *catalogService) UpdateDish(ctx context.Context, dish *models.Dish) (*models.Dish, error) {
	if err := validateDish(dish); err != nil {
		return nil, err
	}

	dishes := repositories.NewDishRepo(s.db)
	if _, err := dishes.GetByID(ctx, dish.ID); err != nil {
		return nil, common.ClassifyDBError("get dish", err)
	}
	if err := dishes.Update(ctx, dish); err != nil {
		return nil, common.ClassifyDBError("update dish", err)
	}

	s.invalidateDish(ctx, dish.ID)
	return dishes.GetByID(ctx, dish.ID)
}

func (s *catalogService) DeleteDish(ctx context.Context, id uuid.UUID) error {
	dishes := repositories.NewDishRepo(s.db)
	dish, err := dishes.GetByID(ctx, id)
	if err != nil {
		return common.ClassifyDBError("get dish", err)
	}
	if err := dishes.Delete(ctx, id); err != nil {
		return common.ClassifyDBError("delete dish", err)
	}

	if dish.PhotoObject != nil {
		if err := s.minio.DeleteImage(ctx, s.bucket, *dish.PhotoObject); err != nil {
			log.Printf("WARN: failed to delete photo for dish %s: %v", id, err)
		}
	}
	s.invalidateDish(ctx, id)
	return nil
}

func (s *catalogService) ListDishes(ctx context.Context) ([]*models.Dish, error) {
	dishes, err := repositories.NewDishRepo(s.db).List(ctx)
	if err != nil {
		return nil, common.ClassifyDBError("list dishes", err)
	}
	return dishes, nil
}

func (s *catalogService) GetRecipe(ctx context.Context, dishID uuid.UUID) ([]*models.RecipeLine, error) {
	if _, err := repositories.NewDishRepo(s.db).GetByID(ctx, dishID); err != nil {
		return nil, common.ClassifyDBError("get dish", err)
	}
	lines, err := repositories.NewRecipeRepo(s.db).ListByDish(ctx, dishID)
	if err != nil {
		return nil, common.ClassifyDBError("get recipe", err)
	}
	return lines, nil
}

// ReplaceRecipe swaps the dish's recipe wholesale in one transaction. Every
// referenced product must exist and every amount must be positive.
func (s *catalogService) ReplaceRecipe(ctx context.Context, dishID uuid.UUID, lines []*models.RecipeLine) error {
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if !line.Amount.IsPositive() {
			return fmt.Errorf("%w: recipe amount must be positive", common.ErrInvalidArgument)
		}
		if seen[line.ProductID] {
			return fmt.Errorf("%w: duplicate product in recipe", common.ErrInvalidArgument)
		}
		seen[line.ProductID] = true
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return common.ClassifyDBError("begin replace recipe", err)
	}
	defer tx.Rollback(ctx)

	if _, err := repositories.NewDishRepo(tx).GetByID(ctx, dishID); err != nil {
		return common.ClassifyDBError("get dish", err)
	}

	products := repositories.NewProductRepo(tx)
	for _, line := range lines {
		if _, err := products.GetByID(ctx, line.ProductID); err != nil {
			return common.ClassifyDBError("lookup recipe product", err)
		}
	}

	if err := repositories.NewRecipeRepo(tx).ReplaceForDish(ctx, dishID, lines); err != nil {
		return common.ClassifyDBError("replace recipe", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return common.ClassifyDBError("commit replace recipe", err)
	}
	return nil
}

// UploadDishPhoto stores the image and records its object name on the dish.
// A previous photo is removed after the new one is in place.
func (s *catalogService) UploadDishPhoto(ctx context.Context, dishID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) error {
	dishes := repositories.NewDishRepo(s.db)
	dish, err := dishes.GetByID(ctx, dishID)
	if err != nil {
		return common.ClassifyDBError("get dish", err)
	}

	objectName := fmt.Sprintf("dishes/%s/%s", dishID.String(), filename)
	if err := s.minio.UploadImage(ctx, s.bucket, objectName, reader, size, contentType); err != nil {
		return fmt.Errorf("upload dish photo: %w", err)
	}
	if err := dishes.SetPhotoObject(ctx, dishID, objectName); err != nil {
		return common.ClassifyDBError("record dish photo", err)
	}

	if dish.PhotoObject != nil && *dish.PhotoObject != objectName {
		if err := s.minio.DeleteImage(ctx, s.bucket, *dish.PhotoObject); err != nil {
			log.Printf("WARN: failed to delete old photo for dish %s: %v", dishID, err)
		}
	}
	s.invalidateDish(ctx, dishID)
	return nil
}

func (s *catalogService) DishPhotoURL(ctx context.Context, dishID uuid.UUID) (string, error) {
	dish, err := s.GetDish(ctx, dishID)
	if err != nil {
		return "", err
	}
	if dish.PhotoObject == nil {
		return "", fmt.Errorf("%w: dish has no photo", common.ErrNotFound)
	}
	url, err := s.minio.GetPresignedURL(ctx, s.bucket, *dish.PhotoObject, photoURLValid)
	if err != nil {
		return "", fmt.Errorf("presign dish photo: %w", err)
	}
	return url, nil
}

func (s *catalogService) invalidateDish(ctx context.Context, id uuid.UUID) {
	if err := s.cache.DeleteDish(ctx, id); err != nil {
		log.Printf("WARN: failed to invalidate dish %s: %v", id, err)
	}
}
