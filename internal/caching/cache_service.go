package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"restomart/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Dish caching
	GetDish(ctx context.Context, dishID uuid.UUID) (*models.Dish, error)
	SetDish(ctx context.Context, dish *models.Dish, ttl time.Duration) error
	DeleteDish(ctx context.Context, dishID uuid.UUID) error

	// Product caching
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	// Report caching; payloads are opaque JSON keyed by report name
	GetReport(ctx context.Context, name string) ([]byte, error)
	SetReport(ctx context.Context, name string, payload []byte, ttl time.Duration) error
	DeleteReport(ctx context.Context, name string) error
	InvalidateReports(ctx context.Context) error

	InvalidateAllCache(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetDish(ctx context.Context, dishID uuid.UUID) (*models.Dish, error) {
	key := fmt.Sprintf("restomart:dish:%s", dishID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var dish models.Dish
	if err := json.Unmarshal(data, &dish); err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *redisCacheService) SetDish(ctx context.Context, dish *models.Dish, ttl time.Duration) error {
	key := fmt.Sprintf("restomart:dish:%s", dish.ID.String())
	data, err := json.Marshal(dish)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteDish(ctx context.Context, dishID uuid.UUID) error {
	key := fmt.Sprintf("restomart:dish:%s", dishID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	key := fmt.Sprintf("restomart:product:%s", productID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	key := fmt.Sprintf("restomart:product:%s", product.ID.String())
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	key := fmt.Sprintf("restomart:product:%s", productID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetReport(ctx context.Context, name string) ([]byte, error) {
	key := fmt.Sprintf("restomart:report:%s", name)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}
	return data, nil
}

func (r *redisCacheService) SetReport(ctx context.Context, name string, payload []byte, ttl time.Duration) error {
	key := fmt.Sprintf("restomart:report:%s", name)
	return r.client.Set(ctx, key, payload, ttl).Err()
}

func (r *redisCacheService) DeleteReport(ctx context.Context, name string) error {
	key := fmt.Sprintf("restomart:report:%s", name)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) InvalidateReports(ctx context.Context) error {
	return r.deleteByPattern(ctx, "restomart:report:*")
}

func (r *redisCacheService) InvalidateAllCache(ctx context.Context) error {
	return r.deleteByPattern(ctx, "restomart:*")
}

func (r *redisCacheService) deleteByPattern(ctx context.Context, pattern string) error {
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}
