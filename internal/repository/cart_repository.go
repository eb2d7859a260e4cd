package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plm-dev/enlistment-api/internal/models"
)

// CartRepository persists per-student selection carts in Redis. A cart lives
// only until finalize, explicit clear, or TTL expiry.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository constructs a cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &CartRepository{client: client, ttl: ttl}
}

func cartKey(studentID string) string {
	return "cart:" + studentID
}

// Get returns the student's cart, or an empty cart when none is stored.
func (r *CartRepository) Get(ctx context.Context, studentID string) (models.Cart, error) {
	empty := models.Cart{StudentID: studentID}
	if r.client == nil {
		return empty, nil
	}
	raw, err := r.client.Get(ctx, cartKey(studentID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return empty, nil
		}
		return empty, fmt.Errorf("redis get cart: %w", err)
	}
	var cart models.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return empty, fmt.Errorf("unmarshal cart: %w", err)
	}
	cart.StudentID = studentID
	return cart, nil
}

// Save stores the cart, refreshing its TTL.
func (r *CartRepository) Save(ctx context.Context, cart models.Cart) error {
	if r.client == nil {
		return nil
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := r.client.Set(ctx, cartKey(cart.StudentID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}
	return nil
}

// Delete removes the student's cart.
func (r *CartRepository) Delete(ctx context.Context, studentID string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, cartKey(studentID)).Err(); err != nil {
		return fmt.Errorf("redis delete cart: %w", err)
	}
	return nil
}
