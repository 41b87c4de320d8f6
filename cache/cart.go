package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pos_manager/model"
)

// Carts are checkout sessions, not rows. The TTL is refreshed on every write
// so an active terminal never loses its cart mid-order.
const cartTTL = 4 * time.Hour

var ErrCartNotFound = errors.New("cart not found or expired")

type CartStore struct {
	Client *redis.Client
}

func NewCartStore(client *redis.Client) *CartStore {
	return &CartStore{Client: client}
}

func cartKey(orgID uint, cartID string) string {
	return fmt.Sprintf("cart:%d:%s", orgID, cartID)
}

// CreateCart opens an empty cart session and returns it.
func (s *CartStore) CreateCart(ctx context.Context, orgID uint) (*model.Cart, error) {
	now := time.Now()
	cart := &model.Cart{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Lines:          []model.CartLine{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartStore) GetCart(ctx context.Context, orgID uint, cartID string) (*model.Cart, error) {
	raw, err := s.Client.Get(ctx, cartKey(orgID, cartID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	var cart model.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartStore) SaveCart(ctx context.Context, cart *model.Cart) error {
	cart.UpdatedAt = time.Now()
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, cartKey(cart.OrganizationID, cart.ID), payload, cartTTL).Err()
}

// DeleteCart destroys the session (checkout or explicit clear).
func (s *CartStore) DeleteCart(ctx context.Context, orgID uint, cartID string) error {
	return s.Client.Del(ctx, cartKey(orgID, cartID)).Err()
}
