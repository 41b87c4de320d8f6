package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pos_manager/model"
)

// Payment sessions live only here: the processor enforces its own expiry, so
// the TTL mirrors it and the secret token never touches a database row.
const paymentSessionTTL = 60 * time.Minute

var ErrSessionNotFound = errors.New("payment session not found or expired")

type PaymentSessionStore struct {
	Client *redis.Client
}

func NewPaymentSessionStore(client *redis.Client) *PaymentSessionStore {
	return &PaymentSessionStore{Client: client}
}

func sessionKey(orderID uint) string {
	return fmt.Sprintf("paysession:%d", orderID)
}

// SaveSession stores the token pair for an order, replacing any previous one.
// A re-initialize therefore invalidates the older session.
func (s *PaymentSessionStore) SaveSession(ctx context.Context, session model.PaymentSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, sessionKey(session.OrderID), payload, paymentSessionTTL).Err()
}

func (s *PaymentSessionStore) GetSession(ctx context.Context, orderID uint) (*model.PaymentSession, error) {
	raw, err := s.Client.Get(ctx, sessionKey(orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session model.PaymentSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *PaymentSessionStore) DeleteSession(ctx context.Context, orderID uint) error {
	return s.Client.Del(ctx, sessionKey(orderID)).Err()
}
