// Package rediscache backs the rate cache and the preference store with
// Redis, the durable key-value storage shared by all API replicas.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nimbuserp/fx_backend/internal/apperrors"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const (
	rateKeyPrefix = "fx:rates:"
	prefKeyPrefix = "fx:pref:"
)

// Connect parses a Redis URL, connects and verifies the connection.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

// Store implements ports.RateCache and ports.PreferenceStore over Redis.
// Rate records expire after the retention window; preferences never expire.
type Store struct {
	client    *redis.Client
	retention time.Duration
}

// NewStore creates a Store. retention bounds how long a cached rate set is
// kept at all; freshness within that window is judged by the rate service.
func NewStore(client *redis.Client, retention time.Duration) *Store {
	return &Store{client: client, retention: retention}
}

// Get retrieves the cached rate set for base. Absent keys and corrupt
// records are both cache misses, never failures.
func (s *Store) Get(ctx context.Context, base string) (*domain.ExchangeRateSet, error) {
	data, err := s.client.Get(ctx, rateKeyPrefix+base).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCacheMiss, err)
	}

	var set domain.ExchangeRateSet
	if err := json.Unmarshal(data, &set); err != nil {
		// Corrupt record; treat as a miss so it gets overwritten.
		return nil, fmt.Errorf("%w: corrupt cache record: %v", apperrors.ErrCacheMiss, err)
	}
	return &set, nil
}

// Put persists set under its base, replacing any previous record.
func (s *Store) Put(ctx context.Context, set domain.ExchangeRateSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode rate set: %w", err)
	}
	if err := s.client.Set(ctx, rateKeyPrefix+set.Base, data, s.retention).Err(); err != nil {
		return fmt.Errorf("failed to write rate cache: %w", err)
	}
	return nil
}

// GetPreferredCurrency reads the stored preference for userID.
func (s *Store) GetPreferredCurrency(ctx context.Context, userID string) (string, error) {
	code, err := s.client.Get(ctx, prefKeyPrefix+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to read currency preference: %w", err)
	}
	return code, nil
}

// SetPreferredCurrency stores code for userID without expiry.
func (s *Store) SetPreferredCurrency(ctx context.Context, userID, code string) error {
	if err := s.client.Set(ctx, prefKeyPrefix+userID, code, 0).Err(); err != nil {
		return fmt.Errorf("failed to write currency preference: %w", err)
	}
	return nil
}
