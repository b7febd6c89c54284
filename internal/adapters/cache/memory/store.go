// Package memory is the in-process fallback for the rate cache and the
// preference store, used in development and tests when no Redis is
// configured. Single-replica only: nothing is shared or durable.
package memory

import (
	"context"
	"sync"

	"github.com/nimbuserp/fx_backend/internal/apperrors"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
)

// Store implements ports.RateCache and ports.PreferenceStore with maps.
type Store struct {
	mu    sync.RWMutex
	rates map[string]domain.ExchangeRateSet
	prefs map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		rates: make(map[string]domain.ExchangeRateSet),
		prefs: make(map[string]string),
	}
}

// Get retrieves the cached rate set for base.
func (s *Store) Get(_ context.Context, base string) (*domain.ExchangeRateSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.rates[base]
	if !ok {
		return nil, apperrors.ErrCacheMiss
	}
	out := set
	return &out, nil
}

// Put stores set under its base.
func (s *Store) Put(_ context.Context, set domain.ExchangeRateSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[set.Base] = set
	return nil
}

// GetPreferredCurrency reads the stored preference for userID.
func (s *Store) GetPreferredCurrency(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.prefs[userID]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return code, nil
}

// SetPreferredCurrency stores code for userID.
func (s *Store) SetPreferredCurrency(_ context.Context, userID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[userID] = code
	return nil
}
