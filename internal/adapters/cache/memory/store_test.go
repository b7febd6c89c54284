package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/nimbuserp/fx_backend/internal/adapters/cache/memory"
	"github.com/nimbuserp/fx_backend/internal/apperrors"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RateCacheRoundTrip(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "NGN")
	assert.ErrorIs(t, err, apperrors.ErrCacheMiss)

	set := domain.ExchangeRateSet{
		Base:        "NGN",
		Date:        "2026-08-28",
		Rates:       map[string]float64{"NGN": 1, "USD": 0.000625},
		LastUpdated: time.Now(),
	}
	require.NoError(t, store.Put(ctx, set))

	got, err := store.Get(ctx, "NGN")
	require.NoError(t, err)
	assert.Equal(t, set.Rates, got.Rates)

	// Sets are keyed by base.
	_, err = store.Get(ctx, "USD")
	assert.ErrorIs(t, err, apperrors.ErrCacheMiss)
}

func TestStore_PreferenceRoundTrip(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	_, err := store.GetPreferredCurrency(ctx, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, store.SetPreferredCurrency(ctx, "user-1", "EUR"))

	code, err := store.GetPreferredCurrency(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "EUR", code)
}
