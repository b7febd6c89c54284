package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nimbuserp/fx_backend/internal/adapters/cache/memory"
	"github.com/nimbuserp/fx_backend/internal/apperrors"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/nimbuserp/fx_backend/internal/core/services"
	"github.com/nimbuserp/fx_backend/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPreferenceService(t *testing.T) (*services.PreferenceService, *pubsub.Broker) {
	t.Helper()
	broker := pubsub.NewBroker()
	t.Cleanup(broker.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewPreferenceService(domain.DefaultCatalog(), memory.NewStore(), broker, nil, logger)
	return svc, broker
}

func TestGetPreferredCurrency_DefaultsToHome(t *testing.T) {
	svc, _ := newPreferenceService(t)

	got := svc.GetPreferredCurrency(context.Background(), "user-1")
	assert.Equal(t, "NGN", got)
}

func TestSetPreferredCurrency_RejectsUnknownCode(t *testing.T) {
	svc, _ := newPreferenceService(t)

	err := svc.SetPreferredCurrency(context.Background(), "user-1", "XXX")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// The failed write must not leak into reads.
	assert.Equal(t, "NGN", svc.GetPreferredCurrency(context.Background(), "user-1"))
}

func TestSetPreferredCurrency_PersistsAndBroadcasts(t *testing.T) {
	svc, broker := newPreferenceService(t)
	ctx := context.Background()

	ch, unsubscribe := broker.Subscribe()
	defer unsubscribe()

	require.NoError(t, svc.SetPreferredCurrency(ctx, "user-1", "EUR"))

	assert.Equal(t, "EUR", svc.GetPreferredCurrency(ctx, "user-1"))

	select {
	case change := <-ch:
		assert.Equal(t, domain.CurrencyChange{UserID: "user-1", Code: "EUR"}, change)
	case <-time.After(time.Second):
		t.Fatal("expected a broadcast currency change")
	}
}

func TestPreferences_AreScopedPerUser(t *testing.T) {
	svc, _ := newPreferenceService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPreferredCurrency(ctx, "user-1", "USD"))

	assert.Equal(t, "USD", svc.GetPreferredCurrency(ctx, "user-1"))
	assert.Equal(t, "NGN", svc.GetPreferredCurrency(ctx, "user-2"))
}
