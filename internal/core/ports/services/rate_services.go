package services

import (
	"context"

	"github.com/nimbuserp/fx_backend/internal/core/domain"
)

// RateSvcFacade obtains current exchange rates. Fetch operations always
// resolve to a usable RateResult; provider failures degrade to cached data
// and then to the compiled-in fallback table.
type RateSvcFacade interface {
	// CurrentRates returns rates based on the home currency, preferring the
	// cache over the network.
	CurrentRates(ctx context.Context) domain.RateResult

	// FetchRates returns rates for an explicit base via the primary provider.
	FetchRates(ctx context.Context, base string) domain.RateResult

	// FetchRatesViaIntermediary returns home-based rates via the secondary
	// provider, re-based from the intermediary currency.
	FetchRatesViaIntermediary(ctx context.Context) domain.RateResult

	// RefreshRates bypasses the cache and refetches immediately.
	RefreshRates(ctx context.Context) domain.RateResult

	// History lists persisted rate rows for reporting. Returns
	// apperrors.ErrNotFound when history persistence is not configured.
	History(ctx context.Context, base string, limit int) ([]domain.RateHistoryEntry, error)
}

// PreferenceSvcFacade manages each user's preferred display currency.
type PreferenceSvcFacade interface {
	// GetPreferredCurrency returns the user's stored preference, degrading
	// to the home currency when unset or unreadable.
	GetPreferredCurrency(ctx context.Context, userID string) string

	// SetPreferredCurrency validates, persists and broadcasts the change.
	SetPreferredCurrency(ctx context.Context, userID, code string) error
}
