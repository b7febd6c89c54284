package ports

import (
	"context"

	"github.com/nimbuserp/fx_backend/internal/core/domain"
)

// RateCache is the durable key-value store holding the last successfully
// fetched rate set per base currency. Implementations return
// apperrors.ErrCacheMiss for absent or unreadable entries; a corrupt record
// is a miss, never a failure.
type RateCache interface {
	// Get retrieves the cached rate set for base, regardless of age.
	// Freshness is judged by the caller against the staleness window.
	Get(ctx context.Context, base string) (*domain.ExchangeRateSet, error)

	// Put persists set, overwriting any previous record for its base.
	Put(ctx context.Context, set domain.ExchangeRateSet) error
}

// PreferenceStore persists each user's preferred display currency.
type PreferenceStore interface {
	// GetPreferredCurrency returns the stored code for userID, or
	// apperrors.ErrNotFound when the user never chose one.
	GetPreferredCurrency(ctx context.Context, userID string) (string, error)

	// SetPreferredCurrency stores code for userID.
	SetPreferredCurrency(ctx context.Context, userID, code string) error
}

// RateProvider fetches a rate set from an external HTTP rate source.
type RateProvider interface {
	// Name identifies the provider in logs and history rows.
	Name() string

	// FetchRates fetches multipliers relative to base for the given target
	// symbols. Implementations return apperrors.ErrProviderUnavailable for
	// non-2xx responses or malformed payloads.
	FetchRates(ctx context.Context, base string, symbols []string) (*domain.ExchangeRateSet, error)
}

// AmountFormatter is the locale-dependent formatting engine, injected so the
// conversion logic stays testable independent of any locale implementation.
type AmountFormatter interface {
	// FormatDecimal renders amount with locale-aware grouping and the given
	// fraction digit bounds, without any currency symbol.
	FormatDecimal(amount float64, locale string, minFrac, maxFrac int) (string, error)
}

// RateHistoryRepository persists fetched rates for reporting screens.
type RateHistoryRepository interface {
	SaveRateSet(ctx context.Context, set domain.ExchangeRateSet, source string) error
	ListEntries(ctx context.Context, base string, limit int) ([]domain.RateHistoryEntry, error)
}

// EventPublisher announces rate and preference changes to sibling services.
// Publishing is fire-and-forget; a broker outage must never fail the caller.
type EventPublisher interface {
	Publish(event string, key string, payload any)
	Close()
}

// Broker is the in-process publish/subscribe channel for currency-preference
// changes. Subscribe returns the receiving channel and an unsubscribe
// function tied to the consumer's lifetime.
type Broker interface {
	Subscribe() (<-chan domain.CurrencyChange, func())
	Publish(change domain.CurrencyChange)
}
