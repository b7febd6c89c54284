package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nimbuserp/fx_backend/internal/apperrors"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/nimbuserp/fx_backend/internal/core/ports"
)

// EventRatesUpdated is published after every successful live fetch.
const EventRatesUpdated = "fx.rates.updated"

// RateServiceOption customizes a RateService.
type RateServiceOption func(*RateService)

// WithRateHistory enables persisting fetched rates for reporting.
func WithRateHistory(repo ports.RateHistoryRepository) RateServiceOption {
	return func(s *RateService) { s.history = repo }
}

// WithRatePublisher announces successful fetches to sibling services.
func WithRatePublisher(pub ports.EventPublisher) RateServiceOption {
	return func(s *RateService) { s.events = pub }
}

// WithRateClock substitutes the time source; tests use this to cross the
// cache freshness boundary.
func WithRateClock(now func() time.Time) RateServiceOption {
	return func(s *RateService) { s.now = now }
}

// RateService obtains a current rate set, preferring the cache, then the
// primary provider, then the secondary provider, then the compiled-in
// fallback table. It never fails the caller: every path resolves to a usable
// RateResult, and provider trouble surfaces only as warnings and a degraded
// Source.
type RateService struct {
	catalog          *domain.Catalog
	cache            ports.RateCache
	primary          ports.RateProvider
	secondary        ports.RateProvider
	history          ports.RateHistoryRepository
	events           ports.EventPublisher
	logger           *slog.Logger
	staleness        time.Duration
	intermediary     string  // base currency of the secondary provider
	intermediaryRate float64 // approximate home units per intermediary unit
	now              func() time.Time
}

// NewRateService creates a RateService. staleness bounds how long a cached
// set is trusted; intermediaryRate is the hard-coded home-per-intermediary
// constant used to re-base the secondary provider's rates.
func NewRateService(
	catalog *domain.Catalog,
	cache ports.RateCache,
	primary, secondary ports.RateProvider,
	logger *slog.Logger,
	staleness time.Duration,
	intermediary string,
	intermediaryRate float64,
	opts ...RateServiceOption,
) *RateService {
	s := &RateService{
		catalog:          catalog,
		cache:            cache,
		primary:          primary,
		secondary:        secondary,
		logger:           logger,
		staleness:        staleness,
		intermediary:     intermediary,
		intermediaryRate: intermediaryRate,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentRates returns home-based rates, preferring the cache.
func (s *RateService) CurrentRates(ctx context.Context) domain.RateResult {
	return s.FetchRates(ctx, s.catalog.HomeCode())
}

// FetchRates returns rates for base. A fresh cached set with a matching base
// short-circuits all network activity.
func (s *RateService) FetchRates(ctx context.Context, base string) domain.RateResult {
	if cached := s.freshCached(ctx, base); cached != nil {
		return domain.RateResult{Set: *cached, Source: domain.RateSourceCached}
	}

	set, err := s.primary.FetchRates(ctx, base, s.catalog.Codes())
	if err != nil {
		s.logger.Warn("primary rate fetch failed, serving fallback rates",
			slog.String("provider", s.primary.Name()),
			slog.String("base", base),
			slog.String("error", err.Error()),
		)
		return domain.NewFallbackResult(s.catalog.HomeCode(), s.now())
	}

	normalized := s.normalize(*set, base)
	s.store(ctx, normalized, s.primary.Name())
	return domain.RateResult{Set: normalized, Source: domain.RateSourceLive}
}

// FetchRatesViaIntermediary returns home-based rates from the secondary
// provider, whose supported currency set excludes the home currency. Rates
// arrive relative to the intermediary currency and are re-based using the
// hard-coded approximate constant, restricted to catalog currencies. Once the
// cache is warm this behaves identically to FetchRates.
func (s *RateService) FetchRatesViaIntermediary(ctx context.Context) domain.RateResult {
	home := s.catalog.HomeCode()
	if cached := s.freshCached(ctx, home); cached != nil {
		return domain.RateResult{Set: *cached, Source: domain.RateSourceCached}
	}

	set, err := s.secondary.FetchRates(ctx, s.intermediary, s.catalog.Codes())
	if err != nil {
		s.logger.Warn("secondary rate fetch failed, serving fallback rates",
			slog.String("provider", s.secondary.Name()),
			slog.String("intermediary", s.intermediary),
			slog.String("error", err.Error()),
		)
		return domain.NewFallbackResult(home, s.now())
	}

	rebased := s.rebase(*set)
	s.store(ctx, rebased, s.secondary.Name())
	return domain.RateResult{Set: rebased, Source: domain.RateSourceLive}
}

// RefreshRates bypasses the cache: primary first, then the secondary via the
// intermediary, then fallback.
func (s *RateService) RefreshRates(ctx context.Context) domain.RateResult {
	home := s.catalog.HomeCode()

	if set, err := s.primary.FetchRates(ctx, home, s.catalog.Codes()); err == nil {
		normalized := s.normalize(*set, home)
		s.store(ctx, normalized, s.primary.Name())
		return domain.RateResult{Set: normalized, Source: domain.RateSourceLive}
	} else {
		s.logger.Warn("primary rate refresh failed, trying secondary",
			slog.String("provider", s.primary.Name()),
			slog.String("error", err.Error()),
		)
	}

	if set, err := s.secondary.FetchRates(ctx, s.intermediary, s.catalog.Codes()); err == nil {
		rebased := s.rebase(*set)
		s.store(ctx, rebased, s.secondary.Name())
		return domain.RateResult{Set: rebased, Source: domain.RateSourceLive}
	} else {
		s.logger.Warn("secondary rate refresh failed, serving fallback rates",
			slog.String("provider", s.secondary.Name()),
			slog.String("error", err.Error()),
		)
	}

	return domain.NewFallbackResult(home, s.now())
}

// History lists persisted rate rows for reporting screens.
func (s *RateService) History(ctx context.Context, base string, limit int) ([]domain.RateHistoryEntry, error) {
	if s.history == nil {
		return nil, fmt.Errorf("rate history is not configured: %w", apperrors.ErrNotFound)
	}
	if base == "" {
		base = s.catalog.HomeCode()
	}
	return s.history.ListEntries(ctx, base, limit)
}

// freshCached returns the cached set for base when it exists, matches base
// and is younger than the staleness window.
func (s *RateService) freshCached(ctx context.Context, base string) *domain.ExchangeRateSet {
	cached, err := s.cache.Get(ctx, base)
	if err != nil {
		return nil
	}
	if cached.Base != base || cached.Age(s.now()) >= s.staleness {
		return nil
	}
	return cached
}

// normalize stamps a provider response and fills defaulted fields.
func (s *RateService) normalize(set domain.ExchangeRateSet, base string) domain.ExchangeRateSet {
	now := s.now()
	if set.Base == "" {
		set.Base = base
	}
	if set.Date == "" {
		set.Date = now.Format("2006-01-02")
	}
	if set.Rates == nil {
		set.Rates = map[string]float64{}
	}
	set.Rates[set.Base] = 1
	set.LastUpdated = now
	return set
}

// rebase converts an intermediary-based set into a home-based one and drops
// currencies outside the catalog.
func (s *RateService) rebase(set domain.ExchangeRateSet) domain.ExchangeRateSet {
	home := s.catalog.HomeCode()
	rates := make(map[string]float64, s.catalog.Size())
	rates[home] = 1
	rates[s.intermediary] = 1 / s.intermediaryRate
	for code, r := range set.Rates {
		if code == home || code == s.intermediary || !s.catalog.Has(code) {
			continue
		}
		if r > 0 {
			rates[code] = r / s.intermediaryRate
		}
	}

	now := s.now()
	date := set.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	return domain.ExchangeRateSet{
		Base:        home,
		Date:        date,
		Rates:       rates,
		LastUpdated: now,
	}
}

// store persists a normalized set to the cache and, when configured, the
// history table and the event bus. Persistence trouble is non-fatal.
func (s *RateService) store(ctx context.Context, set domain.ExchangeRateSet, providerName string) {
	if err := s.cache.Put(ctx, set); err != nil {
		s.logger.Warn("failed to cache rate set",
			slog.String("base", set.Base),
			slog.String("error", err.Error()),
		)
	}
	if s.history != nil {
		if err := s.history.SaveRateSet(ctx, set, providerName); err != nil {
			s.logger.Warn("failed to persist rate history",
				slog.String("base", set.Base),
				slog.String("error", err.Error()),
			)
		}
	}
	if s.events != nil {
		s.events.Publish(EventRatesUpdated, set.Base, set)
	}
}
