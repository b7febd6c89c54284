package services

import (
	"context"
	"sync"
	"time"

	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/nimbuserp/fx_backend/internal/core/ports"
	"github.com/shopspring/decimal"
)

// SessionConfig tunes how a CurrencySession keeps its rate table current.
type SessionConfig struct {
	// Staleness is how long a fetched result is trusted before a refetch is
	// considered.
	Staleness time.Duration
	// Retention is how long a previously fetched result may keep serving
	// reads when refetches keep failing. Past it, the session falls back to
	// the compiled-in table.
	Retention time.Duration
	// Retries is how many extra fetch attempts are made when a fetch comes
	// back degraded before giving up on this refresh cycle.
	Retries int
}

// DefaultSessionConfig returns the production tuning: one hour staleness,
// 24 hour retention, two retries.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Staleness: time.Hour,
		Retention: 24 * time.Hour,
		Retries:   2,
	}
}

// SessionOption customizes a CurrencySession.
type SessionOption func(*CurrencySession)

// WithSessionClock substitutes the time source; tests use this to move the
// staleness and retention windows without sleeping.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *CurrencySession) { s.now = now }
}

// CurrencySession binds the currency service, the rate fetcher and a user's
// persisted preference into one consistent read/format/convert surface. The
// session subscribes to the in-process currency-changed broadcast, so every
// session for the same user converges on a preference change without being
// told explicitly. Rates are fetched lazily through the secondary
// (intermediary) strategy and refreshed per the staleness window.
//
// No session operation fails for rate problems; degraded reads carry the
// fallback source. Close releases the broadcast subscription.
type CurrencySession struct {
	userID   string
	currency *CurrencyService
	rates    *RateService
	prefs    *PreferenceService
	cfg      SessionConfig
	now      func() time.Time

	mu       sync.RWMutex
	selected string
	result   domain.RateResult
	// dataFetchedAt is when the held result was last replaced; the retention
	// window runs from here. attemptedAt is when a refresh last ran, whether
	// or not it succeeded; the staleness window runs from here so failing
	// providers are not hammered on every read.
	dataFetchedAt time.Time
	attemptedAt   time.Time
	hasResult     bool

	unsubscribe func()
}

// NewCurrencySession creates a session for userID, initialized from the
// persisted preference, and triggers the initial rate fetch.
func NewCurrencySession(
	ctx context.Context,
	currency *CurrencyService,
	rates *RateService,
	prefs *PreferenceService,
	broker ports.Broker,
	userID string,
	cfg SessionConfig,
	opts ...SessionOption,
) *CurrencySession {
	s := &CurrencySession{
		userID:   userID,
		currency: currency,
		rates:    rates,
		prefs:    prefs,
		cfg:      cfg,
		now:      time.Now,
		selected: prefs.GetPreferredCurrency(ctx, userID),
	}
	for _, opt := range opts {
		opt(s)
	}

	ch, unsubscribe := broker.Subscribe()
	s.unsubscribe = unsubscribe
	go s.watch(ch)

	s.mu.Lock()
	s.refreshLocked(ctx)
	s.mu.Unlock()
	return s
}

// watch applies broadcast preference changes addressed to this session's
// user. It ends when the subscription channel is closed.
func (s *CurrencySession) watch(ch <-chan domain.CurrencyChange) {
	for change := range ch {
		if change.UserID != s.userID {
			continue
		}
		s.mu.Lock()
		s.selected = change.Code
		s.mu.Unlock()
	}
}

// Close releases the broadcast subscription. The session remains usable but
// no longer observes preference changes made elsewhere.
func (s *CurrencySession) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Currency returns the session's current display currency.
func (s *CurrencySession) Currency() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SetCurrency persists and broadcasts a new preferred currency. The local
// state updates immediately; other sessions converge via the broadcast.
func (s *CurrencySession) SetCurrency(ctx context.Context, code string) error {
	if err := s.prefs.SetPreferredCurrency(ctx, s.userID, code); err != nil {
		return err
	}
	s.mu.Lock()
	s.selected = code
	s.mu.Unlock()
	return nil
}

// Rates returns the rate table currently backing the session, refreshing it
// first if the staleness window has passed.
func (s *CurrencySession) Rates(ctx context.Context) domain.RateResult {
	s.mu.RLock()
	if s.usableLocked() && s.now().Sub(s.attemptedAt) < s.cfg.Staleness {
		result := s.result
		s.mu.RUnlock()
		return result
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.usableLocked() || s.now().Sub(s.attemptedAt) >= s.cfg.Staleness {
		s.refreshLocked(ctx)
	}
	return s.result
}

// usableLocked reports whether the held result may still serve reads. The
// retention window runs from the fetch that produced the data, so failed
// refresh attempts never extend it. Callers must hold at least the read lock.
func (s *CurrencySession) usableLocked() bool {
	return s.hasResult && s.now().Sub(s.dataFetchedAt) < s.cfg.Retention
}

// refreshLocked fetches via the intermediary strategy, retrying degraded
// results up to cfg.Retries times. When every attempt degrades, a previously
// fetched result inside the retention window is kept in preference to the
// fallback table. Callers must hold the write lock.
func (s *CurrencySession) refreshLocked(ctx context.Context) {
	var fetched domain.RateResult
	for attempt := 0; attempt <= s.cfg.Retries; attempt++ {
		fetched = s.rates.FetchRatesViaIntermediary(ctx)
		if !fetched.Degraded() {
			break
		}
	}
	s.attemptedAt = s.now()

	if fetched.Degraded() && s.usableLocked() && !s.result.Degraded() {
		// Keep serving retained data. Only the attempt stamp moves: the next
		// refetch waits out another staleness window, while the retention
		// clock keeps running from the last good fetch.
		return
	}

	s.result = fetched
	s.dataFetchedAt = s.attemptedAt
	s.hasResult = true
}

// Format renders amount in the session's current currency.
func (s *CurrencySession) Format(ctx context.Context, amount decimal.Decimal, opts domain.FormatOptions) string {
	return s.currency.Format(amount, s.Currency(), opts)
}

// FormatIn renders amount in an explicitly named currency, regardless of the
// session preference.
func (s *CurrencySession) FormatIn(ctx context.Context, amount decimal.Decimal, code string, opts domain.FormatOptions) string {
	return s.currency.Format(amount, code, opts)
}

// FormatConverted converts an amount expressed in the home currency into the
// session's current currency, then formats it.
func (s *CurrencySession) FormatConverted(ctx context.Context, amountInHome decimal.Decimal, opts domain.FormatOptions) string {
	home := s.currency.Catalog().HomeCode()
	target := s.Currency()
	converted := s.currency.Convert(amountInHome, home, target, s.Rates(ctx).Set.Rates)
	return s.currency.Format(converted, target, opts)
}

// Convert converts between two explicit currencies using the session's
// current rate table.
func (s *CurrencySession) Convert(ctx context.Context, amount decimal.Decimal, from, to string) decimal.Decimal {
	return s.currency.Convert(amount, from, to, s.Rates(ctx).Set.Rates)
}

// Rate returns the scalar from→to multiplier from the session's rate table.
func (s *CurrencySession) Rate(ctx context.Context, from, to string) decimal.Decimal {
	return s.currency.Rate(from, to, s.Rates(ctx).Set.Rates)
}

// FormatRate renders the from→to rate as a display string.
func (s *CurrencySession) FormatRate(ctx context.Context, from, to string) string {
	return s.currency.FormatRate(from, to, s.Rates(ctx).Set.Rates)
}

// Conversion derives the full conversion view of a single amount from its
// original currency into the session's current currency.
func (s *CurrencySession) Conversion(ctx context.Context, amount decimal.Decimal, fromCurrency string) domain.ConversionView {
	result := s.Rates(ctx)
	target := s.Currency()
	converted := s.currency.Convert(amount, fromCurrency, target, result.Set.Rates)
	return domain.ConversionView{
		FromCurrency:       fromCurrency,
		ToCurrency:         target,
		OriginalAmount:     amount,
		ConvertedAmount:    converted,
		FormattedOriginal:  s.currency.Format(amount, fromCurrency, domain.DefaultFormatOptions()),
		FormattedConverted: s.currency.Format(converted, target, domain.DefaultFormatOptions()),
		ExchangeRate:       s.currency.Rate(fromCurrency, target, result.Set.Rates),
		RateSource:         result.Source,
	}
}
