package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/nimbuserp/fx_backend/internal/adapters/cache/memory"
	"github.com/nimbuserp/fx_backend/internal/adapters/format"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/nimbuserp/fx_backend/internal/core/services"
	"github.com/nimbuserp/fx_backend/internal/pubsub"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider serves a fixed USD-based rate table and can be switched into
// failure mode mid-test.
type stubProvider struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchRates(_ context.Context, base string, _ []string) (*domain.ExchangeRateSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.fail {
		return nil, context.DeadlineExceeded
	}
	return &domain.ExchangeRateSet{
		Base:  base,
		Date:  "2026-08-28",
		Rates: map[string]float64{"EUR": 1.5, "JPY": 150},
	}, nil
}

func (p *stubProvider) setFail(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = fail
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type sessionFixture struct {
	currency *services.CurrencyService
	rates    *services.RateService
	prefs    *services.PreferenceService
	broker   *pubsub.Broker
	provider *stubProvider
}

// newSessionFixture wires real services around a stub secondary provider.
// rateStaleness of zero forces every session refresh through the provider.
func newSessionFixture(t *testing.T, rateStaleness time.Duration) *sessionFixture {
	t.Helper()

	catalog := domain.DefaultCatalog()
	store := memory.NewStore()
	broker := pubsub.NewBroker()
	t.Cleanup(broker.Close)
	provider := &stubProvider{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &sessionFixture{
		currency: services.NewCurrencyService(catalog, format.NewLocaleFormatter()),
		rates: services.NewRateService(
			catalog,
			store,
			provider, // primary unused by sessions, any provider will do
			provider,
			logger,
			rateStaleness,
			domain.IntermediaryCurrency,
			domain.ApproxHomePerIntermediary,
		),
		prefs:    services.NewPreferenceService(catalog, store, broker, nil, logger),
		broker:   broker,
		provider: provider,
	}
}

func (f *sessionFixture) newSession(ctx context.Context, t *testing.T, userID string, cfg services.SessionConfig) *services.CurrencySession {
	t.Helper()
	s := services.NewCurrencySession(ctx, f.currency, f.rates, f.prefs, f.broker, userID, cfg)
	t.Cleanup(s.Close)
	return s
}

func TestSession_InitializesFromPersistedPreference(t *testing.T) {
	f := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.prefs.SetPreferredCurrency(ctx, "user-1", "USD"))

	s := f.newSession(ctx, t, "user-1", services.DefaultSessionConfig())
	assert.Equal(t, "USD", s.Currency())
}

func TestSession_PreferenceBroadcastSyncsSessions(t *testing.T) {
	f := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	s1 := f.newSession(ctx, t, "user-1", services.DefaultSessionConfig())
	s2 := f.newSession(ctx, t, "user-1", services.DefaultSessionConfig())
	other := f.newSession(ctx, t, "user-2", services.DefaultSessionConfig())

	require.NoError(t, s1.SetCurrency(ctx, "EUR"))

	assert.Equal(t, "EUR", s1.Currency(), "the changing session updates immediately")
	assert.Eventually(t, func() bool {
		return s2.Currency() == "EUR"
	}, time.Second, 10*time.Millisecond, "sibling session must converge via the broadcast")
	assert.Never(t, func() bool {
		return other.Currency() == "EUR"
	}, 100*time.Millisecond, 10*time.Millisecond, "other users' sessions are unaffected")
}

func TestSession_ClosedSessionStopsObserving(t *testing.T) {
	f := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	s1 := f.newSession(ctx, t, "user-1", services.DefaultSessionConfig())
	s2 := f.newSession(ctx, t, "user-1", services.DefaultSessionConfig())
	s2.Close()

	require.NoError(t, s1.SetCurrency(ctx, "JPY"))

	assert.Never(t, func() bool {
		return s2.Currency() == "JPY"
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestSession_FormatConverted(t *testing.T) {
	f := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.prefs.SetPreferredCurrency(ctx, "user-1", "USD"))
	s := f.newSession(ctx, t, "user-1", services.DefaultSessionConfig())

	// Rates arrive USD-based and get re-based to NGN with the 1600 constant,
	// so 3,200 NGN converts to exactly 2 USD.
	got := s.FormatConverted(ctx, decimal.NewFromInt(3200), domain.DefaultFormatOptions())
	assert.Equal(t, "$2", got)
}

func TestSession_ConversionView(t *testing.T) {
	f := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.prefs.SetPreferredCurrency(ctx, "user-1", "USD"))
	s := f.newSession(ctx, t, "user-1", services.DefaultSessionConfig())

	view := s.Conversion(ctx, decimal.NewFromInt(1600), "NGN")

	assert.Equal(t, "NGN", view.FromCurrency)
	assert.Equal(t, "USD", view.ToCurrency)
	assert.True(t, view.ConvertedAmount.Equal(decimal.NewFromInt(1)), "got %s", view.ConvertedAmount)
	assert.Equal(t, "₦1,600", view.FormattedOriginal)
	assert.Equal(t, "$1", view.FormattedConverted)
	assert.Equal(t, domain.RateSourceLive, view.RateSource)
}

func TestSession_KeepsRetainedRatesOverFallback(t *testing.T) {
	f := newSessionFixture(t, 0) // rate cache never considered fresh
	ctx := context.Background()

	cfg := services.SessionConfig{Staleness: 0, Retention: time.Hour, Retries: 1}
	s := f.newSession(ctx, t, "user-1", cfg)
	require.Equal(t, 1, f.provider.callCount())

	f.provider.setFail(true)
	result := s.Rates(ctx)

	assert.Equal(t, domain.RateSourceLive, result.Source, "retained live data beats the fallback table")
	assert.Equal(t, 3, f.provider.callCount(), "degraded refresh retries once before giving up")
}

func TestSession_RetentionRunsFromLastGoodFetch(t *testing.T) {
	f := newSessionFixture(t, 0) // rate cache never considered fresh
	ctx := context.Background()

	var (
		clockMu sync.Mutex
		current = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	)
	now := func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		return current
	}
	advance := func(d time.Duration) {
		clockMu.Lock()
		current = current.Add(d)
		clockMu.Unlock()
	}

	cfg := services.SessionConfig{Staleness: time.Minute, Retention: time.Hour, Retries: 0}
	s := services.NewCurrencySession(ctx, f.currency, f.rates, f.prefs, f.broker, "user-1", cfg,
		services.WithSessionClock(now))
	t.Cleanup(s.Close)
	require.Equal(t, domain.RateSourceLive, s.Rates(ctx).Source)

	f.provider.setFail(true)

	// Inside the retention window, failed refreshes keep serving the
	// retained table.
	advance(30 * time.Minute)
	assert.Equal(t, domain.RateSourceLive, s.Rates(ctx).Source)

	// An hour after the last successful fetch the retained table expires,
	// no matter how recently a refresh was attempted.
	advance(31 * time.Minute)
	result := s.Rates(ctx)
	assert.Equal(t, domain.RateSourceFallback, result.Source)
	assert.True(t, result.Degraded())
}

func TestSession_FallbackWhenNothingRetained(t *testing.T) {
	f := newSessionFixture(t, 0)
	ctx := context.Background()

	f.provider.setFail(true)
	cfg := services.SessionConfig{Staleness: time.Hour, Retention: time.Hour, Retries: 1}
	s := f.newSession(ctx, t, "user-1", cfg)

	result := s.Rates(ctx)
	assert.True(t, result.Degraded())

	// Conversions still work off the compiled-in table.
	got := s.Convert(ctx, decimal.NewFromInt(1600), "NGN", "USD")
	assert.True(t, got.Equal(decimal.NewFromInt(1)), "got %s", got)
}

func TestSessionFactory_ConversionIntoPreferredCurrency(t *testing.T) {
	f := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, f.prefs.SetPreferredCurrency(ctx, "user-1", "USD"))

	factory := services.NewSessionFactory(f.currency, f.rates, f.prefs, f.broker, services.DefaultSessionConfig())
	view := factory.Conversion(ctx, "user-1", decimal.NewFromInt(1600), "NGN")

	assert.Equal(t, "NGN", view.FromCurrency)
	assert.Equal(t, "USD", view.ToCurrency)
	assert.Equal(t, "$1", view.FormattedConverted)
	assert.Equal(t, domain.RateSourceLive, view.RateSource)
}

func TestSessionFactory_ConversionHonorsConfiguredRetries(t *testing.T) {
	f := newSessionFixture(t, 0)
	ctx := context.Background()

	factory := services.NewSessionFactory(f.currency, f.rates, f.prefs, f.broker, services.SessionConfig{
		Staleness: time.Hour,
		Retention: time.Hour,
		Retries:   1,
	})

	f.provider.setFail(true)
	view := factory.Conversion(ctx, "user-1", decimal.NewFromInt(1600), "NGN")

	assert.Equal(t, domain.RateSourceFallback, view.RateSource)
	assert.Equal(t, 2, f.provider.callCount(), "a degraded fetch retries exactly once")
}
