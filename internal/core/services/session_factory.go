package services

import (
	"context"

	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/nimbuserp/fx_backend/internal/core/ports"
	"github.com/shopspring/decimal"
)

// SessionFactory mints CurrencySessions that share one set of services and
// one tuning, typically derived from configuration at boot.
type SessionFactory struct {
	currency *CurrencyService
	rates    *RateService
	prefs    *PreferenceService
	broker   ports.Broker
	cfg      SessionConfig
}

// NewSessionFactory creates a SessionFactory with the given tuning.
func NewSessionFactory(
	currency *CurrencyService,
	rates *RateService,
	prefs *PreferenceService,
	broker ports.Broker,
	cfg SessionConfig,
) *SessionFactory {
	return &SessionFactory{
		currency: currency,
		rates:    rates,
		prefs:    prefs,
		broker:   broker,
		cfg:      cfg,
	}
}

// Session creates a session bound to userID's persisted preference. The
// caller owns the session and must Close it.
func (f *SessionFactory) Session(ctx context.Context, userID string, opts ...SessionOption) *CurrencySession {
	return NewCurrencySession(ctx, f.currency, f.rates, f.prefs, f.broker, userID, f.cfg, opts...)
}

// Conversion derives the conversion view of one amount into userID's
// preferred currency through a short-lived session.
func (f *SessionFactory) Conversion(ctx context.Context, userID string, amount decimal.Decimal, fromCurrency string) domain.ConversionView {
	s := f.Session(ctx, userID)
	defer s.Close()
	return s.Conversion(ctx, amount, fromCurrency)
}
