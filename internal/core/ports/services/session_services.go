package services

import (
	"context"

	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SessionSvcFacade derives per-user conversion views over currency sessions
// tuned at boot (staleness, retention, retry count).
type SessionSvcFacade interface {
	// Conversion converts amount from fromCurrency into userID's preferred
	// currency and returns the fully formatted view. It never fails for rate
	// problems; degraded data carries the fallback source.
	Conversion(ctx context.Context, userID string, amount decimal.Decimal, fromCurrency string) domain.ConversionView
}
