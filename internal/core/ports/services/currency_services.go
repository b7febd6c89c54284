package services

import (
	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencySvcFacade is the pure conversion/formatting surface. None of these
// operations fail: bad input degrades to a displayable value, because this
// layer always backs user-facing financial displays.
type CurrencySvcFacade interface {
	// Catalog returns the immutable set of supported currencies.
	Catalog() *domain.Catalog

	// Format renders amount in the given currency. Unknown codes fall back
	// to the home currency entry.
	Format(amount decimal.Decimal, currencyCode string, opts domain.FormatOptions) string

	// FormatString parses raw as a numeric amount and formats it; an
	// unparseable amount yields the "—" placeholder.
	FormatString(raw string, currencyCode string, opts domain.FormatOptions) string

	// Convert converts amount between two currencies using a base-relative
	// rate table. A nil table means the compiled-in fallback rates.
	Convert(amount decimal.Decimal, from, to string, rates map[string]float64) decimal.Decimal

	// Rate returns the scalar from→to multiplier; exactly 1 when from == to.
	Rate(from, to string, rates map[string]float64) decimal.Decimal

	// FormatRate renders "1 FROM = r TO", or "" when either code is not in
	// the catalog.
	FormatRate(from, to string, rates map[string]float64) string

	// ParseAmount is the best-effort inverse of Format: it strips known
	// symbols and separators and returns zero when nothing numeric remains.
	ParseAmount(display string) decimal.Decimal
}
