package domain

import "time"

// ExchangeRateSet holds base-relative multipliers for a set of currencies.
// Rates are "base→target": amountInTarget = amountInBase * Rates[target].
// Rates[Base] == 1 by convention.
type ExchangeRateSet struct {
	Base        string             `json:"base"`
	Date        string             `json:"date"` // ISO date (YYYY-MM-DD)
	Rates       map[string]float64 `json:"rates"`
	LastUpdated time.Time          `json:"lastUpdated"`
}

// Age returns how old the set is relative to now.
func (s ExchangeRateSet) Age(now time.Time) time.Duration {
	return now.Sub(s.LastUpdated)
}

// Rate returns the base-relative multiplier for code. A missing entry behaves
// as 1, the documented degraded behavior: conversions involving an unknown
// currency pass amounts through unchanged rather than failing a display.
func (s ExchangeRateSet) Rate(code string) float64 {
	if s.Base == code {
		return 1
	}
	if r, ok := s.Rates[code]; ok && r > 0 {
		return r
	}
	return 1
}

// RateSource tells callers where a rate set came from, so live data can be
// distinguished from degraded results without relying on log side channels.
type RateSource string

const (
	RateSourceLive     RateSource = "live"
	RateSourceCached   RateSource = "cached"
	RateSourceFallback RateSource = "fallback"
)

// RateResult pairs a usable rate set with its provenance. Fetch operations
// always produce one; they never fail outright.
type RateResult struct {
	Set    ExchangeRateSet `json:"set"`
	Source RateSource      `json:"source"`
}

// Degraded reports whether the result came from the compiled-in fallback
// table rather than live or cached provider data.
func (r RateResult) Degraded() bool {
	return r.Source == RateSourceFallback
}

// The secondary rate provider does not quote the home currency, so its rates
// arrive relative to USD and are re-based with an approximate conversion
// constant.
const (
	IntermediaryCurrency = "USD"
	// ApproxHomePerIntermediary is home-currency units per intermediary unit.
	// Approximate on purpose; it only bridges the secondary provider.
	ApproxHomePerIntermediary = 1600.0
)

// fallbackRates are approximate NGN-based multipliers used whenever no live
// or cached rate data is available. Kept loosely in sync with market levels;
// they only back displays, never postings.
var fallbackRates = map[string]float64{
	"NGN": 1,
	"USD": 0.000625, // ≈ 1600 NGN per USD
	"EUR": 0.00058,
	"GBP": 0.00049,
	"CAD": 0.00086,
	"AUD": 0.00096,
	"JPY": 0.094,
	"CNY": 0.0045,
	"INR": 0.052,
	"ZAR": 0.0113,
}

// FallbackRates returns a fresh copy of the compiled-in NGN-based rate table.
func FallbackRates() map[string]float64 {
	out := make(map[string]float64, len(fallbackRates))
	for k, v := range fallbackRates {
		out[k] = v
	}
	return out
}

// NewFallbackResult builds a freshly stamped RateResult from the compiled-in
// table, based on the home currency.
func NewFallbackResult(homeCode string, now time.Time) RateResult {
	return RateResult{
		Set: ExchangeRateSet{
			Base:        homeCode,
			Date:        now.Format("2006-01-02"),
			Rates:       FallbackRates(),
			LastUpdated: now,
		},
		Source: RateSourceFallback,
	}
}
