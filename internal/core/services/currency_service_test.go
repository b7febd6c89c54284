package services_test

import (
	"testing"

	"github.com/nimbuserp/fx_backend/internal/adapters/format"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/nimbuserp/fx_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCurrencyService() *services.CurrencyService {
	return services.NewCurrencyService(domain.DefaultCatalog(), format.NewLocaleFormatter())
}

func TestConvert_Identity(t *testing.T) {
	svc := newCurrencyService()
	amount := decimal.NewFromFloat(123.45)

	got := svc.Convert(amount, "USD", "USD", nil)
	assert.True(t, got.Equal(amount))

	// Unknown codes behave as a multiplier of 1 rather than failing.
	got = svc.Convert(amount, "XXX", "NGN", nil)
	assert.True(t, got.Equal(amount))
}

func TestConvert_RoundTrip(t *testing.T) {
	svc := newCurrencyService()
	amount := decimal.NewFromInt(250_000)

	inUSD := svc.Convert(amount, "NGN", "USD", nil)
	back := svc.Convert(inUSD, "USD", "NGN", nil)

	diff := back.Sub(amount).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.0001)), "round trip drifted by %s", diff)
}

func TestConvert_TransitiveThroughHome(t *testing.T) {
	svc := newCurrencyService()
	amount := decimal.NewFromInt(100)

	direct := svc.Convert(amount, "USD", "EUR", nil)
	viaHome := svc.Convert(svc.Convert(amount, "USD", "NGN", nil), "NGN", "EUR", nil)

	diff := direct.Sub(viaHome).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.0001)), "transitive conversion drifted by %s", diff)
}

func TestRate_Identity(t *testing.T) {
	svc := newCurrencyService()
	assert.True(t, svc.Rate("USD", "USD", nil).Equal(decimal.NewFromInt(1)))
}

func TestRate_FallbackTable(t *testing.T) {
	svc := newCurrencyService()

	// 1 USD ≈ 1600 NGN in the compiled-in table.
	rate := svc.Rate("USD", "NGN", nil)
	diff := rate.Sub(decimal.NewFromInt(1600)).Abs()
	assert.True(t, diff.LessThan(decimal.NewFromFloat(0.01)), "USD→NGN rate was %s", rate)
}

func TestFormat_Grouping(t *testing.T) {
	svc := newCurrencyService()

	got := svc.Format(decimal.NewFromInt(12_500_000), "NGN", domain.DefaultFormatOptions())
	assert.Equal(t, "₦12,500,000", got)
}

func TestFormat_Compact(t *testing.T) {
	svc := newCurrencyService()

	opts := domain.DefaultFormatOptions()
	opts.Compact = true

	assert.Equal(t, "₦1.5M", svc.Format(decimal.NewFromInt(1_500_000), "NGN", opts))
	assert.Equal(t, "₦12.5M", svc.Format(decimal.NewFromInt(12_500_000), "NGN", opts))
	assert.Equal(t, "₦2B", svc.Format(decimal.NewFromInt(2_000_000_000), "NGN", opts))

	opts.HideSymbol = true
	assert.Equal(t, "1.5M", svc.Format(decimal.NewFromInt(1_500_000), "NGN", opts))
}

func TestFormat_CompactRoundingPromotesSuffix(t *testing.T) {
	svc := newCurrencyService()

	opts := domain.DefaultFormatOptions()
	opts.Compact = true

	// Just under a billion the millions digit rounds to 1000, which must
	// promote to the next suffix instead of rendering "1000M".
	assert.Equal(t, "₦1B", svc.Format(decimal.NewFromInt(999_950_000), "NGN", opts))
	assert.Equal(t, "₦999.9M", svc.Format(decimal.NewFromInt(999_940_000), "NGN", opts))
	assert.Equal(t, "₦1B", svc.Format(decimal.NewFromInt(1_000_000_000), "NGN", opts))
}

func TestFormat_CompactBelowThresholdUsesLocale(t *testing.T) {
	svc := newCurrencyService()

	opts := domain.DefaultFormatOptions()
	opts.Compact = true

	// Below one million, compact mode falls through to normal formatting.
	assert.Equal(t, "₦999,999", svc.Format(decimal.NewFromInt(999_999), "NGN", opts))
}

func TestFormat_NegativeAndFractionDigits(t *testing.T) {
	svc := newCurrencyService()

	opts := domain.DefaultFormatOptions()
	opts.MinFractionDigits = 2

	assert.Equal(t, "-$1,234.50", svc.Format(decimal.NewFromFloat(-1234.5), "USD", opts))
}

func TestFormat_UnknownCodeDegradesToHome(t *testing.T) {
	svc := newCurrencyService()

	got := svc.Format(decimal.NewFromInt(10), "XXX", domain.DefaultFormatOptions())
	assert.Equal(t, "₦10", got)
}

func TestFormatString_UnparseableYieldsPlaceholder(t *testing.T) {
	svc := newCurrencyService()

	assert.Equal(t, services.Placeholder, svc.FormatString("not a number", "NGN", domain.DefaultFormatOptions()))
	assert.Equal(t, services.Placeholder, svc.FormatString("", "NGN", domain.DefaultFormatOptions()))
	assert.Equal(t, "₦42", svc.FormatString("42", "NGN", domain.DefaultFormatOptions()))
}

func TestFormatRate(t *testing.T) {
	svc := newCurrencyService()

	assert.Equal(t, "1 USD = 1,600 NGN", svc.FormatRate("USD", "NGN", nil))

	// Codes outside the catalog render nothing rather than a bogus quote.
	assert.Equal(t, "", svc.FormatRate("USD", "XXX", nil))
	assert.Equal(t, "", svc.FormatRate("XXX", "NGN", nil))
}

func TestParseAmount(t *testing.T) {
	svc := newCurrencyService()

	got := svc.ParseAmount("₦12,500,000.5")
	require.True(t, got.Equal(decimal.NewFromFloat(12_500_000.5)), "got %s", got)

	// Composite symbols strip before plain "$".
	got = svc.ParseAmount("CA$1,000")
	require.True(t, got.Equal(decimal.NewFromInt(1000)), "got %s", got)

	assert.True(t, svc.ParseAmount("garbage").IsZero())
}
