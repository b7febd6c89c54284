package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/nimbuserp/fx_backend/internal/core/ports"
	"github.com/shopspring/decimal"
)

// Placeholder is rendered instead of an amount that could not be parsed.
// A broken number must never become a broken screen.
const Placeholder = "—"

var (
	one      = decimal.NewFromInt(1)
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// CurrencyService holds the pure conversion and formatting rules. It has no
// network or reactive state; the catalog and the locale formatter are
// injected once at construction.
type CurrencyService struct {
	catalog   *domain.Catalog
	formatter ports.AmountFormatter
}

// NewCurrencyService creates a CurrencyService over the given catalog and
// locale formatting engine.
func NewCurrencyService(catalog *domain.Catalog, formatter ports.AmountFormatter) *CurrencyService {
	return &CurrencyService{catalog: catalog, formatter: formatter}
}

// Catalog returns the immutable currency catalog.
func (s *CurrencyService) Catalog() *domain.Catalog {
	return s.catalog
}

// Format renders amount in the given currency. Unknown codes degrade to the
// home currency entry; a failing locale engine degrades to manual grouping.
// Format never fails.
func (s *CurrencyService) Format(amount decimal.Decimal, currencyCode string, opts domain.FormatOptions) string {
	opts = opts.Normalized()
	cur := s.catalog.Resolve(currencyCode)

	negative := amount.IsNegative()
	abs := amount.Abs()

	var body string
	if opts.Compact && abs.GreaterThanOrEqual(million) {
		body = compactBody(abs)
	} else {
		f, _ := abs.Float64()
		out, err := s.formatter.FormatDecimal(f, cur.Locale, opts.MinFractionDigits, opts.MaxFractionDigits)
		if err == nil {
			body = out
		} else {
			body = manualDecimal(abs, opts)
		}
	}

	if !opts.HideSymbol {
		body = cur.Symbol + body
	}
	if negative {
		body = "-" + body
	}
	return body
}

// FormatString parses raw as a numeric amount and formats it. An amount that
// does not parse yields the placeholder string, never an error.
func (s *CurrencyService) FormatString(raw string, currencyCode string, opts domain.FormatOptions) string {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Placeholder
	}
	return s.Format(amount, currencyCode, opts)
}

// Convert converts amount from one currency to another using a base-relative
// rate table (nil means the compiled-in fallback table). The amount is first
// normalized to the table's base, then projected to the target. Missing rate
// entries behave as a multiplier of 1.
func (s *CurrencyService) Convert(amount decimal.Decimal, from, to string, rates map[string]float64) decimal.Decimal {
	if from == to {
		return amount
	}
	if rates == nil {
		rates = domain.FallbackRates()
	}
	base := s.catalog.HomeCode()

	inBase := amount
	if from != base {
		inBase = amount.Div(rateIn(rates, from))
	}
	if to == base {
		return inBase
	}
	return inBase.Mul(rateIn(rates, to))
}

// Rate returns the scalar from→to multiplier from a base-relative table.
// Exactly 1 when from == to.
func (s *CurrencyService) Rate(from, to string, rates map[string]float64) decimal.Decimal {
	if from == to {
		return one
	}
	if rates == nil {
		rates = domain.FallbackRates()
	}
	base := s.catalog.HomeCode()

	fromRate := one
	if from != base {
		fromRate = rateIn(rates, from)
	}
	toRate := one
	if to != base {
		toRate = rateIn(rates, to)
	}
	return toRate.Div(fromRate)
}

// FormatRate renders a rate as "1 FROM = r TO". Rates of 1 and above show up
// to two decimals; smaller rates keep up to six so fractional rates stay
// legible. Codes outside the catalog yield an empty string.
func (s *CurrencyService) FormatRate(from, to string, rates map[string]float64) string {
	fromCur, okFrom := s.catalog.Lookup(from)
	_, okTo := s.catalog.Lookup(to)
	if !okFrom || !okTo {
		return ""
	}

	rate := s.Rate(from, to, rates)
	maxFrac := 6
	if rate.GreaterThanOrEqual(one) {
		maxFrac = 2
	}

	f, _ := rate.Float64()
	body, err := s.formatter.FormatDecimal(f, fromCur.Locale, 0, maxFrac)
	if err != nil {
		body = manualDecimal(rate, domain.FormatOptions{MaxFractionDigits: maxFrac}.Normalized())
	}
	return fmt.Sprintf("1 %s = %s %s", from, body, to)
}

// ParseAmount strips known currency symbols, thousands separators and
// whitespace from a display string and parses the remainder. It is a lossy
// convenience inverse of Format, not a strict round-trip; garbage yields zero.
func (s *CurrencyService) ParseAmount(display string) decimal.Decimal {
	cleaned := display
	for _, sym := range s.symbolsLongestFirst() {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	for _, sep := range []string{",", " ", "\u00a0", "\u202f"} {
		cleaned = strings.ReplaceAll(cleaned, sep, "")
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(cleaned))
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// symbolsLongestFirst orders catalog symbols so composite glyphs like "CA$"
// are stripped before plain "$".
func (s *CurrencyService) symbolsLongestFirst() []string {
	symbols := make([]string, 0, s.catalog.Size())
	for _, cur := range s.catalog.List() {
		symbols = append(symbols, cur.Symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return len(symbols[i]) > len(symbols[j]) })
	return symbols
}

// rateIn reads a base-relative multiplier, treating missing or non-positive
// entries as 1.
func rateIn(rates map[string]float64, code string) decimal.Decimal {
	if r, ok := rates[code]; ok && r > 0 {
		return decimal.NewFromFloat(r)
	}
	return one
}

// compactBody abbreviates an absolute amount of one million or more, capped
// at one fraction digit ("1.5M", "2B"). The suffix is chosen after rounding:
// 999,950,000 rounds to 1000M and must render as 1B.
func compactBody(abs decimal.Decimal) string {
	scaled := abs.Div(million).Round(1)
	suffix := "M"
	if scaled.GreaterThanOrEqual(thousand) {
		scaled = abs.Div(billion).Round(1)
		suffix = "B"
	}
	body := strings.TrimSuffix(scaled.String(), ".0")
	return body + suffix
}

// manualDecimal is the formatting fallback when the locale engine cannot
// handle a tag: fixed comma grouping with the requested fraction bounds.
func manualDecimal(abs decimal.Decimal, opts domain.FormatOptions) string {
	rounded := abs.Round(int32(opts.MaxFractionDigits))
	text := rounded.String()

	intPart := text
	fracPart := ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		intPart, fracPart = text[:i], text[i+1:]
	}
	for len(fracPart) < opts.MinFractionDigits {
		fracPart += "0"
	}

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	if fracPart == "" {
		return grouped.String()
	}
	return grouped.String() + "." + fracPart
}
