package dto

import (
	"time"

	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateSetResponse is the API shape of a rate result, including where the
// data came from so clients can tell live rates from degraded ones.
type RateSetResponse struct {
	Base        string             `json:"base"`
	Date        string             `json:"date"`
	Rates       map[string]float64 `json:"rates"`
	LastUpdated time.Time          `json:"lastUpdated"`
	Source      string             `json:"source"`
}

// ToRateSetResponse converts a domain.RateResult to its response DTO.
func ToRateSetResponse(result domain.RateResult) RateSetResponse {
	return RateSetResponse{
		Base:        result.Set.Base,
		Date:        result.Set.Date,
		Rates:       result.Set.Rates,
		LastUpdated: result.Set.LastUpdated,
		Source:      string(result.Source),
	}
}

// PairRateResponse carries a single from→to rate with its display string.
type PairRateResponse struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Rate    decimal.Decimal `json:"rate"`
	Display string          `json:"display"`
	Source  string          `json:"source"`
}

// ConvertRequest asks for a single amount conversion.
type ConvertRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	From   string          `json:"from" binding:"required,currencycode"`
	// To is optional; it defaults to the caller's preferred currency.
	To string `json:"to" binding:"omitempty,currencycode"`
}

// ConvertResponse mirrors the conversion view: original and converted values
// with formatted strings in both currencies and the applicable rate.
type ConvertResponse struct {
	FromCurrency       string          `json:"fromCurrency"`
	ToCurrency         string          `json:"toCurrency"`
	OriginalAmount     decimal.Decimal `json:"originalAmount"`
	ConvertedAmount    decimal.Decimal `json:"convertedAmount"`
	FormattedOriginal  string          `json:"formattedOriginal"`
	FormattedConverted string          `json:"formattedConverted"`
	ExchangeRate       decimal.Decimal `json:"exchangeRate"`
	RateSource         string          `json:"rateSource"`
}

// ToConvertResponse converts a session conversion view to its response DTO.
func ToConvertResponse(view domain.ConversionView) ConvertResponse {
	return ConvertResponse{
		FromCurrency:       view.FromCurrency,
		ToCurrency:         view.ToCurrency,
		OriginalAmount:     view.OriginalAmount,
		ConvertedAmount:    view.ConvertedAmount,
		FormattedOriginal:  view.FormattedOriginal,
		FormattedConverted: view.FormattedConverted,
		ExchangeRate:       view.ExchangeRate,
		RateSource:         string(view.RateSource),
	}
}

// FormatRequest asks for a display rendering of a raw amount. Amount is a
// string on purpose: unparseable input degrades to a placeholder, it is not
// a validation error.
type FormatRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"omitempty,currencycode"`
	// ShowSymbol defaults to true when omitted.
	ShowSymbol        *bool `json:"showSymbol"`
	Compact           bool  `json:"compact"`
	MinFractionDigits *int  `json:"minimumFractionDigits"`
	MaxFractionDigits *int  `json:"maximumFractionDigits"`
}

// Options maps the request onto domain formatting options, applying the
// display defaults for omitted fields.
func (r FormatRequest) Options() domain.FormatOptions {
	opts := domain.DefaultFormatOptions()
	opts.Compact = r.Compact
	if r.ShowSymbol != nil {
		opts.HideSymbol = !*r.ShowSymbol
	}
	if r.MinFractionDigits != nil {
		opts.MinFractionDigits = *r.MinFractionDigits
	}
	if r.MaxFractionDigits != nil {
		opts.MaxFractionDigits = *r.MaxFractionDigits
	}
	return opts.Normalized()
}

// FormatResponse returns the rendered display string.
type FormatResponse struct {
	Formatted string `json:"formatted"`
}

// RateHistoryEntryResponse is the API shape of one persisted history row.
type RateHistoryEntryResponse struct {
	BaseCurrency string    `json:"baseCurrency"`
	CurrencyCode string    `json:"currencyCode"`
	Rate         float64   `json:"rate"`
	RateDate     string    `json:"rateDate"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToListRateHistoryResponse converts persisted history rows.
func ToListRateHistoryResponse(entries []domain.RateHistoryEntry) []RateHistoryEntryResponse {
	res := make([]RateHistoryEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = RateHistoryEntryResponse{
			BaseCurrency: e.BaseCurrency,
			CurrencyCode: e.CurrencyCode,
			Rate:         e.Rate,
			RateDate:     e.RateDate,
			Source:       e.Source,
			CreatedAt:    e.CreatedAt,
		}
	}
	return res
}
