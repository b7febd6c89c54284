package domain

import "github.com/shopspring/decimal"

// ConversionView packages a single amount's original and converted values
// with formatted strings in both currencies and the applicable rate.
type ConversionView struct {
	FromCurrency       string          `json:"fromCurrency"`
	ToCurrency         string          `json:"toCurrency"`
	OriginalAmount     decimal.Decimal `json:"originalAmount"`
	ConvertedAmount    decimal.Decimal `json:"convertedAmount"`
	FormattedOriginal  string          `json:"formattedOriginal"`
	FormattedConverted string          `json:"formattedConverted"`
	ExchangeRate       decimal.Decimal `json:"exchangeRate"`
	RateSource         RateSource      `json:"rateSource"`
}
