package dto

import (
	"github.com/nimbuserp/fx_backend/internal/core/domain"
)

// CurrencyResponse defines the data returned for a catalog entry.
type CurrencyResponse struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Locale string `json:"locale"`
}

// ToCurrencyResponse converts a domain.Currency to its response DTO.
func ToCurrencyResponse(cur domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:   cur.Code,
		Symbol: cur.Symbol,
		Name:   cur.Name,
		Locale: cur.Locale,
	}
}

// ToListCurrencyResponse converts a slice of catalog entries.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, cur := range currencies {
		res[i] = ToCurrencyResponse(cur)
	}
	return res
}

// PagedResponse wraps a page of items with its derived pagination state.
type PagedResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
}
