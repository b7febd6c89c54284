package domain

import "time"

// RateHistoryEntry is one persisted base→target multiplier from a successful
// rate fetch. Reporting screens read these back by date.
type RateHistoryEntry struct {
	EntryID      string    `json:"entryID"`
	BaseCurrency string    `json:"baseCurrency"`
	CurrencyCode string    `json:"currencyCode"`
	Rate         float64   `json:"rate"`
	RateDate     string    `json:"rateDate"` // ISO date the provider attributed the rate to
	Source       string    `json:"source"`   // provider name
	CreatedAt    time.Time `json:"createdAt"`
}
