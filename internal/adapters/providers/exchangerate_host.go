// Package providers contains HTTP clients for external exchange-rate
// sources. Clients only translate wire responses; defaulting, stamping and
// re-basing happen in the rate service.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nimbuserp/fx_backend/internal/apperrors"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// ExchangeRateHostClient is the primary rate provider. It supports arbitrary
// base currencies and an explicit symbols list.
type ExchangeRateHostClient struct {
	baseURL string
	client  *http.Client
}

// NewExchangeRateHostClient creates a client against baseURL
// (e.g., "https://api.exchangerate.host").
func NewExchangeRateHostClient(baseURL string) *ExchangeRateHostClient {
	return &ExchangeRateHostClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Name identifies the provider in logs and history rows.
func (c *ExchangeRateHostClient) Name() string {
	return "exchangerate.host"
}

// FetchRates fetches base-relative multipliers for the given symbols.
func (c *ExchangeRateHostClient) FetchRates(ctx context.Context, base string, symbols []string) (*domain.ExchangeRateSet, error) {
	endpoint := fmt.Sprintf("%s/latest?base=%s&symbols=%s",
		c.baseURL,
		url.QueryEscape(base),
		url.QueryEscape(strings.Join(symbols, ",")),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrProviderUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload struct {
		Success *bool              `json:"success"`
		Base    string             `json:"base"`
		Date    string             `json:"date"`
		Rates   map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", apperrors.ErrProviderUnavailable, err)
	}

	// A response carrying neither a success flag nor a rates payload is not
	// a rate response at all.
	if payload.Rates == nil && (payload.Success == nil || !*payload.Success) {
		return nil, fmt.Errorf("%w: response missing rates payload", apperrors.ErrProviderUnavailable)
	}

	return &domain.ExchangeRateSet{
		Base:  payload.Base,
		Date:  payload.Date,
		Rates: payload.Rates,
	}, nil
}
