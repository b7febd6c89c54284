package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/nimbuserp/fx_backend/internal/apperrors"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
)

// FrankfurterClient is the secondary rate provider. Its supported currency
// set excludes the home currency, so the rate service fetches relative to an
// intermediary currency and re-bases the result. The symbols argument is
// ignored: the provider returns its full supported set.
type FrankfurterClient struct {
	baseURL string
	client  *http.Client
}

// NewFrankfurterClient creates a client against baseURL
// (e.g., "https://api.frankfurter.app").
func NewFrankfurterClient(baseURL string) *FrankfurterClient {
	return &FrankfurterClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// Name identifies the provider in logs and history rows.
func (c *FrankfurterClient) Name() string {
	return "frankfurter"
}

// FetchRates fetches multipliers relative to base (the intermediary).
func (c *FrankfurterClient) FetchRates(ctx context.Context, base string, _ []string) (*domain.ExchangeRateSet, error) {
	endpoint := fmt.Sprintf("%s/latest?from=%s", c.baseURL, url.QueryEscape(base))

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
		Base  string             `json:"base"`
		Date  string             `json:"date"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", apperrors.ErrProviderUnavailable, err)
	}
	if payload.Rates == nil {
		return nil, fmt.Errorf("%w: response missing rates payload", apperrors.ErrProviderUnavailable)
	}

	return &domain.ExchangeRateSet{
		Base:  payload.Base,
		Date:  payload.Date,
		Rates: payload.Rates,
	}, nil
}
