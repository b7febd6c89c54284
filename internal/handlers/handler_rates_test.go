package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nimbuserp/fx_backend/internal/adapters/cache/memory"
	"github.com/nimbuserp/fx_backend/internal/adapters/format"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
	"github.com/nimbuserp/fx_backend/internal/core/services"
	"github.com/nimbuserp/fx_backend/internal/dto"
	"github.com/nimbuserp/fx_backend/internal/handlers"
	"github.com/nimbuserp/fx_backend/internal/middleware"
	"github.com/nimbuserp/fx_backend/internal/pubsub"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// fixedProvider serves one fixed rate table for any base.
type fixedProvider struct {
	rates map[string]float64
	fail  bool
}

func (p *fixedProvider) Name() string { return "fixed" }

func (p *fixedProvider) FetchRates(_ context.Context, base string, _ []string) (*domain.ExchangeRateSet, error) {
	if p.fail {
		return nil, context.DeadlineExceeded
	}
	return &domain.ExchangeRateSet{Base: base, Date: "2026-08-28", Rates: p.rates}, nil
}

// ratesTestEnv wires real services around a fixed provider, exposing the
// preference service so tests can seed per-user state.
type ratesTestEnv struct {
	prefs *services.PreferenceService
}

func newRatesTestEnv(t *testing.T, provider *fixedProvider, authed bool) (*gin.Engine, *ratesTestEnv) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()

	catalog := domain.DefaultCatalog()
	store := memory.NewStore()
	broker := pubsub.NewBroker()
	t.Cleanup(broker.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	currencySvc := services.NewCurrencyService(catalog, format.NewLocaleFormatter())
	rateSvc := services.NewRateService(
		catalog,
		store,
		provider,
		provider,
		logger,
		time.Hour,
		domain.IntermediaryCurrency,
		domain.ApproxHomePerIntermediary,
	)
	prefSvc := services.NewPreferenceService(catalog, store, broker, nil, logger)
	sessionFactory := services.NewSessionFactory(currencySvc, rateSvc, prefSvc, broker, services.DefaultSessionConfig())

	r := gin.New()
	group := r.Group("/api/v1")
	if authed {
		group.Use(middleware.AuthMiddleware(testJWTSecret))
	}
	handlers.RegisterRatesRoutes(group, rateSvc, currencySvc, sessionFactory)
	return r, &ratesTestEnv{prefs: prefSvc}
}

func newRatesTestRouter(t *testing.T, provider *fixedProvider) *gin.Engine {
	t.Helper()
	r, _ := newRatesTestEnv(t, provider, false)
	return r
}

// generateTestToken creates a signed bearer token for userID.
func generateTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    "fx-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func TestGetRates_ReturnsLiveTable(t *testing.T) {
	provider := &fixedProvider{rates: map[string]float64{"USD": 0.000625, "EUR": 0.00058}}
	r := newRatesTestRouter(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.RateSetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NGN", resp.Base)
	assert.Equal(t, "live", resp.Source)
	assert.Equal(t, 0.000625, resp.Rates["USD"])
	assert.Equal(t, float64(1), resp.Rates["NGN"])
}

func TestGetRates_ProviderFailureDegradesToFallback(t *testing.T) {
	provider := &fixedProvider{fail: true}
	r := newRatesTestRouter(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "degraded rates are still a success")

	var resp dto.RateSetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fallback", resp.Source)
	assert.Equal(t, domain.FallbackRates()["USD"], resp.Rates["USD"])
}

func TestGetRates_UnsupportedBase(t *testing.T) {
	provider := &fixedProvider{rates: map[string]float64{}}
	r := newRatesTestRouter(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates?base=XXX", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPairRate(t *testing.T) {
	provider := &fixedProvider{rates: map[string]float64{"USD": 0.000625}}
	r := newRatesTestRouter(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates/pair?from=USD&to=NGN", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PairRateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "USD", resp.From)
	assert.Equal(t, "NGN", resp.To)
	assert.Equal(t, "1 USD = 1,600 NGN", resp.Display)
}

func TestGetPairRate_UnknownCode(t *testing.T) {
	provider := &fixedProvider{rates: map[string]float64{}}
	r := newRatesTestRouter(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates/pair?from=USD&to=XXX", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRateHistory_NotConfigured(t *testing.T) {
	provider := &fixedProvider{rates: map[string]float64{}}
	r := newRatesTestRouter(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates/history", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConvert(t *testing.T) {
	provider := &fixedProvider{rates: map[string]float64{"USD": 0.000625}}
	r := newRatesTestRouter(t, provider)

	body := `{"amount":1600,"from":"NGN","to":"USD"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ConvertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NGN", resp.FromCurrency)
	assert.Equal(t, "USD", resp.ToCurrency)
	assert.True(t, resp.ConvertedAmount.Equal(decimal.NewFromInt(1)), "got %s", resp.ConvertedAmount)
	assert.Equal(t, "₦1,600", resp.FormattedOriginal)
	assert.Equal(t, "$1", resp.FormattedConverted)
	assert.Equal(t, "live", resp.RateSource)
}

func TestConvert_DefaultsToPreferredCurrency(t *testing.T) {
	provider := &fixedProvider{rates: map[string]float64{"EUR": 0.9, "JPY": 150}}
	r, env := newRatesTestEnv(t, provider, true)

	ctx := context.Background()
	require.NoError(t, env.prefs.SetPreferredCurrency(ctx, "user-1", "USD"))

	body := `{"amount":1600,"from":"NGN"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, "user-1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ConvertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "USD", resp.ToCurrency)
	assert.True(t, resp.ConvertedAmount.Equal(decimal.NewFromInt(1)), "got %s", resp.ConvertedAmount)
	assert.Equal(t, "$1", resp.FormattedConverted)
	assert.Equal(t, "live", resp.RateSource)
}

func TestConvert_MissingAmountRejected(t *testing.T) {
	provider := &fixedProvider{rates: map[string]float64{}}
	r := newRatesTestRouter(t, provider)

	body := `{"from":"NGN","to":"USD"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConvert_NoTargetAndNoUserRejected(t *testing.T) {
	provider := &fixedProvider{rates: map[string]float64{}}
	r := newRatesTestRouter(t, provider)

	body := `{"amount":100,"from":"NGN"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
