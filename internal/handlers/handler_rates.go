package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nimbuserp/fx_backend/internal/apperrors"
	"github.com/nimbuserp/fx_backend/internal/core/domain"
	portssvc "github.com/nimbuserp/fx_backend/internal/core/ports/services"
	"github.com/nimbuserp/fx_backend/internal/dto"
	"github.com/nimbuserp/fx_backend/internal/middleware"
	"github.com/nimbuserp/fx_backend/internal/utils/pagination"
)

// ratesHandler holds dependencies for rate lookup and conversion routes.
type ratesHandler struct {
	rateService     portssvc.RateSvcFacade
	currencyService portssvc.CurrencySvcFacade
	sessionService  portssvc.SessionSvcFacade
}

// newRatesHandler creates a new rates handler.
func newRatesHandler(rateService portssvc.RateSvcFacade, currencyService portssvc.CurrencySvcFacade, sessionService portssvc.SessionSvcFacade) *ratesHandler {
	return &ratesHandler{
		rateService:     rateService,
		currencyService: currencyService,
		sessionService:  sessionService,
	}
}

// RegisterRatesRoutes registers routes related to exchange rates and conversion.
func RegisterRatesRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade, currencyService portssvc.CurrencySvcFacade, sessionService portssvc.SessionSvcFacade) {
	h := newRatesHandler(rateService, currencyService, sessionService)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.getRates)
		rates.POST("/refresh", h.refreshRates)
		rates.GET("/pair", h.getPairRate)
		rates.GET("/history", h.getRateHistory)
	}
	rg.POST("/convert", h.convert)
}

// getRates godoc
// @Summary Get current exchange rates
// @Description Returns the rate table for a base currency. Cached data is served while fresh; provider outages degrade to cached and then fallback rates, never an error.
// @Tags Rates
// @Produce json
// @Param base query string false "Base currency code; defaults to the home currency"
// @Success 200 {object} dto.RateSetResponse "Rate table with its source"
// @Failure 400 {object} map[string]string "Unknown base currency"
// @Security BearerAuth
// @Router /rates [get]
func (h *ratesHandler) getRates(c *gin.Context) {
	base := strings.ToUpper(c.Query("base"))

	var result domain.RateResult
	switch {
	case base == "" || base == h.currencyService.Catalog().HomeCode():
		result = h.rateService.CurrentRates(c.Request.Context())
	case h.currencyService.Catalog().Has(base):
		result = h.rateService.FetchRates(c.Request.Context(), base)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported base currency: " + base})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateSetResponse(result))
}

// refreshRates godoc
// @Summary Force a rate refresh
// @Description Bypasses the cache and refetches home-based rates immediately.
// @Tags Rates
// @Produce json
// @Success 200 {object} dto.RateSetResponse "Refetched rate table"
// @Security BearerAuth
// @Router /rates/refresh [post]
func (h *ratesHandler) refreshRates(c *gin.Context) {
	result := h.rateService.RefreshRates(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToRateSetResponse(result))
}

// getPairRate godoc
// @Summary Get the rate between two currencies
// @Description Returns the from→to multiplier together with a display string like "1 USD = 1,600 NGN".
// @Tags Rates
// @Produce json
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Success 200 {object} dto.PairRateResponse "Pair rate"
// @Failure 400 {object} map[string]string "Unknown currency code"
// @Security BearerAuth
// @Router /rates/pair [get]
func (h *ratesHandler) getPairRate(c *gin.Context) {
	from := strings.ToUpper(c.Query("from"))
	to := strings.ToUpper(c.Query("to"))
	catalog := h.currencyService.Catalog()
	if !catalog.Has(from) || !catalog.Has(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both from and to must be supported currency codes"})
		return
	}

	result := h.rateService.CurrentRates(c.Request.Context())
	c.JSON(http.StatusOK, dto.PairRateResponse{
		From:    from,
		To:      to,
		Rate:    h.currencyService.Rate(from, to, result.Set.Rates),
		Display: h.currencyService.FormatRate(from, to, result.Set.Rates),
		Source:  string(result.Source),
	})
}

// historyFetchLimit bounds how many rows back a single history page can reach.
const historyFetchLimit = 500

// getRateHistory godoc
// @Summary List persisted rate history
// @Description Returns a page of persisted rate rows for a base currency, newest first.
// @Tags Rates
// @Produce json
// @Param base query string false "Base currency code; defaults to the home currency"
// @Param page query int false "1-based page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} dto.PagedResponse[dto.RateHistoryEntryResponse] "Page of history rows"
// @Failure 404 {object} map[string]string "History persistence not configured"
// @Security BearerAuth
// @Router /rates/history [get]
func (h *ratesHandler) getRateHistory(c *gin.Context) {
	base := strings.ToUpper(c.Query("base"))
	if base == "" {
		base = h.currencyService.Catalog().HomeCode()
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(pagination.DefaultPageSize)))

	entries, err := h.rateService.History(c.Request.Context(), base, historyFetchLimit)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate history is not available"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list rate history", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rate history"})
		return
	}

	paginator := pagination.New(entries, pageSize)
	paginator.SetCurrentPage(page)

	c.JSON(http.StatusOK, dto.PagedResponse[dto.RateHistoryEntryResponse]{
		Items:      dto.ToListRateHistoryResponse(paginator.Page()),
		Page:       paginator.CurrentPage(),
		PageSize:   paginator.PageSize(),
		TotalPages: paginator.TotalPages(),
		TotalItems: paginator.TotalItems(),
	})
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts an amount using current rates and returns both the raw values and locale-formatted display strings. The target defaults to the caller's preferred currency.
// @Tags Rates
// @Accept json
// @Produce json
// @Param request body dto.ConvertRequest true "Amount, source and optional target currency"
// @Success 200 {object} dto.ConvertResponse "Conversion result"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Security BearerAuth
// @Router /convert [post]
func (h *ratesHandler) convert(c *gin.Context) {
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid convert request", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if req.To == "" {
		// No explicit target: convert into the caller's preferred currency
		// through a session, so the preference and its broadcast semantics
		// apply exactly as they do for embedded consumers.
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Target currency is required"})
			return
		}
		view := h.sessionService.Conversion(c.Request.Context(), userID, req.Amount, req.From)
		c.JSON(http.StatusOK, dto.ToConvertResponse(view))
		return
	}

	result := h.rateService.CurrentRates(c.Request.Context())
	opts := domain.DefaultFormatOptions()
	converted := h.currencyService.Convert(req.Amount, req.From, req.To, result.Set.Rates)

	c.JSON(http.StatusOK, dto.ConvertResponse{
		FromCurrency:       req.From,
		ToCurrency:         req.To,
		OriginalAmount:     req.Amount,
		ConvertedAmount:    converted,
		FormattedOriginal:  h.currencyService.Format(req.Amount, req.From, opts),
		FormattedConverted: h.currencyService.Format(converted, req.To, opts),
		ExchangeRate:       h.currencyService.Rate(req.From, req.To, result.Set.Rates),
		RateSource:         string(result.Source),
	})
}
