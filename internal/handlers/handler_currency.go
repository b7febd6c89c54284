package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	portssvc "github.com/nimbuserp/fx_backend/internal/core/ports/services"
	"github.com/nimbuserp/fx_backend/internal/dto"
	"github.com/nimbuserp/fx_backend/internal/middleware"
	"github.com/nimbuserp/fx_backend/internal/utils/pagination"
)

// currencyHandler holds dependencies for currency catalog and formatting routes.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currency handler.
func newCurrencyHandler(currencyService portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: currencyService}
}

// RegisterCurrencyRoutes registers routes related to the currency catalog.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrencyByCode)
	}
	rg.POST("/format", h.formatAmount)
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Returns a page of the supported currency catalog, home currency first.
// @Tags Currencies
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Param pageSize query int false "Items per page" default(10)
// @Success 200 {object} dto.PagedResponse[dto.CurrencyResponse] "Page of currencies"
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(pagination.DefaultPageSize)))

	paginator := pagination.New(h.currencyService.Catalog().List(), pageSize)
	paginator.SetCurrentPage(page)

	c.JSON(http.StatusOK, dto.PagedResponse[dto.CurrencyResponse]{
		Items:      dto.ToListCurrencyResponse(paginator.Page()),
		Page:       paginator.CurrentPage(),
		PageSize:   paginator.PageSize(),
		TotalPages: paginator.TotalPages(),
		TotalItems: paginator.TotalItems(),
	})
}

// getCurrencyByCode godoc
// @Summary Get a currency by code
// @Description Returns the catalog entry for a single ISO 4217 code.
// @Tags Currencies
// @Produce json
// @Param code path string true "Currency code (e.g. USD)"
// @Success 200 {object} dto.CurrencyResponse "Catalog entry"
// @Failure 404 {object} map[string]string "Unknown currency code"
// @Security BearerAuth
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	cur, ok := h.currencyService.Catalog().Lookup(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found: " + code})
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(cur))
}

// formatAmount godoc
// @Summary Format an amount for display
// @Description Renders a raw amount string in a currency's locale. Unparseable amounts render as a placeholder, never an error.
// @Tags Currencies
// @Accept json
// @Produce json
// @Param request body dto.FormatRequest true "Amount and formatting options"
// @Success 200 {object} dto.FormatResponse "Formatted display string"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Security BearerAuth
// @Router /format [post]
func (h *currencyHandler) formatAmount(c *gin.Context) {
	var req dto.FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid format request", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	code := req.Currency
	if code == "" {
		code = h.currencyService.Catalog().HomeCode()
	}

	c.JSON(http.StatusOK, dto.FormatResponse{
		Formatted: h.currencyService.FormatString(req.Amount, code, req.Options()),
	})
}
