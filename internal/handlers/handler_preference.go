package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimbuserp/fx_backend/internal/apperrors"
	portssvc "github.com/nimbuserp/fx_backend/internal/core/ports/services"
	"github.com/nimbuserp/fx_backend/internal/dto"
	"github.com/nimbuserp/fx_backend/internal/middleware"
)

// preferenceHandler holds dependencies for the display currency preference routes.
type preferenceHandler struct {
	preferenceService portssvc.PreferenceSvcFacade
}

// newPreferenceHandler creates a new preference handler.
func newPreferenceHandler(preferenceService portssvc.PreferenceSvcFacade) *preferenceHandler {
	return &preferenceHandler{preferenceService: preferenceService}
}

// RegisterPreferenceRoutes registers routes related to user currency preferences.
func RegisterPreferenceRoutes(rg *gin.RouterGroup, preferenceService portssvc.PreferenceSvcFacade) {
	h := newPreferenceHandler(preferenceService)

	prefs := rg.Group("/preferences")
	{
		prefs.GET("/currency", h.getPreferredCurrency)
		prefs.PUT("/currency", h.setPreferredCurrency)
	}
}

// getPreferredCurrency godoc
// @Summary Get the caller's preferred display currency
// @Description Returns the stored preference, or the home currency when none is set.
// @Tags Preferences
// @Produce json
// @Success 200 {object} dto.PreferenceResponse "Current preference"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Security BearerAuth
// @Router /preferences/currency [get]
func (h *preferenceHandler) getPreferredCurrency(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, dto.PreferenceResponse{
		UserID:   userID,
		Currency: h.preferenceService.GetPreferredCurrency(c.Request.Context(), userID),
	})
}

// setPreferredCurrency godoc
// @Summary Set the caller's preferred display currency
// @Description Validates, persists and broadcasts the new preference so every live consumer converges on it.
// @Tags Preferences
// @Accept json
// @Produce json
// @Param request body dto.UpdatePreferenceRequest true "New display currency"
// @Success 200 {object} dto.PreferenceResponse "Stored preference"
// @Failure 400 {object} map[string]string "Unsupported currency code"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Security BearerAuth
// @Router /preferences/currency [put]
func (h *preferenceHandler) setPreferredCurrency(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req dto.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.preferenceService.SetPreferredCurrency(c.Request.Context(), userID, req.Currency); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported currency code: " + req.Currency})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to store currency preference", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store preference"})
		return
	}

	c.JSON(http.StatusOK, dto.PreferenceResponse{UserID: userID, Currency: req.Currency})
}
