package services

import (
	portssvc "github.com/nimbuserp/fx_backend/internal/core/ports/services"
)

// BuildServices bundles the concrete services behind their facades for the
// HTTP layer.
func BuildServices(
	currency *CurrencyService,
	rates *RateService,
	prefs *PreferenceService,
	sessions *SessionFactory,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Currency:    currency,
		Rates:       rates,
		Preferences: prefs,
		Sessions:    sessions,
	}
}
