package dto

// PreferenceResponse returns a user's current display currency.
type PreferenceResponse struct {
	UserID   string `json:"userID"`
	Currency string `json:"currency"`
}

// UpdatePreferenceRequest changes a user's display currency.
type UpdatePreferenceRequest struct {
	Currency string `json:"currency" binding:"required,currencycode"`
}
