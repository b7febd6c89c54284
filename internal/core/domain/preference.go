package domain

// CurrencyChange is the payload of the in-process "currency changed"
// broadcast emitted whenever a user updates their preferred display currency.
// Listeners registered after a broadcast do not receive it retroactively;
// they read the persisted preference fresh on their own startup instead.
type CurrencyChange struct {
	UserID string `json:"userID"`
	Code   string `json:"code"`
}
