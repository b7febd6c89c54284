package domain

// Currency represents one entry of the fixed catalog of supported currencies.
type Currency struct {
	Code   string `json:"code"`   // ISO 4217 code (e.g., "NGN")
	Symbol string `json:"symbol"` // e.g., "₦"
	Name   string `json:"name"`   // e.g., "Nigerian Naira"
	Locale string `json:"locale"` // BCP-47 tag used for formatting (e.g., "en-NG")
}

// Catalog is the immutable set of supported currencies. It is constructed once
// at startup and passed by reference into services, so tests can substitute a
// smaller catalog without touching package-level state.
type Catalog struct {
	home    string
	entries map[string]Currency
	codes   []string // insertion order, home first; stable for listings and provider symbol lists
}

// NewCatalog builds a catalog with the given home currency and the remaining
// supported currencies. The home currency is the default for formatting and
// the base of the fallback rate table.
func NewCatalog(home Currency, others ...Currency) *Catalog {
	c := &Catalog{
		home:    home.Code,
		entries: make(map[string]Currency, len(others)+1),
		codes:   make([]string, 0, len(others)+1),
	}
	c.add(home)
	for _, cur := range others {
		c.add(cur)
	}
	return c
}

func (c *Catalog) add(cur Currency) {
	if _, exists := c.entries[cur.Code]; exists {
		return
	}
	c.entries[cur.Code] = cur
	c.codes = append(c.codes, cur.Code)
}

// HomeCode returns the code of the home currency.
func (c *Catalog) HomeCode() string {
	return c.home
}

// Home returns the home currency entry.
func (c *Catalog) Home() Currency {
	return c.entries[c.home]
}

// Lookup returns the catalog entry for code, if present.
func (c *Catalog) Lookup(code string) (Currency, bool) {
	cur, ok := c.entries[code]
	return cur, ok
}

// Has reports whether code is part of the catalog.
func (c *Catalog) Has(code string) bool {
	_, ok := c.entries[code]
	return ok
}

// Resolve returns the catalog entry for code, falling back to the home
// currency when the code is unknown. Display paths never fail on an unknown
// code; they degrade to the home entry.
func (c *Catalog) Resolve(code string) Currency {
	if cur, ok := c.entries[code]; ok {
		return cur
	}
	return c.Home()
}

// Codes returns all supported codes, home first, in catalog order.
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)
	return out
}

// List returns all catalog entries in catalog order.
func (c *Catalog) List() []Currency {
	out := make([]Currency, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.entries[code])
	}
	return out
}

// Size returns the number of catalog entries.
func (c *Catalog) Size() int {
	return len(c.codes)
}

// DefaultCatalog returns the catalog of the ten currencies the ERP supports,
// with NGN as the home currency.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Currency{Code: "NGN", Symbol: "₦", Name: "Nigerian Naira", Locale: "en-NG"},
		Currency{Code: "USD", Symbol: "$", Name: "US Dollar", Locale: "en-US"},
		Currency{Code: "EUR", Symbol: "€", Name: "Euro", Locale: "de-DE"},
		Currency{Code: "GBP", Symbol: "£", Name: "British Pound", Locale: "en-GB"},
		Currency{Code: "CAD", Symbol: "CA$", Name: "Canadian Dollar", Locale: "en-CA"},
		Currency{Code: "AUD", Symbol: "A$", Name: "Australian Dollar", Locale: "en-AU"},
		Currency{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", Locale: "ja-JP"},
		Currency{Code: "CNY", Symbol: "CN¥", Name: "Chinese Yuan", Locale: "zh-CN"},
		Currency{Code: "INR", Symbol: "₹", Name: "Indian Rupee", Locale: "en-IN"},
		Currency{Code: "ZAR", Symbol: "R", Name: "South African Rand", Locale: "en-ZA"},
	)
}
