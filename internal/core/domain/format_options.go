package domain

// FormatOptions controls currency display formatting.
type FormatOptions struct {
	// HideSymbol renders a plain decimal instead of a currency string.
	HideSymbol bool
	// Compact abbreviates magnitudes of one million and above ("1.5M").
	Compact bool
	// MinFractionDigits and MaxFractionDigits bound the fraction part.
	MinFractionDigits int
	MaxFractionDigits int
}

// DefaultFormatOptions returns the display defaults: symbol shown, standard
// notation, up to two fraction digits with no forced trailing zeros.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{MaxFractionDigits: 2}
}

// Normalized returns a copy with the fraction bounds made consistent.
func (o FormatOptions) Normalized() FormatOptions {
	if o.MinFractionDigits < 0 {
		o.MinFractionDigits = 0
	}
	if o.MaxFractionDigits < o.MinFractionDigits {
		o.MaxFractionDigits = o.MinFractionDigits
	}
	return o
}
