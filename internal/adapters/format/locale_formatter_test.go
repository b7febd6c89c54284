package format_test

import (
	"testing"

	"github.com/nimbuserp/fx_backend/internal/adapters/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDecimal_Locales(t *testing.T) {
	f := format.NewLocaleFormatter()

	tests := []struct {
		name    string
		amount  float64
		locale  string
		minFrac int
		maxFrac int
		want    string
	}{
		{"US grouping", 1234.5, "en-US", 2, 2, "1,234.50"},
		{"German grouping", 1234.5, "de-DE", 2, 2, "1.234,50"},
		{"no forced fraction", 1600, "en-US", 0, 2, "1,600"},
		{"Nigerian English", 12500000, "en-NG", 0, 2, "12,500,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.FormatDecimal(tt.amount, tt.locale, tt.minFrac, tt.maxFrac)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDecimal_InvalidLocale(t *testing.T) {
	f := format.NewLocaleFormatter()

	_, err := f.FormatDecimal(100, "!!not-a-locale!!", 0, 2)
	assert.Error(t, err)
}

func TestFormatDecimal_CachesPrinters(t *testing.T) {
	f := format.NewLocaleFormatter()

	first, err := f.FormatDecimal(1000, "en-US", 0, 0)
	require.NoError(t, err)
	second, err := f.FormatDecimal(1000, "en-US", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
