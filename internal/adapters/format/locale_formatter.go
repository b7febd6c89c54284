package format

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// LocaleFormatter renders decimals with locale-aware grouping using
// golang.org/x/text. Printers are cached per locale tag; the formatter is
// safe for concurrent use.
type LocaleFormatter struct {
	mu       sync.RWMutex
	printers map[string]*message.Printer
}

// NewLocaleFormatter creates an empty formatter.
func NewLocaleFormatter() *LocaleFormatter {
	return &LocaleFormatter{printers: make(map[string]*message.Printer)}
}

// FormatDecimal renders amount with the grouping rules of locale and the
// given fraction digit bounds. It returns an error for unparseable locale
// tags; callers degrade to manual grouping.
func (f *LocaleFormatter) FormatDecimal(amount float64, locale string, minFrac, maxFrac int) (string, error) {
	p, err := f.printer(locale)
	if err != nil {
		return "", err
	}
	return p.Sprintf("%v", number.Decimal(amount,
		number.MinFractionDigits(minFrac),
		number.MaxFractionDigits(maxFrac),
	)), nil
}

func (f *LocaleFormatter) printer(locale string) (*message.Printer, error) {
	f.mu.RLock()
	p, ok := f.printers[locale]
	f.mu.RUnlock()
	if ok {
		return p, nil
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("unsupported locale %q: %w", locale, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.printers[locale]; ok {
		return p, nil
	}
	p = message.NewPrinter(tag)
	f.printers[locale] = p
	return p, nil
}
