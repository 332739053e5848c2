// Package money formats amounts for display on invoices.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is the South African Rand prefix.
const DefaultSymbol = "R"

// Formatter renders amounts as a currency prefix followed by a grouped
// two-decimal number, e.g. R1,150.00. A Formatter is not safe for
// concurrent use; each render builds its own.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// New returns a formatter for symbol using English digit grouping. An empty
// symbol selects DefaultSymbol.
func New(symbol string) *Formatter {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return &Formatter{symbol: symbol, printer: message.NewPrinter(language.English)}
}

// Format renders v. Negative amounts carry a leading minus before the
// symbol and amounts that round to zero never print as -R0.00.
func (f *Formatter) Format(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0
	}
	if v < 0 {
		return "-" + f.symbol + f.printer.Sprintf("%.2f", -v)
	}
	return f.symbol + f.printer.Sprintf("%.2f", v)
}

// Hours renders a duration in hours as "1.50h".
func (f *Formatter) Hours(h float64) string {
	return f.printer.Sprintf("%.2fh", h)
}

// Quantity renders a service quantity without trailing zeros for whole
// numbers.
func (f *Formatter) Quantity(q float64) string {
	if q == math.Trunc(q) {
		return f.printer.Sprintf("%d", int64(q))
	}
	return f.printer.Sprintf("%.2f", q)
}

// Percent renders a rate such as 0.15 as "15%".
func (f *Formatter) Percent(rate float64) string {
	p := math.Round(rate*10000) / 100
	if p == math.Trunc(p) {
		return f.printer.Sprintf("%d%%", int64(p))
	}
	return f.printer.Sprintf("%.1f%%", p)
}
