// Package dateutil converts user-friendly date format strings (DD MMMM YYYY)
// to Go layouts and formats invoice dates with them.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is the long South African invoice form, "15 March 2024".
const DefaultDateFormat = "DD MMMM YYYY"

// TimestampFormat is used for the "Generated on" footer line.
const TimestampFormat = "DD MMMM YYYY [at] HH:mm"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching. Matching is
// case-sensitive, so "MM" is the month and "mm" the minute.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":     "YYYY-MM-DD",
	"long":    DefaultDateFormat,
	"short":   "DD/MM/YYYY",
	"compact": "DD MMM YYYY",
}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss.
// Use brackets to escape literal text: [at] preserves "at" literally.
// Any non-token characters outside brackets are preserved as literals.
// Returns ErrInvalidDateFormat if the format is empty, too long, or has unclosed brackets.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// Formatter renders dates with a parsed format.
type Formatter struct {
	layout string
}

// NewFormatter accepts a preset name (case-insensitive) or a token format.
// An empty format selects DefaultDateFormat.
func NewFormatter(format string) (Formatter, error) {
	format = strings.TrimSpace(format)
	if format == "" {
		format = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	layout, err := ParseDateFormat(format)
	if err != nil {
		return Formatter{}, err
	}
	return Formatter{layout: layout}, nil
}

// MustFormatter is NewFormatter for formats known to be valid.
func MustFormatter(format string) Formatter {
	f, err := NewFormatter(format)
	if err != nil {
		panic(err)
	}
	return f
}

// Format renders t, or "" for the zero time. A Formatter with no layout
// uses DefaultDateFormat.
func (f Formatter) Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if f.layout == "" {
		f = MustFormatter(DefaultDateFormat)
	}
	return t.Format(f.layout)
}

// Timestamp renders t as the footer's generation time.
func Timestamp(t time.Time) string {
	return MustFormatter(TimestampFormat).Format(t)
}
