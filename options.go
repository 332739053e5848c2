package invoice2pdf

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds values validated by NewRenderer.
type rendererConfig struct {
	pageSize   string
	dateFormat string
	currency   string
	compress   bool
}

// WithTemplateStore sets the store consulted for Input.AccountID.
func WithTemplateStore(s TemplateStore) Option {
	return func(r *Renderer) {
		r.store = s
	}
}

// WithLogoLoader sets the loader used for logo references. The default
// only decodes data URLs.
func WithLogoLoader(l LogoLoader) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logos = l
		}
	}
}

// WithLogger sets the logger for soft failures (Warn) and timings (Debug).
// The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock sets the time source for the generation timestamp and the
// overdue check.
// Panics if now is nil (programmer error).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("invoice2pdf: WithClock requires a non-nil clock")
	}
	return func(r *Renderer) {
		r.now = now
	}
}

// WithPageSize selects a4 (default), a5, letter or legal.
func WithPageSize(size string) Option {
	return func(r *Renderer) {
		r.cfg.pageSize = size
	}
}

// WithDateFormat sets the details-grid date format: a preset name (iso,
// long, short, compact) or tokens such as "DD MMMM YYYY".
func WithDateFormat(format string) Option {
	return func(r *Renderer) {
		r.cfg.dateFormat = format
	}
}

// WithCurrency sets the amount prefix. The default is "R".
func WithCurrency(symbol string) Option {
	return func(r *Renderer) {
		r.cfg.currency = symbol
	}
}

// WithCompression compresses PDF page streams.
func WithCompression(on bool) Option {
	return func(r *Renderer) {
		r.cfg.compress = on
	}
}

// WithDefaultTemplate sets the template used when neither the input nor the
// store provides one, e.g. a preset.
func WithDefaultTemplate(t Template) Option {
	return func(r *Renderer) {
		r.fallback = &t
	}
}

// WithMetrics reports render outcomes to o.
func WithMetrics(o Observer) Option {
	return func(r *Renderer) {
		if o != nil {
			r.observer = o
		}
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
