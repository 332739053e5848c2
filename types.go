package invoice2pdf

import (
	"context"
	"time"

	"github.com/alnah/go-invoice2pdf/internal/model"
)

// Template and content types. They are aliases so stores and loaders can
// be written against the internal model without importing this package.
type (
	Template     = model.Template
	TextStyle    = model.TextStyle
	ColorScheme  = model.ColorScheme
	Margins      = model.Margins
	Content      = model.Content
	Invoice      = model.Invoice
	Matter       = model.Matter
	Client       = model.Client
	Party        = model.Party
	TimeEntry    = model.TimeEntry
	Expense      = model.Expense
	Service      = model.Service
	Date         = model.Date
	DocumentKind = model.DocumentKind
)

// Document kinds.
const (
	KindInvoice  = model.KindInvoice
	KindProForma = model.KindProForma
)

// DefaultTemplate returns the fully-populated built-in template.
func DefaultTemplate() Template { return model.DefaultTemplate() }

// ResolveTemplate merges t over the built-in defaults field by field.
func ResolveTemplate(t *Template) Template { return model.Resolve(t) }

// Input is one render request.
type Input struct {
	Content  Content
	Practice Party

	// Template overrides every other template source when set. It may be
	// partial; absent fields take the built-in defaults.
	Template *Template

	// AccountID selects the stored default template when Template is nil.
	AccountID string

	// Logo holds the image bytes. When empty, LogoRef (or the template's
	// logoUrl) is fetched through the LogoLoader.
	Logo    []byte
	LogoRef string
}

// TemplateStore persists per-account templates.
type TemplateStore interface {
	// LoadDefaultTemplate returns the account's default template. A
	// missing template is an error; the renderer treats every error as
	// "use the default".
	LoadDefaultTemplate(ctx context.Context, accountID string) (*Template, error)

	// SaveTemplate stores t as the account's default and returns the
	// stored version.
	SaveTemplate(ctx context.Context, accountID string, t Template) (Template, error)
}

// LogoLoader fetches logo bytes by reference.
type LogoLoader interface {
	LoadLogo(ctx context.Context, ref string) ([]byte, error)
}

// Observer receives render outcomes, e.g. for metrics.
type Observer interface {
	// RenderDone is called once per Render call.
	RenderDone(kind string, pages int, elapsed time.Duration, err error)

	// TemplateFallback is called when a stored template could not be used.
	TemplateFallback(reason string)

	// LogoSkipped is called when a referenced logo could not be loaded.
	LogoSkipped()
}

type nopObserver struct{}

func (nopObserver) RenderDone(string, int, time.Duration, error) {}
func (nopObserver) TemplateFallback(string)                      {}
func (nopObserver) LogoSkipped()                                 {}
