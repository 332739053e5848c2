package invoice2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/alnah/go-invoice2pdf/internal/assets"
	"github.com/alnah/go-invoice2pdf/internal/dateutil"
	"github.com/alnah/go-invoice2pdf/internal/draw"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/money"
	"github.com/alnah/go-invoice2pdf/internal/sections"
	"github.com/alnah/go-invoice2pdf/internal/store"
)

// Compile-time interface implementation checks.
var (
	_ LogoLoader    = assets.DataURLLoader{}
	_ LogoLoader    = (*assets.Resolver)(nil)
	_ TemplateStore = (*store.File)(nil)
	_ TemplateStore = (*store.Postgres)(nil)
	_ TemplateStore = (*store.Supabase)(nil)
)

// Template fallback reasons reported to the Observer.
const (
	FallbackNotFound = "not_found"
	FallbackError    = "error"
	FallbackInvalid  = "invalid"
)

// Renderer turns content into invoice PDFs. Create with NewRenderer; a
// Renderer is safe for concurrent use.
type Renderer struct {
	cfg      rendererConfig
	store    TemplateStore
	logos    LogoLoader
	log      *log.Logger
	now      func() time.Time
	fallback *Template
	observer Observer
	dates    dateutil.Formatter
	short    dateutil.Formatter
}

// NewRenderer creates a Renderer with default configuration.
// Returns an error wrapping ErrInvalidPageSize or ErrInvalidDateFormat for
// bad options, or ErrInvalidTemplate for an invalid default template.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		logos:    assets.DataURLLoader{},
		log:      discardLogger(),
		now:      time.Now,
		observer: nopObserver{},
		short:    dateutil.MustFormatter("short"),
	}
	for _, opt := range opts {
		opt(r)
	}

	if _, err := draw.NewPDF(draw.Options{PageSize: r.cfg.pageSize}); err != nil {
		return nil, err
	}
	dates, err := dateutil.NewFormatter(r.cfg.dateFormat)
	if err != nil {
		return nil, err
	}
	r.dates = dates
	if err := r.fallback.Validate(); err != nil {
		return nil, fmt.Errorf("default template: %w", err)
	}
	return r, nil
}

// Render draws in and returns the PDF bytes.
// The context is checked before drawing starts; drawing itself is not
// interruptible. Recovers from internal panics and reports them as ErrRender.
func (r *Renderer) Render(ctx context.Context, in Input) (pdf []byte, err error) {
	began := time.Now()
	docID := uuid.New()
	logger := r.log.With("doc", docID.String())
	kind := string(kindOf(in.Content))
	pages := 0

	defer func() {
		if rec := recover(); rec != nil {
			pdf = nil
			err = fmt.Errorf("%w: internal error: %v", ErrRender, rec)
		}
		r.observer.RenderDone(kind, pages, time.Since(began), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := in.Template.Validate(); err != nil {
		return nil, err
	}

	t := model.Resolve(r.template(ctx, in, logger))
	logo := r.logo(ctx, in, t, logger)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := r.now()
	surface, err := draw.NewPDF(draw.Options{
		PageSize: r.cfg.pageSize,
		Title:    documentInfoTitle(t, in),
		Author:   in.Practice.Name,
		Subject:  matterTitle(in.Content),
		Keywords: "invoice2pdf document-id:" + docID.String(),
		Created:  now,
		Compress: r.cfg.compress,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	sections.Document(&sections.Frame{
		S:        surface,
		T:        t,
		Content:  in.Content,
		Practice: in.Practice,
		Logo:     logo,
		Money:    money.New(r.cfg.currency),
		Dates:    r.dates,
		Short:    r.short,
		Now:      now,
		Log:      logger,
	})
	if err := surface.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	pages = surface.PageCount()

	var buf bytes.Buffer
	if err := surface.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	logger.Debug("rendered", "kind", kind, "pages", pages, "bytes", buf.Len(), "elapsed", time.Since(began))
	return buf.Bytes(), nil
}

// RenderDataURL renders in and encodes the PDF as a base64 data URL.
func (r *Renderer) RenderDataURL(ctx context.Context, in Input) (string, error) {
	pdf, err := r.Render(ctx, in)
	if err != nil {
		return "", err
	}
	return assets.EncodeDataURL("application/pdf", pdf), nil
}

// template picks the unresolved template for in: the input's own, the
// account's stored default, the renderer's default, or nil for the
// built-in defaults. Store failures are logged and never returned.
func (r *Renderer) template(ctx context.Context, in Input, logger *log.Logger) *Template {
	if in.Template != nil {
		return in.Template
	}
	if in.AccountID == "" || r.store == nil {
		return r.fallback
	}

	stored, err := r.store.LoadDefaultTemplate(ctx, in.AccountID)
	switch {
	case errors.Is(err, store.ErrTemplateNotFound):
		logger.Debug("no stored template", "account", in.AccountID)
		r.observer.TemplateFallback(FallbackNotFound)
		return r.fallback
	case err != nil:
		logger.Warn("template store failed, using default", "account", in.AccountID, "err", err)
		r.observer.TemplateFallback(FallbackError)
		return r.fallback
	case stored == nil:
		r.observer.TemplateFallback(FallbackNotFound)
		return r.fallback
	}
	if err := stored.Validate(); err != nil {
		logger.Warn("stored template invalid, using default", "account", in.AccountID, "err", err)
		r.observer.TemplateFallback(FallbackInvalid)
		return r.fallback
	}
	return stored
}

// logo returns the inline logo bytes or loads the input's reference,
// falling back to the template's logoUrl. Failures are logged and yield
// no logo.
func (r *Renderer) logo(ctx context.Context, in Input, t Template, logger *log.Logger) []byte {
	if !model.On(t.Header.ShowLogo) {
		return nil
	}
	if len(in.Logo) > 0 {
		return in.Logo
	}
	ref := in.LogoRef
	if ref == "" {
		ref = t.Header.LogoURL
	}
	if ref == "" {
		return nil
	}

	data, err := r.logos.LoadLogo(ctx, ref)
	if err != nil {
		logger.Warn("logo skipped", "err", err)
		r.observer.LogoSkipped()
		return nil
	}
	return data
}

func kindOf(c Content) DocumentKind {
	if c.Invoice.Kind == KindProForma {
		return KindProForma
	}
	return KindInvoice
}

func documentInfoTitle(t Template, in Input) string {
	title := sections.DocumentTitle(t, kindOf(in.Content), in.Practice.VATRegistered)
	if n := in.Content.Invoice.Number; n != "" {
		title += " " + n
	}
	return title
}

func matterTitle(c Content) string {
	if c.Matter == nil {
		return ""
	}
	return c.Matter.Title
}

// Filename returns the download name for an invoice: Invoice_{number}.pdf,
// or Invoice_Document.pdf when the number is blank.
func Filename(number string) string {
	return FilenameFor(KindInvoice, number)
}

// FilenameFor returns the download name for a document of the given kind.
// Pro forma documents use ProForma_{number}.pdf, or ProForma_Estimate.pdf.
// Characters that are unsafe in file names become underscores.
func FilenameFor(kind DocumentKind, number string) string {
	prefix, fallback := "Invoice_", "Document"
	if kind == KindProForma {
		prefix, fallback = "ProForma_", "Estimate"
	}
	number = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, strings.ContainsRune(`/\:*?"<>| `, r):
			return '_'
		}
		return r
	}, strings.TrimSpace(number))
	if number == "" {
		number = fallback
	}
	return prefix + number + ".pdf"
}
