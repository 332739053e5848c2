// Package sections draws the fixed sequence of invoice sections onto a
// draw.Surface. Every section function takes the cursor where the previous
// one stopped and returns the cursor below what it drew.
package sections

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-invoice2pdf/internal/billing"
	"github.com/alnah/go-invoice2pdf/internal/dateutil"
	"github.com/alnah/go-invoice2pdf/internal/draw"
	"github.com/alnah/go-invoice2pdf/internal/layout"
	"github.com/alnah/go-invoice2pdf/internal/markdown"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/money"
	"github.com/alnah/go-invoice2pdf/internal/style"
)

// Spacing between blocks, in points.
const (
	blockGap   = 10.0
	titleGap   = 4.0
	pairWidth  = 220.0
	pairGap    = 2.0
	bulletTab  = 12.0
	labelSpace = 6.0
)

// Frame is everything a section needs for one render call. It is built by
// the assembler and never shared between calls.
type Frame struct {
	S        draw.Surface
	T        model.Template // resolved: every field is populated
	Content  model.Content
	Practice model.Party
	Logo     []byte
	Money    *money.Formatter
	Dates    dateutil.Formatter // long form, for the details grid
	Short    dateutil.Formatter // table cells
	Now      time.Time
	Log      *log.Logger
}

// Kind returns the document kind, defaulting to an invoice.
func (f *Frame) Kind() model.DocumentKind {
	if f.Content.Invoice.Kind == model.KindProForma {
		return model.KindProForma
	}
	return model.KindInvoice
}

// Totals returns the summary amounts with every default applied.
func (f *Frame) Totals() billing.Totals {
	return billing.ComputeTotals(billing.Derive(f.Content))
}

func visible(s model.Section) bool {
	return s.IsVisible == nil || *s.IsVisible
}

// DocumentTitle returns the heading text. VAT-registered practices always
// issue a TAX INVOICE; pro forma documents keep their own title unless the
// template overrides the default.
func DocumentTitle(t model.Template, kind model.DocumentKind, vatRegistered bool) string {
	title := strings.TrimSpace(t.Header.Title)
	if kind == model.KindProForma {
		if title == "" || title == model.DefaultTitle || title == model.DefaultTaxTitle {
			return model.DefaultProFormaTitle
		}
		return title
	}
	if vatRegistered {
		return model.DefaultTaxTitle
	}
	if title == "" {
		return model.DefaultTitle
	}
	return title
}

// heading draws a section title in ts at the cursor and advances past it.
func heading(f *Frame, c layout.Cursor, text string, ts model.TextStyle) layout.Cursor {
	if text == "" {
		return c
	}
	return c.At(layout.Line(f.S, ts, c.Geo.Left, c.Y, c.Geo.ContentWidth(), text) + titleGap)
}

// pair is one right-aligned label/value line of a subtotal or summary block.
type pair struct {
	label, value string
	style        model.TextStyle
}

// pairs draws label/value lines flush with the right margin. Labels start
// pairWidth left of the margin and values end on it. An empty label is a
// blank spacer line.
func pairs(f *Frame, c layout.Cursor, lines []pair) layout.Cursor {
	x := c.Geo.ContentRight() - pairWidth
	for _, p := range lines {
		lh := layout.LineHeight(p.style.FontSize)
		if p.label == "" {
			c = c.Advance(lh)
			continue
		}
		ts := p.style
		ts.Alignment = model.AlignLeft
		layout.Line(f.S, ts, x, c.Y, pairWidth, p.label)
		ts.Alignment = model.AlignRight
		layout.Line(f.S, ts, x, c.Y, pairWidth, p.value)
		c = c.Advance(lh + pairGap)
	}
	return c
}

func pairsHeight(lines []pair) float64 {
	h := 0.0
	for _, p := range lines {
		h += layout.LineHeight(p.style.FontSize)
		if p.label != "" {
			h += pairGap
		}
	}
	return h
}

// prose draws Markdown-flavored text as paragraphs, headings and bullets.
func prose(f *Frame, c layout.Cursor, ts model.TextStyle, x, width float64, text string) layout.Cursor {
	for _, b := range markdown.Parse(text) {
		switch b.Kind {
		case markdown.Heading:
			c = layout.Paragraph(f.S, c, style.With(ts, model.WeightBold, ""), x, width, b.Text)
		case markdown.Bullet:
			indent := bulletTab * float64(b.Level)
			c = bullet(f, c, ts, x+indent, width-indent, b.Marker, b.Text)
		default:
			c = layout.Paragraph(f.S, c, ts, x, width, b.Text)
		}
	}
	return c
}

// bullet draws marker in the left tab and wraps text beside it.
func bullet(f *Frame, c layout.Cursor, ts model.TextStyle, x, width float64, marker, text string) layout.Cursor {
	ts.Alignment = model.AlignLeft
	c = c.EnsureSpace(f.S, layout.LineHeight(ts.FontSize))
	layout.Line(f.S, ts, x, c.Y, bulletTab, marker)
	return layout.Paragraph(f.S, c, ts, x+bulletTab, width-bulletTab, text)
}

// orNA substitutes "N/A" for blank values, like the printed forms do.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
