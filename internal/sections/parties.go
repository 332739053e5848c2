package sections

import (
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/layout"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/style"
)

// Parties draws the FROM and BILL TO blocks, side by side when the from
// section's layout is horizontal and both are visible, stacked otherwise.
// VAT-registered practices also show their VAT number and postal address.
func Parties(f *Frame, c layout.Cursor) layout.Cursor {
	from, to := f.T.Sections.From, f.T.Sections.To
	showFrom, showTo := visible(from), visible(to)
	if !showFrom && !showTo {
		return c
	}
	fromLines := practiceLines(f.Practice)
	toLines := clientLines(f.Content)

	if from.Layout == model.Horizontal && showFrom && showTo {
		left, right := c.Columns(layout.Gutter)
		need := max(panelHeight(f, from, left.Width, fromLines), panelHeight(f, to, right.Width, toLines))
		c = c.EnsureSpace(f.S, need)
		left, right = c.Columns(layout.Gutter)
		left.Y = panel(f, from, left.X, left.Width, left.Y, fromLines)
		right.Y = panel(f, to, right.X, right.Width, right.Y, toLines)
		return c.Join(left, right, from.Pad())
	}

	for _, p := range []struct {
		sec   model.Section
		show  bool
		lines []string
	}{{from, showFrom, fromLines}, {to, showTo, toLines}} {
		if !p.show {
			continue
		}
		c = c.EnsureSpace(f.S, panelHeight(f, p.sec, c.Geo.ContentWidth(), p.lines))
		c = c.At(panel(f, p.sec, c.Geo.Left, c.Geo.ContentWidth(), c.Y, p.lines) + p.sec.Pad())
	}
	return c
}

func practiceLines(p model.Party) []string {
	lines := []string{orNA(p.Name)}
	if p.PracticeNumber != "" {
		lines = append(lines, "Practice Number: "+p.PracticeNumber)
	}
	if p.Email != "" {
		lines = append(lines, "Email: "+p.Email)
	}
	if p.Phone != "" {
		lines = append(lines, "Phone: "+p.Phone)
	}
	if p.VATRegistered {
		if p.VATNumber != "" {
			lines = append(lines, "VAT Number: "+p.VATNumber)
		}
		lines = append(lines, splitLines(p.PostalAddress)...)
	}
	return lines
}

func clientLines(c model.Content) []string {
	cl := c.Client()
	var lines []string
	for _, s := range []string{cl.Name, cl.Firm, cl.Email, cl.Phone} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	return append(lines, splitLines(cl.Address)...)
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// panelHeight measures a panel without drawing it.
func panelHeight(f *Frame, sec model.Section, width float64, lines []string) float64 {
	return 2*sec.Pad() + panelTitleHeight(sec) +
		float64(len(wrapAll(f, sec.ContentStyle, width-2*sec.Pad(), lines)))*layout.LineHeight(sec.ContentStyle.FontSize)
}

func panelTitleHeight(sec model.Section) float64 {
	if sec.Title == "" {
		return 0
	}
	return layout.LineHeight(sec.TitleStyle.FontSize) + titleGap
}

func wrapAll(f *Frame, ts model.TextStyle, width float64, lines []string) []string {
	style.ApplyText(f.S, ts)
	var out []string
	for _, l := range lines {
		out = append(out, layout.Wrap(f.S, l, width)...)
	}
	return out
}

// panel draws a titled list of lines in [x, x+width] from y, with the
// section's background and border, and returns the y below it.
func panel(f *Frame, sec model.Section, x, width, y float64, lines []string) float64 {
	pad := sec.Pad()
	inner := width - 2*pad
	wrapped := wrapAll(f, sec.ContentStyle, inner, lines)
	h := 2*pad + panelTitleHeight(sec) + float64(len(wrapped))*layout.LineHeight(sec.ContentStyle.FontSize)

	layout.Box(f.S, x, y, width, h, sec.BackgroundColor, model.On(sec.ShowBorder), sec.BorderColor, sec.BorderWidth, sec.BorderStyle)

	ty := y + pad
	if sec.Title != "" {
		ty = layout.Line(f.S, sec.TitleStyle, x+pad, ty, inner, sec.Title) + titleGap
	}
	for _, l := range wrapped {
		ty = layout.Line(f.S, sec.ContentStyle, x+pad, ty, inner, l)
	}
	return y + h
}
