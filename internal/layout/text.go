package layout

import (
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/draw"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/style"
)

// LineSpacing is the line height as a multiple of the font size.
const LineSpacing = 1.35

const ellipsis = "..."

// LineHeight returns the vertical advance of one line at size.
func LineHeight(size float64) float64 { return size * LineSpacing }

// Baseline returns the text baseline for a line whose top edge is y.
func Baseline(top, size float64) float64 { return top + size*0.85 }

// AlignX returns the x at which text starts so that it sits in [x, x+width]
// with the given alignment. The surface font must already be set.
func AlignX(s draw.Surface, text string, x, width float64, align model.Alignment) float64 {
	switch align {
	case model.AlignCenter:
		return x + (width-s.TextWidth(text))/2
	case model.AlignRight:
		return x + width - s.TextWidth(text)
	default:
		return x
	}
}

// Wrap breaks text into lines no wider than width using the surface's
// current font. Explicit newlines are kept; words wider than a line are
// split by rune. Blank input yields no lines.
func Wrap(s draw.Surface, text string, width float64) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := ""
		for _, w := range words {
			for width > 0 && s.TextWidth(w) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				head, tail := splitToWidth(s, w, width)
				lines = append(lines, head)
				w = tail
			}
			if w == "" {
				continue
			}
			if line == "" {
				line = w
				continue
			}
			if candidate := line + " " + w; s.TextWidth(candidate) <= width {
				line = candidate
			} else {
				lines = append(lines, line)
				line = w
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitToWidth returns the longest rune prefix of w that fits width (at
// least one rune) and the remainder.
func splitToWidth(s draw.Surface, w string, width float64) (string, string) {
	runes := []rune(w)
	n := 1
	for n < len(runes) && s.TextWidth(string(runes[:n+1])) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

// Truncate shortens text with a trailing ellipsis until it fits width.
func Truncate(s draw.Surface, text string, width float64) string {
	if s.TextWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		if candidate := string(runes[:n]) + ellipsis; s.TextWidth(candidate) <= width {
			return candidate
		}
	}
	return ellipsis
}

// TruncateRunes cuts text to at most n runes, marking the cut with an
// ellipsis.
func TruncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + ellipsis
}

// Line draws one styled line whose top edge is y inside [x, x+width] and
// returns the y below it.
func Line(s draw.Surface, ts model.TextStyle, x, y, width float64, text string) float64 {
	style.ApplyText(s, ts)
	s.Text(AlignX(s, text, x, width, ts.Alignment), Baseline(y, ts.FontSize), text)
	return y + LineHeight(ts.FontSize)
}

// Paragraph wraps text to the content width at the cursor, breaking the page
// whenever the next line would not fit, and returns the cursor below it.
func Paragraph(s draw.Surface, c Cursor, ts model.TextStyle, x, width float64, text string) Cursor {
	style.ApplyText(s, ts)
	lh := LineHeight(ts.FontSize)
	for _, ln := range Wrap(s, text, width) {
		if c.Remaining() < lh {
			c = c.NewPage(s)
			style.ApplyText(s, ts)
		}
		if ln != "" {
			s.Text(AlignX(s, ln, x, width, ts.Alignment), Baseline(c.Y, ts.FontSize), ln)
		}
		c = c.Advance(lh)
	}
	return c
}

// Title draws the document title. Horizontal titles are drawn inline at the
// cursor with the style's alignment and advance it. Vertical titles are
// rotated 270 degrees into the gutter left of the content area and leave the
// cursor untouched; the caller must have reserved the gutter with
// Geometry.WithGutter.
func Title(s draw.Surface, c Cursor, text string, ts model.TextStyle, o model.Orientation) Cursor {
	if text == "" {
		return c
	}
	if o == model.Vertical {
		style.ApplyText(s, ts)
		gutterLeft := c.Geo.Left - TitleGutter
		x := gutterLeft + (TitleGutter-ts.FontSize*0.72)/2
		s.TextRotated(x, c.Geo.Top, 270, text)
		return c
	}
	return c.At(Line(s, ts, c.Geo.Left, c.Y, c.Geo.ContentWidth(), text))
}

// Rule draws a horizontal line across the content width at the cursor and
// advances past it.
func Rule(s draw.Surface, c Cursor, color string, width float64, border model.BorderStyle) Cursor {
	style.Stroke(s, color, width, border)
	s.Line(c.Geo.Left, c.Y, c.Geo.ContentRight(), c.Y)
	style.ResetDash(s)
	return c.Advance(width + RuleGap)
}

// Box fills and/or strokes a rectangle. Empty background means no fill.
func Box(s draw.Surface, x, y, w, h float64, background string, border bool, borderColor string, borderWidth float64, bs model.BorderStyle) {
	if background != "" {
		style.Fill(s, background)
		s.Rect(x, y, w, h, draw.FillOnly)
	}
	if border {
		style.Stroke(s, borderColor, borderWidth, bs)
		s.Rect(x, y, w, h, draw.StrokeOnly)
		style.ResetDash(s)
	}
}
