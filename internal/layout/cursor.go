// Package layout implements the vertical flow engine: page geometry, the
// cursor with its page-break rule, two-column sections, titles, text
// wrapping and the table grid.
package layout

import (
	"github.com/alnah/go-invoice2pdf/internal/draw"
	"github.com/alnah/go-invoice2pdf/internal/model"
)

// Flow constants, in points.
const (
	// TableThreshold is the space required before starting a table block.
	TableThreshold = 80.0
	// FooterThreshold is the space required before each footer block.
	FooterThreshold = 60.0
	// TitleGutter is the width reserved left of the content for a
	// vertical title.
	TitleGutter = 40.0
	// Gutter separates the two columns of a horizontal section.
	Gutter = 20.0
	// RuleGap is the space left below a horizontal rule.
	RuleGap = 8.0
)

// Geometry is the page size and margins the flow runs in.
type Geometry struct {
	Width, Height            float64
	Top, Right, Bottom, Left float64
}

// NewGeometry reads the page size from s and the margins from a resolved
// template.
func NewGeometry(s draw.Surface, m model.Margins) Geometry {
	w, h := s.PageSize()
	return Geometry{
		Width:  w,
		Height: h,
		Top:    model.Value(m.Top),
		Right:  model.Value(m.Right),
		Bottom: model.Value(m.Bottom),
		Left:   model.Value(m.Left),
	}
}

// ContentWidth is the page width minus both side margins.
func (g Geometry) ContentWidth() float64 { return g.Width - g.Left - g.Right }

// ContentRight is the x coordinate of the right margin.
func (g Geometry) ContentRight() float64 { return g.Width - g.Right }

// Limit is the lowest y the flow may reach.
func (g Geometry) Limit() float64 { return g.Height - g.Bottom }

// WithGutter shifts the left edge of the content area right by w.
func (g Geometry) WithGutter(w float64) Geometry {
	g.Left += w
	return g
}

// Cursor tracks the vertical flow position. It is a value: every operation
// returns the updated cursor.
type Cursor struct {
	Y    float64
	Page int
	Geo  Geometry
}

// NewCursor starts at the top margin of page 0.
func NewCursor(g Geometry) Cursor {
	return Cursor{Y: g.Top, Geo: g}
}

// Advance moves the cursor down by delta.
func (c Cursor) Advance(delta float64) Cursor {
	c.Y += delta
	return c
}

// At moves the cursor to y on the current page.
func (c Cursor) At(y float64) Cursor {
	c.Y = y
	return c
}

// Remaining is the vertical space left above the bottom margin.
func (c Cursor) Remaining() float64 { return c.Geo.Limit() - c.Y }

// EnsureSpace breaks the page when less than minRemaining is left. After
// it returns, Remaining() >= minRemaining holds unless minRemaining exceeds
// the usable height of an empty page.
func (c Cursor) EnsureSpace(s draw.Surface, minRemaining float64) Cursor {
	if c.Remaining() >= minRemaining {
		return c
	}
	return c.NewPage(s)
}

// NewPage starts a new page and resets the cursor to the top margin.
func (c Cursor) NewPage(s draw.Surface) Cursor {
	s.AddPage()
	c.Y = c.Geo.Top
	c.Page++
	return c
}

// Column is one half of a two-column section.
type Column struct {
	X, Width, Y float64
}

// Columns splits the content width into two columns separated by gutter,
// both starting at the cursor.
func (c Cursor) Columns(gutter float64) (left, right Column) {
	w := (c.Geo.ContentWidth() - gutter) / 2
	left = Column{X: c.Geo.Left, Width: w, Y: c.Y}
	right = Column{X: c.Geo.Left + w + gutter, Width: w, Y: c.Y}
	return left, right
}

// Join reconciles two columns: the cursor moves below the taller one plus
// padding.
func (c Cursor) Join(left, right Column, padding float64) Cursor {
	c.Y = max(left.Y, right.Y) + padding
	return c
}
