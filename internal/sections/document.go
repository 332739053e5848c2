package sections

import (
	"github.com/alnah/go-invoice2pdf/internal/layout"
	"github.com/alnah/go-invoice2pdf/internal/model"
)

// Func draws one section and returns the cursor below it.
type Func func(*Frame, layout.Cursor) layout.Cursor

// Sequence is the fixed order of the flowing sections.
var Sequence = []Func{
	Header,
	Parties,
	Details,
	Narrative,
	TimeEntries,
	Services,
	Expenses,
	Summary,
	Footer,
}

// Document starts the first page, draws every section in Sequence and then
// stamps the page footers. A vertical title reserves its gutter for the
// whole document, and the bottom margin grows to clear the pinned footer
// lines.
func Document(f *Frame) layout.Cursor {
	g := layout.NewGeometry(f.S, f.T.PageMargins)
	if f.T.Header.TitleOrientation == model.Vertical {
		g = g.WithGutter(layout.TitleGutter)
	}
	g.Bottom = max(g.Bottom, FooterBand(f.T.Footer))
	c := layout.NewCursor(g)
	f.S.AddPage()
	for _, draw := range Sequence {
		c = draw(f, c)
	}
	PageFooters(f, g)
	return c
}
