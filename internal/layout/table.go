package layout

import (
	"github.com/alnah/go-invoice2pdf/internal/draw"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/style"
)

// TableColumn declares one column: its header label, relative width and
// alignment. A template column style at the same index overrides both.
type TableColumn struct {
	Header string
	Weight float64
	Align  model.Alignment
}

// Table draws a grid of header and body rows. It never breaks the page;
// callers paginate by drawing the remaining rows again on a new page.
type Table struct {
	X, Width float64
	Columns  []TableColumn
	Style    model.TableStyle
}

// NewTable spans the content width of the cursor's geometry.
func NewTable(g Geometry, ts model.TableStyle, cols ...TableColumn) Table {
	return Table{X: g.Left, Width: g.ContentWidth(), Columns: cols, Style: ts}
}

// widths converts the column weights to absolute widths.
func (t Table) widths() []float64 {
	weights := make([]float64, len(t.Columns))
	total := 0.0
	for i, c := range t.Columns {
		w := c.Weight
		if i < len(t.Style.Columns) && t.Style.Columns[i].Width > 0 {
			w = t.Style.Columns[i].Width
		}
		if w <= 0 {
			w = 1
		}
		weights[i] = w
		total += w
	}
	for i := range weights {
		weights[i] = weights[i] / total * t.Width
	}
	return weights
}

func (t Table) align(i int) model.Alignment {
	if i < len(t.Style.Columns) && t.Style.Columns[i].Alignment != "" {
		return t.Style.Columns[i].Alignment
	}
	return t.Columns[i].Align
}

// HeaderHeight is the height of the header row.
func (t Table) HeaderHeight() float64 {
	return LineHeight(t.Style.HeaderStyle.FontSize) + 2*t.Style.Pad()
}

// cellLines wraps every cell of row to its column width.
func (t Table) cellLines(s draw.Surface, row []string, widths []float64) [][]string {
	style.ApplyText(s, t.Style.CellStyle)
	out := make([][]string, len(t.Columns))
	for i := range t.Columns {
		if i >= len(row) {
			continue
		}
		out[i] = Wrap(s, row[i], widths[i]-2*t.Style.Pad())
	}
	return out
}

// RowHeight is the height of a body row once its cells are wrapped.
func (t Table) RowHeight(s draw.Surface, row []string) float64 {
	return t.rowHeight(t.cellLines(s, row, t.widths()))
}

func (t Table) rowHeight(lines [][]string) float64 {
	n := 1
	for _, l := range lines {
		n = max(n, len(l))
	}
	return float64(n)*LineHeight(t.Style.CellStyle.FontSize) + 2*t.Style.Pad()
}

// Fit returns how many leading rows fit, together with the header, in
// available vertical space.
func (t Table) Fit(s draw.Surface, rows [][]string, available float64) int {
	used := t.HeaderHeight()
	n := 0
	for _, row := range rows {
		h := t.RowHeight(s, row)
		if used+h > available {
			break
		}
		used += h
		n++
	}
	return n
}

// Draw renders the header and rows starting at y and returns the y
// immediately below the last row. The header is drawn even when rows is
// empty; turning borders off suppresses cell strokes but keeps the header
// shading. Every second body row uses the alternate color when enabled.
func (t Table) Draw(s draw.Surface, rows [][]string, y float64) float64 {
	widths := t.widths()
	ts := t.Style
	pad := ts.Pad()
	borders := model.On(ts.ShowBorders)

	// Header.
	hh := t.HeaderHeight()
	style.Fill(s, ts.HeaderBackground)
	s.Rect(t.X, y, t.Width, hh, draw.FillOnly)
	if borders {
		t.strokeCells(s, widths, y, hh)
	}
	header := ts.HeaderStyle
	x := t.X
	for i, col := range t.Columns {
		style.ApplyText(s, header)
		label := Truncate(s, col.Header, widths[i]-2*pad)
		s.Text(AlignX(s, label, x+pad, widths[i]-2*pad, t.align(i)),
			Baseline(y+pad, header.FontSize), label)
		x += widths[i]
	}
	y += hh

	// Body.
	lh := LineHeight(ts.CellStyle.FontSize)
	for r, row := range rows {
		lines := t.cellLines(s, row, widths)
		rh := t.rowHeight(lines)

		fill := ts.RowBackground
		if model.On(ts.AlternateRows) && r%2 == 1 {
			fill = ts.AlternateRowColor
		}
		style.Fill(s, fill)
		s.Rect(t.X, y, t.Width, rh, draw.FillOnly)
		if borders {
			t.strokeCells(s, widths, y, rh)
		}

		style.ApplyText(s, ts.CellStyle)
		x := t.X
		for i := range t.Columns {
			inner := widths[i] - 2*pad
			for j, ln := range lines[i] {
				top := y + pad + float64(j)*lh
				s.Text(AlignX(s, ln, x+pad, inner, t.align(i)), Baseline(top, ts.CellStyle.FontSize), ln)
			}
			x += widths[i]
		}
		y += rh
	}
	return y
}

func (t Table) strokeCells(s draw.Surface, widths []float64, y, h float64) {
	style.Stroke(s, t.Style.BorderColor, t.Style.BorderWidth, t.Style.BorderStyle)
	x := t.X
	for _, w := range widths {
		s.Rect(x, y, w, h, draw.StrokeOnly)
		x += w
	}
	style.ResetDash(s)
}
