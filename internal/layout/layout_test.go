package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/alnah/go-invoice2pdf/internal/draw"
	"github.com/alnah/go-invoice2pdf/internal/draw/drawtest"
	"github.com/alnah/go-invoice2pdf/internal/model"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func newFlow(t *testing.T) (*drawtest.Recorder, Cursor) {
	t.Helper()

	rec := drawtest.New()
	rec.AddPage()
	tmpl := model.DefaultTemplate()
	return rec, NewCursor(NewGeometry(rec, tmpl.PageMargins))
}

// ---------------------------------------------------------------------------
// TestCursor - Vertical flow and page breaks
// ---------------------------------------------------------------------------

func TestNewCursor(t *testing.T) {
	t.Parallel()

	_, c := newFlow(t)
	if c.Y != model.DefaultMargin {
		t.Errorf("Y = %v, want top margin %v", c.Y, model.DefaultMargin)
	}
	if c.Page != 0 {
		t.Errorf("Page = %d, want 0", c.Page)
	}
}

func TestCursor_Advance(t *testing.T) {
	t.Parallel()

	_, c := newFlow(t)
	next := c.Advance(12.5)
	if next.Y != c.Y+12.5 {
		t.Errorf("Advance(12.5).Y = %v, want %v", next.Y, c.Y+12.5)
	}
	if c.Y != model.DefaultMargin {
		t.Error("Advance mutated the receiver")
	}
}

func TestCursor_EnsureSpace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		room      float64 // distance above the bottom margin
		min       float64
		wantBreak bool
	}{
		{name: "plenty of room", room: 600, min: 80},
		{name: "exactly enough", room: 80, min: 80},
		{name: "one point short", room: 79, min: 80, wantBreak: true},
		{name: "past the limit", room: -58, min: 60, wantBreak: true},
		{name: "zero minimum never breaks", room: 0, min: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, c := newFlow(t)
			got := c.At(c.Geo.Limit()-tt.room).EnsureSpace(rec, tt.min)

			if broke := got.Page == 1; broke != tt.wantBreak {
				t.Fatalf("page break = %v, want %v", broke, tt.wantBreak)
			}
			if tt.wantBreak {
				if got.Y != c.Geo.Top {
					t.Errorf("Y after break = %v, want top margin", got.Y)
				}
				if rec.PageCount() != 2 {
					t.Errorf("PageCount() = %d, want 2", rec.PageCount())
				}
			}
			if got.Remaining() < tt.min {
				t.Errorf("Remaining() = %v after EnsureSpace(%v)", got.Remaining(), tt.min)
			}
		})
	}
}

func TestCursor_EnsureSpaceInvariant(t *testing.T) {
	t.Parallel()

	rec, c := newFlow(t)
	for y := c.Geo.Top; y < c.Geo.Height+50; y += 7.3 {
		for _, m := range []float64{0, 10, FooterThreshold, TableThreshold, 300} {
			got := c.At(y).EnsureSpace(rec, m)
			if got.Remaining() < m {
				t.Fatalf("y=%v min=%v: Remaining() = %v", y, m, got.Remaining())
			}
		}
	}
}

func TestCursor_Columns(t *testing.T) {
	t.Parallel()

	_, c := newFlow(t)
	c = c.At(200)
	left, right := c.Columns(Gutter)

	wantW := (c.Geo.ContentWidth() - Gutter) / 2
	if left.Width != wantW || right.Width != wantW {
		t.Errorf("column widths = %v, %v, want %v", left.Width, right.Width, wantW)
	}
	if left.X != c.Geo.Left {
		t.Errorf("left.X = %v, want %v", left.X, c.Geo.Left)
	}
	if right.X != c.Geo.Left+wantW+Gutter {
		t.Errorf("right.X = %v, want %v", right.X, c.Geo.Left+wantW+Gutter)
	}
	if left.Y != 200 || right.Y != 200 {
		t.Errorf("columns start at %v/%v, want 200", left.Y, right.Y)
	}

	left.Y, right.Y = 260, 310
	if got := c.Join(left, right, 5).Y; got != 315 {
		t.Errorf("Join().Y = %v, want 315", got)
	}
}

func TestGeometry_WithGutter(t *testing.T) {
	t.Parallel()

	_, c := newFlow(t)
	g := c.Geo.WithGutter(TitleGutter)
	if g.Left != c.Geo.Left+TitleGutter {
		t.Errorf("Left = %v, want %v", g.Left, c.Geo.Left+TitleGutter)
	}
	if !approx(g.ContentWidth(), c.Geo.ContentWidth()-TitleGutter) {
		t.Errorf("ContentWidth() = %v", g.ContentWidth())
	}
}

// ---------------------------------------------------------------------------
// TestWrap - Greedy word wrapping
// ---------------------------------------------------------------------------

func TestWrap(t *testing.T) {
	t.Parallel()

	rec := drawtest.New()
	rec.SetFont("helvetica", false, 10) // 5pt per rune

	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{name: "blank", text: "  ", width: 100, want: nil},
		{name: "fits", text: "short text", width: 100, want: []string{"short text"}},
		{name: "breaks on words", text: "aaaa bbbb cccc", width: 50, want: []string{"aaaa bbbb", "cccc"}},
		{name: "keeps newlines", text: "one\n\ntwo", width: 100, want: []string{"one", "", "two"}},
		{name: "splits long words", text: "abcdefghij", width: 20, want: []string{"abcd", "efgh", "ij"}},
		{name: "collapses spaces", text: "a    b", width: 100, want: []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Wrap(rec, tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("Wrap(%q, %v) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
			for _, ln := range got {
				if rec.TextWidth(ln) > tt.width {
					t.Errorf("line %q is wider than %v", ln, tt.width)
				}
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	rec := drawtest.New()
	rec.SetFont("helvetica", false, 10)

	if got := Truncate(rec, "short", 100); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}
	got := Truncate(rec, "a very long description", 50)
	if !strings.HasSuffix(got, "...") || rec.TextWidth(got) > 50 {
		t.Errorf("Truncate() = %q (width %v)", got, rec.TextWidth(got))
	}
	if got := TruncateRunes("Smith v Jones and Others (Pty) Ltd", 10); got != "Smith v Jo..." {
		t.Errorf("TruncateRunes() = %q", got)
	}
}

func TestParagraph_BreaksPages(t *testing.T) {
	t.Parallel()

	rec, c := newFlow(t)
	c = c.At(c.Geo.Limit() - 20)
	text := strings.Repeat("word ", 200)

	got := Paragraph(rec, c, model.TextStyle{FontSize: 10}, c.Geo.Left, c.Geo.ContentWidth(), text)
	if got.Page == 0 {
		t.Fatal("paragraph did not break the page")
	}
	for _, op := range rec.Ops {
		if op.Kind == drawtest.OpText && op.Y > c.Geo.Limit() {
			t.Errorf("text drawn below the bottom margin at y=%v", op.Y)
		}
	}
}

// ---------------------------------------------------------------------------
// TestTitle - Orientation and alignment
// ---------------------------------------------------------------------------

func TestTitle(t *testing.T) {
	t.Parallel()

	ts := model.TextStyle{FontSize: 28, FontWeight: model.WeightBold, Alignment: model.AlignCenter}

	t.Run("horizontal centers and advances", func(t *testing.T) {
		t.Parallel()

		rec, c := newFlow(t)
		got := Title(rec, c, "INVOICE", ts, model.Horizontal)
		op, ok := rec.FindText("INVOICE")
		if !ok {
			t.Fatal("title not drawn")
		}
		wantX := c.Geo.Left + (c.Geo.ContentWidth()-rec.TextWidth("INVOICE"))/2
		if !approx(op.X, wantX) {
			t.Errorf("x = %v, want %v", op.X, wantX)
		}
		if got.Y != c.Y+LineHeight(28) {
			t.Errorf("Y = %v, want %v", got.Y, c.Y+LineHeight(28))
		}
	})

	t.Run("right alignment ends at the margin", func(t *testing.T) {
		t.Parallel()

		rec, c := newFlow(t)
		right := ts
		right.Alignment = model.AlignRight
		Title(rec, c, "INVOICE", right, model.Horizontal)
		op, _ := rec.FindText("INVOICE")
		if end := op.X + rec.TextWidth("INVOICE"); !approx(end, c.Geo.ContentRight()) {
			t.Errorf("title ends at %v, want %v", end, c.Geo.ContentRight())
		}
	})

	t.Run("vertical rotates into the gutter", func(t *testing.T) {
		t.Parallel()

		rec, c := newFlow(t)
		c.Geo = c.Geo.WithGutter(TitleGutter)
		got := Title(rec, c, "INVOICE", ts, model.Vertical)

		op, ok := rec.FindText("INVOICE")
		if !ok {
			t.Fatal("title not drawn")
		}
		if op.Angle != 270 {
			t.Errorf("angle = %v, want 270", op.Angle)
		}
		if op.X < c.Geo.Left-TitleGutter || op.X > c.Geo.Left {
			t.Errorf("x = %v, want inside gutter [%v, %v]", op.X, c.Geo.Left-TitleGutter, c.Geo.Left)
		}
		if got.Y != c.Y {
			t.Errorf("vertical title moved the cursor to %v", got.Y)
		}
	})
}

func TestRule(t *testing.T) {
	t.Parallel()

	rec, c := newFlow(t)
	got := Rule(rec, c, "#2962FF", 2, model.BorderDashed)

	if got.Y != c.Y+2+RuleGap {
		t.Errorf("Y = %v, want %v", got.Y, c.Y+2+RuleGap)
	}
	line := rec.Ops[len(rec.Ops)-1]
	if line.Kind != drawtest.OpLine || line.X != c.Geo.Left || line.X2 != c.Geo.ContentRight() {
		t.Errorf("rule op = %+v", line)
	}
	if line.Dash != draw.DashDashed {
		t.Errorf("dash = %q, want dashed", line.Dash)
	}
}

// ---------------------------------------------------------------------------
// TestTable - Grid drawing
// ---------------------------------------------------------------------------

func testTable(c Cursor, mutate func(*model.TableStyle)) Table {
	ts := model.DefaultTemplate().Table
	if mutate != nil {
		mutate(&ts)
	}
	return NewTable(c.Geo, ts,
		TableColumn{Header: "Date", Weight: 1},
		TableColumn{Header: "Description", Weight: 3},
		TableColumn{Header: "Amount", Weight: 1, Align: model.AlignRight},
	)
}

func fillRects(rec *drawtest.Recorder) []drawtest.Op {
	var out []drawtest.Op
	for _, op := range rec.Ops {
		if op.Kind == drawtest.OpRect && op.Mode == draw.FillOnly {
			out = append(out, op)
		}
	}
	return out
}

func TestTable_Draw(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"2025-01-01", "Consultation", "R100.00"},
		{"2025-01-02", "Drafting", "R200.00"},
		{"2025-01-03", "Court appearance", "R300.00"},
	}

	t.Run("one row band per input row plus header", func(t *testing.T) {
		t.Parallel()

		rec, c := newFlow(t)
		tbl := testTable(c, nil)
		end := tbl.Draw(rec, rows, c.Y)

		fills := fillRects(rec)
		if len(fills) != len(rows)+1 {
			t.Fatalf("filled bands = %d, want %d", len(fills), len(rows)+1)
		}
		want := c.Y + tbl.HeaderHeight()
		for _, r := range rows {
			want += tbl.RowHeight(rec, r)
		}
		if end != want {
			t.Errorf("end y = %v, want %v", end, want)
		}
	})

	t.Run("header is drawn for empty rows", func(t *testing.T) {
		t.Parallel()

		rec, c := newFlow(t)
		tbl := testTable(c, nil)
		end := tbl.Draw(rec, nil, c.Y)

		if _, ok := rec.FindText("Description"); !ok {
			t.Error("header label missing")
		}
		if len(fillRects(rec)) != 1 {
			t.Errorf("filled bands = %d, want 1", len(fillRects(rec)))
		}
		if end != c.Y+tbl.HeaderHeight() {
			t.Errorf("end y = %v, want %v", end, c.Y+tbl.HeaderHeight())
		}
	})

	t.Run("borders off keeps header shading", func(t *testing.T) {
		t.Parallel()

		rec, c := newFlow(t)
		tbl := testTable(c, func(ts *model.TableStyle) { ts.ShowBorders = model.Bool(false) })
		tbl.Draw(rec, rows, c.Y)

		if n := rec.Count(drawtest.OpRect, func(op drawtest.Op) bool { return op.Mode == draw.StrokeOnly }); n != 0 {
			t.Errorf("stroked cells = %d, want 0", n)
		}
		header := fillRects(rec)[0]
		if header.Fill != [3]uint8{0x29, 0x62, 0xFF} {
			t.Errorf("header fill = %v, want primary blue", header.Fill)
		}
	})

	t.Run("borders on strokes every cell", func(t *testing.T) {
		t.Parallel()

		rec, c := newFlow(t)
		testTable(c, nil).Draw(rec, rows, c.Y)

		want := (len(rows) + 1) * 3
		if n := rec.Count(drawtest.OpRect, func(op drawtest.Op) bool { return op.Mode == draw.StrokeOnly }); n != want {
			t.Errorf("stroked cells = %d, want %d", n, want)
		}
	})

	t.Run("every second body row is striped", func(t *testing.T) {
		t.Parallel()

		rec, c := newFlow(t)
		testTable(c, nil).Draw(rec, rows, c.Y)

		fills := fillRects(rec)[1:]
		white, grey := [3]uint8{255, 255, 255}, [3]uint8{245, 245, 245}
		for i, f := range fills {
			want := white
			if i%2 == 1 {
				want = grey
			}
			if f.Fill != want {
				t.Errorf("row %d fill = %v, want %v", i, f.Fill, want)
			}
		}
	})

	t.Run("striping can be disabled", func(t *testing.T) {
		t.Parallel()

		rec, c := newFlow(t)
		testTable(c, func(ts *model.TableStyle) { ts.AlternateRows = model.Bool(false) }).Draw(rec, rows, c.Y)

		for i, f := range fillRects(rec)[1:] {
			if f.Fill != [3]uint8{255, 255, 255} {
				t.Errorf("row %d fill = %v, want white", i, f.Fill)
			}
		}
	})

	t.Run("right aligned column ends at cell padding", func(t *testing.T) {
		t.Parallel()

		rec, c := newFlow(t)
		tbl := testTable(c, nil)
		tbl.Draw(rec, rows[:1], c.Y)

		op, _ := rec.FindText("R100.00")
		rec.SetFont("helvetica", false, tbl.Style.CellStyle.FontSize)
		end := op.X + rec.TextWidth("R100.00")
		want := tbl.X + tbl.Width - tbl.Style.Pad()
		if !approx(end, want) {
			t.Errorf("amount ends at %v, want %v", end, want)
		}
	})

	t.Run("long cells wrap and grow the row", func(t *testing.T) {
		t.Parallel()

		rec, c := newFlow(t)
		tbl := testTable(c, nil)
		short := tbl.RowHeight(rec, rows[0])
		tall := tbl.RowHeight(rec, []string{"x", strings.Repeat("long words ", 30), "y"})
		if tall <= short {
			t.Errorf("wrapped row height %v <= single line %v", tall, short)
		}
	})

	t.Run("column style overrides alignment", func(t *testing.T) {
		t.Parallel()

		_, c := newFlow(t)
		tbl := testTable(c, func(ts *model.TableStyle) {
			ts.Columns = []model.ColumnStyle{{Alignment: model.AlignCenter}}
		})
		if tbl.align(0) != model.AlignCenter || tbl.align(2) != model.AlignRight {
			t.Errorf("align = %q/%q", tbl.align(0), tbl.align(2))
		}
	})
}

func TestTable_Fit(t *testing.T) {
	t.Parallel()

	rec, c := newFlow(t)
	tbl := testTable(c, nil)
	row := []string{"d", "desc", "a"}
	rows := make([][]string, 10)
	for i := range rows {
		rows[i] = row
	}
	rh := tbl.RowHeight(rec, row)

	if got := tbl.Fit(rec, rows, tbl.HeaderHeight()+3*rh+1); got != 3 {
		t.Errorf("Fit() = %d, want 3", got)
	}
	if got := tbl.Fit(rec, rows, tbl.HeaderHeight()-1); got != 0 {
		t.Errorf("Fit() = %d, want 0", got)
	}
	if got := tbl.Fit(rec, rows, 10000); got != len(rows) {
		t.Errorf("Fit() = %d, want %d", got, len(rows))
	}
}
