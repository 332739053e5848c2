package sections

import (
	"github.com/alnah/go-invoice2pdf/internal/billing"
	"github.com/alnah/go-invoice2pdf/internal/layout"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/style"
)

// maxMatterRunes is the longest matter title printed in full.
const maxMatterRunes = 30

type field struct {
	label, value, color string
}

// Details draws the invoice number, dates, matter and reference grid in a
// shaded box. The due date turns to the error color once overdue and the
// payment date uses the success color.
func Details(f *Frame, c layout.Cursor) layout.Cursor {
	sec := f.T.Sections.Details
	if !visible(sec) {
		return c
	}
	left, right := detailFields(f)

	var columns [][]field
	if sec.Layout == model.Vertical {
		columns = [][]field{append(left, right...)}
	} else {
		columns = [][]field{left, right}
	}
	rows := 0
	for _, col := range columns {
		rows = max(rows, len(col))
	}

	pad := sec.Pad()
	lh := layout.LineHeight(sec.ContentStyle.FontSize)
	h := 2*pad + panelTitleHeight(sec) + float64(rows)*lh
	c = c.EnsureSpace(f.S, h)

	layout.Box(f.S, c.Geo.Left, c.Y, c.Geo.ContentWidth(), h, sec.BackgroundColor,
		model.On(sec.ShowBorder), sec.BorderColor, sec.BorderWidth, sec.BorderStyle)

	top := c.Y + pad
	if sec.Title != "" {
		top = layout.Line(f.S, sec.TitleStyle, c.Geo.Left+pad, top, c.Geo.ContentWidth()-2*pad, sec.Title) + titleGap
	}

	inner := c.Geo.ContentWidth() - 2*pad
	colWidth := (inner - layout.Gutter*float64(len(columns)-1)) / float64(len(columns))
	for i, col := range columns {
		x := c.Geo.Left + pad + float64(i)*(colWidth+layout.Gutter)
		drawFields(f, sec.ContentStyle, x, top, colWidth, col)
	}
	return c.At(c.Y + h).Advance(blockGap)
}

func detailFields(f *Frame) (left, right []field) {
	inv := f.Content.Invoice
	cs := f.T.ColorScheme

	numberLabel, dateLabel, dueLabel := "Invoice Number:", "Invoice Date:", "Due Date:"
	if f.Kind() == model.KindProForma {
		numberLabel, dateLabel, dueLabel = "Quote Number:", "Date:", "Valid Until:"
	}

	due := field{label: dueLabel, value: orNA(f.Dates.Format(inv.DueDate.Time))}
	if billing.IsOverdue(inv, f.Now) {
		due.color = cs.Error
	}
	left = []field{
		{label: numberLabel, value: orNA(inv.Number)},
		{label: dateLabel, value: orNA(f.Dates.Format(inv.InvoiceDate.Time))},
		due,
	}

	matter, ref := "", inv.Reference
	if m := f.Content.Matter; m != nil {
		matter = shortMatter(m.Title)
		if ref == "" {
			ref = m.Reference
		}
	}
	right = []field{
		{label: "Matter:", value: orNA(matter)},
		{label: "Reference:", value: orNA(ref)},
	}
	if !inv.DatePaid.IsZero() {
		right = append(right, field{label: "Date Paid:", value: f.Dates.Format(inv.DatePaid.Time), color: cs.Success})
	}
	return left, right
}

// shortMatter keeps titles up to maxMatterRunes and otherwise cuts them so
// the result, ellipsis included, is exactly that long.
func shortMatter(title string) string {
	if len([]rune(title)) <= maxMatterRunes {
		return title
	}
	return layout.TruncateRunes(title, maxMatterRunes-3)
}

// drawFields draws bold labels with their values aligned in one column.
func drawFields(f *Frame, ts model.TextStyle, x, y, width float64, fields []field) {
	bold := style.With(ts, model.WeightBold, "")
	bold.Alignment = model.AlignLeft
	style.ApplyText(f.S, bold)
	labelW := 0.0
	for _, fd := range fields {
		labelW = max(labelW, f.S.TextWidth(fd.label))
	}
	labelW += labelSpace

	lh := layout.LineHeight(ts.FontSize)
	for _, fd := range fields {
		layout.Line(f.S, bold, x, y, labelW, fd.label)

		value := style.With(ts, model.WeightNormal, fd.color)
		value.Alignment = model.AlignLeft
		style.ApplyText(f.S, value)
		text := layout.Truncate(f.S, fd.value, width-labelW)
		layout.Line(f.S, value, x+labelW, y, width-labelW, text)
		y += lh
	}
}
