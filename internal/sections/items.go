package sections

import (
	"github.com/alnah/go-invoice2pdf/internal/billing"
	"github.com/alnah/go-invoice2pdf/internal/layout"
	"github.com/alnah/go-invoice2pdf/internal/model"
)

// Captions printed by the item sections.
const (
	TimeEntriesTitle  = "Time Entries:"
	ServicesTitle     = "Services:"
	EstimateTitle     = "Services & Pricing:"
	ExpensesTitle     = "Disbursements & Expenses:"
	InclusiveTitle    = "VAT-Inclusive Disbursements"
	ExemptTitle       = "VAT-Exempt Disbursements"
	ExemptionCaption  = "The following disbursements are exempt from VAT and are billed at cost."
	NarrativeTitle    = "Fee Narrative:"
	subtotalLabelExcl = "Subtotal (excl. VAT):"
	subtotalLabelVAT  = "VAT:"
	subtotalLabelIncl = "Total (incl. VAT):"
	subtotalExempt    = "Total (VAT exempt):"
)

// Narrative draws the fee narrative when the invoice has one.
func Narrative(f *Frame, c layout.Cursor) layout.Cursor {
	text := f.Content.Invoice.FeeNarrative
	if text == "" || !visible(f.T.Sections.Items) {
		return c
	}
	sec := f.T.Sections.Items
	ts := sec.TitleStyle
	ts.FontSize = sec.ContentStyle.FontSize + 1

	c = c.EnsureSpace(f.S, layout.LineHeight(ts.FontSize)+3*layout.LineHeight(sec.ContentStyle.FontSize))
	c = heading(f, c, NarrativeTitle, ts)
	c = prose(f, c, sec.ContentStyle, c.Geo.Left, c.Geo.ContentWidth(), text)
	return c.Advance(blockGap)
}

// TimeEntries draws the time entry table.
func TimeEntries(f *Frame, c layout.Cursor) layout.Cursor {
	entries := f.Content.TimeEntries
	if len(entries) == 0 || !visible(f.T.Sections.Items) {
		return c
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			f.Short.Format(e.Date.Time),
			e.Description,
			f.Money.Hours(e.Hours),
			f.Money.Format(e.Rate),
			f.Money.Format(billing.TimeEntryAmount(e)),
		}
	}
	c = c.EnsureSpace(f.S, layout.TableThreshold)
	c = heading(f, c, TimeEntriesTitle, f.T.Sections.Items.TitleStyle)
	c = drawTable(f, c, rows,
		layout.TableColumn{Header: "Date", Weight: 25},
		layout.TableColumn{Header: "Description", Weight: 75},
		layout.TableColumn{Header: "Hours", Weight: 20, Align: model.AlignCenter},
		layout.TableColumn{Header: "Rate", Weight: 25, Align: model.AlignRight},
		layout.TableColumn{Header: "Amount", Weight: 30, Align: model.AlignRight},
	)
	return c.Advance(blockGap)
}

// Services draws the fixed-fee and quantity-priced line items.
func Services(f *Frame, c layout.Cursor) layout.Cursor {
	services := f.Content.Services
	if len(services) == 0 || !visible(f.T.Sections.Items) {
		return c
	}
	rows := make([][]string, len(services))
	for i, s := range services {
		qty := s.Quantity
		if qty == 0 {
			qty = 1
		}
		rows[i] = []string{
			s.Name,
			s.Description,
			f.Money.Quantity(qty),
			f.Money.Format(s.UnitPrice),
			f.Money.Format(billing.ServiceAmount(s)),
		}
	}
	title := ServicesTitle
	if f.Kind() == model.KindProForma {
		title = EstimateTitle
	}
	c = c.EnsureSpace(f.S, layout.TableThreshold)
	c = heading(f, c, title, f.T.Sections.Items.TitleStyle)
	c = drawTable(f, c, rows,
		layout.TableColumn{Header: "Service", Weight: 40},
		layout.TableColumn{Header: "Description", Weight: 60},
		layout.TableColumn{Header: "Qty", Weight: 15, Align: model.AlignCenter},
		layout.TableColumn{Header: "Unit Price", Weight: 30, Align: model.AlignRight},
		layout.TableColumn{Header: "Amount", Weight: 30, Align: model.AlignRight},
	)
	return c.Advance(blockGap)
}

// Expenses splits the disbursements by VAT treatment and draws the
// inclusive group, then the exempt group, each with its own table and
// subtotal block.
func Expenses(f *Frame, c layout.Cursor) layout.Cursor {
	if len(f.Content.Expenses) == 0 || !visible(f.T.Sections.Items) {
		return c
	}
	split := billing.SplitExpenses(f.Content.Expenses, billing.DefaultVATRate)
	items := f.T.Sections.Items
	sub := items.TitleStyle
	sub.FontSize = items.ContentStyle.FontSize + 1

	c = c.EnsureSpace(f.S, layout.TableThreshold)
	c = heading(f, c, ExpensesTitle, items.TitleStyle)

	if len(split.Inclusive) > 0 {
		rows := make([][]string, len(split.Inclusive))
		for i, l := range split.Inclusive {
			rows[i] = []string{
				f.Short.Format(l.Expense.Date.Time),
				l.Expense.Description,
				l.Expense.Category,
				f.Money.Format(l.ExclVAT),
				f.Money.Format(l.VAT),
				f.Money.Format(l.InclVAT()),
			}
		}
		c = c.EnsureSpace(f.S, layout.TableThreshold)
		c = heading(f, c, InclusiveTitle, sub)
		c = drawTable(f, c, rows,
			layout.TableColumn{Header: "Date", Weight: 25},
			layout.TableColumn{Header: "Description", Weight: 55},
			layout.TableColumn{Header: "Category", Weight: 25},
			layout.TableColumn{Header: "Excl. VAT", Weight: 25, Align: model.AlignRight},
			layout.TableColumn{Header: "VAT", Weight: 20, Align: model.AlignRight},
			layout.TableColumn{Header: "Incl. VAT", Weight: 25, Align: model.AlignRight},
		)
		ts := subtotalStyle(f)
		c = subtotal(f, c, []pair{
			{label: subtotalLabelExcl, value: f.Money.Format(split.InclusiveTotal.ExclVAT), style: ts},
			{label: subtotalLabelVAT, value: f.Money.Format(split.InclusiveTotal.VAT), style: ts},
			{label: subtotalLabelIncl, value: f.Money.Format(split.InclusiveTotal.Total), style: ts},
		})
	}

	if len(split.Exempt) > 0 {
		rows := make([][]string, len(split.Exempt))
		for i, e := range split.Exempt {
			rows[i] = []string{
				f.Short.Format(e.Date.Time),
				e.Description,
				e.Category,
				f.Money.Format(e.Amount),
			}
		}
		c = c.EnsureSpace(f.S, layout.TableThreshold)
		c = heading(f, c, ExemptTitle, sub)
		caption := items.ContentStyle
		caption.FontSize = f.T.Table.CellStyle.FontSize
		c = layout.Paragraph(f.S, c, caption, c.Geo.Left, c.Geo.ContentWidth(), ExemptionCaption).Advance(titleGap)
		c = drawTable(f, c, rows,
			layout.TableColumn{Header: "Date", Weight: 25},
			layout.TableColumn{Header: "Description", Weight: 85},
			layout.TableColumn{Header: "Category", Weight: 30},
			layout.TableColumn{Header: "Amount", Weight: 30, Align: model.AlignRight},
		)
		c = subtotal(f, c, []pair{
			{label: subtotalExempt, value: f.Money.Format(split.ExemptTotal), style: subtotalStyle(f)},
		})
	}
	return c
}

func subtotalStyle(f *Frame) model.TextStyle {
	ts := f.T.Table.CellStyle
	ts.FontWeight = model.WeightBold
	return ts
}

// subtotal draws a group's label/value block below its table, moving it
// to the next page as a whole if needed.
func subtotal(f *Frame, c layout.Cursor, lines []pair) layout.Cursor {
	c = c.Advance(titleGap)
	c = c.EnsureSpace(f.S, pairsHeight(lines))
	return pairs(f, c, lines).Advance(blockGap)
}

// drawTable draws rows under a header, filling each page with as many rows
// as fit and repeating the header on every continuation page. A single row
// taller than an empty page is drawn anyway so the loop always advances.
func drawTable(f *Frame, c layout.Cursor, rows [][]string, cols ...layout.TableColumn) layout.Cursor {
	tbl := layout.NewTable(c.Geo, f.T.Table, cols...)
	for {
		n := tbl.Fit(f.S, rows, c.Remaining())
		if n == 0 && len(rows) > 0 {
			if c.Y > c.Geo.Top {
				c = c.NewPage(f.S)
				continue
			}
			n = 1
		}
		c = c.At(tbl.Draw(f.S, rows[:n], c.Y))
		rows = rows[n:]
		if len(rows) == 0 {
			return c
		}
		c = c.NewPage(f.S)
	}
}
