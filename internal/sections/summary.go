package sections

import (
	"github.com/alnah/go-invoice2pdf/internal/layout"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/style"
)

// Summary labels.
const (
	FeesLabel          = "Professional Fees:"
	DisbursementsLabel = "Disbursements:"
	SubtotalLabel      = "Subtotal:"
	TotalDueLabel      = "TOTAL AMOUNT DUE:"
	TotalEstimateLabel = "TOTAL ESTIMATE:"
	totalSizeIncrease  = 4.0
	summaryRuleColor   = "#C8C8C8"
	summaryRuleWidth   = 0.3
)

// Summary draws the right-aligned totals: fees, disbursements when
// non-zero, the bold subtotal, VAT (bold for VAT-registered practices), a
// blank line and the enlarged total in the summary title color.
func Summary(f *Frame, c layout.Cursor) layout.Cursor {
	sec := f.T.Sections.Summary
	if !visible(sec) {
		return c
	}
	t := f.Totals()
	body := sec.ContentStyle
	bold := style.With(body, model.WeightBold, "")

	vat := body
	if f.Practice.VATRegistered {
		vat = bold
	}
	total := style.With(body, model.WeightBold, sec.TitleStyle.Color)
	total.FontSize = body.FontSize + totalSizeIncrease

	totalLabel := TotalDueLabel
	if f.Kind() == model.KindProForma {
		totalLabel = TotalEstimateLabel
	}

	lines := []pair{{label: FeesLabel, value: f.Money.Format(t.Fees), style: body}}
	if t.Disbursements > 0 {
		lines = append(lines, pair{label: DisbursementsLabel, value: f.Money.Format(t.Disbursements), style: body})
	}
	lines = append(lines,
		pair{label: SubtotalLabel, value: f.Money.Format(t.Subtotal), style: bold},
		pair{label: VATLabel(f.Money.Percent(t.VATRate)), value: f.Money.Format(t.VAT), style: vat},
		pair{style: body},
		pair{label: totalLabel, value: f.Money.Format(t.Total), style: total},
	)

	c = c.EnsureSpace(f.S, summaryRuleWidth+layout.RuleGap+pairsHeight(lines))
	c = layout.Rule(f.S, c, summaryRuleColor, summaryRuleWidth, model.BorderSolid)
	return pairs(f, c, lines).Advance(blockGap)
}

// VATLabel renders the VAT line label for a formatted percentage.
func VATLabel(percent string) string {
	return "VAT (" + percent + "):"
}
