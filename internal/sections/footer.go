package sections

import (
	"strconv"

	"github.com/alnah/go-invoice2pdf/internal/dateutil"
	"github.com/alnah/go-invoice2pdf/internal/layout"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/style"
)

// Footer captions.
const (
	BankTitle        = "Banking Details:"
	PaymentTitle     = "Payment Information:"
	EstimateNotes    = "Important Notes:"
	NotesTitle       = "Additional Notes:"
	thankYouIncrease = 2.0
)

// Offsets of the pinned footer lines from the bottom edge of the page.
const (
	FooterTextOffset = 20.0
	TimestampOffset  = 10.0
	footerBandGap    = 4.0
	pageNumberGap    = 8.0
)

// PaymentInstructions is the fixed invoice instruction list.
var PaymentInstructions = []string{
	"Please make payment within the specified due date",
	"Include invoice number as payment reference",
	"All amounts are in South African Rand (ZAR)",
	"Contact us immediately if you have any queries regarding this invoice",
}

// EstimateInstructions replaces PaymentInstructions on pro forma documents.
var EstimateInstructions = []string{
	"This is an estimate only and not a final invoice",
	"Actual fees may vary based on the complexity and time required",
	"All amounts are in South African Rand (ZAR)",
	"Please contact us if you have any questions about this estimate",
}

// Footer draws the flowing closing blocks in order: bank details, thank-you
// note, terms, legal disclaimer, payment instructions and additional notes.
// Each enabled block first makes sure FooterThreshold points are left.
func Footer(f *Frame, c layout.Cursor) layout.Cursor {
	ft := f.T.Footer
	notes := f.T.Sections.Notes
	base := ft.TextStyle
	body := notes.ContentStyle
	titleStyle := notes.TitleStyle

	if model.On(ft.ShowBankDetails) && !ft.BankDetails.IsEmpty() {
		c = c.EnsureSpace(f.S, layout.FooterThreshold)
		c = infoBox(f, c, BankTitle, bankLines(ft.BankDetails), "")
	}

	if model.On(ft.ShowThankYouNote) && ft.ThankYouText != "" {
		c = c.EnsureSpace(f.S, layout.FooterThreshold)
		ts := style.With(base, model.WeightBold, "")
		ts.FontSize = base.FontSize + thankYouIncrease
		ts.Alignment = model.AlignCenter
		c = layout.Paragraph(f.S, c, ts, c.Geo.Left, c.Geo.ContentWidth(), ft.ThankYouText).Advance(blockGap)
	}

	if model.On(ft.ShowTerms) && ft.TermsText != "" {
		c = c.EnsureSpace(f.S, layout.FooterThreshold)
		c = layout.Paragraph(f.S, c, titleStyle, c.Geo.Left, c.Geo.ContentWidth(), ft.TermsTitle).Advance(titleGap)
		c = layout.Paragraph(f.S, c, body, c.Geo.Left, c.Geo.ContentWidth(), ft.TermsText).Advance(blockGap)
	}

	if model.On(ft.ShowLegalDisclaimer) && ft.DisclaimerText != "" {
		c = c.EnsureSpace(f.S, layout.FooterThreshold)
		ts := body
		ts.FontSize = base.FontSize
		c = layout.Paragraph(f.S, c, ts, c.Geo.Left, c.Geo.ContentWidth(), ft.DisclaimerText).Advance(blockGap)
	}

	if model.On(ft.ShowPaymentInstructions) {
		c = c.EnsureSpace(f.S, layout.FooterThreshold)
		title, lines := PaymentTitle, PaymentInstructions
		if f.Kind() == model.KindProForma {
			title, lines = EstimateNotes, EstimateInstructions
		}
		c = infoBox(f, c, title, lines, "• ")
	}

	if text := f.Content.Invoice.Notes; text != "" && visible(notes) {
		c = c.EnsureSpace(f.S, layout.FooterThreshold)
		c = layout.Paragraph(f.S, c, titleStyle, c.Geo.Left, c.Geo.ContentWidth(), NotesTitle).Advance(titleGap)
		c = prose(f, c, body, c.Geo.Left, c.Geo.ContentWidth(), text).Advance(blockGap)
	}
	return c
}

func bankLines(b model.BankDetails) []string {
	var lines []string
	for _, kv := range [][2]string{
		{"Account Name", b.AccountName},
		{"Bank", b.BankName},
		{"Account Number", b.AccountNumber},
		{"Branch Code", b.BranchCode},
		{"SWIFT", b.SwiftCode},
	} {
		if kv[1] != "" {
			lines = append(lines, kv[0]+": "+kv[1])
		}
	}
	return lines
}

// infoBox draws a titled, shaded box in the notes section style. Lines are
// prefixed with marker.
func infoBox(f *Frame, c layout.Cursor, title string, lines []string, marker string) layout.Cursor {
	sec := f.T.Sections.Notes
	sec.Title = title
	prefixed := make([]string, len(lines))
	for i, l := range lines {
		prefixed[i] = marker + l
	}
	h := panelHeight(f, sec, c.Geo.ContentWidth(), prefixed)
	c = c.EnsureSpace(f.S, h)
	return c.At(panel(f, sec, c.Geo.Left, c.Geo.ContentWidth(), c.Y, prefixed)).Advance(blockGap)
}

// FooterBand is the height at the bottom of every page taken by the pinned
// footer lines, plus a small gap. It is zero when no pinned line is drawn.
// The flowing content never reaches into it, whatever the bottom margin.
func FooterBand(ft model.Footer) float64 {
	size := ft.TextStyle.FontSize
	switch {
	case (model.On(ft.ShowFooter) && ft.Text != "") || model.On(ft.ShowPageNumbers):
		return FooterTextOffset + size + footerBandGap
	case model.On(ft.ShowTimestamp):
		return TimestampOffset + size + footerBandGap
	}
	return 0
}

// PageFooters stamps every page with the pinned footer text, the
// generation timestamp and "Page N of M". It runs after all content so the
// page total is known, and leaves the surface on the last page. The footer
// text is kept clear of the page number and truncated to the room left.
func PageFooters(f *Frame, g layout.Geometry) {
	ft := f.T.Footer
	total := f.S.PageCount()
	ts := ft.TextStyle
	stamp := "Generated on " + dateutil.Timestamp(f.Now)

	pn := ts
	pn.Alignment = model.AlignRight
	reserve := 0.0
	if model.On(ft.ShowPageNumbers) {
		style.ApplyText(f.S, pn)
		reserve = f.S.TextWidth(pageLabel(total, total)) + pageNumberGap
	}
	textX, textW := g.Left, g.ContentWidth()
	if ts.Alignment == model.AlignCenter {
		textX, textW = textX+reserve, textW-2*reserve
	} else {
		textW -= reserve
	}

	for n := 1; n <= total; n++ {
		f.S.SetPage(n)
		textY := g.Height - FooterTextOffset - ts.FontSize
		if model.On(ft.ShowFooter) && ft.Text != "" && textW > 0 {
			style.ApplyText(f.S, ts)
			layout.Line(f.S, ts, textX, textY, textW, layout.Truncate(f.S, ft.Text, textW))
		}
		if model.On(ft.ShowPageNumbers) {
			layout.Line(f.S, pn, g.Left, textY, g.ContentWidth(), pageLabel(n, total))
		}
		if model.On(ft.ShowTimestamp) {
			stampStyle := ts
			stampStyle.Alignment = model.AlignCenter
			layout.Line(f.S, stampStyle, g.Left, g.Height-TimestampOffset-ts.FontSize, g.ContentWidth(), stamp)
		}
	}
	if total > 0 {
		f.S.SetPage(total)
	}
}

func pageLabel(n, total int) string {
	return "Page " + strconv.Itoa(n) + " of " + strconv.Itoa(total)
}
