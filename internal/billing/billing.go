// Package billing derives the amounts printed on an invoice: line amounts,
// the VAT-inclusive/exempt expense split, document totals and the payment
// status badge.
package billing

import (
	"math"
	"time"

	"github.com/alnah/go-invoice2pdf/internal/model"
)

// DefaultVATRate is the South African standard rate, used wherever neither
// the invoice nor the expense line carries one.
const DefaultVATRate = 0.15

// Tolerance is the rounding slack allowed between derived amounts.
const Tolerance = 0.01

// Round2 rounds half away from zero to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TimeEntryAmount is the explicit amount, or hours times rate.
func TimeEntryAmount(e model.TimeEntry) float64 {
	if e.Amount != nil {
		return *e.Amount
	}
	return e.Hours * e.Rate
}

// ServiceAmount is the explicit amount, or quantity times unit price. A zero
// quantity counts as one.
func ServiceAmount(s model.Service) float64 {
	if s.Amount != nil {
		return *s.Amount
	}
	qty := s.Quantity
	if qty == 0 {
		qty = 1
	}
	return qty * s.UnitPrice
}

// SumTimeEntries totals every time entry amount.
func SumTimeEntries(entries []model.TimeEntry) float64 {
	total := 0.0
	for _, e := range entries {
		total += TimeEntryAmount(e)
	}
	return total
}

// SumServices totals every service amount.
func SumServices(services []model.Service) float64 {
	total := 0.0
	for _, s := range services {
		total += ServiceAmount(s)
	}
	return total
}

// ---------------------------------------------------------------------------
// Expense split
// ---------------------------------------------------------------------------

// Line is one VAT-inclusive expense broken into its VAT components.
type Line struct {
	Expense model.Expense
	Rate    float64
	ExclVAT float64
	VAT     float64
}

// InclVAT is the raw amount billed.
func (l Line) InclVAT() float64 { return l.Expense.Amount }

// Subtotal sums one expense group.
type Subtotal struct {
	ExclVAT float64
	VAT     float64
	Total   float64
}

// Split partitions expenses by VAT treatment. Input order is kept within
// each group.
type Split struct {
	Inclusive      []Line
	Exempt         []model.Expense
	InclusiveTotal Subtotal
	ExemptTotal    float64
}

// Empty reports whether neither group has lines.
func (s Split) Empty() bool {
	return len(s.Inclusive) == 0 && len(s.Exempt) == 0
}

// SplitExpenses partitions expenses into VAT-inclusive lines (flag absent
// or true) and VAT-exempt lines (flag false). Inclusive amounts are split
// with the line's own rate, falling back to defaultRate; a non-positive
// defaultRate means DefaultVATRate.
func SplitExpenses(expenses []model.Expense, defaultRate float64) Split {
	if defaultRate <= 0 {
		defaultRate = DefaultVATRate
	}

	var out Split
	for _, e := range expenses {
		if e.VATApplicable != nil && !*e.VATApplicable {
			out.Exempt = append(out.Exempt, e)
			out.ExemptTotal += e.Amount
			continue
		}

		rate := defaultRate
		if e.VATRate != nil {
			rate = *e.VATRate
		}
		excl := e.Amount / (1 + rate)
		line := Line{Expense: e, Rate: rate, ExclVAT: excl, VAT: e.Amount - excl}
		out.Inclusive = append(out.Inclusive, line)
		out.InclusiveTotal.ExclVAT += line.ExclVAT
		out.InclusiveTotal.VAT += line.VAT
	}
	out.InclusiveTotal.Total = out.InclusiveTotal.ExclVAT + out.InclusiveTotal.VAT
	return out
}

// ---------------------------------------------------------------------------
// Totals
// ---------------------------------------------------------------------------

// Totals are the summary block values with every default applied.
type Totals struct {
	Fees          float64
	Disbursements float64
	Subtotal      float64
	VATRate       float64
	VAT           float64
	Total         float64
}

// ComputeTotals fills the invoice's absent amounts: subtotal is fees plus
// disbursements, the rate is DefaultVATRate, VAT is subtotal times rate and
// total is subtotal plus VAT. Present values are used as given.
func ComputeTotals(inv model.Invoice) Totals {
	t := Totals{
		Fees:          inv.FeesAmount,
		Disbursements: inv.DisbursementsAmount,
		Subtotal:      inv.FeesAmount + inv.DisbursementsAmount,
		VATRate:       DefaultVATRate,
	}
	if inv.Subtotal != nil {
		t.Subtotal = *inv.Subtotal
	}
	if inv.VATRate != nil {
		t.VATRate = *inv.VATRate
	}
	t.VAT = Round2(t.Subtotal * t.VATRate)
	if inv.VATAmount != nil {
		t.VAT = *inv.VATAmount
	}
	t.Total = t.Subtotal + t.VAT
	if inv.Total != nil {
		t.Total = *inv.Total
	}
	return t
}

// RatePercent renders a rate such as 0.15 as "15".
func RatePercent(rate float64) float64 {
	return math.Round(rate*10000) / 100
}

// ---------------------------------------------------------------------------
// Status badge
// ---------------------------------------------------------------------------

// Badge is the payment state printed in the header.
type Badge string

const (
	BadgeNone    Badge = ""
	BadgePaid    Badge = "PAID"
	BadgeOverdue Badge = "OVERDUE"
	BadgeDue     Badge = "DUE"
)

// StatusOf derives the badge. Paid wins; an explicit overdue status or a
// due date before now's calendar day is overdue; any other dated, sent
// invoice is due. Drafts and pro forma documents carry no badge.
func StatusOf(inv model.Invoice, now time.Time) Badge {
	if inv.Kind == model.KindProForma {
		return BadgeNone
	}
	switch {
	case inv.Status == model.StatusPaid || !inv.DatePaid.IsZero():
		return BadgePaid
	case inv.Status == model.StatusOverdue:
		return BadgeOverdue
	case inv.Status == model.StatusDraft:
		return BadgeNone
	case IsOverdue(inv, now):
		return BadgeOverdue
	case !inv.DueDate.IsZero() || inv.Status == model.StatusSent:
		return BadgeDue
	default:
		return BadgeNone
	}
}

// IsOverdue reports whether an unpaid invoice's due date is before today.
func IsOverdue(inv model.Invoice, now time.Time) bool {
	if inv.Status == model.StatusPaid || !inv.DatePaid.IsZero() || inv.DueDate.IsZero() {
		return false
	}
	if inv.Status == model.StatusOverdue {
		return true
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dy, dm, dd := inv.DueDate.Date()
	return time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).Before(today)
}

// Derive returns the invoice with fees and disbursements filled from the
// content lines when the record leaves them at zero. Fees are time entries
// plus services. Derived disbursements are the inclusive expenses net of
// VAT plus the exempt expenses; when the record carries neither a subtotal
// nor a VAT amount, the VAT is the fee VAT plus the VAT already inside the
// inclusive expenses, so the total equals fees with VAT plus the raw
// expense amounts.
func Derive(c model.Content) model.Invoice {
	inv := c.Invoice
	if inv.FeesAmount == 0 {
		inv.FeesAmount = SumTimeEntries(c.TimeEntries) + SumServices(c.Services)
	}
	if inv.DisbursementsAmount != 0 || len(c.Expenses) == 0 {
		return inv
	}

	split := SplitExpenses(c.Expenses, DefaultVATRate)
	inv.DisbursementsAmount = Round2(split.InclusiveTotal.ExclVAT + split.ExemptTotal)
	if inv.Subtotal == nil && inv.VATAmount == nil {
		rate := DefaultVATRate
		if inv.VATRate != nil {
			rate = *inv.VATRate
		}
		vat := Round2(inv.FeesAmount*rate + split.InclusiveTotal.VAT)
		inv.VATAmount = &vat
	}
	return inv
}
