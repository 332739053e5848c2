package model

import (
	"fmt"
	"strings"
	"time"
)

// DocumentKind distinguishes final invoices from pro forma estimates.
type DocumentKind string

const (
	KindInvoice  DocumentKind = "invoice"
	KindProForma DocumentKind = "proforma"
)

// Invoice statuses recognized by the status badge.
const (
	StatusDraft   = "draft"
	StatusSent    = "sent"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

// dateLayouts are accepted by Date.UnmarshalText, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Date is a calendar date that decodes from "YYYY-MM-DD" or RFC 3339 in both
// YAML and JSON content files.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte(""), nil
	}
	return []byte(d.Format("2006-01-02")), nil
}

// UnmarshalJSON shadows the embedded time.Time decoder so JSON accepts the
// same short form as YAML.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	return d.UnmarshalText([]byte(strings.Trim(string(b), `"`)))
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	text, _ := d.MarshalText()
	return []byte(`"` + string(text) + `"`), nil
}

// Party is the practitioner issuing the invoice.
type Party struct {
	Name           string `yaml:"name" json:"name"`
	PracticeNumber string `yaml:"practiceNumber,omitempty" json:"practiceNumber,omitempty"`
	Email          string `yaml:"email,omitempty" json:"email,omitempty"`
	Phone          string `yaml:"phone,omitempty" json:"phone,omitempty"`
	VATRegistered  bool   `yaml:"vatRegistered,omitempty" json:"vatRegistered,omitempty"`
	VATNumber      string `yaml:"vatNumber,omitempty" json:"vatNumber,omitempty"`
	PostalAddress  string `yaml:"postalAddress,omitempty" json:"postalAddress,omitempty"`
}

// Client is the invoice recipient.
type Client struct {
	Name    string `yaml:"name" json:"name"`
	Firm    string `yaml:"firm,omitempty" json:"firm,omitempty"`
	Email   string `yaml:"email,omitempty" json:"email,omitempty"`
	Phone   string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
}

// Matter summarizes the case an invoice bills for.
type Matter struct {
	Title     string `yaml:"title" json:"title"`
	Reference string `yaml:"reference,omitempty" json:"reference,omitempty"`
	Client    Client `yaml:"client,omitempty" json:"client,omitempty"`
}

// Invoice holds the billing record. Optional amounts are nil when the
// caller wants them derived.
type Invoice struct {
	Kind                DocumentKind `yaml:"kind,omitempty" json:"kind,omitempty"`
	Number              string       `yaml:"number,omitempty" json:"number,omitempty"`
	Status              string       `yaml:"status,omitempty" json:"status,omitempty"`
	InvoiceDate         Date         `yaml:"invoiceDate,omitempty" json:"invoiceDate,omitempty"`
	DueDate             Date         `yaml:"dueDate,omitempty" json:"dueDate,omitempty"`
	DatePaid            Date         `yaml:"datePaid,omitempty" json:"datePaid,omitempty"`
	Reference           string       `yaml:"reference,omitempty" json:"reference,omitempty"`
	FeeNarrative        string       `yaml:"feeNarrative,omitempty" json:"feeNarrative,omitempty"`
	Notes               string       `yaml:"notes,omitempty" json:"notes,omitempty"`
	FeesAmount          float64      `yaml:"feesAmount,omitempty" json:"feesAmount,omitempty"`
	DisbursementsAmount float64      `yaml:"disbursementsAmount,omitempty" json:"disbursementsAmount,omitempty"`
	Subtotal            *float64     `yaml:"subtotal,omitempty" json:"subtotal,omitempty"`
	VATRate             *float64     `yaml:"vatRate,omitempty" json:"vatRate,omitempty"`
	VATAmount           *float64     `yaml:"vatAmount,omitempty" json:"vatAmount,omitempty"`
	Total               *float64     `yaml:"total,omitempty" json:"total,omitempty"`
}

// TimeEntry is one billed block of work.
type TimeEntry struct {
	Date        Date     `yaml:"date" json:"date"`
	Description string   `yaml:"description" json:"description"`
	Hours       float64  `yaml:"hours" json:"hours"`
	Rate        float64  `yaml:"rate" json:"rate"`
	Amount      *float64 `yaml:"amount,omitempty" json:"amount,omitempty"`
}

// Expense is a disbursement billed back to the client. Amount already
// includes VAT unless VATApplicable is explicitly false.
type Expense struct {
	Date          Date     `yaml:"date" json:"date"`
	Description   string   `yaml:"description" json:"description"`
	Category      string   `yaml:"category,omitempty" json:"category,omitempty"`
	Amount        float64  `yaml:"amount" json:"amount"`
	VATApplicable *bool    `yaml:"vatApplicable,omitempty" json:"vatApplicable,omitempty"`
	VATRate       *float64 `yaml:"vatRate,omitempty" json:"vatRate,omitempty"`
}

// Service is a fixed-fee or quantity-priced line item.
type Service struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Quantity    float64  `yaml:"quantity,omitempty" json:"quantity,omitempty"`
	UnitPrice   float64  `yaml:"unitPrice" json:"unitPrice"`
	Amount      *float64 `yaml:"amount,omitempty" json:"amount,omitempty"`
}

// Content is the read-only business input to a render call.
type Content struct {
	Invoice     Invoice     `yaml:"invoice" json:"invoice"`
	Matter      *Matter     `yaml:"matter,omitempty" json:"matter,omitempty"`
	TimeEntries []TimeEntry `yaml:"timeEntries,omitempty" json:"timeEntries,omitempty"`
	Expenses    []Expense   `yaml:"expenses,omitempty" json:"expenses,omitempty"`
	Services    []Service   `yaml:"services,omitempty" json:"services,omitempty"`
}

// Client returns the matter's client, or the zero value when no matter is set.
func (c Content) Client() Client {
	if c.Matter == nil {
		return Client{}
	}
	return c.Matter.Client
}
