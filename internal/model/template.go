// Package model defines the invoice template schema, its canonical defaults,
// and the read-only content aggregate consumed by the renderer.
package model

// FontFamily is one of the three core PDF font families.
type FontFamily string

const (
	FontHelvetica FontFamily = "helvetica"
	FontTimes     FontFamily = "times"
	FontCourier   FontFamily = "courier"
)

// FontWeight selects the regular or bold face.
type FontWeight string

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"
)

// Alignment is the horizontal alignment of a text run.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// BorderStyle is the stroke pattern for rules, boxes and table grids.
type BorderStyle string

const (
	BorderSolid  BorderStyle = "solid"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
)

// LogoPlacement positions the header logo.
type LogoPlacement string

const (
	LogoLeft      LogoPlacement = "left"
	LogoCenter    LogoPlacement = "center"
	LogoRight     LogoPlacement = "right"
	LogoWatermark LogoPlacement = "watermark"
)

// Orientation applies to the document title and to section layouts.
// Horizontal titles are drawn inline; vertical titles are rotated into a
// left gutter. Horizontal sections use two columns; vertical ones stack.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// TextStyle describes a single run of text. Zero values mean "inherit the
// default for this field".
type TextStyle struct {
	FontFamily FontFamily `yaml:"fontFamily,omitempty" json:"fontFamily,omitempty"`
	FontSize   float64    `yaml:"fontSize,omitempty" json:"fontSize,omitempty"`
	FontWeight FontWeight `yaml:"fontWeight,omitempty" json:"fontWeight,omitempty"`
	Color      string     `yaml:"color,omitempty" json:"color,omitempty"`
	Alignment  Alignment  `yaml:"alignment,omitempty" json:"alignment,omitempty"`
}

// Bold reports whether the style uses the bold face.
func (s TextStyle) Bold() bool { return s.FontWeight == WeightBold }

// ColorScheme is the palette shared by all sections.
type ColorScheme struct {
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
	Primary    string `yaml:"primary,omitempty" json:"primary,omitempty"`
	Secondary  string `yaml:"secondary,omitempty" json:"secondary,omitempty"`
	Accent     string `yaml:"accent,omitempty" json:"accent,omitempty"`
	Text       string `yaml:"text,omitempty" json:"text,omitempty"`
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
	Success    string `yaml:"success,omitempty" json:"success,omitempty"`
	Warning    string `yaml:"warning,omitempty" json:"warning,omitempty"`
	Error      string `yaml:"error,omitempty" json:"error,omitempty"`
}

// Header configures the logo, title, subtitle and the rule below them.
type Header struct {
	ShowLogo         *bool         `yaml:"showLogo,omitempty" json:"showLogo,omitempty"`
	LogoURL          string        `yaml:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	LogoWidth        float64       `yaml:"logoWidth,omitempty" json:"logoWidth,omitempty"`
	LogoHeight       float64       `yaml:"logoHeight,omitempty" json:"logoHeight,omitempty"`
	LogoPlacement    LogoPlacement `yaml:"logoPlacement,omitempty" json:"logoPlacement,omitempty"`
	LogoOpacity      float64       `yaml:"logoOpacity,omitempty" json:"logoOpacity,omitempty"`
	LogoRotation     float64       `yaml:"logoRotation,omitempty" json:"logoRotation,omitempty"`
	Title            string        `yaml:"title,omitempty" json:"title,omitempty"`
	TitleStyle       TextStyle     `yaml:"titleStyle,omitempty" json:"titleStyle,omitempty"`
	TitleOrientation Orientation   `yaml:"titleOrientation,omitempty" json:"titleOrientation,omitempty"`
	Subtitle         *string       `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	SubtitleStyle    TextStyle     `yaml:"subtitleStyle,omitempty" json:"subtitleStyle,omitempty"`
	ShowBorder       *bool         `yaml:"showBorder,omitempty" json:"showBorder,omitempty"`
	BorderColor      string        `yaml:"borderColor,omitempty" json:"borderColor,omitempty"`
	BorderStyle      BorderStyle   `yaml:"borderStyle,omitempty" json:"borderStyle,omitempty"`
	BorderWidth      float64       `yaml:"borderWidth,omitempty" json:"borderWidth,omitempty"`
}

// BankDetails is printed in the footer when enabled.
type BankDetails struct {
	AccountName   string `yaml:"accountName,omitempty" json:"accountName,omitempty"`
	AccountNumber string `yaml:"accountNumber,omitempty" json:"accountNumber,omitempty"`
	BankName      string `yaml:"bankName,omitempty" json:"bankName,omitempty"`
	BranchCode    string `yaml:"branchCode,omitempty" json:"branchCode,omitempty"`
	SwiftCode     string `yaml:"swiftCode,omitempty" json:"swiftCode,omitempty"`
}

// IsEmpty reports whether no bank field is set.
func (b BankDetails) IsEmpty() bool {
	return b == BankDetails{}
}

// Footer toggles the closing blocks and the text pinned to the page bottom.
type Footer struct {
	ShowFooter              *bool       `yaml:"showFooter,omitempty" json:"showFooter,omitempty"`
	Text                    string      `yaml:"text,omitempty" json:"text,omitempty"`
	TextStyle               TextStyle   `yaml:"textStyle,omitempty" json:"textStyle,omitempty"`
	ShowPageNumbers         *bool       `yaml:"showPageNumbers,omitempty" json:"showPageNumbers,omitempty"`
	ShowTimestamp           *bool       `yaml:"showTimestamp,omitempty" json:"showTimestamp,omitempty"`
	ShowBankDetails         *bool       `yaml:"showBankDetails,omitempty" json:"showBankDetails,omitempty"`
	BankDetails             BankDetails `yaml:"bankDetails,omitempty" json:"bankDetails,omitempty"`
	ShowThankYouNote        *bool       `yaml:"showThankYouNote,omitempty" json:"showThankYouNote,omitempty"`
	ThankYouText            string      `yaml:"thankYouText,omitempty" json:"thankYouText,omitempty"`
	ShowTerms               *bool       `yaml:"showTerms,omitempty" json:"showTerms,omitempty"`
	TermsTitle              string      `yaml:"termsTitle,omitempty" json:"termsTitle,omitempty"`
	TermsText               string      `yaml:"termsText,omitempty" json:"termsText,omitempty"`
	ShowLegalDisclaimer     *bool       `yaml:"showLegalDisclaimer,omitempty" json:"showLegalDisclaimer,omitempty"`
	DisclaimerText          string      `yaml:"disclaimerText,omitempty" json:"disclaimerText,omitempty"`
	ShowPaymentInstructions *bool       `yaml:"showPaymentInstructions,omitempty" json:"showPaymentInstructions,omitempty"`
}

// Section styles one titled block of the document.
type Section struct {
	Title           string      `yaml:"title,omitempty" json:"title,omitempty"`
	TitleStyle      TextStyle   `yaml:"titleStyle,omitempty" json:"titleStyle,omitempty"`
	ContentStyle    TextStyle   `yaml:"contentStyle,omitempty" json:"contentStyle,omitempty"`
	BackgroundColor string      `yaml:"backgroundColor,omitempty" json:"backgroundColor,omitempty"`
	ShowBorder      *bool       `yaml:"showBorder,omitempty" json:"showBorder,omitempty"`
	BorderColor     string      `yaml:"borderColor,omitempty" json:"borderColor,omitempty"`
	BorderStyle     BorderStyle `yaml:"borderStyle,omitempty" json:"borderStyle,omitempty"`
	BorderWidth     float64     `yaml:"borderWidth,omitempty" json:"borderWidth,omitempty"`
	Padding         *float64    `yaml:"padding,omitempty" json:"padding,omitempty"`
	IsVisible       *bool       `yaml:"isVisible,omitempty" json:"isVisible,omitempty"`
	Layout          Orientation `yaml:"layout,omitempty" json:"layout,omitempty"`
}

// Pad is the inner padding; an unset padding is zero.
func (s Section) Pad() float64 { return Value(s.Padding) }

// Sections holds one style block per section kind.
type Sections struct {
	From    Section `yaml:"from,omitempty" json:"from,omitempty"`
	To      Section `yaml:"to,omitempty" json:"to,omitempty"`
	Details Section `yaml:"details,omitempty" json:"details,omitempty"`
	Items   Section `yaml:"items,omitempty" json:"items,omitempty"`
	Summary Section `yaml:"summary,omitempty" json:"summary,omitempty"`
	Notes   Section `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// ColumnStyle overrides the relative width and alignment of one table column.
type ColumnStyle struct {
	Width     float64   `yaml:"width,omitempty" json:"width,omitempty"`
	Alignment Alignment `yaml:"alignment,omitempty" json:"alignment,omitempty"`
}

// TableStyle configures the grid shared by the time-entry, service and
// expense tables.
type TableStyle struct {
	HeaderBackground  string        `yaml:"headerBackground,omitempty" json:"headerBackground,omitempty"`
	HeaderTextColor   string        `yaml:"headerTextColor,omitempty" json:"headerTextColor,omitempty"`
	RowBackground     string        `yaml:"rowBackground,omitempty" json:"rowBackground,omitempty"`
	AlternateRows     *bool         `yaml:"alternateRows,omitempty" json:"alternateRows,omitempty"`
	AlternateRowColor string        `yaml:"alternateRowColor,omitempty" json:"alternateRowColor,omitempty"`
	ShowBorders       *bool         `yaml:"showBorders,omitempty" json:"showBorders,omitempty"`
	BorderColor       string        `yaml:"borderColor,omitempty" json:"borderColor,omitempty"`
	BorderStyle       BorderStyle   `yaml:"borderStyle,omitempty" json:"borderStyle,omitempty"`
	BorderWidth       float64       `yaml:"borderWidth,omitempty" json:"borderWidth,omitempty"`
	HeaderStyle       TextStyle     `yaml:"headerStyle,omitempty" json:"headerStyle,omitempty"`
	CellStyle         TextStyle     `yaml:"cellStyle,omitempty" json:"cellStyle,omitempty"`
	CellPadding       *float64      `yaml:"cellPadding,omitempty" json:"cellPadding,omitempty"`
	Columns           []ColumnStyle `yaml:"columns,omitempty" json:"columns,omitempty"`
}

// Pad is the cell padding; an unset padding is zero.
func (t TableStyle) Pad() float64 { return Value(t.CellPadding) }

// Margins are page margins in points. A nil side inherits the default.
type Margins struct {
	Top    *float64 `yaml:"top,omitempty" json:"top,omitempty"`
	Right  *float64 `yaml:"right,omitempty" json:"right,omitempty"`
	Bottom *float64 `yaml:"bottom,omitempty" json:"bottom,omitempty"`
	Left   *float64 `yaml:"left,omitempty" json:"left,omitempty"`
}

// Template is the complete visual configuration of an invoice.
type Template struct {
	Name        string      `yaml:"name,omitempty" json:"name,omitempty"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	ColorScheme ColorScheme `yaml:"colorScheme,omitempty" json:"colorScheme,omitempty"`
	Header      Header      `yaml:"header,omitempty" json:"header,omitempty"`
	Footer      Footer      `yaml:"footer,omitempty" json:"footer,omitempty"`
	Sections    Sections    `yaml:"sections,omitempty" json:"sections,omitempty"`
	Table       TableStyle  `yaml:"table,omitempty" json:"table,omitempty"`
	PageMargins Margins     `yaml:"pageMargins,omitempty" json:"pageMargins,omitempty"`
}

// On reports whether an optional toggle is set and true.
func On(b *bool) bool { return b != nil && *b }

// Bool returns a pointer to v, for building templates in code.
func Bool(v bool) *bool { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Text dereferences p, returning "" for nil.
func Text(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Value dereferences p, returning 0 for nil.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
