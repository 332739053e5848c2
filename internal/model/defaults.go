package model

import (
	"sort"
	"strings"
)

// Default values shared by the template and the renderer.
const (
	DefaultTitle         = "INVOICE"
	DefaultProFormaTitle = "PRO FORMA INVOICE"
	DefaultTaxTitle      = "TAX INVOICE"
	DefaultMargin        = 40.0
	DefaultLogoSize      = 50.0
)

var colorSchemes = map[string]ColorScheme{
	"professional-blue": {
		Name: "professional-blue", Primary: "#2962FF", Secondary: "#1E88E5", Accent: "#FFC107",
		Text: "#212121", Background: "#FFFFFF", Success: "#4CAF50", Warning: "#FF9800", Error: "#F44336",
	},
	"elegant-purple": {
		Name: "elegant-purple", Primary: "#7C4DFF", Secondary: "#651FFF", Accent: "#FFD740",
		Text: "#1A1A1A", Background: "#FAFAFA", Success: "#00C853", Warning: "#FF6D00", Error: "#D50000",
	},
	"modern-green": {
		Name: "modern-green", Primary: "#00C853", Secondary: "#00E676", Accent: "#FFD600",
		Text: "#263238", Background: "#FFFFFF", Success: "#4CAF50", Warning: "#FFA726", Error: "#EF5350",
	},
	"classic-black": {
		Name: "classic-black", Primary: "#212121", Secondary: "#424242", Accent: "#FFC107",
		Text: "#000000", Background: "#FFFFFF", Success: "#66BB6A", Warning: "#FFA726", Error: "#EF5350",
	},
	"gold-luxury": {
		Name: "gold-luxury", Primary: "#C9A227", Secondary: "#B8860B", Accent: "#DAA520",
		Text: "#1A1A1A", Background: "#FFFEF7", Success: "#4CAF50", Warning: "#FF9800", Error: "#F44336",
	},
}

// LookupColorScheme returns a named built-in palette.
func LookupColorScheme(name string) (ColorScheme, bool) {
	cs, ok := colorSchemes[strings.ToLower(strings.TrimSpace(name))]
	return cs, ok
}

// ColorSchemeNames returns the built-in palette names, sorted.
func ColorSchemeNames() []string {
	names := make([]string, 0, len(colorSchemes))
	for name := range colorSchemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultTemplate returns the canonical fully-populated template. Every
// optional field is set, so a resolved template never needs nil checks.
// Each call returns a fresh value that callers may modify.
func DefaultTemplate() Template {
	body := TextStyle{FontFamily: FontHelvetica, FontSize: 10, FontWeight: WeightNormal, Color: "#333333", Alignment: AlignLeft}
	partyTitle := TextStyle{FontFamily: FontHelvetica, FontSize: 11, FontWeight: WeightBold, Color: "#000000", Alignment: AlignLeft}

	return Template{
		Name:        "Default Template",
		Description: "Professional default template",
		ColorScheme: colorSchemes["professional-blue"],
		Header: Header{
			ShowLogo:         Bool(true),
			LogoWidth:        DefaultLogoSize,
			LogoHeight:       DefaultLogoSize,
			LogoPlacement:    LogoCenter,
			LogoOpacity:      1,
			LogoRotation:     0,
			Title:            DefaultTitle,
			TitleStyle:       TextStyle{FontFamily: FontHelvetica, FontSize: 28, FontWeight: WeightBold, Color: "#2962FF", Alignment: AlignCenter},
			TitleOrientation: Horizontal,
			Subtitle:         String("Professional Legal Services"),
			SubtitleStyle:    TextStyle{FontFamily: FontHelvetica, FontSize: 10, FontWeight: WeightNormal, Color: "#666666", Alignment: AlignCenter},
			ShowBorder:       Bool(true),
			BorderColor:      "#2962FF",
			BorderStyle:      BorderSolid,
			BorderWidth:      2,
		},
		Footer: Footer{
			ShowFooter:              Bool(true),
			Text:                    "Thank you for your business",
			TextStyle:               TextStyle{FontFamily: FontHelvetica, FontSize: 8, FontWeight: WeightNormal, Color: "#999999", Alignment: AlignCenter},
			ShowPageNumbers:         Bool(true),
			ShowTimestamp:           Bool(true),
			ShowBankDetails:         Bool(false),
			ShowThankYouNote:        Bool(false),
			ThankYouText:            "Thank you for your business!",
			ShowTerms:               Bool(false),
			TermsTitle:              "Terms & Conditions",
			TermsText:               "Payment is due within 30 days of the invoice date. Interest may be charged on overdue accounts at the prescribed rate.",
			ShowLegalDisclaimer:     Bool(false),
			DisclaimerText:          "This invoice is issued subject to the rules of the relevant professional body. Errors and omissions excepted.",
			ShowPaymentInstructions: Bool(true),
		},
		Sections: Sections{
			From: Section{
				Title: "FROM:", TitleStyle: partyTitle, ContentStyle: body,
				ShowBorder: Bool(false), BorderColor: "#E0E0E0", BorderStyle: BorderSolid, BorderWidth: 0.5,
				Padding: Float(5), IsVisible: Bool(true), Layout: Horizontal,
			},
			To: Section{
				Title: "BILL TO:", TitleStyle: partyTitle, ContentStyle: body,
				ShowBorder: Bool(false), BorderColor: "#E0E0E0", BorderStyle: BorderSolid, BorderWidth: 0.5,
				Padding: Float(5), IsVisible: Bool(true), Layout: Horizontal,
			},
			Details: Section{
				Title: "Invoice Details", TitleStyle: partyTitle, ContentStyle: body,
				BackgroundColor: "#F5F5F5",
				ShowBorder:      Bool(true), BorderColor: "#E0E0E0", BorderStyle: BorderSolid, BorderWidth: 0.5,
				Padding: Float(10), IsVisible: Bool(true), Layout: Horizontal,
			},
			Items: Section{
				Title:      "Items & Services",
				TitleStyle: TextStyle{FontFamily: FontHelvetica, FontSize: 12, FontWeight: WeightBold, Color: "#2962FF", Alignment: AlignLeft},
				ContentStyle: body,
				ShowBorder:   Bool(false), BorderColor: "#E0E0E0", BorderStyle: BorderSolid, BorderWidth: 0.5,
				Padding: Float(5), IsVisible: Bool(true), Layout: Vertical,
			},
			Summary: Section{
				Title:        "Summary",
				TitleStyle:   TextStyle{FontFamily: FontHelvetica, FontSize: 12, FontWeight: WeightBold, Color: "#2962FF", Alignment: AlignRight},
				ContentStyle: TextStyle{FontFamily: FontHelvetica, FontSize: 10, FontWeight: WeightNormal, Color: "#333333", Alignment: AlignRight},
				ShowBorder:   Bool(true), BorderColor: "#E0E0E0", BorderStyle: BorderSolid, BorderWidth: 0.5,
				Padding: Float(10), IsVisible: Bool(true), Layout: Vertical,
			},
			Notes: Section{
				Title:           "Important Notes",
				TitleStyle:      TextStyle{FontFamily: FontHelvetica, FontSize: 10, FontWeight: WeightBold, Color: "#000000", Alignment: AlignLeft},
				ContentStyle:    TextStyle{FontFamily: FontHelvetica, FontSize: 9, FontWeight: WeightNormal, Color: "#666666", Alignment: AlignLeft},
				BackgroundColor: "#F5F7FA",
				ShowBorder:      Bool(true), BorderColor: "#E0E0E0", BorderStyle: BorderSolid, BorderWidth: 0.5,
				Padding: Float(10), IsVisible: Bool(true), Layout: Vertical,
			},
		},
		Table: TableStyle{
			HeaderBackground:  "#2962FF",
			HeaderTextColor:   "#FFFFFF",
			RowBackground:     "#FFFFFF",
			AlternateRows:     Bool(true),
			AlternateRowColor: "#F5F5F5",
			ShowBorders:       Bool(true),
			BorderColor:       "#E0E0E0",
			BorderStyle:       BorderSolid,
			BorderWidth:       0.5,
			HeaderStyle:       TextStyle{FontFamily: FontHelvetica, FontSize: 10, FontWeight: WeightBold, Color: "#FFFFFF", Alignment: AlignLeft},
			CellStyle:         TextStyle{FontFamily: FontHelvetica, FontSize: 9, FontWeight: WeightNormal, Color: "#333333", Alignment: AlignLeft},
			CellPadding:       Float(4),
		},
		PageMargins: Margins{
			Top:    Float(DefaultMargin),
			Right:  Float(DefaultMargin),
			Bottom: Float(DefaultMargin),
			Left:   Float(DefaultMargin),
		},
	}
}
