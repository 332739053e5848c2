package model

// Resolve merges t over DefaultTemplate field by field. Any leaf the caller
// left empty inherits the default's value, so customizing a single color
// keeps every other default intact. A nil template resolves to the default.
func Resolve(t *Template) Template {
	def := DefaultTemplate()
	if t == nil {
		return def
	}

	return Template{
		Name:        pick(t.Name, def.Name),
		Description: pick(t.Description, def.Description),
		ColorScheme: resolveColors(t.ColorScheme, def.ColorScheme),
		Header:      resolveHeader(t.Header, def.Header),
		Footer:      resolveFooter(t.Footer, def.Footer),
		Sections: Sections{
			From:    resolveSection(t.Sections.From, def.Sections.From),
			To:      resolveSection(t.Sections.To, def.Sections.To),
			Details: resolveSection(t.Sections.Details, def.Sections.Details),
			Items:   resolveSection(t.Sections.Items, def.Sections.Items),
			Summary: resolveSection(t.Sections.Summary, def.Sections.Summary),
			Notes:   resolveSection(t.Sections.Notes, def.Sections.Notes),
		},
		Table: resolveTable(t.Table, def.Table),
		PageMargins: Margins{
			Top:    pickPtr(t.PageMargins.Top, def.PageMargins.Top),
			Right:  pickPtr(t.PageMargins.Right, def.PageMargins.Right),
			Bottom: pickPtr(t.PageMargins.Bottom, def.PageMargins.Bottom),
			Left:   pickPtr(t.PageMargins.Left, def.PageMargins.Left),
		},
	}
}

// pick returns v unless it is the zero value.
func pick[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// pickPtr returns a copy of v unless it is nil.
func pickPtr[T any](v, def *T) *T {
	src := v
	if src == nil {
		src = def
	}
	if src == nil {
		return nil
	}
	out := *src
	return &out
}

func resolveStyle(s, def TextStyle) TextStyle {
	return TextStyle{
		FontFamily: pick(s.FontFamily, def.FontFamily),
		FontSize:   pick(s.FontSize, def.FontSize),
		FontWeight: pick(s.FontWeight, def.FontWeight),
		Color:      pick(s.Color, def.Color),
		Alignment:  pick(s.Alignment, def.Alignment),
	}
}

func resolveColors(c, def ColorScheme) ColorScheme {
	return ColorScheme{
		Name:       pick(c.Name, def.Name),
		Primary:    pick(c.Primary, def.Primary),
		Secondary:  pick(c.Secondary, def.Secondary),
		Accent:     pick(c.Accent, def.Accent),
		Text:       pick(c.Text, def.Text),
		Background: pick(c.Background, def.Background),
		Success:    pick(c.Success, def.Success),
		Warning:    pick(c.Warning, def.Warning),
		Error:      pick(c.Error, def.Error),
	}
}

func resolveHeader(h, def Header) Header {
	return Header{
		ShowLogo:         pickPtr(h.ShowLogo, def.ShowLogo),
		LogoURL:          pick(h.LogoURL, def.LogoURL),
		LogoWidth:        pick(h.LogoWidth, def.LogoWidth),
		LogoHeight:       pick(h.LogoHeight, def.LogoHeight),
		LogoPlacement:    pick(h.LogoPlacement, def.LogoPlacement),
		LogoOpacity:      pick(h.LogoOpacity, def.LogoOpacity),
		LogoRotation:     pick(h.LogoRotation, def.LogoRotation),
		Title:            pick(h.Title, def.Title),
		TitleStyle:       resolveStyle(h.TitleStyle, def.TitleStyle),
		TitleOrientation: pick(h.TitleOrientation, def.TitleOrientation),
		Subtitle:         pickPtr(h.Subtitle, def.Subtitle),
		SubtitleStyle:    resolveStyle(h.SubtitleStyle, def.SubtitleStyle),
		ShowBorder:       pickPtr(h.ShowBorder, def.ShowBorder),
		BorderColor:      pick(h.BorderColor, def.BorderColor),
		BorderStyle:      pick(h.BorderStyle, def.BorderStyle),
		BorderWidth:      pick(h.BorderWidth, def.BorderWidth),
	}
}

func resolveFooter(f, def Footer) Footer {
	return Footer{
		ShowFooter:      pickPtr(f.ShowFooter, def.ShowFooter),
		Text:            pick(f.Text, def.Text),
		TextStyle:       resolveStyle(f.TextStyle, def.TextStyle),
		ShowPageNumbers: pickPtr(f.ShowPageNumbers, def.ShowPageNumbers),
		ShowTimestamp:   pickPtr(f.ShowTimestamp, def.ShowTimestamp),
		ShowBankDetails: pickPtr(f.ShowBankDetails, def.ShowBankDetails),
		BankDetails: BankDetails{
			AccountName:   pick(f.BankDetails.AccountName, def.BankDetails.AccountName),
			AccountNumber: pick(f.BankDetails.AccountNumber, def.BankDetails.AccountNumber),
			BankName:      pick(f.BankDetails.BankName, def.BankDetails.BankName),
			BranchCode:    pick(f.BankDetails.BranchCode, def.BankDetails.BranchCode),
			SwiftCode:     pick(f.BankDetails.SwiftCode, def.BankDetails.SwiftCode),
		},
		ShowThankYouNote:        pickPtr(f.ShowThankYouNote, def.ShowThankYouNote),
		ThankYouText:            pick(f.ThankYouText, def.ThankYouText),
		ShowTerms:               pickPtr(f.ShowTerms, def.ShowTerms),
		TermsTitle:              pick(f.TermsTitle, def.TermsTitle),
		TermsText:               pick(f.TermsText, def.TermsText),
		ShowLegalDisclaimer:     pickPtr(f.ShowLegalDisclaimer, def.ShowLegalDisclaimer),
		DisclaimerText:          pick(f.DisclaimerText, def.DisclaimerText),
		ShowPaymentInstructions: pickPtr(f.ShowPaymentInstructions, def.ShowPaymentInstructions),
	}
}

func resolveSection(s, def Section) Section {
	return Section{
		Title:           pick(s.Title, def.Title),
		TitleStyle:      resolveStyle(s.TitleStyle, def.TitleStyle),
		ContentStyle:    resolveStyle(s.ContentStyle, def.ContentStyle),
		BackgroundColor: pick(s.BackgroundColor, def.BackgroundColor),
		ShowBorder:      pickPtr(s.ShowBorder, def.ShowBorder),
		BorderColor:     pick(s.BorderColor, def.BorderColor),
		BorderStyle:     pick(s.BorderStyle, def.BorderStyle),
		BorderWidth:     pick(s.BorderWidth, def.BorderWidth),
		Padding:         pickPtr(s.Padding, def.Padding),
		IsVisible:       pickPtr(s.IsVisible, def.IsVisible),
		Layout:          pick(s.Layout, def.Layout),
	}
}

func resolveTable(t, def TableStyle) TableStyle {
	out := TableStyle{
		HeaderBackground:  pick(t.HeaderBackground, def.HeaderBackground),
		HeaderTextColor:   pick(t.HeaderTextColor, def.HeaderTextColor),
		RowBackground:     pick(t.RowBackground, def.RowBackground),
		AlternateRows:     pickPtr(t.AlternateRows, def.AlternateRows),
		AlternateRowColor: pick(t.AlternateRowColor, def.AlternateRowColor),
		ShowBorders:       pickPtr(t.ShowBorders, def.ShowBorders),
		BorderColor:       pick(t.BorderColor, def.BorderColor),
		BorderStyle:       pick(t.BorderStyle, def.BorderStyle),
		BorderWidth:       pick(t.BorderWidth, def.BorderWidth),
		HeaderStyle:       resolveStyle(t.HeaderStyle, def.HeaderStyle),
		CellStyle:         resolveStyle(t.CellStyle, def.CellStyle),
		CellPadding:       pickPtr(t.CellPadding, def.CellPadding),
	}
	// The header text color is the canonical source for the header run.
	if t.HeaderTextColor != "" && t.HeaderStyle.Color == "" {
		out.HeaderStyle.Color = t.HeaderTextColor
	}
	if len(t.Columns) > 0 {
		out.Columns = append([]ColumnStyle(nil), t.Columns...)
	}
	return out
}
