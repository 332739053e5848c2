package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Sentinel errors for template validation.
var (
	ErrInvalidTemplate = errors.New("invalid template")
	ErrInvalidColor    = errors.New("invalid color")
)

var hexColorPattern = regexp.MustCompile(`(?i)^#?([a-f\d]{2})([a-f\d]{2})([a-f\d]{2})$`)

// ParseHexColor decodes "#RRGGBB" (the leading # is optional, case does not
// matter). ok is false for any other input.
func ParseHexColor(s string) (r, g, b uint8, ok bool) {
	m := hexColorPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, false
	}
	rv, _ := strconv.ParseUint(m[1], 16, 8)
	gv, _ := strconv.ParseUint(m[2], 16, 8)
	bv, _ := strconv.ParseUint(m[3], 16, 8)
	return uint8(rv), uint8(gv), uint8(bv), true
}

// Validate checks structural constraints: non-negative margins and sizes,
// known enum values and an opacity within [0,1]. Colors are not checked
// here because the renderer tolerates malformed colors; see CheckColors.
// A nil template is valid.
func (t *Template) Validate() error {
	if t == nil {
		return nil
	}

	margins := []struct {
		name string
		v    *float64
	}{
		{"pageMargins.top", t.PageMargins.Top},
		{"pageMargins.right", t.PageMargins.Right},
		{"pageMargins.bottom", t.PageMargins.Bottom},
		{"pageMargins.left", t.PageMargins.Left},
	}
	for _, m := range margins {
		if m.v != nil && *m.v < 0 {
			return fmt.Errorf("%w: %s must be non-negative, got %.2f", ErrInvalidTemplate, m.name, *m.v)
		}
	}

	h := t.Header
	if err := validateStyle("header.titleStyle", h.TitleStyle); err != nil {
		return err
	}
	if err := validateStyle("header.subtitleStyle", h.SubtitleStyle); err != nil {
		return err
	}
	switch h.LogoPlacement {
	case "", LogoLeft, LogoCenter, LogoRight, LogoWatermark:
	default:
		return fmt.Errorf("%w: header.logoPlacement %q (must be left, center, right, or watermark)", ErrInvalidTemplate, h.LogoPlacement)
	}
	if h.LogoOpacity < 0 || h.LogoOpacity > 1 {
		return fmt.Errorf("%w: header.logoOpacity must be between 0 and 1, got %.2f", ErrInvalidTemplate, h.LogoOpacity)
	}
	if h.LogoWidth < 0 || h.LogoHeight < 0 || h.BorderWidth < 0 {
		return fmt.Errorf("%w: header sizes must be non-negative", ErrInvalidTemplate)
	}
	if err := validateOrientation("header.titleOrientation", h.TitleOrientation); err != nil {
		return err
	}
	if err := validateBorder("header.borderStyle", h.BorderStyle); err != nil {
		return err
	}

	if err := validateStyle("footer.textStyle", t.Footer.TextStyle); err != nil {
		return err
	}

	sections := []struct {
		name string
		s    Section
	}{
		{"sections.from", t.Sections.From},
		{"sections.to", t.Sections.To},
		{"sections.details", t.Sections.Details},
		{"sections.items", t.Sections.Items},
		{"sections.summary", t.Sections.Summary},
		{"sections.notes", t.Sections.Notes},
	}
	for _, sec := range sections {
		if err := validateSection(sec.name, sec.s); err != nil {
			return err
		}
	}

	tb := t.Table
	if err := validateStyle("table.headerStyle", tb.HeaderStyle); err != nil {
		return err
	}
	if err := validateStyle("table.cellStyle", tb.CellStyle); err != nil {
		return err
	}
	if err := validateBorder("table.borderStyle", tb.BorderStyle); err != nil {
		return err
	}
	if tb.BorderWidth < 0 || tb.Pad() < 0 {
		return fmt.Errorf("%w: table sizes must be non-negative", ErrInvalidTemplate)
	}
	for i, c := range tb.Columns {
		if c.Width < 0 {
			return fmt.Errorf("%w: table.columns[%d].width must be non-negative", ErrInvalidTemplate, i)
		}
		if err := validateAlignment(fmt.Sprintf("table.columns[%d].alignment", i), c.Alignment); err != nil {
			return err
		}
	}

	return nil
}

// CheckColors reports the first present color field, in document order,
// that is not a 6-hex-digit string. Used at storage boundaries; rendering
// itself never rejects a color.
func (t *Template) CheckColors() error {
	if t == nil {
		return nil
	}
	for _, f := range t.colorFields() {
		if f.value == "" {
			continue
		}
		if _, _, _, ok := ParseHexColor(f.value); !ok {
			return fmt.Errorf("%w: %s %q", ErrInvalidColor, f.name, f.value)
		}
	}
	return nil
}

type colorField struct {
	name, value string
}

func (t *Template) colorFields() []colorField {
	fields := []colorField{
		{"colorScheme.primary", t.ColorScheme.Primary},
		{"colorScheme.secondary", t.ColorScheme.Secondary},
		{"colorScheme.accent", t.ColorScheme.Accent},
		{"colorScheme.text", t.ColorScheme.Text},
		{"colorScheme.background", t.ColorScheme.Background},
		{"colorScheme.success", t.ColorScheme.Success},
		{"colorScheme.warning", t.ColorScheme.Warning},
		{"colorScheme.error", t.ColorScheme.Error},
		{"header.titleStyle.color", t.Header.TitleStyle.Color},
		{"header.subtitleStyle.color", t.Header.SubtitleStyle.Color},
		{"header.borderColor", t.Header.BorderColor},
		{"footer.textStyle.color", t.Footer.TextStyle.Color},
	}
	for _, s := range []struct {
		name string
		sec  Section
	}{
		{"from", t.Sections.From}, {"to", t.Sections.To}, {"details", t.Sections.Details},
		{"items", t.Sections.Items}, {"summary", t.Sections.Summary}, {"notes", t.Sections.Notes},
	} {
		prefix := "sections." + s.name + "."
		fields = append(fields,
			colorField{prefix + "titleStyle.color", s.sec.TitleStyle.Color},
			colorField{prefix + "contentStyle.color", s.sec.ContentStyle.Color},
			colorField{prefix + "backgroundColor", s.sec.BackgroundColor},
			colorField{prefix + "borderColor", s.sec.BorderColor},
		)
	}
	return append(fields,
		colorField{"table.headerBackground", t.Table.HeaderBackground},
		colorField{"table.headerTextColor", t.Table.HeaderTextColor},
		colorField{"table.rowBackground", t.Table.RowBackground},
		colorField{"table.alternateRowColor", t.Table.AlternateRowColor},
		colorField{"table.borderColor", t.Table.BorderColor},
		colorField{"table.headerStyle.color", t.Table.HeaderStyle.Color},
		colorField{"table.cellStyle.color", t.Table.CellStyle.Color},
	)
}

func validateSection(name string, s Section) error {
	if err := validateStyle(name+".titleStyle", s.TitleStyle); err != nil {
		return err
	}
	if err := validateStyle(name+".contentStyle", s.ContentStyle); err != nil {
		return err
	}
	if err := validateBorder(name+".borderStyle", s.BorderStyle); err != nil {
		return err
	}
	if err := validateOrientation(name+".layout", s.Layout); err != nil {
		return err
	}
	if s.Pad() < 0 || s.BorderWidth < 0 {
		return fmt.Errorf("%w: %s sizes must be non-negative", ErrInvalidTemplate, name)
	}
	return nil
}

func validateStyle(name string, s TextStyle) error {
	switch s.FontFamily {
	case "", FontHelvetica, FontTimes, FontCourier:
	default:
		return fmt.Errorf("%w: %s.fontFamily %q (must be helvetica, times, or courier)", ErrInvalidTemplate, name, s.FontFamily)
	}
	switch s.FontWeight {
	case "", WeightNormal, WeightBold:
	default:
		return fmt.Errorf("%w: %s.fontWeight %q (must be normal or bold)", ErrInvalidTemplate, name, s.FontWeight)
	}
	if s.FontSize < 0 {
		return fmt.Errorf("%w: %s.fontSize must be positive, got %.2f", ErrInvalidTemplate, name, s.FontSize)
	}
	return validateAlignment(name+".alignment", s.Alignment)
}

func validateAlignment(name string, a Alignment) error {
	switch a {
	case "", AlignLeft, AlignCenter, AlignRight:
		return nil
	default:
		return fmt.Errorf("%w: %s %q (must be left, center, or right)", ErrInvalidTemplate, name, a)
	}
}

func validateBorder(name string, b BorderStyle) error {
	switch b {
	case "", BorderSolid, BorderDashed, BorderDotted:
		return nil
	default:
		return fmt.Errorf("%w: %s %q (must be solid, dashed, or dotted)", ErrInvalidTemplate, name, b)
	}
}

func validateOrientation(name string, o Orientation) error {
	switch o {
	case "", Horizontal, Vertical:
		return nil
	default:
		return fmt.Errorf("%w: %s %q (must be horizontal or vertical)", ErrInvalidTemplate, name, o)
	}
}
