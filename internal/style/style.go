// Package style maps template colors and text styles onto a draw.Surface.
package style

import (
	"github.com/alnah/go-invoice2pdf/internal/draw"
	"github.com/alnah/go-invoice2pdf/internal/model"
)

// RGB is a decoded color triple.
type RGB struct{ R, G, B uint8 }

// HexToRGB decodes "#RRGGBB" (optional #, any case). Anything else yields
// black: a malformed color never aborts a render.
func HexToRGB(hex string) (r, g, b uint8) {
	r, g, b, _ = model.ParseHexColor(hex)
	return r, g, b
}

// Color is HexToRGB returning an RGB value.
func Color(hex string) RGB {
	r, g, b := HexToRGB(hex)
	return RGB{r, g, b}
}

// ApplyText sets font family, weight, size and text color on s. Callers set
// it immediately before drawing text so state never bleeds across sections.
func ApplyText(s draw.Surface, ts model.TextStyle) {
	family := string(ts.FontFamily)
	if family == "" {
		family = string(model.FontHelvetica)
	}
	size := ts.FontSize
	if size <= 0 {
		size = 10
	}
	s.SetFont(family, ts.Bold(), size)
	s.SetTextColor(HexToRGB(ts.Color))
}

// Fill sets the fill color.
func Fill(s draw.Surface, hex string) {
	s.SetFillColor(HexToRGB(hex))
}

// Stroke sets the draw color, line width and dash pattern for rules and
// borders.
func Stroke(s draw.Surface, hex string, width float64, border model.BorderStyle) {
	s.SetDrawColor(HexToRGB(hex))
	if width <= 0 {
		width = 0.5
	}
	s.SetLineWidth(width)
	s.SetDash(dash(border))
}

// ResetDash restores solid strokes.
func ResetDash(s draw.Surface) {
	s.SetDash(draw.DashSolid)
}

func dash(b model.BorderStyle) string {
	switch b {
	case model.BorderDashed:
		return draw.DashDashed
	case model.BorderDotted:
		return draw.DashDotted
	default:
		return draw.DashSolid
	}
}

// With returns ts with the weight and color overridden where non-empty.
func With(ts model.TextStyle, weight model.FontWeight, color string) model.TextStyle {
	if weight != "" {
		ts.FontWeight = weight
	}
	if color != "" {
		ts.Color = color
	}
	return ts
}
