// Package draw defines the low-level drawing primitives the layout engine
// targets, and a PDF implementation backed by go-pdf/fpdf.
package draw

import "io"

// Fill modes for Rect.
const (
	FillOnly   = "F"
	StrokeOnly = "D"
	FillStroke = "FD"
)

// Dash patterns for strokes.
const (
	DashSolid  = "solid"
	DashDashed = "dashed"
	DashDotted = "dotted"
)

// Surface is the set of "draw at (x,y)" primitives the renderer needs.
// Coordinates are points from the top-left corner of the current page; text
// is positioned by its baseline.
type Surface interface {
	PageSize() (width, height float64)
	AddPage()
	PageNo() int
	PageCount() int
	SetPage(n int)

	SetFont(family string, bold bool, size float64)
	SetTextColor(r, g, b uint8)
	SetFillColor(r, g, b uint8)
	SetDrawColor(r, g, b uint8)
	SetLineWidth(w float64)
	SetDash(pattern string)

	Text(x, y float64, s string)
	TextRotated(x, y, angle float64, s string)
	TextWidth(s string) float64

	Line(x1, y1, x2, y2 float64)
	Rect(x, y, w, h float64, mode string)
	Image(data []byte, x, y, w, h float64, opts ImageOptions) error

	Err() error
	Output(w io.Writer) error
}

// ImageOptions controls how an image is composited.
type ImageOptions struct {
	Opacity  float64 // 0 is treated as fully opaque
	Rotation float64 // degrees, counter-clockwise around the image center
}
