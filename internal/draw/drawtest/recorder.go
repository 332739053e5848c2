// Package drawtest provides a recording draw.Surface for layout tests.
package drawtest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/draw"
)

// Op kinds recorded by Recorder.
const (
	OpText  = "text"
	OpLine  = "line"
	OpRect  = "rect"
	OpImage = "image"
)

// Op is one recorded drawing call, with the graphics state it was made in.
type Op struct {
	Kind     string
	Page     int // 1-based, like fpdf
	X, Y     float64
	W, H     float64
	X2, Y2   float64
	Text     string
	Angle    float64
	Mode     string
	Font     string
	Bold     bool
	Size     float64
	Color    [3]uint8 // text color for text ops, draw color for strokes
	Fill     [3]uint8
	Dash     string
	Opacity  float64
	Rotation float64
}

// Recorder is an in-memory Surface. Text width is approximated as half the
// font size per rune so wrapping is deterministic.
type Recorder struct {
	Width, Height float64
	Ops           []Op
	ImageErr      error

	page, pages int
	font        string
	bold        bool
	size        float64
	text, fill  [3]uint8
	stroke      [3]uint8
	dash        string
}

// Compile-time interface implementation check.
var _ draw.Surface = (*Recorder)(nil)

// New returns an A4 recorder with no pages.
func New() *Recorder {
	return &Recorder{Width: 595.28, Height: 841.89, font: "helvetica", size: 10, dash: draw.DashSolid}
}

func (r *Recorder) PageSize() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) AddPage() {
	r.pages++
	r.page = r.pages
}

func (r *Recorder) PageNo() int    { return r.page }
func (r *Recorder) PageCount() int { return r.pages }
func (r *Recorder) SetPage(n int)  { r.page = n }

func (r *Recorder) SetFont(family string, bold bool, size float64) {
	r.font, r.bold, r.size = family, bold, size
}

func (r *Recorder) SetTextColor(red, g, b uint8) { r.text = [3]uint8{red, g, b} }
func (r *Recorder) SetFillColor(red, g, b uint8) { r.fill = [3]uint8{red, g, b} }
func (r *Recorder) SetDrawColor(red, g, b uint8) { r.stroke = [3]uint8{red, g, b} }
func (r *Recorder) SetLineWidth(float64)         {}
func (r *Recorder) SetDash(pattern string)       { r.dash = pattern }

func (r *Recorder) Text(x, y float64, s string) {
	r.Ops = append(r.Ops, r.textOp(x, y, s, 0))
}

func (r *Recorder) TextRotated(x, y, angle float64, s string) {
	r.Ops = append(r.Ops, r.textOp(x, y, s, angle))
}

func (r *Recorder) textOp(x, y float64, s string, angle float64) Op {
	return Op{
		Kind: OpText, Page: r.page, X: x, Y: y, Text: s, Angle: angle,
		Font: r.font, Bold: r.bold, Size: r.size, Color: r.text,
	}
}

func (r *Recorder) TextWidth(s string) float64 {
	return float64(len([]rune(s))) * r.size * 0.5
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Page: r.page, X: x1, Y: y1, X2: x2, Y2: y2, Color: r.stroke, Dash: r.dash})
}

func (r *Recorder) Rect(x, y, w, h float64, mode string) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Page: r.page, X: x, Y: y, W: w, H: h, Mode: mode, Color: r.stroke, Fill: r.fill, Dash: r.dash})
}

func (r *Recorder) Image(data []byte, x, y, w, h float64, opts draw.ImageOptions) error {
	if r.ImageErr != nil {
		return r.ImageErr
	}
	if len(data) == 0 {
		return errors.New("empty image")
	}
	r.Ops = append(r.Ops, Op{Kind: OpImage, Page: r.page, X: x, Y: y, W: w, H: h, Opacity: opts.Opacity, Rotation: opts.Rotation})
	return nil
}

func (r *Recorder) Err() error { return nil }

// Output writes a plain-text listing of the recorded text, one run per line.
func (r *Recorder) Output(w io.Writer) error {
	var buf bytes.Buffer
	for _, op := range r.Ops {
		if op.Kind == OpText {
			fmt.Fprintf(&buf, "%d %.1f %.1f %s\n", op.Page, op.X, op.Y, op.Text)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Texts returns every text run in drawing order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// FindText returns the first text op whose text equals s.
func (r *Recorder) FindText(s string) (Op, bool) {
	for _, op := range r.Ops {
		if op.Kind == OpText && op.Text == s {
			return op, true
		}
	}
	return Op{}, false
}

// FindAll returns every text op whose text equals s.
func (r *Recorder) FindAll(s string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == OpText && op.Text == s {
			out = append(out, op)
		}
	}
	return out
}

// HasTextPrefix reports whether any text run starts with prefix.
func (r *Recorder) HasTextPrefix(prefix string) bool {
	for _, op := range r.Ops {
		if op.Kind == OpText && strings.HasPrefix(op.Text, prefix) {
			return true
		}
	}
	return false
}

// Count returns the number of ops of the given kind, optionally filtered.
func (r *Recorder) Count(kind string, match func(Op) bool) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind && (match == nil || match(op)) {
			n++
		}
	}
	return n
}
