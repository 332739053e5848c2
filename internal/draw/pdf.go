package draw

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder for logo sniffing
	_ "image/jpeg" // register JPEG decoder for logo sniffing
	_ "image/png"  // register PNG decoder for logo sniffing
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Sentinel errors for the PDF surface.
var (
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrImage           = errors.New("image could not be drawn")
)

// Page sizes accepted by NewPDF, keyed by lowercase name.
var pageSizes = map[string]string{
	"a4":     "A4",
	"a5":     "A5",
	"letter": "Letter",
	"legal":  "Legal",
}

// Options configures a new PDF surface.
type Options struct {
	PageSize string    // a4 (default), a5, letter, legal
	Title    string    // document info title
	Author   string    // document info author
	Subject  string    // document info subject
	Keywords string    // document info keywords
	Created  time.Time // creation date; zero uses the current time
	Compress bool      // compress page streams
}

// PDF implements Surface on top of fpdf. Text is converted to the core
// fonts' cp1252 encoding before drawing and measuring.
type PDF struct {
	f      *fpdf.Fpdf
	tr     func(string) string
	images int
}

// Compile-time interface implementation check.
var _ Surface = (*PDF)(nil)

// NewPDF creates an empty document in points, with automatic page breaks
// disabled: pagination is decided by the layout engine.
func NewPDF(opts Options) (*PDF, error) {
	size := "A4"
	if opts.PageSize != "" {
		s, ok := pageSizes[strings.ToLower(strings.TrimSpace(opts.PageSize))]
		if !ok {
			return nil, fmt.Errorf("%w: %q (must be a4, a5, letter, or legal)", ErrInvalidPageSize, opts.PageSize)
		}
		size = s
	}

	f := fpdf.New("P", "pt", size, "")
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.SetCompression(opts.Compress)
	f.SetCatalogSort(true)

	created := opts.Created
	if created.IsZero() {
		created = time.Now()
	}
	f.SetCreationDate(created)
	f.SetModificationDate(created)
	f.SetCreator("go-invoice2pdf", true)
	if opts.Title != "" {
		f.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		f.SetAuthor(opts.Author, true)
	}
	if opts.Subject != "" {
		f.SetSubject(opts.Subject, true)
	}
	if opts.Keywords != "" {
		f.SetKeywords(opts.Keywords, true)
	}

	return &PDF{f: f, tr: f.UnicodeTranslatorFromDescriptor("")}, nil
}

func (p *PDF) PageSize() (float64, float64) {
	w, h := p.f.GetPageSize()
	return w, h
}

func (p *PDF) AddPage()       { p.f.AddPage() }
func (p *PDF) PageNo() int    { return p.f.PageNo() }
func (p *PDF) PageCount() int { return p.f.PageCount() }
func (p *PDF) SetPage(n int)  { p.f.SetPage(n) }

func (p *PDF) SetFont(family string, bold bool, size float64) {
	style := ""
	if bold {
		style = "B"
	}
	p.f.SetFont(family, style, size)
}

func (p *PDF) SetTextColor(r, g, b uint8) { p.f.SetTextColor(int(r), int(g), int(b)) }
func (p *PDF) SetFillColor(r, g, b uint8) { p.f.SetFillColor(int(r), int(g), int(b)) }
func (p *PDF) SetDrawColor(r, g, b uint8) { p.f.SetDrawColor(int(r), int(g), int(b)) }
func (p *PDF) SetLineWidth(w float64)     { p.f.SetLineWidth(w) }

func (p *PDF) SetDash(pattern string) {
	switch pattern {
	case DashDashed:
		p.f.SetDashPattern([]float64{4, 2}, 0)
	case DashDotted:
		p.f.SetDashPattern([]float64{1, 1.5}, 0)
	default:
		p.f.SetDashPattern([]float64{}, 0)
	}
}

func (p *PDF) Text(x, y float64, s string) { p.f.Text(x, y, p.tr(s)) }

func (p *PDF) TextRotated(x, y, angle float64, s string) {
	p.f.TransformBegin()
	p.f.TransformRotate(angle, x, y)
	p.f.Text(x, y, p.tr(s))
	p.f.TransformEnd()
}

func (p *PDF) TextWidth(s string) float64 { return p.f.GetStringWidth(p.tr(s)) }

func (p *PDF) Line(x1, y1, x2, y2 float64) { p.f.Line(x1, y1, x2, y2) }

func (p *PDF) Rect(x, y, w, h float64, mode string) { p.f.Rect(x, y, w, h, mode) }

// Image draws PNG, JPEG or GIF bytes into the box. Undecodable data is
// rejected before it reaches fpdf so a bad logo never poisons the document.
func (p *PDF) Image(data []byte, x, y, w, h float64, opts ImageOptions) error {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrImage, err)
	}
	imageType := map[string]string{"png": "PNG", "jpeg": "JPG", "gif": "GIF"}[format]
	if imageType == "" {
		return fmt.Errorf("%w: unsupported format %q", ErrImage, format)
	}

	p.images++
	name := fmt.Sprintf("image-%d", p.images)
	imgOpts := fpdf.ImageOptions{ImageType: imageType}
	p.f.RegisterImageOptionsReader(name, imgOpts, bytes.NewReader(data))
	if err := p.f.Error(); err != nil {
		p.f.ClearError()
		return fmt.Errorf("%w: %v", ErrImage, err)
	}

	if opts.Opacity > 0 && opts.Opacity < 1 {
		p.f.SetAlpha(opts.Opacity, "Normal")
		defer p.f.SetAlpha(1, "Normal")
	}
	if opts.Rotation != 0 {
		p.f.TransformBegin()
		p.f.TransformRotate(opts.Rotation, x+w/2, y+h/2)
		defer p.f.TransformEnd()
	}
	p.f.ImageOptions(name, x, y, w, h, false, imgOpts, 0, "")
	return nil
}

func (p *PDF) Err() error { return p.f.Error() }

func (p *PDF) Output(w io.Writer) error { return p.f.Output(w) }
