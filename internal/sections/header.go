package sections

import (
	"strings"

	"github.com/alnah/go-invoice2pdf/internal/billing"
	"github.com/alnah/go-invoice2pdf/internal/draw"
	"github.com/alnah/go-invoice2pdf/internal/layout"
	"github.com/alnah/go-invoice2pdf/internal/model"
)

const (
	logoGap        = 6.0
	watermarkScale = 3.0
	badgeSize      = 10.0
)

// Header draws the logo, the title, the subtitle, the status badge and the
// rule below them. A logo that cannot be drawn is logged and skipped.
func Header(f *Frame, c layout.Cursor) layout.Cursor {
	h := f.T.Header
	logoBottom := c.Y

	if len(f.Logo) > 0 && model.On(h.ShowLogo) {
		c, logoBottom = drawLogo(f, c)
	}

	title := DocumentTitle(f.T, f.Kind(), f.Practice.VATRegistered)
	c = layout.Title(f.S, c, title, h.TitleStyle, h.TitleOrientation)

	if sub := model.Text(h.Subtitle); strings.TrimSpace(sub) != "" {
		c = c.At(layout.Line(f.S, h.SubtitleStyle, c.Geo.Left, c.Y, c.Geo.ContentWidth(), sub))
	}

	if badge := billing.StatusOf(f.Content.Invoice, f.Now); badge != billing.BadgeNone {
		ts := model.TextStyle{
			FontFamily: h.TitleStyle.FontFamily,
			FontSize:   badgeSize,
			FontWeight: model.WeightBold,
			Color:      badgeColor(f.T.ColorScheme, badge),
			Alignment:  h.TitleStyle.Alignment,
		}
		c = c.At(layout.Line(f.S, ts, c.Geo.Left, c.Y+titleGap, c.Geo.ContentWidth(), string(badge)))
	}

	c = c.At(max(c.Y, logoBottom) + titleGap)
	if model.On(h.ShowBorder) {
		c = layout.Rule(f.S, c, h.BorderColor, h.BorderWidth, h.BorderStyle)
	}
	return c.Advance(blockGap)
}

func badgeColor(cs model.ColorScheme, b billing.Badge) string {
	switch b {
	case billing.BadgePaid:
		return cs.Success
	case billing.BadgeOverdue:
		return cs.Error
	default:
		return cs.Warning
	}
}

// drawLogo places the logo. A centered logo sits above the title and pushes
// the cursor down; left and right logos sit beside the title and only
// report their bottom edge. A watermark is drawn large in the middle of the
// page before any other content so everything else paints over it.
func drawLogo(f *Frame, c layout.Cursor) (layout.Cursor, float64) {
	h := f.T.Header
	w, ht := h.LogoWidth, h.LogoHeight
	opts := draw.ImageOptions{Opacity: h.LogoOpacity, Rotation: h.LogoRotation}

	var x, y float64
	switch h.LogoPlacement {
	case model.LogoWatermark:
		w, ht = w*watermarkScale, ht*watermarkScale
		x, y = (c.Geo.Width-w)/2, (c.Geo.Height-ht)/2
	case model.LogoLeft:
		x, y = c.Geo.Left, c.Y
	case model.LogoRight:
		x, y = c.Geo.ContentRight()-w, c.Y
	default:
		x, y = c.Geo.Left+(c.Geo.ContentWidth()-w)/2, c.Y
	}

	if err := f.S.Image(f.Logo, x, y, w, ht, opts); err != nil {
		f.Log.Warn("logo skipped", "placement", h.LogoPlacement, "err", err)
		return c, c.Y
	}

	switch h.LogoPlacement {
	case model.LogoWatermark:
		return c, c.Y
	case model.LogoLeft, model.LogoRight:
		return c, y + ht
	default:
		c = c.At(y + ht + logoGap)
		return c, c.Y
	}
}
