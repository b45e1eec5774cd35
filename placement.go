package mapreport

import (
	"github.com/charmbracelet/log"

	"github.com/lvillar/mapreport/canvas"
	"github.com/lvillar/mapreport/geom"
	"github.com/lvillar/mapreport/style"
)

// Placements is the read-only set of first-page element rectangles
// computed during Setup. Absent elements are nil. The copyright strip and
// the link code deliberately overlay the viewport image; every other pair
// of rectangles is non-overlapping.
type Placements struct {
	Title       *geom.Rect
	Logo        *geom.Rect
	Image       *geom.Rect
	Description *geom.Rect
	Contact     *geom.Rect
	MapInfo     *geom.Rect
	Copyright   *geom.Rect
	Link        *geom.Rect
}

// placements extends the public rectangles with the wrapped text and
// offsets the draw phase needs.
type placements struct {
	Placements

	titleLines []string
	titleTextY float64
	descLines  []string
	copyText   []string
}

// layouter computes the placement of every present first-page element in
// a fixed order; each step may only read placements computed by earlier
// steps. Text is measured through the canvas with an explicit TextStyle,
// so no element's measurement depends on leftover font state.
type layouter struct {
	c      canvas.Canvas
	sheet  style.Sheet
	page   geom.Size
	orient style.Orientation
	family string
	logger *log.Logger
}

// textStyle builds the TextStyle for a style-sheet prefix such as "title".
func textStyle(sheet style.Sheet, family, prefix, weight string) canvas.TextStyle {
	return canvas.TextStyle{
		Family:     family,
		Weight:     weight,
		Size:       sheet.Get(prefix + ".fontSize"),
		LineHeight: sheet.Get(prefix + ".lineHeight"),
	}
}

func (l *layouter) textStyle(prefix, weight string) canvas.TextStyle {
	return textStyle(l.sheet, l.family, prefix, weight)
}

// wrapCapped wraps s to width and truncates the result to maxLines.
func (l *layouter) wrapCapped(ts canvas.TextStyle, s string, width float64, maxLines int) []string {
	lines := l.c.WrapText(ts, s, width)
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// run computes all placements for cfg. The order is fixed: title and logo
// first, then the footer blocks, then the viewport image into whatever
// band remains, then the overlays on the image.
func (l *layouter) run(cfg *Config) placements {
	var pl placements

	pm := l.sheet.Get("page.margin")
	em := l.sheet.Get("element.margin")
	printable := l.page.W - 2*pm

	// The title band height is fixed to the orientation's maximum line
	// count rather than the wrapped count, so the image's upper bound does
	// not shift with title length. The wrapped lines are centered inside
	// the band.
	titleTS := l.textStyle("title", "B")
	bandLines := int(l.sheet.ByOrientation("title.maxLineCount", l.orient))
	bandH := geom.LineHeight(bandLines, titleTS.LineHeight, titleTS.Size)

	if cfg.Title != "" {
		w := printable*l.sheet.ByOrientation("title.widthRatio", l.orient) - em/2
		lines := l.wrapCapped(titleTS, cfg.Title, w, bandLines)
		pl.Title = &geom.Rect{X: pm, Y: pm, W: w, H: bandH}
		pl.titleLines = lines
		pl.titleTextY = pm + (bandH-geom.LineHeight(len(lines), titleTS.LineHeight, titleTS.Size))/2
	}

	// Logo: height is a configured multiple of the title line-height,
	// width follows the intrinsic aspect ratio, right-aligned and centered
	// against the title band. It does not require a title to be present.
	// A logo too wide for the space right of the title shrinks to fit,
	// keeping its aspect ratio.
	if cfg.Logo != nil {
		if nat, err := cfg.Logo.NaturalSize(); err != nil {
			l.logger.Warn("dropping undecodable logo", "err", err)
		} else {
			h := l.sheet.Get("logo.heightFactor") * geom.LineHeight(1, titleTS.LineHeight, titleTS.Size)
			w := h * nat.AspectRatio()
			maxW := printable
			if pl.Title != nil {
				maxW = l.page.W - pm - pl.Title.Right() - em
			}
			if w > maxW {
				w = maxW
				h = w / nat.AspectRatio()
			}
			if w <= 0 {
				l.logger.Warn("no room beside the title, dropping logo")
			} else {
				pl.Logo = &geom.Rect{X: l.page.W - pm - w, Y: pm + (bandH-h)/2, W: w, H: h}
			}
		}
	}

	// Contact and map-info share the two-up split width and a fixed
	// line-count height anchored to the bottom margin.
	infoTS := l.textStyle("info", "")
	infoH := geom.LineHeight(l.sheet.GetInt("info.lineCount"), infoTS.LineHeight, infoTS.Size)
	infoW := geom.ElementWidth(printable, l.sheet.ByOrientation("info.widthRatio", l.orient), em)

	if cfg.Contact != nil {
		pl.Contact = &geom.Rect{X: pm, Y: l.page.H - pm - infoH, W: infoW, H: infoH}
	}
	if cfg.MapInfo != nil {
		x := pm
		if pl.Contact != nil {
			x = pl.Contact.Right() + em/2
		}
		pl.MapInfo = &geom.Rect{X: x, Y: l.page.H - pm - infoH, W: infoW, H: infoH}
	}

	if cfg.Description != "" {
		pl.Description, pl.descLines = l.placeDescription(cfg, &pl, printable, pm, em, infoH)
	}

	pl.Image = l.placeImage(cfg, &pl, printable, pm, em)

	// Overlays on the image footprint: the copyright strip bottom-right,
	// the link code bottom-left. The strip's wrapping width shrinks by the
	// link's footprint so the two never collide.
	if text := JoinCopyright(cfg.Copyright); text != "" {
		crTS := l.textStyle("copyright", "")
		pad := l.sheet.Get("copyright.padding")
		maxW := pl.Image.W - 2*pad
		if cfg.LinkURL != "" {
			maxW -= l.sheet.Get("link.size") + em
		}
		lines := l.c.WrapText(crTS, text, maxW)
		widest := 0.0
		for _, line := range lines {
			if w := l.c.MeasureText(crTS, line).W; w > widest {
				widest = w
			}
		}
		w := widest + 2*pad
		h := geom.LineHeight(len(lines), crTS.LineHeight, crTS.Size) + 2*pad
		pl.Copyright = &geom.Rect{X: pl.Image.Right() - w, Y: pl.Image.Bottom() - h, W: w, H: h}
		pl.copyText = lines
	}

	if cfg.LinkURL != "" {
		s := l.sheet.Get("link.size")
		pl.Link = &geom.Rect{X: pl.Image.X, Y: pl.Image.Bottom() - s, W: s, H: s}
	}

	return pl
}

// placeDescription positions the description text. In portrait it spans
// the printable width above whichever footer block is present (or the
// bottom margin), with its height following the wrapped line count. In
// landscape it joins the footer band: right-aligned, width reduced by one
// info split per present footer block, height borrowed from theirs.
func (l *layouter) placeDescription(cfg *Config, pl *placements, printable, pm, em, infoH float64) (*geom.Rect, []string) {
	ts := l.textStyle("description", "")
	maxLines := int(l.sheet.ByOrientation("description.maxLineCount", l.orient))

	if l.orient == style.Portrait {
		w := printable
		lines := l.wrapCapped(ts, cfg.Description, w, maxLines)
		h := geom.LineHeight(len(lines), ts.LineHeight, ts.Size) + em/2
		footerTop := l.page.H - pm
		if pl.Contact != nil && pl.Contact.Y < footerTop {
			footerTop = pl.Contact.Y
		}
		if pl.MapInfo != nil && pl.MapInfo.Y < footerTop {
			footerTop = pl.MapInfo.Y
		}
		return &geom.Rect{X: pm, Y: footerTop - h, W: w, H: h}, lines
	}

	splits := 0
	if pl.Contact != nil {
		splits++
	}
	if pl.MapInfo != nil {
		splits++
	}
	ratio := l.sheet.ByOrientation("info.widthRatio", l.orient)
	w := geom.ElementWidth(printable, 1-float64(splits)*ratio, em)
	lines := l.wrapCapped(ts, cfg.Description, w, maxLines)
	return &geom.Rect{X: l.page.W - pm - w, Y: l.page.H - pm - infoH, W: w, H: infoH}, lines
}

// placeImage fits the viewport capture into the band left between the
// header elements and the footer elements. Exactly one axis binds; the
// image anchors at the band top and is centered horizontally when its
// width is the shrunk axis.
func (l *layouter) placeImage(cfg *Config, pl *placements, printable, pm, em float64) *geom.Rect {
	top := pm
	if pl.Title != nil && pl.Title.Bottom() > top {
		top = pl.Title.Bottom()
	}
	if pl.Logo != nil && pl.Logo.Bottom() > top {
		top = pl.Logo.Bottom()
	}
	if pl.Title != nil || pl.Logo != nil {
		top += em
	}

	bottom := l.page.H - pm
	switch {
	case pl.Description != nil:
		bottom = pl.Description.Y - em
	case pl.Contact != nil:
		bottom = pl.Contact.Y - em
	case pl.MapInfo != nil:
		bottom = pl.MapInfo.Y - em
	}

	band := geom.Size{W: printable, H: bottom - top}
	fit := geom.FitSize(band, cfg.ViewportAspect)
	x := pm + (printable-fit.W)/2
	return &geom.Rect{X: x, Y: top, W: fit.W, H: fit.H}
}
