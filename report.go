package mapreport

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lvillar/mapreport/canvas"
	"github.com/lvillar/mapreport/geom"
	"github.com/lvillar/mapreport/legend"
	"github.com/lvillar/mapreport/style"
)

// CanvasFactory produces a fresh, empty drawing backend. Setup obtains one
// canvas for measuring; every Draw call renders the complete document onto
// a new one, so Draw stays repeatable.
type CanvasFactory func() canvas.Canvas

// Report generates one printable report through a two-phase protocol:
// Setup resolves style, fonts and every element placement; Draw consumes
// the viewport capture, marks the document and serializes it. A Report is
// created fresh per document and placements are read-only after Setup.
type Report struct {
	cfg        Config
	newCanvas  CanvasFactory
	logger     *log.Logger
	overrides  style.Sheet
	letterhead string

	done        bool
	sheet       style.Sheet
	page        geom.Size
	family      string
	pl          placements
	legendPages int
}

// New creates a Report rendering onto canvases produced by newCanvas.
func New(cfg Config, newCanvas CanvasFactory, opts ...Option) *Report {
	r := &Report{
		cfg:       cfg,
		newCanvas: newCanvas,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Setup resolves the style sheet for the configured format, computes the
// page size, registers fonts and computes every element placement in the
// fixed dependency order. It must complete before Draw. A second call is
// a no-op: placements are immutable once computed.
func (r *Report) Setup() error {
	if r.done {
		return nil
	}
	orient := r.cfg.Orientation
	if orient != style.Portrait && orient != style.Landscape {
		return newReportError("Setup", ErrOrientationUnresolved)
	}

	r.sheet = style.Resolve(r.cfg.Format)
	r.sheet.Merge(r.overrides)
	r.page = style.PageSize(r.cfg.Format, orient)

	// Measuring runs on its own throwaway canvas. Font registration has to
	// finish before any measuring call below, since wrapping depends on the
	// registered metrics.
	c := r.newCanvas()
	family, err := r.registerFonts(c)
	if err != nil {
		return newReportError("Setup", err)
	}
	r.family = family

	lay := &layouter{
		c:      c,
		sheet:  r.sheet,
		page:   r.page,
		orient: orient,
		family: r.family,
		logger: r.logger,
	}
	r.pl = lay.run(&r.cfg)
	r.done = true
	return nil
}

// registerFonts loads the configured font weights onto c and returns the
// family name for subsequent TextStyles. Without custom font bytes the
// built-in Helvetica family is used; a missing bold weight falls back to
// the regular bytes.
func (r *Report) registerFonts(c canvas.Canvas) (string, error) {
	if len(r.cfg.FontRegular) == 0 {
		return "Helvetica", nil
	}
	family := r.cfg.FontFamily
	if family == "" {
		family = "ReportText"
	}
	if err := c.RegisterFont(family, "", r.cfg.FontRegular); err != nil {
		return "", fmt.Errorf("registering regular font: %w", err)
	}
	bold := r.cfg.FontBold
	if len(bold) == 0 {
		bold = r.cfg.FontRegular
	}
	if err := c.RegisterFont(family, "B", bold); err != nil {
		return "", fmt.Errorf("registering bold font: %w", err)
	}
	return family, nil
}

// Placements returns the computed first-page placements. Before Setup the
// zero value is returned.
func (r *Report) Placements() Placements {
	return r.pl.Placements
}

// LegendPages returns the number of legend appendix pages the last Draw
// emitted.
func (r *Report) LegendPages() int { return r.legendPages }

// Draw renders every present element at its computed placement, appends
// the legend appendix pages and serializes the finished document to w.
// img is the viewport capture; translate localizes UI-facing legend label
// keys at draw time (nil means identity). Draw is repeatable: each call
// renders the whole document onto a fresh canvas from the factory.
func (r *Report) Draw(w io.Writer, img canvas.ImageRef, translate func(string) string) error {
	if !r.done {
		return newReportError("Draw", ErrNotSetUp)
	}
	if len(img.Data) == 0 {
		return newReportError("Draw", ErrNoViewportImage)
	}
	if translate == nil {
		translate = func(s string) string { return s }
	}

	c := r.newCanvas()
	if _, err := r.registerFonts(c); err != nil {
		return newReportError("Draw", err)
	}
	c.AddPage(r.page)

	r.drawLetterhead(c)
	r.drawTitle(c)
	if err := c.DrawImage(img, r.pl.Image.X, r.pl.Image.Y, r.pl.Image.W, r.pl.Image.H); err != nil {
		return newReportError("Draw", fmt.Errorf("drawing viewport image: %w", err))
	}
	r.drawCopyright(c)
	r.drawLink(c)
	r.drawLogo(c)
	if r.cfg.Contact != nil {
		r.drawInfoBlock(c, r.pl.Contact, r.cfg.Contact.Header, r.cfg.Contact.lines())
	}
	if r.cfg.MapInfo != nil {
		r.drawInfoBlock(c, r.pl.MapInfo, r.cfg.MapInfo.Header, r.cfg.MapInfo.Lines)
	}
	r.drawDescription(c)

	if r.cfg.Legend != nil && len(r.cfg.Legend.Groups) > 0 {
		sheet := style.Resolve(r.cfg.Legend.Format)
		sheet.Merge(r.overrides)
		lp := legend.New(c, sheet, *r.cfg.Legend,
			legend.WithLogger(r.logger),
			legend.WithFamily(r.family),
			legend.WithTranslator(translate))
		if err := lp.Render(); err != nil {
			return newReportError("Draw", err)
		}
		r.legendPages = lp.Pages()
	}

	if err := c.Output(w); err != nil {
		return newReportError("Draw", err)
	}
	return nil
}

// drawLetterhead underlays page 1 of the configured letterhead PDF. It
// runs first so all content draws on top of it.
func (r *Report) drawLetterhead(c canvas.Canvas) {
	if r.letterhead == "" {
		return
	}
	u, ok := c.(canvas.Underlay)
	if !ok {
		r.logger.Warn("canvas does not support letterhead underlays, skipping")
		return
	}
	if err := u.DrawTemplate(r.letterhead, 1, 0, 0, r.page.W, r.page.H); err != nil {
		r.logger.Warn("skipping letterhead underlay", "path", r.letterhead, "err", err)
	}
}

func (r *Report) drawTitle(c canvas.Canvas) {
	if r.pl.Title == nil {
		return
	}
	ts := textStyle(r.sheet, r.family, "title", "B")
	c.DrawText(ts, r.pl.titleLines, r.pl.Title.X, r.pl.titleTextY)
}

func (r *Report) drawCopyright(c canvas.Canvas) {
	p := r.pl.Copyright
	if p == nil {
		return
	}
	c.SetAlpha(r.sheet.Get("copyright.alpha"))
	c.SetFillColor(canvas.Color{R: 255, G: 255, B: 255})
	c.Rect(p.X, p.Y, p.W, p.H, canvas.Fill)
	c.SetAlpha(1)

	pad := r.sheet.Get("copyright.padding")
	ts := textStyle(r.sheet, r.family, "copyright", "")
	c.DrawText(ts, r.pl.copyText, p.X+pad, p.Y+pad)
}

// drawLink renders the QR map link into its reserved corner. The link is
// an optional element: encoding or drawing failures only drop the code.
func (r *Report) drawLink(c canvas.Canvas) {
	p := r.pl.Link
	if p == nil {
		return
	}
	// Render at double the print resolution so the modules stay crisp.
	data, err := encodeLink(r.cfg.LinkURL, int(p.W*2*geom.PxPerInch))
	if err != nil {
		r.logger.Warn("dropping map link code", "err", err)
		return
	}
	img := canvas.ImageRef{Name: "maplink", Format: "png", Data: data}
	if err := c.DrawImage(img, p.X, p.Y, p.W, p.H); err != nil {
		r.logger.Warn("dropping map link code", "err", err)
	}
}

func (r *Report) drawLogo(c canvas.Canvas) {
	if r.pl.Logo == nil || r.cfg.Logo == nil {
		return
	}
	p := r.pl.Logo
	if err := c.DrawImage(*r.cfg.Logo, p.X, p.Y, p.W, p.H); err != nil {
		r.logger.Warn("dropping logo", "err", err)
	}
}

// drawInfoBlock renders a footer block: bold header line, regular body
// lines. Body lines beyond the block's reserved height are dropped.
func (r *Report) drawInfoBlock(c canvas.Canvas, p *geom.Rect, header string, lines []string) {
	if p == nil {
		return
	}
	bold := textStyle(r.sheet, r.family, "info", "B")
	reg := textStyle(r.sheet, r.family, "info", "")

	if max := r.sheet.GetInt("info.lineCount") - 1; len(lines) > max {
		lines = lines[:max]
	}
	c.DrawText(bold, []string{header}, p.X, p.Y)
	c.DrawText(reg, lines, p.X, p.Y+bold.LineHeightIn())
}

func (r *Report) drawDescription(c canvas.Canvas) {
	if r.pl.Description == nil {
		return
	}
	ts := textStyle(r.sheet, r.family, "description", "")
	c.DrawText(ts, r.pl.descLines, r.pl.Description.X, r.pl.Description.Y)
}
