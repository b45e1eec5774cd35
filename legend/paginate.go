package legend

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/lvillar/mapreport/canvas"
	"github.com/lvillar/mapreport/geom"
	"github.com/lvillar/mapreport/style"
)

// Paginator renders a legend configuration onto appendix pages of a
// canvas. It is created per legend and discarded afterwards; the running
// cursor is not reusable across Render calls.
type Paginator struct {
	c         canvas.Canvas
	sheet     style.Sheet
	cfg       Config
	family    string
	logger    *log.Logger
	translate func(string) string

	page  geom.Size
	pages int
	cur   cursor
}

// cursor is the paginator's running position: current column side,
// position and remaining space within the current column.
type cursor struct {
	twoCol     bool
	side       int // 0 left, 1 right
	x, y       float64
	colW, colH float64
	remH       float64
	contentTop float64
}

// Option configures a Paginator.
type Option func(*Paginator)

// WithLogger sets the logger used for recoverable skips (dropped iframes,
// unsupported text rows, undecodable images).
func WithLogger(l *log.Logger) Option {
	return func(p *Paginator) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithFamily sets the font family for group titles and labels.
func WithFamily(family string) Option {
	return func(p *Paginator) { p.family = family }
}

// WithTranslator sets the function UI-facing label keys are passed
// through at draw time.
func WithTranslator(tr func(string) string) Option {
	return func(p *Paginator) {
		if tr != nil {
			p.translate = tr
		}
	}
}

// New creates a Paginator drawing onto c with the given resolved sheet.
func New(c canvas.Canvas, sheet style.Sheet, cfg Config, opts ...Option) *Paginator {
	p := &Paginator{
		c:         c,
		sheet:     sheet,
		cfg:       cfg,
		family:    "Helvetica",
		logger:    log.New(io.Discard),
		translate: func(s string) string { return s },
		page:      style.PageSize(cfg.Format, cfg.Orientation),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pages returns the number of appendix pages emitted so far.
func (p *Paginator) Pages() int { return p.pages }

// Render paginates and draws every group in order. Recoverable problems
// (iframe items, text sample rows, undecodable images) are skipped with a
// warning; an unrecognized item or sample kind aborts the legend.
func (p *Paginator) Render() error {
	for gi := range p.cfg.Groups {
		g := &p.cfg.Groups[gi]
		items, err := p.renderable(g)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			continue
		}
		p.startGroupPage(g.Title, len(items) > 1)
		for _, it := range items {
			if p.cur.remH <= 0 {
				p.advance()
			}
			switch it.Kind {
			case ItemImage:
				p.placeImage(g.Title, it.Image)
			case ItemStyleSample:
				if err := p.placeSamples(g.Title, it.Rows); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// renderable filters a group's items down to the kinds pagination can
// place. Iframe items are dropped with a notification; an unknown kind is
// a hard error.
func (p *Paginator) renderable(g *Group) ([]Item, error) {
	items := make([]Item, 0, len(g.Items))
	for _, it := range g.Items {
		switch it.Kind {
		case ItemImage, ItemStyleSample:
			items = append(items, it)
		case ItemIframe:
			p.logger.Warn("interactive legend content cannot be printed, dropping item",
				"group", g.Title)
		default:
			return nil, fmt.Errorf("legend: group %q: %w: item kind %d", g.Title, ErrUnknownKind, int(it.Kind))
		}
	}
	return items, nil
}

// startGroupPage begins a fresh page for a group, draws its title and
// resets the cursor below it. Two-column mode applies in landscape when
// the group has more than one renderable item.
func (p *Paginator) startGroupPage(title string, multi bool) {
	p.c.AddPage(p.page)
	p.pages++

	pm := p.sheet.Get("page.margin")
	em := p.sheet.Get("element.margin")

	titleTS := canvas.TextStyle{
		Family:     p.family,
		Weight:     "B",
		Size:       p.sheet.Get("legend.titleFontSize"),
		LineHeight: p.sheet.Get("legend.titleLineHeight"),
	}
	p.c.DrawText(titleTS, []string{p.translate(title)}, pm, pm)

	top := pm + titleTS.LineHeightIn() + em
	usable := p.page.W - 2*pm

	cur := cursor{
		contentTop: top,
		colW:       usable,
		colH:       p.page.H - pm - top,
		x:          pm,
		y:          top,
	}
	cur.twoCol = p.cfg.Orientation == style.Landscape && multi
	if cur.twoCol {
		cur.colW = (usable - p.sheet.Get("legend.columnGap")) / 2
		p.drawColumnRule(top)
	}
	cur.remH = cur.colH
	p.cur = cur
}

// advance moves the cursor to the next column: the right half of the same
// page in two-column mode, otherwise a fresh continuation page. A
// continuation page carries no group title, so its column runs from the
// top margin.
func (p *Paginator) advance() {
	pm := p.sheet.Get("page.margin")
	if p.cur.twoCol && p.cur.side == 0 {
		p.cur.side = 1
		p.cur.x = pm + p.cur.colW + p.sheet.Get("legend.columnGap")
		p.cur.y = p.cur.contentTop
		p.cur.remH = p.cur.colH
		return
	}
	p.c.AddPage(p.page)
	p.pages++
	p.cur.side = 0
	p.cur.contentTop = pm
	p.cur.colH = p.page.H - 2*pm
	p.cur.x = pm
	p.cur.y = pm
	p.cur.remH = p.cur.colH
	if p.cur.twoCol {
		p.drawColumnRule(pm)
	}
}

// drawColumnRule draws the vertical separator between the two columns.
func (p *Paginator) drawColumnRule(top float64) {
	pm := p.sheet.Get("page.margin")
	mid := p.page.W / 2
	p.c.SetDrawColor(canvas.Color{R: 180, G: 180, B: 180})
	p.c.SetLineWidth(0.005)
	p.c.Line(mid, top, mid, p.page.H-pm)
	p.c.SetDrawColor(canvas.Color{})
}

// placeImage draws one image item, downscaled to the column and centered
// horizontally. A decode failure contributes no height and is skipped.
func (p *Paginator) placeImage(group string, img *canvas.ImageRef) {
	if img == nil {
		p.logger.Warn("legend image item carries no image, skipping", "group", group)
		return
	}
	nat, err := img.NaturalSize()
	if err != nil {
		p.logger.Warn("skipping undecodable legend image", "group", group, "err", err)
		return
	}

	em := p.sheet.Get("element.margin")
	cur := &p.cur

	// Downscale to the column width, never upscale past natural size.
	w := math.Min(nat.W, cur.colW)
	h := w / nat.AspectRatio()

	// Tall-image break heuristic: if the image, even shrunk to the
	// configured share of the column height, does not fit the remaining
	// space and the column is already more than breakRatio consumed,
	// break first instead of leaving a sliver at the column tail.
	target := math.Min(h, p.sheet.Get("legend.imageShrinkRatio")*cur.colH)
	if target > cur.remH && cur.colH-cur.remH > p.sheet.Get("legend.breakRatio")*cur.colH {
		p.advance()
	}
	if h > cur.remH {
		h = cur.remH
		w = h * nat.AspectRatio()
	}

	x := cur.x + (cur.colW-w)/2
	if err := p.c.DrawImage(*img, x, cur.y, w, h); err != nil {
		p.logger.Warn("skipping unrenderable legend image", "group", group, "err", err)
		return
	}
	cur.y += h + em
	cur.remH -= h + em
}

// placeSamples lays a style-sample item out as a grid of swatch rows.
// When a grid line does not fit the column, the cursor advances and the
// grid index restarts at the first column.
func (p *Paginator) placeSamples(group string, rows []SampleRow) error {
	cols := p.cfg.SampleColumns
	if cols < 1 {
		cols = 2
	}

	em := p.sheet.Get("element.margin")
	rowH := p.sheet.Get("legend.rowHeight")
	cur := &p.cur
	cellW := (cur.colW - float64(cols-1)*em) / float64(cols)

	gx := 0
	placed := false
	for _, row := range rows {
		switch row.Kind {
		case SampleText:
			p.logger.Warn("text legend samples are not supported, skipping row",
				"group", group, "label", row.Label)
			continue
		case SampleStroke, SampleFill, SampleCircle, SampleIcon, SampleShape:
		default:
			return fmt.Errorf("legend: group %q: %w: sample kind %d", group, ErrUnknownKind, int(row.Kind))
		}

		if gx == 0 && cur.remH < rowH {
			p.advance()
			cellW = (cur.colW - float64(cols-1)*em) / float64(cols)
		}
		x := cur.x + float64(gx)*(cellW+em)
		p.drawSample(group, row, x, cur.y, cellW, rowH)
		placed = true

		gx++
		if gx == cols {
			gx = 0
			cur.y += rowH
			cur.remH -= rowH
		}
	}
	if gx > 0 {
		cur.y += rowH
		cur.remH -= rowH
	}
	if placed {
		cur.y += em
		cur.remH -= em
	}
	return nil
}

// drawSample renders one swatch plus its truncated label into a grid cell.
func (p *Paginator) drawSample(group string, row SampleRow, x, y, cellW, rowH float64) {
	sampleW := p.sheet.Get("legend.sampleWidth")
	if sampleW > cellW/2 {
		sampleW = cellW / 2
	}
	pad := rowH * 0.15

	switch row.Kind {
	case SampleStroke:
		lw := row.LineWidth
		if lw <= 0 {
			lw = 0.01
		}
		p.c.SetDrawColor(row.Stroke)
		p.c.SetLineWidth(lw)
		p.c.Line(x, y+rowH/2, x+sampleW, y+rowH/2)
		p.c.SetDrawColor(canvas.Color{})
	case SampleFill:
		p.c.SetFillColor(row.Fill)
		p.c.SetDrawColor(row.Stroke)
		p.c.Rect(x, y+pad, sampleW, rowH-2*pad, canvas.FillStroke)
		p.c.SetDrawColor(canvas.Color{})
	case SampleCircle:
		r := (rowH - 2*pad) / 2
		if r > sampleW/2 {
			r = sampleW / 2
		}
		p.c.SetFillColor(row.Fill)
		p.c.SetDrawColor(row.Stroke)
		p.c.Circle(x+sampleW/2, y+rowH/2, r, canvas.FillStroke)
		p.c.SetDrawColor(canvas.Color{})
	case SampleIcon, SampleShape:
		p.drawSampleIcon(group, row, x, y+pad, sampleW, rowH-2*pad)
	}

	ts := canvas.TextStyle{
		Family:     p.family,
		Size:       p.sheet.Get("legend.fontSize"),
		LineHeight: p.sheet.Get("legend.lineHeight"),
	}
	labelGap := p.sheet.Get("legend.labelGap")
	labelW := cellW - sampleW - labelGap
	label := p.truncate(ts, p.translate(row.Label), labelW)
	p.c.DrawText(ts, []string{label}, x+sampleW+labelGap, y+(rowH-ts.LineHeightIn())/2)
}

// drawSampleIcon centers the row's icon raster inside the swatch box.
// A missing or undecodable icon drops the swatch but keeps the label.
func (p *Paginator) drawSampleIcon(group string, row SampleRow, x, y, w, h float64) {
	if row.Icon == nil {
		p.logger.Warn("legend sample has no icon image, dropping swatch",
			"group", group, "label", row.Label)
		return
	}
	nat, err := row.Icon.NaturalSize()
	if err != nil {
		p.logger.Warn("skipping undecodable legend icon",
			"group", group, "label", row.Label, "err", err)
		return
	}
	fit := geom.FitSize(geom.Size{W: w, H: h}, nat.AspectRatio())
	ix := x + (w-fit.W)/2
	iy := y + (h-fit.H)/2
	if err := p.c.DrawImage(*row.Icon, ix, iy, fit.W, fit.H); err != nil {
		p.logger.Warn("skipping unrenderable legend icon",
			"group", group, "label", row.Label, "err", err)
	}
}

// truncate shortens s until it fits maxWidth at the given style,
// appending an ellipsis when anything was cut.
func (p *Paginator) truncate(ts canvas.TextStyle, s string, maxWidth float64) string {
	if p.c.MeasureText(ts, s).W <= maxWidth {
		return s
	}
	const ellipsis = "…"
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		cand := string(r) + ellipsis
		if p.c.MeasureText(ts, cand).W <= maxWidth {
			return cand
		}
	}
	return ellipsis
}
