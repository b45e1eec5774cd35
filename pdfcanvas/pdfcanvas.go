// Package pdfcanvas implements the canvas.Canvas drawing backend on top
// of gofpdf. Pages are inches with the origin at the upper-left corner;
// font sizes stay in points.
package pdfcanvas

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/lvillar/mapreport/canvas"
	"github.com/lvillar/mapreport/geom"
)

// Canvas draws into a gofpdf document.
type Canvas struct {
	pdf        *gofpdf.Fpdf
	registered map[string]bool
	nextImage  int
}

// New creates an empty canvas. The report adds the first page itself, so
// none is added here.
func New() *Canvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: 8.27, Ht: 11.69},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return &Canvas{pdf: pdf, registered: make(map[string]bool)}
}

// PDF exposes the underlying gofpdf document for callers needing
// primitives beyond the canvas contract (metadata, encryption, ...).
func (c *Canvas) PDF() *gofpdf.Fpdf { return c.pdf }

// AddPage appends a page of the given size and makes it current.
func (c *Canvas) AddPage(size geom.Size) {
	orient := "P"
	sz := gofpdf.SizeType{Wd: size.W, Ht: size.H}
	if size.W > size.H {
		orient = "L"
		sz = gofpdf.SizeType{Wd: size.H, Ht: size.W}
	}
	c.pdf.AddPageFormat(orient, sz)
}

// PageSize returns the size of the current page.
func (c *Canvas) PageSize() geom.Size {
	w, h := c.pdf.GetPageSize()
	return geom.Size{W: w, H: h}
}

// RegisterFont loads a UTF-8 font weight from raw bytes under the family
// name.
func (c *Canvas) RegisterFont(family, weight string, data []byte) error {
	c.pdf.AddUTF8FontFromBytes(family, weight, data)
	if c.pdf.Err() {
		return fmt.Errorf("pdfcanvas: registering font %s/%s: %w", family, weight, c.pdf.Error())
	}
	return nil
}

func (c *Canvas) setFont(ts canvas.TextStyle) {
	c.pdf.SetFont(ts.Family, ts.Weight, ts.Size)
}

// MeasureText returns the rendered size of a single line.
func (c *Canvas) MeasureText(ts canvas.TextStyle, s string) geom.Size {
	c.setFont(ts)
	return geom.Size{W: c.pdf.GetStringWidth(s), H: ts.LineHeightIn()}
}

// WrapText greedily word-wraps s against maxWidth.
func (c *Canvas) WrapText(ts canvas.TextStyle, s string, maxWidth float64) []string {
	if s == "" {
		return nil
	}
	if maxWidth <= 0 {
		return []string{s}
	}
	c.setFont(ts)
	raw := c.pdf.SplitLines([]byte(s), maxWidth)
	lines := make([]string, len(raw))
	for i, b := range raw {
		lines[i] = string(b)
	}
	return lines
}

// DrawText draws lines top-aligned at (x, y), one line-height apart.
func (c *Canvas) DrawText(ts canvas.TextStyle, lines []string, x, y float64) {
	c.setFont(ts)
	lineH := ts.LineHeightIn()
	// gofpdf positions text at the baseline; approximate the ascent as
	// 80% of the font size.
	ascent := ts.Size * 0.8 / geom.PtPerInch
	for i, line := range lines {
		c.pdf.Text(x, y+float64(i)*lineH+ascent, line)
	}
}

// DrawImage registers the image bytes on first use and draws them into
// the given rectangle.
func (c *Canvas) DrawImage(img canvas.ImageRef, x, y, w, h float64) error {
	name := img.Name
	if name == "" {
		c.nextImage++
		name = fmt.Sprintf("img-%d", c.nextImage)
	}
	opts := gofpdf.ImageOptions{ImageType: strings.ToUpper(img.Format)}
	if !c.registered[name] {
		c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
		if c.pdf.Err() {
			return fmt.Errorf("pdfcanvas: registering image %q: %w", name, c.takeError())
		}
		c.registered[name] = true
	}
	c.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	if c.pdf.Err() {
		return fmt.Errorf("pdfcanvas: drawing image %q: %w", name, c.takeError())
	}
	return nil
}

// takeError reports and clears the pending gofpdf error so that one bad
// image does not poison the rest of the document.
func (c *Canvas) takeError() error {
	err := c.pdf.Error()
	c.pdf.ClearError()
	return err
}

func (c *Canvas) SetDrawColor(col canvas.Color) { c.pdf.SetDrawColor(col.R, col.G, col.B) }
func (c *Canvas) SetFillColor(col canvas.Color) { c.pdf.SetFillColor(col.R, col.G, col.B) }
func (c *Canvas) SetTextColor(col canvas.Color) { c.pdf.SetTextColor(col.R, col.G, col.B) }
func (c *Canvas) SetLineWidth(w float64)        { c.pdf.SetLineWidth(w) }

// SetAlpha sets the constant alpha for subsequent fills and strokes.
func (c *Canvas) SetAlpha(a float64) {
	c.pdf.SetAlpha(a, "Normal")
}

func (c *Canvas) Rect(x, y, w, h float64, mode string) {
	c.pdf.Rect(x, y, w, h, mode)
}

func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *Canvas) Circle(x, y, r float64, mode string) {
	c.pdf.Circle(x, y, r, mode)
}

// Output serializes the finished document to w.
func (c *Canvas) Output(w io.Writer) error {
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("pdfcanvas: writing document: %w", err)
	}
	return nil
}

var _ canvas.Canvas = (*Canvas)(nil)

// Factory returns a fresh canvas behind the canvas.Canvas interface, in
// the shape report constructors expect.
func Factory() canvas.Canvas { return New() }

// ReadViewport wraps already-encoded viewport bytes as an image reference
// the report can draw.
func ReadViewport(format string, data []byte) canvas.ImageRef {
	return canvas.ImageRef{Name: "viewport", Format: format, Data: data}
}
