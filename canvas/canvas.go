// Package canvas defines the drawing-backend contract the report layout
// engine measures and renders through. The engine never talks to a PDF
// library directly; it passes an explicit TextStyle into every measuring
// and drawing call so that no ordering bugs can arise from a mutable
// "current font" on the backend.
package canvas

import (
	"io"

	"github.com/lvillar/mapreport/geom"
)

// TextStyle is the complete text state for one measure or draw call.
type TextStyle struct {
	Family     string
	Weight     string  // "" regular, "B" bold
	Size       float64 // points
	LineHeight float64 // multiple of Size
}

// LineHeightIn returns the height of one text line in inches.
func (ts TextStyle) LineHeightIn() float64 {
	return ts.Size * ts.LineHeight / geom.PtPerInch
}

// Color is an RGB color with 0-255 components.
type Color struct {
	R, G, B int
}

// Paint modes for Rect and Circle.
const (
	Stroke     = "D"
	Fill       = "F"
	FillStroke = "FD"
)

// Canvas is the document-drawing backend. Pages are appended in order;
// all drawing applies to the most recently added page. Coordinates and
// lengths are inches from the page's upper-left corner.
type Canvas interface {
	// AddPage appends a page of the given size and makes it current.
	AddPage(size geom.Size)
	// PageSize returns the size of the current page.
	PageSize() geom.Size

	// RegisterFont loads a font weight ("" or "B") from raw bytes under
	// the given family name for use in subsequent TextStyles.
	RegisterFont(family, weight string, data []byte) error

	// MeasureText returns the rendered size of a single line of text.
	MeasureText(ts TextStyle, s string) geom.Size
	// WrapText greedily word-wraps s against maxWidth and returns the
	// resulting lines. Capping to a maximum line count is the caller's
	// responsibility.
	WrapText(ts TextStyle, s string, maxWidth float64) []string
	// DrawText draws lines top-aligned at (x, y), one line-height apart.
	DrawText(ts TextStyle, lines []string, x, y float64)

	// DrawImage draws the decoded image into the given rectangle.
	DrawImage(img ImageRef, x, y, w, h float64) error

	SetDrawColor(c Color)
	SetFillColor(c Color)
	SetTextColor(c Color)
	SetLineWidth(w float64)
	// SetAlpha sets the constant alpha for subsequent fills and strokes.
	SetAlpha(a float64)

	Rect(x, y, w, h float64, mode string)
	Line(x1, y1, x2, y2 float64)
	Circle(x, y, r float64, mode string)

	// Output serializes the finished document.
	Output(w io.Writer) error
}

// Underlay is implemented by canvases that can draw a page imported from
// an existing document beneath subsequent content, e.g. a letterhead.
type Underlay interface {
	DrawTemplate(path string, page int, x, y, w, h float64) error
}
