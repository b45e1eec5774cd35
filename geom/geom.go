// Package geom provides the coordinate, size and placement value types used
// by the report layout engine, together with the small amount of pure
// arithmetic the placement calculations are built on.
//
// All lengths are physical inches with the origin at the upper-left corner
// of the page. Font sizes are points (72 per inch); raster image natural
// sizes are converted from pixels at 96 per inch.
package geom

// Conversion constants for physical units.
const (
	PtPerInch = 72.0
	PxPerInch = 96.0
)

// Point is a 2D coordinate in inches, origin at the page's upper-left corner.
type Point struct {
	X, Y float64
}

// Size is a width/height pair in inches.
type Size struct {
	W, H float64
}

// AspectRatio returns W/H, or 0 when the height is zero.
func (s Size) AspectRatio() float64 {
	if s.H == 0 {
		return 0
	}
	return s.W / s.H
}

// Rect is the computed placement of one document element.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects reports whether r and o share interior area. Rectangles that
// only touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// LineHeight converts a count of text lines at the given font into a
// physical height in inches. factor is the line-height multiple of the font
// size, sizePt the font size in points.
func LineHeight(lines int, factor, sizePt float64) float64 {
	return float64(lines) * factor * sizePt / PtPerInch
}

// ElementWidth computes the width of one element when two elements split a
// line of maxLineWidth between them: maxLineWidth*portion less half the
// inter-element margin.
//
// The formula only holds for exactly two elements sharing a row; it is not
// a general N-way split and callers must not use it as one.
func ElementWidth(maxLineWidth, portion, elementMargin float64) float64 {
	return maxLineWidth*portion - elementMargin/2
}

// FitSize scales a rectangle of the given aspect ratio (width/height) to
// the largest size that fits inside band. Exactly one axis matches the band
// unless the aspect ratios are equal; the aspect ratio is preserved, never
// cropped or stretched. A non-positive aspect returns the band unchanged.
func FitSize(band Size, aspect float64) Size {
	if aspect <= 0 {
		return band
	}
	w := band.W
	h := w / aspect
	if h > band.H {
		h = band.H
		w = h * aspect
	}
	return Size{W: w, H: h}
}
