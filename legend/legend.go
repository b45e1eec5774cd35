// Package legend lays out the legend appendix of a report: a variable
// number of titled groups, each holding an ordered list of heterogeneous
// rows (image swatches or style-sample grids), paginated across one or
// more pages with an optional two-column landscape mode.
package legend

import (
	"errors"

	"github.com/lvillar/mapreport/canvas"
	"github.com/lvillar/mapreport/style"
)

// ErrUnknownKind reports a legend item or sample row of a kind the
// renderer does not know. Unknown kinds are a hard error: silently
// misrendering an unrecognized graphic is worse than failing loudly.
var ErrUnknownKind = errors.New("legend: unsupported kind")

// ItemKind discriminates the legend item variants.
type ItemKind int

const (
	// ItemImage is a pre-rendered legend graphic drawn at natural aspect.
	ItemImage ItemKind = iota
	// ItemStyleSample is a grid of swatch rows drawn from style data.
	ItemStyleSample
	// ItemIframe is interactive embedded content. It can never appear in a
	// static document and is dropped before pagination with a notification.
	ItemIframe
)

func (k ItemKind) String() string {
	switch k {
	case ItemImage:
		return "image"
	case ItemStyleSample:
		return "styleSample"
	case ItemIframe:
		return "iframe"
	}
	return "unknown"
}

// SampleKind discriminates the swatch variants inside a style sample.
type SampleKind int

const (
	// SampleStroke renders a straight line in the row's stroke style.
	SampleStroke SampleKind = iota
	// SampleFill renders a filled, stroked rectangle.
	SampleFill
	// SampleCircle renders a filled, stroked circle.
	SampleCircle
	// SampleIcon renders the row's icon raster, centered.
	SampleIcon
	// SampleShape renders a regular-shape raster, centered.
	SampleShape
	// SampleText is not supported in print output; rows of this kind are
	// skipped with a logged warning.
	SampleText
)

func (k SampleKind) String() string {
	switch k {
	case SampleStroke:
		return "stroke"
	case SampleFill:
		return "fill"
	case SampleCircle:
		return "circle"
	case SampleIcon:
		return "icon"
	case SampleShape:
		return "regularShape"
	case SampleText:
		return "text"
	}
	return "unknown"
}

// Config describes one legend appendix. Format and Orientation are the
// already-resolved target of the appendix pages (callers expand any
// "same as main document" sentinel before building the Config).
type Config struct {
	Format      style.Format
	Orientation style.Orientation
	Groups      []Group
	// SampleColumns is the number of grid columns style-sample rows are
	// laid out in. Zero means the default of 2.
	SampleColumns int
}

// Group is a titled collection of legend items belonging to one logical
// data source, e.g. a map layer. Groups render in caller order on their
// own appendix page(s); a group with no renderable items emits no page.
type Group struct {
	Title string
	Items []Item
}

// Item is one legend row, discriminated by Kind. Image is set for
// ItemImage, Rows for ItemStyleSample.
type Item struct {
	Kind  ItemKind
	Image *canvas.ImageRef
	Rows  []SampleRow
}

// SampleRow is one row of a style-sample grid: a swatch followed by a
// single-line label. Label is passed through the caller's translate
// function at draw time.
type SampleRow struct {
	Kind      SampleKind
	Label     string
	Stroke    canvas.Color
	Fill      canvas.Color
	LineWidth float64
	Icon      *canvas.ImageRef // SampleIcon and SampleShape only
}
