package mapreport

import (
	"github.com/lvillar/mapreport/canvas"
	"github.com/lvillar/mapreport/legend"
	"github.com/lvillar/mapreport/style"
)

// Config is the caller-supplied bundle describing one report. Every
// content element is optional except the viewport image, whose natural
// aspect ratio must be known at setup time so its placement can be
// computed before the raster arrives.
type Config struct {
	Format      style.Format
	Orientation style.Orientation

	// Title is wrapped to the title band and capped to the per-orientation
	// maximum line count; excess lines are dropped.
	Title string

	// Description is wrapped and line-capped like the title.
	Description string

	// Copyright holds the attribution parts of the rendered layers. They
	// are deduplicated, joined and drawn as a strip over the bottom-right
	// corner of the viewport image.
	Copyright []string

	Contact *Contact
	MapInfo *MapInfo

	// Logo is drawn at the top-right at its intrinsic aspect ratio. An
	// undecodable logo is dropped; the rest of the document still renders.
	Logo *canvas.ImageRef

	// ViewportAspect is the natural width/height ratio of the viewport
	// capture supplied to Draw. Zero means the image fills the whole band.
	ViewportAspect float64

	// LinkURL, when set, is encoded as a QR code drawn over the
	// bottom-left corner of the viewport image.
	LinkURL string

	Legend *legend.Config

	// FontFamily with FontRegular/FontBold registers a custom text font;
	// when FontRegular is nil the built-in Helvetica family is used. A
	// missing bold weight falls back to the regular bytes.
	FontFamily  string
	FontRegular []byte
	FontBold    []byte
}

// Contact is the contact block: a bold header over a fixed set of lines.
// Empty fields still occupy their line so that the footer band height
// does not depend on which fields are filled in.
type Contact struct {
	Header  string
	Name    string
	Address string
	Phone   string
	Email   string
}

func (c *Contact) lines() []string {
	return []string{c.Name, c.Address, c.Phone, c.Email}
}

// MapInfo is the map-info block: a bold header over caller-supplied lines,
// e.g. scale and projection. Its placement reserves the same fixed height
// as the contact block so the footer band stays aligned; lines beyond the
// reserved height are dropped.
type MapInfo struct {
	Header string
	Lines  []string
}
