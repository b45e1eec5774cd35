package canvas

import (
	"bytes"
	"fmt"
	"image"

	// Registered for natural-size probing beyond the stdlib formats.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/lvillar/mapreport/geom"
)

// ImageRef is an image handed to a Canvas: raw encoded bytes plus the
// format name the backend should decode them as ("png", "jpg", "gif").
// Name identifies the image for backends that cache registrations; an
// empty name lets the backend pick one.
type ImageRef struct {
	Name   string
	Format string
	Data   []byte
}

// NaturalSize decodes the image header and returns its natural size in
// inches at 96 pixels per inch. It fails when the bytes are not a
// recognized raster format or carry no dimensions.
func (r ImageRef) NaturalSize() (geom.Size, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(r.Data))
	if err != nil {
		return geom.Size{}, fmt.Errorf("canvas: decoding image %q: %w", r.Name, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return geom.Size{}, fmt.Errorf("canvas: image %q has no usable dimensions", r.Name)
	}
	return geom.Size{
		W: float64(cfg.Width) / geom.PxPerInch,
		H: float64(cfg.Height) / geom.PxPerInch,
	}, nil
}

// AspectRatio returns the natural width/height ratio of the image.
func (r ImageRef) AspectRatio() (float64, error) {
	s, err := r.NaturalSize()
	if err != nil {
		return 0, err
	}
	return s.AspectRatio(), nil
}
