package canvas

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}

func TestNaturalSize(t *testing.T) {
	img := ImageRef{Name: "probe", Format: "png", Data: pngBytes(t, 192, 96)}
	s, err := img.NaturalSize()
	if err != nil {
		t.Fatalf("NaturalSize: %v", err)
	}
	if s.W != 2 || s.H != 1 {
		t.Errorf("NaturalSize = %v, want {2 1} (96 px/in)", s)
	}

	r, err := img.AspectRatio()
	if err != nil {
		t.Fatalf("AspectRatio: %v", err)
	}
	if math.Abs(r-2) > 1e-9 {
		t.Errorf("AspectRatio = %g, want 2", r)
	}
}

func TestNaturalSizeUndecodable(t *testing.T) {
	img := ImageRef{Name: "junk", Format: "png", Data: []byte("not an image")}
	if _, err := img.NaturalSize(); err == nil {
		t.Fatal("expected error for undecodable image data")
	}
}
