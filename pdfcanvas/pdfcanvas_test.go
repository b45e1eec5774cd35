package pdfcanvas

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/lvillar/mapreport/canvas"
	"github.com/lvillar/mapreport/geom"
)

var helvetica = canvas.TextStyle{Family: "Helvetica", Size: 10, LineHeight: 1.2}

func TestAddPageOrientation(t *testing.T) {
	cases := []struct {
		name string
		size geom.Size
	}{
		{"portrait", geom.Size{W: 8.27, H: 11.69}},
		{"landscape", geom.Size{W: 11.69, H: 8.27}},
		{"custom", geom.Size{W: 5.83, H: 8.27}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			c.AddPage(tc.size)
			got := c.PageSize()
			if math.Abs(got.W-tc.size.W) > 1e-6 || math.Abs(got.H-tc.size.H) > 1e-6 {
				t.Errorf("PageSize() = %+v, want %+v", got, tc.size)
			}
		})
	}
}

func TestMeasureText(t *testing.T) {
	c := New()
	c.AddPage(geom.Size{W: 8.27, H: 11.69})

	short := c.MeasureText(helvetica, "ab")
	long := c.MeasureText(helvetica, "a considerably longer line of text")
	if short.W <= 0 {
		t.Errorf("width of short string = %g, want > 0", short.W)
	}
	if long.W <= short.W {
		t.Errorf("longer string measured %g, not wider than %g", long.W, short.W)
	}
	if want := 10.0 * 1.2 / geom.PtPerInch; short.H != want {
		t.Errorf("line height = %g, want %g", short.H, want)
	}
}

func TestWrapText(t *testing.T) {
	c := New()
	c.AddPage(geom.Size{W: 8.27, H: 11.69})

	text := strings.Repeat("wrap me across narrow columns ", 4)
	lines := c.WrapText(helvetica, text, 1.5)
	if len(lines) < 2 {
		t.Fatalf("got %d lines, want wrapping into several", len(lines))
	}
	for i, line := range lines {
		if w := c.MeasureText(helvetica, line).W; w > 1.5 {
			t.Errorf("line %d measures %g, exceeds wrap width", i, w)
		}
	}

	if got := c.WrapText(helvetica, "", 1.5); got != nil {
		t.Errorf("wrapping empty string = %v, want nil", got)
	}
	if got := c.WrapText(helvetica, "unbounded", 0); len(got) != 1 {
		t.Errorf("non-positive width = %v, want the input as one line", got)
	}
}

func TestDrawImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 16))); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	img := canvas.ImageRef{Name: "swatch", Format: "png", Data: buf.Bytes()}

	c := New()
	c.AddPage(geom.Size{W: 8.27, H: 11.69})
	if err := c.DrawImage(img, 1, 1, 2, 1); err != nil {
		t.Fatalf("DrawImage: %v", err)
	}
	// Same name reuses the registered bytes.
	if err := c.DrawImage(img, 1, 3, 2, 1); err != nil {
		t.Fatalf("DrawImage (second placement): %v", err)
	}
}

func TestDrawImageBadDataDoesNotPoisonDocument(t *testing.T) {
	c := New()
	c.AddPage(geom.Size{W: 8.27, H: 11.69})
	if err := c.DrawImage(canvas.ImageRef{Name: "junk", Format: "png", Data: []byte("junk")}, 1, 1, 2, 1); err == nil {
		t.Fatal("expected error for undecodable image data")
	}

	// The failure is cleared; the document still serializes.
	c.DrawText(helvetica, []string{"still alive"}, 1, 1)
	var out bytes.Buffer
	if err := c.Output(&out); err != nil {
		t.Fatalf("Output after image failure: %v", err)
	}
}

func TestOutputProducesPDF(t *testing.T) {
	c := New()
	c.AddPage(geom.Size{W: 8.27, H: 11.69})
	c.DrawText(helvetica, []string{"first line", "second line"}, 0.5, 0.5)
	c.SetFillColor(canvas.Color{R: 230, G: 230, B: 230})
	c.Rect(0.5, 1.5, 2, 1, canvas.Fill)
	c.Line(0.5, 3, 2.5, 3)
	c.Circle(1.5, 4, 0.25, canvas.Stroke)

	var out bytes.Buffer
	if err := c.Output(&out); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}

func TestReadViewport(t *testing.T) {
	img := ReadViewport("png", []byte{1, 2, 3})
	if img.Name != "viewport" || img.Format != "png" || len(img.Data) != 3 {
		t.Errorf("ReadViewport = %+v", img)
	}
}
