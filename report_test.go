package mapreport_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	mapreport "github.com/lvillar/mapreport"
	"github.com/lvillar/mapreport/canvas"
	"github.com/lvillar/mapreport/legend"
	"github.com/lvillar/mapreport/pdfcanvas"
	"github.com/lvillar/mapreport/style"
)

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateFullReport(t *testing.T) {
	gray := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	cfg := mapreport.Config{
		Format:      style.FormatA4,
		Orientation: style.Portrait,
		Title:       "Flood Risk Overview",
		Description: "Flood risk zones derived from the 2026 terrain survey of the Lower River District.",
		Copyright:   []string{"© State Mapping Agency", "© OpenStreetMap contributors"},
		Contact: &mapreport.Contact{
			Header: "Contact",
			Name:   "State Mapping Agency",
			Email:  "maps@example.org",
		},
		MapInfo: &mapreport.MapInfo{
			Header: "Map information",
			Lines:  []string{"Scale 1:25000", "EPSG:25832"},
		},
		Logo:           &canvas.ImageRef{Name: "logo", Format: "png", Data: solidPNG(t, 240, 120, gray)},
		ViewportAspect: 1.5,
		LinkURL:        "https://maps.example.org/?view=riverton",
		Legend: &legend.Config{
			Format:      style.FormatA4,
			Orientation: style.Portrait,
			Groups: []legend.Group{
				{
					Title: "Flood zones",
					Items: []legend.Item{
						{Kind: legend.ItemImage, Image: &canvas.ImageRef{Name: "swatch", Format: "png", Data: solidPNG(t, 192, 96, gray)}},
						{Kind: legend.ItemStyleSample, Rows: []legend.SampleRow{
							{Kind: legend.SampleStroke, Label: "River centerline", Stroke: canvas.Color{B: 200}},
							{Kind: legend.SampleFill, Label: "Inundation area", Fill: canvas.Color{B: 120}},
							{Kind: legend.SampleCircle, Label: "Gauge station", Fill: canvas.Color{R: 200}},
						}},
					},
				},
			},
		},
	}

	rep := mapreport.New(cfg, pdfcanvas.Factory)
	if err := rep.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	viewport := canvas.ImageRef{Name: "viewport", Format: "png", Data: solidPNG(t, 1536, 1024, gray)}
	var buf bytes.Buffer
	if err := rep.Draw(&buf, viewport, strings.ToUpper); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	if buf.Len() == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
	firstPages := rep.LegendPages()

	// A repeated Draw serializes the same document again.
	var again bytes.Buffer
	if err := rep.Draw(&again, viewport, strings.ToUpper); err != nil {
		t.Fatalf("second Draw: %v", err)
	}
	if !bytes.HasPrefix(again.Bytes(), []byte("%PDF")) {
		t.Fatal("second Draw output does not start with %PDF header")
	}
	if rep.LegendPages() != firstPages {
		t.Errorf("second Draw emitted %d legend pages, first emitted %d", rep.LegendPages(), firstPages)
	}
	t.Logf("report PDF: %d bytes", buf.Len())
}

func TestGenerateMinimalReport(t *testing.T) {
	cfg := mapreport.Config{
		Format:         style.FormatA5,
		Orientation:    style.Landscape,
		ViewportAspect: 2,
	}
	rep := mapreport.New(cfg, pdfcanvas.Factory)
	if err := rep.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	viewport := canvas.ImageRef{Name: "viewport", Format: "png", Data: solidPNG(t, 400, 200, color.White)}
	var buf bytes.Buffer
	if err := rep.Draw(&buf, viewport, nil); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
}
