// Package mapreport computes the page layout of, and renders, a printable
// map report: a rasterized viewport capture combined with an optional
// title, logo, description, contact and map-info blocks, a copyright
// strip, a QR map link and a multi-page legend appendix.
//
// Generation follows a two-phase protocol. Setup resolves the style sheet
// for the requested page format, registers fonts and computes a
// non-overlapping placement for every present element in a fixed order;
// Draw then marks every element at its computed placement into the
// drawing backend and serializes the document. Placements are immutable
// once Setup completes, and Draw fails with ErrNotSetUp when invoked
// first. Draw may be called repeatedly: each call renders the complete
// document onto a fresh canvas obtained from the factory.
//
// The viewport image anchors to the top of its band; when the band is
// taller than the fitted image the leftover space stays below it rather
// than being split around it. Horizontal centering applies whenever the
// fitted image is narrower than the printable width.
//
//	rep := mapreport.New(mapreport.Config{
//	    Format:         style.FormatA4,
//	    Orientation:    style.Portrait,
//	    Title:          "Annual Report",
//	    ViewportAspect: 1.5,
//	}, pdfcanvas.Factory)
//	if err := rep.Setup(); err != nil {
//	    // ...
//	}
//	err := rep.Draw(out, viewport, nil)
//
// The engine draws through the canvas.Canvas interface and never depends
// on a PDF library directly; pdfcanvas provides the gofpdf-backed
// implementation.
package mapreport
