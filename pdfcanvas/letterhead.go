package pdfcanvas

import (
	"fmt"

	gofpdi "github.com/phpdave11/gofpdf/contrib/gofpdi"
)

// DrawTemplate imports a page of an existing PDF and draws it into the
// given rectangle of the current page, e.g. as a letterhead underlay.
// It implements canvas.Underlay.
func (c *Canvas) DrawTemplate(path string, page int, x, y, w, h float64) (err error) {
	// gofpdi panics on unreadable or malformed source files; surface that
	// as an ordinary error instead.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcanvas: importing template %q: %v", path, r)
		}
	}()

	imp := gofpdi.NewImporter()
	tpl := imp.ImportPage(c.pdf, path, page, "/MediaBox")
	imp.UseImportedTemplate(c.pdf, tpl, x, y, w, h)
	if c.pdf.Err() {
		return fmt.Errorf("pdfcanvas: drawing template %q: %w", path, c.takeError())
	}
	return nil
}
