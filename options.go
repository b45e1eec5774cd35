package mapreport

import (
	"github.com/charmbracelet/log"

	"github.com/lvillar/mapreport/style"
)

// Option is a functional option for configuring a new Report via New.
type Option func(*Report)

// WithLogger sets the logger used for recoverable element failures
// (dropped logo, skipped legend content). The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(r *Report) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithStyleOverrides merges the given sheet over the format-resolved style
// sheet during Setup. Override keys win per key; this is the only tunable
// knob into the placement calculation.
func WithStyleOverrides(over style.Sheet) Option {
	return func(r *Report) {
		r.overrides = over
	}
}

// WithLetterhead draws page 1 of the PDF at path beneath the report's
// first page. It requires a canvas implementing canvas.Underlay; on other
// canvases the letterhead is skipped with a warning.
func WithLetterhead(path string) Option {
	return func(r *Report) {
		r.letterhead = path
	}
}
