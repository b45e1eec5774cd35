// Package style resolves the named page format of a report to the flat
// numeric style sheet that drives placement: fonts sizes, margins and
// sizing ratios keyed by dotted path. A built-in default sheet is merged
// with per-format partial overrides; callers may merge further overrides
// on top of the resolved sheet.
package style

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/lvillar/mapreport/geom"
)

// Format is a named standard page size.
type Format string

// Supported page formats.
const (
	FormatA1 Format = "A1"
	FormatA2 Format = "A2"
	FormatA3 Format = "A3"
	FormatA4 Format = "A4"
	FormatA5 Format = "A5"
)

// Formats returns the supported formats in decreasing page size.
func Formats() []Format {
	return []Format{FormatA1, FormatA2, FormatA3, FormatA4, FormatA5}
}

// Orientation selects which edge of the format is horizontal.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"

	// Both is a configuration-surface sentinel meaning "user chooses".
	// It must be resolved to Portrait or Landscape before layout.
	Both Orientation = "both"
)

// Portrait page dimensions in inches per format. Landscape swaps the pair.
var pageSizes = map[Format]geom.Size{
	FormatA1: {W: 23.39, H: 33.11},
	FormatA2: {W: 16.54, H: 23.39},
	FormatA3: {W: 11.69, H: 16.54},
	FormatA4: {W: 8.27, H: 11.69},
	FormatA5: {W: 5.83, H: 8.27},
}

// PageSize returns the page dimensions for a format and orientation.
// Unknown formats fall back to A4, mirroring Resolve.
func PageSize(f Format, o Orientation) geom.Size {
	s, ok := pageSizes[f]
	if !ok {
		s = pageSizes[FormatA4]
	}
	if o == Landscape {
		return geom.Size{W: s.H, H: s.W}
	}
	return s
}

// Sheet is a flat mapping from dotted style keys to numeric values.
type Sheet map[string]float64

// Lengths are inches, font sizes points, lineHeight values multiples of the
// font size, ratios fractions of the printable width.
var defaults = Sheet{
	"page.margin":    0.39,
	"element.margin": 0.2,

	"title.fontSize":               18,
	"title.lineHeight":             1.2,
	"title.maxLineCount.portrait":  2,
	"title.maxLineCount.landscape": 1,
	"title.widthRatio.portrait":    0.75,
	"title.widthRatio.landscape":   0.8,

	// Logo height as a multiple of the title line-height.
	"logo.heightFactor": 2,

	"description.fontSize":               10,
	"description.lineHeight":             1.3,
	"description.maxLineCount.portrait":  4,
	"description.maxLineCount.landscape": 3,

	// Contact and map-info blocks share the info.* keys. lineCount is the
	// header line plus the fixed set of contact fields.
	"info.fontSize":             9,
	"info.lineHeight":           1.3,
	"info.lineCount":            5,
	"info.widthRatio.portrait":  0.5,
	"info.widthRatio.landscape": 0.25,

	"copyright.fontSize":   6,
	"copyright.lineHeight": 1.2,
	"copyright.padding":    0.04,
	"copyright.alpha":      0.65,

	// Side length of the optional QR map link.
	"link.size": 0.7,

	"legend.titleFontSize":   14,
	"legend.titleLineHeight": 1.2,
	"legend.fontSize":        9,
	"legend.lineHeight":      1.3,
	"legend.rowHeight":       0.28,
	"legend.sampleWidth":     0.35,
	"legend.labelGap":        0.08,
	"legend.columnGap":       0.3,
	// Break heuristic for tall legend images: force a column break when the
	// image, shrunk to imageShrinkRatio of the column height, still does not
	// fit and more than breakRatio of the column is already used. The two
	// constants are empirical; see the package tests before tuning them.
	"legend.imageShrinkRatio": 0.8,
	"legend.breakRatio":       1.0 / 3.0,
}

// Per-format overrides, shallow-merged over the defaults. A4 is the
// reference format and carries no overrides.
var overrides = map[Format]Sheet{
	FormatA1: {
		"title.fontSize":       32,
		"description.fontSize": 14,
		"info.fontSize":        12,
		"copyright.fontSize":   8,
		"link.size":            1.0,
		"legend.titleFontSize": 20,
		"legend.fontSize":      12,
		"legend.rowHeight":     0.38,
		"legend.sampleWidth":   0.5,
	},
	FormatA2: {
		"title.fontSize":       26,
		"description.fontSize": 12,
		"info.fontSize":        11,
		"copyright.fontSize":   7,
		"legend.titleFontSize": 18,
		"legend.fontSize":      11,
		"legend.rowHeight":     0.34,
	},
	FormatA3: {
		"title.fontSize":       22,
		"description.fontSize": 11,
		"info.fontSize":        10,
		"legend.titleFontSize": 16,
		"legend.fontSize":      10,
	},
	FormatA5: {
		"title.fontSize":                    14,
		"title.maxLineCount.portrait":       1,
		"description.fontSize":              8,
		"description.maxLineCount.portrait": 3,
		"info.fontSize":                     7,
		"info.widthRatio.landscape":         0.3,
		"copyright.fontSize":                5,
		"link.size":                         0.5,
		"legend.titleFontSize":              11,
		"legend.fontSize":                   7,
		"legend.rowHeight":                  0.22,
		"legend.sampleWidth":                0.28,
	},
}

// Default returns a copy of the default sheet.
func Default() Sheet {
	s := make(Sheet, len(defaults))
	for k, v := range defaults {
		s[k] = v
	}
	return s
}

// Resolve returns the default sheet with the format's overrides merged on
// top. An unknown format yields the default sheet unchanged.
func Resolve(f Format) Sheet {
	s := Default()
	s.Merge(overrides[f])
	return s
}

// Merge copies every key of over into s, overwriting existing values.
func (s Sheet) Merge(over Sheet) {
	for k, v := range over {
		s[k] = v
	}
}

// Get returns the value for key, or 0 when the key is absent.
func (s Sheet) Get(key string) float64 {
	return s[key]
}

// GetInt returns the value for key truncated to an int.
func (s Sheet) GetInt(key string) int {
	return int(s[key])
}

// ByOrientation looks up key suffixed with the orientation, e.g.
// "title.maxLineCount" becomes "title.maxLineCount.portrait".
func (s Sheet) ByOrientation(key string, o Orientation) float64 {
	return s[key+"."+string(o)]
}

// ParseOverrides decodes per-format override sheets from TOML. Each
// top-level table is a format name holding dotted style keys:
//
//	[A3]
//	"title.fontSize" = 24.0
//	"info.widthRatio.landscape" = 0.3
func ParseOverrides(data []byte) (map[Format]Sheet, error) {
	var raw map[string]map[string]float64
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("style: parsing overrides: %w", err)
	}
	out := make(map[Format]Sheet, len(raw))
	for name, keys := range raw {
		sheet := make(Sheet, len(keys))
		for k, v := range keys {
			sheet[k] = v
		}
		out[Format(name)] = sheet
	}
	return out, nil
}
