package mapreport

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// encodeLink renders url as a QR code PNG of sidePx pixels per side,
// ready to hand to the canvas as an image.
func encodeLink(url string, sidePx int) ([]byte, error) {
	code, err := qr.Encode(url, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("mapreport: encoding link QR: %w", err)
	}
	code, err = barcode.Scale(code, sidePx, sidePx)
	if err != nil {
		return nil, fmt.Errorf("mapreport: scaling link QR: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("mapreport: rendering link QR: %w", err)
	}
	return buf.Bytes(), nil
}
