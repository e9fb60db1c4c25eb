package source

import (
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/qr"
)

// Barcode encodes content as a square QR code ("qr") or data matrix ("datamatrix") of size x size pixels.
func Barcode(kind, content string, size int) (image.Image, error) {
	var code barcode.Barcode
	var err error
	switch kind {
	case "qr":
		code, err = qr.Encode(content, qr.M, qr.Auto)
	case "datamatrix":
		code, err = datamatrix.Encode(content)
	default:
		return nil, fmt.Errorf("unknown barcode kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %v barcode: %w", kind, err)
	}

	// Never scale below one pixel per module.
	if size < code.Bounds().Dx() {
		size = code.Bounds().Dx()
	}
	return barcode.Scale(code, size, size)
}
