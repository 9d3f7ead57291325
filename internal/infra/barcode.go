package infra

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// RenderBarcodePNG encodes an item barcode as a Code 128 PNG suitable for
// printing on shelf labels.
func RenderBarcodePNG(code string) ([]byte, error) {
	bc, err := code128.Encode(code)
	if err != nil {
		return nil, fmt.Errorf("barcode: encode %q: %w", code, err)
	}
	scaled, err := barcode.Scale(bc, 300, 120)
	if err != nil {
		return nil, fmt.Errorf("barcode: scale: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("barcode: render png: %w", err)
	}
	return buf.Bytes(), nil
}
