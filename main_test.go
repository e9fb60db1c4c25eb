package main

import (
	"context"
	"testing"
)

func TestLoadImage(t *testing.T) {
	ctx := context.Background()

	if _, err := loadImage(ctx, imageFlags{}); err == nil {
		t.Error("expected an error without a source")
	}
	if _, err := loadImage(ctx, imageFlags{barcode: "qr:x", text: "x"}); err == nil {
		t.Error("expected an error with two sources")
	}
	if _, err := loadImage(ctx, imageFlags{barcode: "qr"}); err == nil {
		t.Error("expected an error for a barcode without content")
	}

	img, err := loadImage(ctx, imageFlags{barcode: "qr:hello"})
	if err != nil {
		t.Fatalf("barcode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != barcodeSize || b.Dy() != barcodeSize {
		t.Errorf("unexpected barcode bounds %v", b)
	}

	img, err = loadImage(ctx, imageFlags{text: `two\nlines`, textSize: 12})
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if img.Bounds().Empty() {
		t.Error("expected a non-empty label")
	}
}
