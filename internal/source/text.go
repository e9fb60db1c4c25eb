package source

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/golang/freetype/truetype"
	woff "github.com/tdewolff/canvas/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// textDPI is the resolution labels are rendered at. The rasterizer rescales them to the job width.
const textDPI = 300

// LoadFont reads a TrueType, OpenType, WOFF or WOFF2 font from a path or URL and returns it as SFNT data.
func LoadFont(ctx context.Context, name string) ([]byte, error) {
	data, _, err := read(ctx, name)
	if err != nil {
		return nil, err
	}
	sfnt, err := woff.ToSFNT(data)
	if err != nil {
		return nil, fmt.Errorf("%w: converting font %v: %v", ErrUnreadable, name, err)
	}
	return sfnt, nil
}

// Text renders s in black on white. Each line of s becomes a line of text. A nil fontData selects Go Regular.
func Text(s string, fontData []byte, pointSize float64) (image.Image, error) {
	if fontData == nil {
		fontData = goregular.TTF
	}
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: pointSize, DPI: textDPI})
	defer face.Close()

	lines := strings.Split(s, "\n")
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	padding := lineHeight / 4

	var width fixed.Int26_6
	for _, line := range lines {
		if w := font.MeasureString(face, line); w > width {
			width = w
		}
	}

	bounds := image.Rect(0, 0, width.Ceil()+2*padding, lineHeight*len(lines)+2*padding)
	img := image.NewGray(bounds)
	draw.Draw(img, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)

	drawer := font.Drawer{Dst: img, Src: image.NewUniform(color.Black), Face: face}
	for i, line := range lines {
		drawer.Dot = fixed.P(padding, padding+i*lineHeight+metrics.Ascent.Ceil())
		drawer.DrawString(line)
	}
	return img, nil
}
