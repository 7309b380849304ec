// Package render holds the image transforms used by postcard flows. All
// functions are bytes in, bytes out; callers deal with Telegram files.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	_ "image/jpeg"
)

// ThumbnailBounds is the box thumbnails are fitted into.
const ThumbnailBounds = 300

// Compose draws the sender and recipient names onto the template image and
// returns the result as PNG.
func Compose(src []byte, from, to string) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("render: decode template: %w", err)
	}

	canvas := image.NewRGBA(img.Bounds())
	draw.Copy(canvas, image.Point{}, img, img.Bounds(), draw.Src, nil)

	drawText(canvas, 100, 100, from)
	drawText(canvas, 100, 200, to)

	var out bytes.Buffer
	if err := png.Encode(&out, canvas); err != nil {
		return nil, fmt.Errorf("render: encode postcard: %w", err)
	}
	return out.Bytes(), nil
}

func drawText(dst *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Thumbnail downscales the image to fit within bounds on its longer side,
// preserving aspect ratio. Images already within bounds are re-encoded
// unchanged in size.
func Thumbnail(src []byte, bounds int) ([]byte, error) {
	if bounds <= 0 {
		bounds = ThumbnailBounds
	}
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("render: decode image: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > bounds || h > bounds {
		if w >= h {
			h = h * bounds / w
			w = bounds
		} else {
			w = w * bounds / h
			h = bounds
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, dst); err != nil {
		return nil, fmt.Errorf("render: encode thumbnail: %w", err)
	}
	return out.Bytes(), nil
}
