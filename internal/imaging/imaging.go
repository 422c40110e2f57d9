// Package imaging converts captured pixels into the PNG data URI form used
// throughout the window list, and judges whether an encoded image holds real
// content.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

// Prefix is the data URI prefix of every encoded image.
const Prefix = "data:image/png;base64,"

// Empty is the canonical empty image: a bare prefix with no payload.
// Degraded batch results carry this value instead of an error.
const Empty = Prefix

// AdequateThreshold is the minimum base64 payload size of an image that is
// considered to show real window content. A thumbnail-sized PNG of an actual
// window surface encodes well past this; title-bar-only slivers do not.
const AdequateThreshold = 8000

// ErrEmptyImage is returned when there are no pixels to encode.
var ErrEmptyImage = errors.New("imaging: empty image")

// Adequate reports whether the encoded image is large enough to plausibly
// contain window content rather than a sliver or a blank frame.
func Adequate(dataURI string) bool {
	return len(dataURI) > len(Prefix)+AdequateThreshold
}

// IsEmpty reports whether the value carries no image payload at all.
func IsEmpty(dataURI string) bool {
	return len(dataURI) <= len(Prefix)
}

// Encode renders the image as a PNG data URI.
func Encode(img image.Image) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return Empty, ErrEmptyImage
	}

	var sb strings.Builder
	sb.WriteString(Prefix)

	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if err := png.Encode(enc, img); err != nil {
		return Empty, fmt.Errorf("encode png: %w", err)
	}
	if err := enc.Close(); err != nil {
		return Empty, fmt.Errorf("encode base64: %w", err)
	}

	return sb.String(), nil
}

// Decode parses a PNG data URI back into an image.
func Decode(dataURI string) (image.Image, error) {
	if !strings.HasPrefix(dataURI, Prefix) || IsEmpty(dataURI) {
		return nil, ErrEmptyImage
	}

	raw, err := base64.StdEncoding.DecodeString(dataURI[len(Prefix):])
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	return img, nil
}

// FitWithin returns the largest size not exceeding maxW x maxH that keeps
// the source aspect ratio. Both results are at least 1.
func FitWithin(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 1, 1
	}

	scale := math.Min(float64(maxW)/float64(srcW), float64(maxH)/float64(srcH))
	w := int(math.Round(float64(srcW) * scale))
	h := int(math.Round(float64(srcH) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	return w, h
}

// ScaleToFit resizes the image to fit within maxW x maxH, preserving aspect
// ratio. Images already within bounds are returned unchanged.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}

	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}

	w, h := FitWithin(b.Dx(), b.Dy(), maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	return dst
}

// FromBGRA converts a top-down BGRA pixel buffer, as produced by GDI bitmap
// reads, into an RGBA image. The buffer must hold width*height*4 bytes.
func FromBGRA(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) < width*height*4 {
		return nil, ErrEmptyImage
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		src := i * 4
		img.Pix[src+0] = pixels[src+2]
		img.Pix[src+1] = pixels[src+1]
		img.Pix[src+2] = pixels[src+0]
		img.Pix[src+3] = 0xFF
	}

	return img, nil
}

// Uniform reports whether every pixel in the image has the same color. A
// uniform frame from a live window almost always means the compositor has
// not produced content yet.
func Uniform(img image.Image) bool {
	if img == nil || img.Bounds().Empty() {
		return true
	}

	b := img.Bounds()
	first := img.At(b.Min.X, b.Min.Y)
	fr, fg, fb, fa := first.RGBA()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if r != fr || g != fg || bl != fb || a != fa {
				return false
			}
		}
	}

	return true
}

// Placeholder composes a thumbnail-sized stand-in: a flat background with
// the application icon centered at 60% of the short edge, capped at 128px.
// A nil icon yields just the background.
func Placeholder(icon image.Image, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return Empty, ErrEmptyImage
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	bg := image.NewUniform(color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	draw.Draw(canvas, canvas.Bounds(), bg, image.Point{}, draw.Src)

	if icon != nil && !icon.Bounds().Empty() {
		short := width
		if height < short {
			short = height
		}
		size := int(float64(short) * 0.6)
		if size > 128 {
			size = 128
		}
		if size < 1 {
			size = 1
		}

		x := (width - size) / 2
		y := (height - size) / 2
		dst := image.Rect(x, y, x+size, y+size)
		draw.ApproxBiLinear.Scale(canvas, dst, icon, icon.Bounds(), draw.Over, nil)
	}

	return Encode(canvas)
}
