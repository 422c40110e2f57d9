// Package testutil provides test utilities and mock implementations.
package testutil

import (
	"image"
	"image/color"

	"github.com/winpeek/winpeek/internal/imaging"
)

// NoiseImage returns a w x h image with per-pixel variation, so its PNG
// encoding does not collapse to a few bytes. Useful for building data URIs
// that pass the content adequacy gate.
func NoiseImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x*7 + y*13) % 256),
				G: uint8((x*31 + y*3) % 256),
				B: uint8((x * y) % 256),
				A: 0xFF,
			})
		}
	}
	return img
}

// AdequateDataURI returns an encoded image large enough to pass the
// adequacy gate.
func AdequateDataURI() string {
	uri, err := imaging.Encode(NoiseImage(200, 150))
	if err != nil || !imaging.Adequate(uri) {
		panic("testutil: noise image did not encode past the adequacy gate")
	}
	return uri
}

// SmallDataURI returns a valid but tiny encoded image that fails the
// adequacy gate.
func SmallDataURI() string {
	uri, err := imaging.Encode(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		panic("testutil: failed to encode small image")
	}
	return uri
}
