package qrdecode

import (
	"image"

	"github.com/disintegration/imaging"
)

// ImageLuminanceSource is a LuminanceSource backed by a Go image.Image.
type ImageLuminanceSource struct {
	luminances []byte
	width      int
	height     int
}

// NewImageLuminanceSource converts img to greyscale luminance values.
// Transparent pixels are treated as white.
func NewImageLuminanceSource(img image.Image) *ImageLuminanceSource {
	flat := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), image.White.C)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)
	gray := imaging.Grayscale(flat)

	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	luminances := make([]byte, w*h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < w; x++ {
			// Grayscale leaves R == G == B.
			luminances[y*w+x] = row[4*x]
		}
	}
	return &ImageLuminanceSource{luminances: luminances, width: w, height: h}
}

// Matrix returns the luminance values, row-major.
func (s *ImageLuminanceSource) Matrix() []byte { return s.luminances }

// Width returns the width.
func (s *ImageLuminanceSource) Width() int { return s.width }

// Height returns the height.
func (s *ImageLuminanceSource) Height() int { return s.height }
