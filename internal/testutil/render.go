package testutil

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/bitutil"
	"github.com/ericlevine/qrdecode/transform"
)

// Render draws s with scale pixels per module inside a quiet zone of quiet
// modules on every side.
func Render(s Symbol, scale, quiet int) *bitutil.BitMatrix {
	side := (s.Size() + 2*quiet) * scale
	bm := bitutil.NewBitMatrix(side)
	for row, cells := range s {
		for col, black := range cells {
			if black {
				bm.SetRegion((col+quiet)*scale, (row+quiet)*scale, scale, scale)
			}
		}
	}
	return bm
}

// Image draws s like Render, as a greyscale image.
func Image(s Symbol, scale, quiet int) *image.Gray {
	side := (s.Size() + 2*quiet) * scale
	img := image.NewGray(image.Rect(0, 0, side, side))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	for row, cells := range s {
		for col, black := range cells {
			if !black {
				continue
			}
			for y := 0; y < scale; y++ {
				for x := 0; x < scale; x++ {
					img.SetGray((col+quiet)*scale+x, (row+quiet)*scale+y, color.Gray{})
				}
			}
		}
	}
	return img
}

// Rotate turns img counter-clockwise by angle degrees on a white background.
func Rotate(img image.Image, angle float64) *image.NRGBA {
	return imaging.Rotate(img, angle, color.White)
}

// Warp draws s into a width by height bitmap through the homography that
// puts the symbol's outer corners on quad, given as top-left, top-right,
// bottom-left and bottom-right. Each pixel takes the module under its centre.
func Warp(s Symbol, width, height int, quad [4]qrdecode.Point) (*bitutil.BitMatrix, error) {
	n := float64(s.Size())
	toModules, err := transform.NewProjective(quad, [4]qrdecode.Point{{X: 0, Y: 0}, {X: n, Y: 0}, {X: 0, Y: n}, {X: n, Y: n}})
	if err != nil {
		return nil, err
	}
	bm := bitutil.NewBitMatrixWithSize(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := toModules.Map(float64(x)+0.5, float64(y)+0.5)
			row, col := int(math.Floor(p.Y)), int(math.Floor(p.X))
			if row >= 0 && col >= 0 && row < s.Size() && col < s.Size() && s[row][col] {
				bm.Set(x, y)
			}
		}
	}
	return bm, nil
}
