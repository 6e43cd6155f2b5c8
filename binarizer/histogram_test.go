package binarizer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/qrdecode"
)

func checkerboard(size, cell int, dark, light uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := light
			if (x/cell+y/cell)%2 == 0 {
				v = dark
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestFromImageCheckerboard(t *testing.T) {
	m, err := FromImage(checkerboard(40, 10, 30, 220), 0)
	require.NoError(t, err)
	assert.Equal(t, 40, m.Width())
	assert.True(t, m.IsBlack(0, 0))
	assert.False(t, m.IsBlack(0, 10))
	assert.True(t, m.IsBlack(15, 15))
	assert.False(t, m.IsBlack(15, 25))
}

func TestFixedThreshold(t *testing.T) {
	img := checkerboard(20, 10, 100, 160)
	m, err := FromImage(img, 90)
	require.NoError(t, err)
	assert.False(t, m.IsBlack(0, 0), "100 is above a threshold of 90")

	m, err = FromImage(img, 130)
	require.NoError(t, err)
	assert.True(t, m.IsBlack(0, 0))
	assert.False(t, m.IsBlack(0, 10))
}

func TestLowContrastHasNoBlackPoint(t *testing.T) {
	_, err := FromImage(checkerboard(16, 4, 128, 136), 0)
	assert.True(t, errors.Is(err, qrdecode.ErrNotFound))
}

func TestTransparentPixelsAreWhite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{A: 255})
		}
	}
	m, err := FromImage(img, 0)
	require.NoError(t, err)
	assert.True(t, m.IsBlack(3, 1))
	assert.False(t, m.IsBlack(3, 6))
}
