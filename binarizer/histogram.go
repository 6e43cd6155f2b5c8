// Package binarizer converts greyscale images into the black/white grid the
// QR decoder consumes.
package binarizer

import (
	"fmt"
	"image"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/bitutil"
)

const (
	luminanceBits    = 5
	luminanceShift   = 8 - luminanceBits
	luminanceBuckets = 1 << luminanceBits
)

// GlobalHistogram thresholds every pixel against a single black point taken
// from the valley between the two dominant luminance peaks.
type GlobalHistogram struct {
	source qrdecode.LuminanceSource
	// Threshold, when in 1..255, replaces the estimated black point.
	Threshold int
}

// NewGlobalHistogram creates a new GlobalHistogram binarizer.
func NewGlobalHistogram(source qrdecode.LuminanceSource) *GlobalHistogram {
	return &GlobalHistogram{source: source}
}

// FromImage binarizes img. A threshold of 0 estimates the black point.
func FromImage(img image.Image, threshold int) (*bitutil.BitMatrix, error) {
	g := NewGlobalHistogram(qrdecode.NewImageLuminanceSource(img))
	g.Threshold = threshold
	return g.BlackMatrix()
}

// BlackPoint returns the luminance below which a pixel is black.
func (g *GlobalHistogram) BlackPoint() (int, error) {
	if g.Threshold > 0 && g.Threshold < 256 {
		return g.Threshold, nil
	}
	var buckets [luminanceBuckets]int
	for _, l := range g.source.Matrix() {
		buckets[int(l)>>luminanceShift]++
	}
	return estimateBlackPoint(buckets[:])
}

// BlackMatrix returns the full binarized matrix.
func (g *GlobalHistogram) BlackMatrix() (*bitutil.BitMatrix, error) {
	width := g.source.Width()
	height := g.source.Height()
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: empty image", qrdecode.ErrNotFound)
	}
	blackPoint, err := g.BlackPoint()
	if err != nil {
		return nil, err
	}

	matrix := bitutil.NewBitMatrixWithSize(width, height)
	luminances := g.source.Matrix()
	for y := 0; y < height; y++ {
		offset := y * width
		for x := 0; x < width; x++ {
			if int(luminances[offset+x]) < blackPoint {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}

func estimateBlackPoint(buckets []int) (int, error) {
	numBuckets := len(buckets)
	maxBucketCount := 0
	firstPeak := 0
	firstPeakSize := 0
	for x := 0; x < numBuckets; x++ {
		if buckets[x] > firstPeakSize {
			firstPeak = x
			firstPeakSize = buckets[x]
		}
		if buckets[x] > maxBucketCount {
			maxBucketCount = buckets[x]
		}
	}

	secondPeak := 0
	secondPeakScore := 0
	for x := 0; x < numBuckets; x++ {
		dist := x - firstPeak
		score := buckets[x] * dist * dist
		if score > secondPeakScore {
			secondPeak = x
			secondPeakScore = score
		}
	}

	if firstPeak > secondPeak {
		firstPeak, secondPeak = secondPeak, firstPeak
	}

	if secondPeak-firstPeak <= numBuckets/16 {
		return 0, fmt.Errorf("%w: luminance histogram has a single peak", qrdecode.ErrNotFound)
	}

	bestValley := secondPeak - 1
	bestValleyScore := -1
	for x := secondPeak - 1; x > firstPeak; x-- {
		fromFirst := x - firstPeak
		score := fromFirst * fromFirst * (secondPeak - x) * (maxBucketCount - buckets[x])
		if score > bestValleyScore {
			bestValley = x
			bestValleyScore = score
		}
	}

	return bestValley << luminanceShift, nil
}
