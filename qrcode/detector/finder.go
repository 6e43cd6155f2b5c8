package detector

import (
	"math"

	"github.com/ericlevine/qrdecode"
)

// Finder is a horizontal pattern hit: the centre run of a 1:1:3:1:1 (or,
// for alignment patterns, n:1:1:1:n) window on Row spanning [Col1, Col2).
// A vertical hit through the same centre sets MatchedRow and Distance.
type Finder struct {
	Row        int
	Col1, Col2 int
	Module     float64

	// MatchedRow is the row of the confirming vertical hit's centre, or -1.
	MatchedRow int
	// Distance is the gap between the horizontal and vertical centres, in
	// modules. math.MaxFloat64 while unmatched.
	Distance float64

	centerY    float64
	vertModule float64
}

var finderRatios = [5]float64{1, 1, 3, 1, 1}

var finderPattern = pattern{sig: finderSignature, core: 3}

// finderSignature accepts five runs whose lengths follow 1:1:3:1:1 of
// span/7, each within SignatureMaxDeviation modules.
func finderSignature(lengths [5]int, _ float64) (float64, bool) {
	total := 0
	for _, l := range lengths {
		total += l
	}
	if total < 7 {
		return 0, false
	}
	module := float64(total) / 7
	maxDev := SignatureMaxDeviation * module
	for i, ratio := range finderRatios {
		if math.Abs(float64(lengths[i])-ratio*module) > maxDev {
			return 0, false
		}
	}
	return module, true
}

// FindFinders returns every finder pattern in img in scan order.
func FindFinders(img qrdecode.Bitmap) []*Finder {
	return locate(img, rect{right: img.Width(), bottom: img.Height()}, finderPattern, 0)
}

// match records a vertical hit at col spanning rows [row1, row2) if its
// centre agrees with f's better than any earlier one.
func (f *Finder) match(col, row1, row2 int, module float64) {
	if math.Min(f.Module, module)/math.Max(f.Module, module) < ModuleSizeMinRatio {
		return
	}
	centerX := float64(f.Col1+f.Col2-1) / 2
	centerY := float64(row1+row2-1) / 2
	d := math.Hypot(float64(col)-centerX, float64(f.Row)-centerY) / ((f.Module + module) / 2)
	if d > HorVertScanMaxDistance || d >= f.Distance {
		return
	}
	f.Distance = d
	f.MatchedRow = int(math.Round(centerY))
	f.centerY = centerY
	f.vertModule = module
}

// Center returns the pattern centre: the horizontal centre of the
// horizontal hit and the vertical centre of its best vertical match.
func (f *Finder) Center() qrdecode.Point {
	p := qrdecode.Point{X: float64(f.Col1+f.Col2-1) / 2, Y: float64(f.Row)}
	if f.MatchedRow >= 0 {
		p.Y = f.centerY
	}
	return p
}

// ModuleSize averages the horizontal and vertical module estimates.
func (f *Finder) ModuleSize() float64 {
	if f.MatchedRow < 0 {
		return f.Module
	}
	return (f.Module + f.vertModule) / 2
}
