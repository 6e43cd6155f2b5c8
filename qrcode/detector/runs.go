// Package detector locates QR finder and alignment patterns in a binary
// image and assembles finders into corner hypotheses.
package detector

import (
	"math"
	"sort"

	"github.com/ericlevine/qrdecode"
)

// Tolerances. These were tuned against real captures; keep them as they are.
const (
	// SignatureMaxDeviation is the largest allowed difference between a run
	// and its expected length, as a fraction of the module size.
	SignatureMaxDeviation = 0.35
	// HorVertScanMaxDistance bounds, in modules, how far a vertical hit's
	// centre may sit from the horizontal hit it confirms.
	HorVertScanMaxDistance = 2.0
	// ModuleSizeMinRatio is the smallest accepted ratio between the module
	// sizes of a horizontal hit and the vertical hit confirming it.
	ModuleSizeMinRatio = 0.5
)

// run is a maximal stretch of same-coloured pixels along one scan line.
type run struct {
	start, length int
	black         bool
}

// scanRuns splits positions [from, to) of a scan line into runs.
func scanRuns(from, to int, black func(i int) bool) []run {
	var runs []run
	for i := from; i < to; i++ {
		b := black(i)
		if n := len(runs); n > 0 && runs[n-1].black == b {
			runs[n-1].length++
			continue
		}
		runs = append(runs, run{start: i, length: 1, black: b})
	}
	return runs
}

// signature tests five consecutive run lengths, black first, and returns
// the module size they imply.
type signature func(lengths [5]int, module float64) (float64, bool)

// pattern describes what a locator scans for.
type pattern struct {
	sig signature
	// core is the width of the centre run in modules.
	core float64
}

// rect is a half-open pixel window.
type rect struct {
	left, top, right, bottom int
}

func clipRect(img qrdecode.Bitmap, r rect) rect {
	return rect{
		left:   max(r.left, 0),
		top:    max(r.top, 0),
		right:  min(r.right, img.Width()),
		bottom: min(r.bottom, img.Height()),
	}
}

// matches returns every window of five runs in runs, black first, that
// passes sig, as the index of its first run and the implied module size.
func matches(runs []run, sig signature, module float64) (idx []int, modules []float64) {
	for i := 0; i+4 < len(runs); i++ {
		if !runs[i].black {
			continue
		}
		var lengths [5]int
		for k := range lengths {
			lengths[k] = runs[i+k].length
		}
		if m, ok := sig(lengths, module); ok {
			idx = append(idx, i)
			modules = append(modules, m)
		}
	}
	return idx, modules
}

// locate scans the rows of window for pattern, confirms each horizontal hit
// with a vertical scan over the columns the hits touched, and collapses
// overlapping hits to the one whose centres agree best. Results are in
// discovery order. module is passed through to the signature.
func locate(img qrdecode.Bitmap, window rect, p pattern, module float64) []*Finder {
	window = clipRect(img, window)
	if window.right <= window.left || window.bottom <= window.top {
		return nil
	}

	var hits []*Finder
	byRow := map[int][]*Finder{}
	touched := make([]bool, window.right-window.left)
	for row := window.top; row < window.bottom; row++ {
		runs := scanRuns(window.left, window.right, func(col int) bool { return img.IsBlack(row, col) })
		idx, modules := matches(runs, p.sig, module)
		for k, i := range idx {
			centre := runs[i+2]
			f := &Finder{
				Row:        row,
				Col1:       centre.start,
				Col2:       centre.start + centre.length,
				Module:     modules[k],
				MatchedRow: -1,
				Distance:   math.MaxFloat64,
			}
			hits = append(hits, f)
			byRow[row] = append(byRow[row], f)
			for c := f.Col1; c < f.Col2; c++ {
				touched[c-window.left] = true
			}
		}
	}

	for col := window.left; col < window.right; col++ {
		if !touched[col-window.left] {
			continue
		}
		runs := scanRuns(window.top, window.bottom, func(row int) bool { return img.IsBlack(row, col) })
		idx, modules := matches(runs, p.sig, module)
		for k, i := range idx {
			centre := runs[i+2]
			for row := centre.start; row < centre.start+centre.length; row++ {
				for _, f := range byRow[row] {
					if col >= f.Col1 && col < f.Col2 {
						f.match(col, centre.start, centre.start+centre.length, modules[k])
					}
				}
			}
		}
	}

	return collapse(hits, p.core)
}

// collapse drops unmatched hits and, among hits whose centres lie within
// core modules of each other, keeps the one with the lowest distance.
func collapse(hits []*Finder, core float64) []*Finder {
	var matched []int
	for i, f := range hits {
		if f.MatchedRow >= 0 {
			matched = append(matched, i)
		}
	}
	byDistance := append([]int(nil), matched...)
	sort.SliceStable(byDistance, func(a, b int) bool {
		return hits[byDistance[a]].Distance < hits[byDistance[b]].Distance
	})

	keep := make(map[int]bool)
	var kept []*Finder
	for _, i := range byDistance {
		f := hits[i]
		overlaps := false
		for _, k := range kept {
			radius := core * math.Max(f.Module, k.Module)
			c, kc := f.Center(), k.Center()
			if math.Abs(c.X-kc.X) <= radius && math.Abs(c.Y-kc.Y) <= radius {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, f)
			keep[i] = true
		}
	}

	out := make([]*Finder, 0, len(kept))
	for _, i := range matched {
		if keep[i] {
			out = append(out, hits[i])
		}
	}
	return out
}
