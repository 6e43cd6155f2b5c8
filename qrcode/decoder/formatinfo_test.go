package decoder

import (
	"errors"
	"math/bits"
	"testing"
)

func nearestFormatDistance(word int) (int, int) {
	best, bestData := 16, -1
	for _, e := range formatInfoDecodeLookup {
		if d := bits.OnesCount(uint(word ^ e[0])); d < best {
			best, bestData = d, e[1]
		}
	}
	return best, bestData
}

func TestFormatInformationTolerance(t *testing.T) {
	flips := [][]int{
		{}, {0}, {14}, {3, 9}, {1, 7, 13}, {0, 5, 10}, {2, 4, 6, 8}, {11, 12, 13, 14}, {0, 3, 6, 9, 12},
	}
	for _, entry := range formatInfoDecodeLookup {
		for _, f := range flips {
			word := entry[0]
			for _, b := range f {
				word ^= 1 << uint(b)
			}
			got, err := DecodeFormatInformation(word)
			dist, nearest := nearestFormatDistance(word)
			if len(f) <= maxInfoBitErrors {
				if err != nil {
					t.Errorf("%#04x with %d flips: %v", entry[0], len(f), err)
					continue
				}
				if want := newFormatInformation(entry[1]); got != want {
					t.Errorf("%#04x with %d flips = %+v, want %+v", entry[0], len(f), got, want)
				}
				continue
			}
			if dist > maxInfoBitErrors {
				if !errors.Is(err, ErrFormatUndetermined) {
					t.Errorf("%#04x with %d flips: err = %v, want ErrFormatUndetermined", entry[0], len(f), err)
				}
			} else if err != nil || got != newFormatInformation(nearest) {
				t.Errorf("%#04x with %d flips should resolve to its new nearest entry", entry[0], len(f))
			}
		}
	}
}

func TestFormatInformationRoundTrip(t *testing.T) {
	for _, level := range []ECLevel{ECLevelL, ECLevelM, ECLevelQ, ECLevelH} {
		for mask := MaskID(0); mask < 8; mask++ {
			fi := FormatInformation{ECLevel: level, Mask: mask}
			got, err := DecodeFormatInformation(EncodeFormatInformation(fi))
			if err != nil || got != fi {
				t.Errorf("%+v: got %+v, %v", fi, got, err)
			}
		}
	}
	// Level M with mask 0 is the all-zero data word, i.e. the bare XOR mask.
	if w := EncodeFormatInformation(FormatInformation{ECLevel: ECLevelM}); w != formatInfoMaskQR {
		t.Errorf("M/0 = %#x, want %#x", w, formatInfoMaskQR)
	}
}

func TestVersionInformationTolerance(t *testing.T) {
	for number := 7; number <= 40; number++ {
		word := EncodeVersionInformation(number)
		for _, f := range [][]int{{}, {17}, {0, 8}, {2, 10, 16}} {
			w := word
			for _, b := range f {
				w ^= 1 << uint(b)
			}
			v, err := DecodeVersionInformation(w)
			if err != nil {
				t.Errorf("version %d with %d flips: %v", number, len(f), err)
				continue
			}
			if v.Number != number {
				t.Errorf("version %d with %d flips decoded as %d", number, len(f), v.Number)
			}
		}
	}
	if _, err := DecodeVersionInformation(0); !errors.Is(err, ErrVersionUndetermined) {
		t.Errorf("all-zero word: err = %v, want ErrVersionUndetermined", err)
	}
}

func TestInfoPositionsAreDistinct(t *testing.T) {
	for _, dim := range []int{21, 45, 177} {
		seen := map[[2]int]bool{}
		one, two := FormatInfoPositions(dim)
		vOne, vTwo := VersionInfoPositions(dim)
		var all [][2]int
		all = append(all, one[:]...)
		all = append(all, two[:]...)
		all = append(all, vOne[:]...)
		all = append(all, vTwo[:]...)
		for _, p := range all {
			if p[0] < 0 || p[1] < 0 || p[0] >= dim || p[1] >= dim {
				t.Fatalf("dim %d: %v outside the symbol", dim, p)
			}
			if seen[p] {
				t.Errorf("dim %d: %v used twice", dim, p)
			}
			seen[p] = true
		}
	}
}
