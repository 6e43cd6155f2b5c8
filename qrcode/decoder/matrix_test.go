package decoder

import (
	"errors"
	"testing"
)

// remainderBits is the number of data modules left over after the last codeword.
func remainderBits(version int) int {
	switch {
	case version >= 2 && version <= 6:
		return 7
	case version >= 14 && version <= 20, version >= 28 && version <= 34:
		return 3
	case version >= 21 && version <= 27:
		return 4
	}
	return 0
}

func TestTemplateDataCapacity(t *testing.T) {
	for number := 1; number <= 40; number++ {
		v, _ := GetVersionForNumber(number)
		m := Template(v)
		if m.Dimension() != 17+4*number {
			t.Fatalf("version %d: dimension %d", number, m.Dimension())
		}
		got := len(DataModules(m))
		want := 8*v.TotalCodewords + remainderBits(number)
		if got != want {
			t.Errorf("version %d: %d data modules, want %d", number, got, want)
		}
	}
}

func TestTemplateVersion1(t *testing.T) {
	v, _ := GetVersionForNumber(1)
	m := Template(v)
	if m.fixed != 203 {
		t.Errorf("fixed modules = %d, want 203", m.fixed)
	}
	checks := []struct {
		row, col int
		flags    byte
	}{
		{0, 0, FlagFixed | FlagBlack},
		{1, 1, FlagFixed},
		{3, 3, FlagFixed | FlagBlack},
		{7, 7, FlagFixed},
		{6, 8, FlagFixed | FlagBlack},
		{6, 9, FlagFixed},
		{13, 8, FlagFixed | FlagBlack},
		{8, 0, FlagNonData},
		{20, 8, FlagNonData},
		{8, 20, FlagNonData},
		{20, 20, 0},
		{9, 9, 0},
	}
	for _, c := range checks {
		if got := m.Flags(c.row, c.col); got != c.flags {
			t.Errorf("(%d,%d) flags = %03b, want %03b", c.row, c.col, got, c.flags)
		}
	}
}

func TestTemplateAlignmentPatterns(t *testing.T) {
	v, _ := GetVersionForNumber(7) // centres 6, 22, 38
	m := Template(v)
	for _, c := range [][2]int{{22, 22}, {6, 22}, {22, 6}, {38, 38}, {38, 22}} {
		if m.Flags(c[0], c[1]) != FlagFixed|FlagBlack {
			t.Errorf("alignment centre %v not fixed black", c)
		}
		if m.Flags(c[0]+1, c[1]) != FlagFixed {
			t.Errorf("alignment ring next to %v not fixed white", c)
		}
	}
	if m.Flags(0, 34) != FlagNonData || m.Flags(34, 5) != FlagNonData {
		t.Error("version information areas should be reserved")
	}
}

func TestSampleMatrixFixedMismatch(t *testing.T) {
	v, _ := GetVersionForNumber(1)
	tmpl := Template(v)
	// Invert every fixed module in the first rows until the M budget (15%) is exceeded.
	limit := tmpl.fixed * errCorrPercent[ECLevelM] / 100
	flipped := map[[2]int]bool{}
	for row := 0; row < 21 && len(flipped) <= limit; row++ {
		for col := 0; col < 21 && len(flipped) <= limit; col++ {
			if tmpl.Flags(row, col)&FlagFixed != 0 {
				flipped[[2]int{row, col}] = true
			}
		}
	}
	sample := func(row, col int) (bool, error) {
		return tmpl.IsBlack(row, col) != flipped[[2]int{row, col}], nil
	}
	if _, err := SampleMatrix(v, ECLevelM, sample); !errors.Is(err, ErrFixedModuleMismatch) {
		t.Errorf("err = %v, want ErrFixedModuleMismatch", err)
	}
	if _, err := SampleMatrix(v, ECLevelH, sample); err != nil {
		t.Errorf("level H tolerates %d mismatches: %v", len(flipped), err)
	}
}

func TestUnmaskTouchesOnlyData(t *testing.T) {
	v, _ := GetVersionForNumber(2)
	m := Template(v).clone()
	for mask := MaskID(0); mask < 8; mask++ {
		u := m.unmask(mask)
		for row := 0; row < m.dimension; row++ {
			for col := 0; col < m.dimension; col++ {
				changed := u.IsBlack(row, col) != m.IsBlack(row, col)
				want := m.IsData(row, col) && mask.Masked(row, col)
				if changed != want {
					t.Fatalf("mask %d at (%d,%d): changed=%v want %v", mask, row, col, changed, want)
				}
			}
		}
	}
}
