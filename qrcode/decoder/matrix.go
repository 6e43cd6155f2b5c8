package decoder

import (
	"fmt"
	"sync"
)

// Cell flags of a SymbolMatrix.
const (
	FlagBlack   byte = 1
	FlagNonData byte = 2
	FlagFixed   byte = 4
)

// SymbolMatrix is a dimension x dimension grid of cell flags, row-major.
// Fixed cells hold the finder, separator, timing and alignment patterns and
// the dark module; NonData cells are the reserved format and version areas.
type SymbolMatrix struct {
	dimension int
	cells     []byte
	fixed     int
}

// Dimension returns the side length in modules.
func (m *SymbolMatrix) Dimension() int { return m.dimension }

// Flags returns the flags at (row, col).
func (m *SymbolMatrix) Flags(row, col int) byte {
	return m.cells[row*m.dimension+col]
}

// IsBlack reports whether the module at (row, col) is black.
func (m *SymbolMatrix) IsBlack(row, col int) bool {
	return m.Flags(row, col)&FlagBlack != 0
}

// IsData reports whether (row, col) carries codeword bits.
func (m *SymbolMatrix) IsData(row, col int) bool {
	return m.Flags(row, col)&(FlagFixed|FlagNonData) == 0
}

func (m *SymbolMatrix) set(row, col int, flags byte) {
	m.cells[row*m.dimension+col] = flags
}

func (m *SymbolMatrix) clone() *SymbolMatrix {
	c := *m
	c.cells = append([]byte(nil), m.cells...)
	return &c
}

var (
	templateOnce [40]sync.Once
	templates    [40]*SymbolMatrix
)

// Template returns the shared, read-only fixed-pattern template for v.
func Template(v *Version) *SymbolMatrix {
	i := v.Number - 1
	templateOnce[i].Do(func() { templates[i] = buildTemplate(v) })
	return templates[i]
}

func buildTemplate(v *Version) *SymbolMatrix {
	dim := v.Dimension()
	m := &SymbolMatrix{dimension: dim, cells: make([]byte, dim*dim)}

	// Finders with their white separators.
	for _, corner := range [][2]int{{0, 0}, {0, dim - 7}, {dim - 7, 0}} {
		for r := -1; r <= 7; r++ {
			for c := -1; c <= 7; c++ {
				row, col := corner[0]+r, corner[1]+c
				if row < 0 || col < 0 || row >= dim || col >= dim {
					continue
				}
				flags := FlagFixed
				if r >= 0 && r <= 6 && c >= 0 && c <= 6 {
					ring := max(abs(r-3), abs(c-3))
					if ring != 2 {
						flags |= FlagBlack
					}
				}
				m.set(row, col, flags)
			}
		}
	}

	// Timing patterns.
	for i := 8; i <= dim-9; i++ {
		flags := FlagFixed
		if i%2 == 0 {
			flags |= FlagBlack
		}
		m.set(6, i, flags)
		m.set(i, 6, flags)
	}

	// Alignment patterns, except where they would overlap a finder.
	centers := v.AlignmentPatternCenters
	last := len(centers) - 1
	for i, row := range centers {
		for j, col := range centers {
			if (i == 0 && j == 0) || (i == 0 && j == last) || (i == last && j == 0) {
				continue
			}
			for r := -2; r <= 2; r++ {
				for c := -2; c <= 2; c++ {
					flags := FlagFixed
					if max(abs(r), abs(c)) != 1 {
						flags |= FlagBlack
					}
					m.set(row+r, col+c, flags)
				}
			}
		}
	}

	// Dark module.
	m.set(dim-8, 8, FlagFixed|FlagBlack)

	reserve := func(cells [][2]int) {
		for _, p := range cells {
			if m.Flags(p[0], p[1])&FlagFixed == 0 {
				m.set(p[0], p[1], FlagNonData)
			}
		}
	}
	formatOne, formatTwo := FormatInfoPositions(dim)
	reserve(formatOne[:])
	reserve(formatTwo[:])
	if v.Number >= 7 {
		versionOne, versionTwo := VersionInfoPositions(dim)
		reserve(versionOne[:])
		reserve(versionTwo[:])
	}

	for _, f := range m.cells {
		if f&FlagFixed != 0 {
			m.fixed++
		}
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SampleMatrix copies the template for v and fills it from sample. Fixed
// cells are compared against their expected colour instead; if more than
// the level's share of them disagree the geometry or format is wrong.
func SampleMatrix(v *Version, ecLevel ECLevel, sample func(row, col int) (bool, error)) (*SymbolMatrix, error) {
	m := Template(v).clone()
	dim := m.dimension
	mismatches := 0
	for row := 0; row < dim; row++ {
		for col := 0; col < dim; col++ {
			black, err := sample(row, col)
			if err != nil {
				return nil, err
			}
			flags := m.Flags(row, col)
			if flags&FlagFixed != 0 {
				if black != (flags&FlagBlack != 0) {
					mismatches++
				}
				continue
			}
			if black {
				m.set(row, col, flags|FlagBlack)
			}
		}
	}
	if limit := m.fixed * errCorrPercent[ecLevel] / 100; mismatches > limit {
		return nil, fmt.Errorf("%w: %d of %d (limit %d)", ErrFixedModuleMismatch, mismatches, m.fixed, limit)
	}
	return m, nil
}

// unmask returns a copy of m with mask applied to every data cell.
func (m *SymbolMatrix) unmask(mask MaskID) *SymbolMatrix {
	out := m.clone()
	for row := 0; row < m.dimension; row++ {
		for col := 0; col < m.dimension; col++ {
			if m.IsData(row, col) && mask.Masked(row, col) {
				out.cells[row*m.dimension+col] ^= FlagBlack
			}
		}
	}
	return out
}
