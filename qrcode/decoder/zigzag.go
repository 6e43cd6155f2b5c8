package decoder

// walkState is the position of the zig-zag cursor within its two-column strip.
type walkState int

const (
	// right column, heading up: next is the left column of the same row
	upLeftStep walkState = iota
	// left column, heading up: next is the row above, or the next strip
	upTurn
	// right column, heading down
	downLeftStep
	// left column, heading down
	downTurn
)

// timingColumn is skipped entirely by the data walk.
const timingColumn = 6

// zigzag visits every module in QR placement order: two-column strips from
// the right edge, alternating upward and downward, right column first.
type zigzag struct {
	dimension int
	row, col  int
	state     walkState
}

func newZigzag(dimension int) *zigzag {
	return &zigzag{dimension: dimension, row: dimension - 1, col: dimension - 1, state: upLeftStep}
}

// done reports whether the cursor has left the symbol.
func (z *zigzag) done() bool {
	return z.col < 0
}

// next advances the cursor by one module.
func (z *zigzag) next() {
	switch z.state {
	case upLeftStep:
		z.col--
		z.state = upTurn
	case upTurn:
		if z.row > 0 {
			z.row--
			z.col++
			z.state = upLeftStep
		} else {
			z.nextStrip()
			z.state = downLeftStep
		}
	case downLeftStep:
		z.col--
		z.state = downTurn
	case downTurn:
		if z.row < z.dimension-1 {
			z.row++
			z.col++
			z.state = downLeftStep
		} else {
			z.nextStrip()
			z.state = upLeftStep
		}
	}
}

func (z *zigzag) nextStrip() {
	z.col--
	if z.col == timingColumn {
		z.col--
	}
}

// DataModules returns the data cells of m in placement order.
func DataModules(m *SymbolMatrix) [][2]int {
	var out [][2]int
	for z := newZigzag(m.dimension); !z.done(); z.next() {
		if m.IsData(z.row, z.col) {
			out = append(out, [2]int{z.row, z.col})
		}
	}
	return out
}

// unloadCodewords reads total codewords, MSB first, from the data cells of
// an unmasked matrix. Remainder bits beyond the last codeword are ignored.
func unloadCodewords(m *SymbolMatrix, total int) []byte {
	codewords := make([]byte, 0, total)
	var current byte
	bitsRead := 0
	for z := newZigzag(m.dimension); !z.done() && len(codewords) < total; z.next() {
		if !m.IsData(z.row, z.col) {
			continue
		}
		current <<= 1
		if m.IsBlack(z.row, z.col) {
			current |= 1
		}
		bitsRead++
		if bitsRead == 8 {
			codewords = append(codewords, current)
			current, bitsRead = 0, 0
		}
	}
	return codewords
}
