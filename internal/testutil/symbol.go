// Package testutil builds QR symbols and renders them into bitmaps and
// images for tests.
package testutil

import (
	"fmt"

	"github.com/ericlevine/qrdecode/qrcode/decoder"
	"github.com/ericlevine/qrdecode/reedsolomon"
)

// Symbol is a module grid indexed [row][col], true for black.
type Symbol [][]bool

// Size returns the side length in modules.
func (s Symbol) Size() int { return len(s) }

// Clone returns a deep copy.
func (s Symbol) Clone() Symbol {
	out := make(Symbol, len(s))
	for i, row := range s {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

// BitWriter accumulates an MSB-first bitstream.
type BitWriter struct {
	bytes []byte
	n     int
}

// Append writes the low width bits of value.
func (w *BitWriter) Append(value, width int) {
	for i := width - 1; i >= 0; i-- {
		if w.n%8 == 0 {
			w.bytes = append(w.bytes, 0)
		}
		if value>>uint(i)&1 == 1 {
			w.bytes[w.n/8] |= 0x80 >> uint(w.n%8)
		}
		w.n++
	}
}

// Bytes returns the bits written so far, zero-padded to a byte boundary.
func (w *BitWriter) Bytes() []byte { return append([]byte(nil), w.bytes...) }

// Len returns the number of bits written.
func (w *BitWriter) Len() int { return w.n }

// Codewords terminates the stream and pads it with 0xEC 0x11 up to capacity bytes.
func (w *BitWriter) Codewords(capacity int) ([]byte, error) {
	if w.n > capacity*8 {
		return nil, fmt.Errorf("testutil: %d bits exceed %d codewords", w.n, capacity)
	}
	w.Append(0, min(4, capacity*8-w.n))
	out := append([]byte(nil), w.bytes...)
	for pad := byte(0xEC); len(out) < capacity; pad ^= 0xEC ^ 0x11 {
		out = append(out, pad)
	}
	return out, nil
}

// EncodeBlocks splits data codewords into the blocks of version/level,
// appends Reed-Solomon codewords to each and interleaves the result.
func EncodeBlocks(v *decoder.Version, level decoder.ECLevel, data []byte) ([]byte, error) {
	ecb := v.ECBlocksForLevel(level)
	if len(data) != ecb.NumDataCodewords() {
		return nil, fmt.Errorf("testutil: %d data codewords, version %d-%s holds %d",
			len(data), v.Number, level, ecb.NumDataCodewords())
	}
	enc := reedsolomon.NewEncoder()
	var blocks [][]byte
	var dataLens []int
	offset := 0
	for _, group := range ecb.Blocks {
		for i := 0; i < group.Count; i++ {
			block := make([]byte, group.DataCodewords+ecb.ECCodewordsPerBlock)
			copy(block, data[offset:offset+group.DataCodewords])
			offset += group.DataCodewords
			enc.Encode(block, ecb.ECCodewordsPerBlock)
			blocks = append(blocks, block)
			dataLens = append(dataLens, group.DataCodewords)
		}
	}

	var out []byte
	longest := dataLens[len(dataLens)-1]
	for i := 0; i < longest; i++ {
		for b, block := range blocks {
			if i < dataLens[b] {
				out = append(out, block[i])
			}
		}
	}
	for i := 0; i < ecb.ECCodewordsPerBlock; i++ {
		for b, block := range blocks {
			out = append(out, block[dataLens[b]+i])
		}
	}
	return out, nil
}

// BuildSymbol lays out data codewords (exactly the data capacity of
// version/level) as a complete symbol with the given mask.
func BuildSymbol(version int, level decoder.ECLevel, mask decoder.MaskID, data []byte) (Symbol, error) {
	v, err := decoder.GetVersionForNumber(version)
	if err != nil {
		return nil, err
	}
	codewords, err := EncodeBlocks(v, level, data)
	if err != nil {
		return nil, err
	}

	tmpl := decoder.Template(v)
	dim := tmpl.Dimension()
	s := make(Symbol, dim)
	for row := range s {
		s[row] = make([]bool, dim)
		for col := range s[row] {
			s[row][col] = tmpl.IsBlack(row, col)
		}
	}

	for i, p := range decoder.DataModules(tmpl) {
		bit := i < 8*len(codewords) && codewords[i/8]&(0x80>>uint(i%8)) != 0
		s[p[0]][p[1]] = bit != mask.Masked(p[0], p[1])
	}

	format := decoder.EncodeFormatInformation(decoder.FormatInformation{ECLevel: level, Mask: mask})
	one, two := decoder.FormatInfoPositions(dim)
	for i := 0; i < 15; i++ {
		bit := format>>uint(14-i)&1 == 1
		s[one[i][0]][one[i][1]] = bit
		s[two[i][0]][two[i][1]] = bit
	}
	if version >= 7 {
		word := decoder.EncodeVersionInformation(version)
		vOne, vTwo := decoder.VersionInfoPositions(dim)
		for i := 0; i < 18; i++ {
			bit := word>>uint(17-i)&1 == 1
			s[vOne[i][0]][vOne[i][1]] = bit
			s[vTwo[i][0]][vTwo[i][1]] = bit
		}
	}
	return s, nil
}

// CodewordModules returns, for each raw (interleaved) codeword index, the
// eight modules that hold its bits, MSB first.
func CodewordModules(version int) ([][8][2]int, error) {
	v, err := decoder.GetVersionForNumber(version)
	if err != nil {
		return nil, err
	}
	cells := decoder.DataModules(decoder.Template(v))
	out := make([][8][2]int, v.TotalCodewords)
	for i := range out {
		copy(out[i][:], cells[8*i:8*i+8])
	}
	return out, nil
}
