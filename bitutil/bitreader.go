package bitutil

import "errors"

// ErrNotEnoughBits is returned when a read asks for more bits than remain.
var ErrNotEnoughBits = errors.New("bitutil: not enough bits")

// maxRead is the widest single read the window can serve after a refill.
const maxRead = 24

// BitReader reads MSB-first bit fields out of a codeword array through a
// 32-bit sliding window. The window is topped up a byte at a time whenever
// 24 or fewer bits remain buffered.
type BitReader struct {
	data   []byte
	next   int
	window uint32
	held   int
}

// NewBitReader creates a BitReader over data.
func NewBitReader(data []byte) *BitReader {
	r := &BitReader{data: data}
	r.refill()
	return r
}

func (r *BitReader) refill() {
	for r.held <= maxRead && r.next < len(r.data) {
		r.window |= uint32(r.data[r.next]) << uint(maxRead-r.held)
		r.held += 8
		r.next++
	}
}

// Available returns the number of bits that can still be read.
func (r *BitReader) Available() int {
	return r.held + 8*(len(r.data)-r.next)
}

// ReadBits consumes numBits bits (1..24) and returns them right-aligned.
func (r *BitReader) ReadBits(numBits int) (int, error) {
	if numBits < 1 || numBits > maxRead {
		panic("bitreader: numBits out of range")
	}
	if numBits > r.Available() {
		return 0, ErrNotEnoughBits
	}
	v := int(r.window >> uint(32-numBits))
	r.window <<= uint(numBits)
	r.held -= numBits
	r.refill()
	return v, nil
}
