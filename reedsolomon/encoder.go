package reedsolomon

// MaxECCodewords is the largest error-correction length used by any QR block.
const MaxECCodewords = 30

// generators[d] is prod_{j<d} (x - alpha^j), highest degree first.
var generators = buildGenerators(QRField, MaxECCodewords)

func buildGenerators(f *Field, maxDegree int) [][]byte {
	gens := make([][]byte, maxDegree+1)
	gens[0] = []byte{1}
	for d := 1; d <= maxDegree; d++ {
		gens[d] = f.mulDescending(gens[d-1], []byte{1, f.Exp(d - 1)})
	}
	return gens
}

// Generator returns the generator polynomial of the given degree, highest
// degree first. The returned slice must not be modified.
func Generator(degree int) []byte {
	if degree < 1 || degree > MaxECCodewords {
		panic("reedsolomon: unsupported generator degree")
	}
	return generators[degree]
}

// Encoder computes error-correction codewords for QR blocks.
type Encoder struct {
	field *Field
}

// NewEncoder creates a new Encoder over QRField.
func NewEncoder() *Encoder {
	return &Encoder{field: QRField}
}

// Encode fills the trailing ecLen bytes of block with the error-correction
// codewords for the data bytes that precede them.
func (e *Encoder) Encode(block []byte, ecLen int) {
	dataLen := len(block) - ecLen
	if dataLen <= 0 {
		panic("reedsolomon: no data bytes provided")
	}
	gen := Generator(ecLen)
	rem := make([]byte, ecLen)
	for i := 0; i < dataLen; i++ {
		factor := block[i] ^ rem[0]
		copy(rem, rem[1:])
		rem[ecLen-1] = 0
		if factor == 0 {
			continue
		}
		for j := 0; j < ecLen; j++ {
			rem[j] ^= e.field.Multiply(gen[j+1], factor)
		}
	}
	copy(block[dataLen:], rem)
}
