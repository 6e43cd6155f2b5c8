package reedsolomon

import "errors"

// ErrUncorrectable is returned when a block holds more errors than its
// error-correction codewords can repair.
var ErrUncorrectable = errors.New("reedsolomon: uncorrectable block")

// Decoder repairs QR blocks in place.
type Decoder struct {
	field *Field
}

// NewDecoder creates a new Decoder over QRField.
func NewDecoder() *Decoder {
	return &Decoder{field: QRField}
}

// Decode corrects errors in block, whose last ecLen bytes are the
// error-correction codewords, and returns the number of bytes it changed.
// On ErrUncorrectable the block is left untouched.
func (d *Decoder) Decode(block []byte, ecLen int) (int, error) {
	if ecLen < 1 || ecLen >= len(block) {
		panic("reedsolomon: bad error-correction length")
	}
	syndromes, clean := d.syndromes(block, ecLen)
	if clean {
		return 0, nil
	}
	sigma, numErrors := d.berlekampMassey(syndromes)
	if numErrors > ecLen/2 {
		return 0, ErrUncorrectable
	}
	positions := d.chienSearch(sigma, len(block))
	if len(positions) != numErrors {
		return 0, ErrUncorrectable
	}
	omega := d.evaluator(syndromes, sigma)
	magnitudes := make([]byte, len(positions))
	for i, pos := range positions {
		m, err := d.forney(sigma, omega, len(block)-1-pos)
		if err != nil {
			return 0, err
		}
		magnitudes[i] = m
	}
	for i, pos := range positions {
		block[pos] ^= magnitudes[i]
	}
	return len(positions), nil
}

// syndromes evaluates the received polynomial at alpha^0 .. alpha^(ecLen-1).
func (d *Decoder) syndromes(block []byte, ecLen int) ([]byte, bool) {
	s := make([]byte, ecLen)
	clean := true
	for j := range s {
		s[j] = d.field.evalDescending(block, d.field.Exp(j))
		if s[j] != 0 {
			clean = false
		}
	}
	return s, clean
}

// berlekampMassey returns the error locator sigma (lowest degree first, with
// sigma[0] == 1) and the register length L, the estimated error count.
func (d *Decoder) berlekampMassey(s []byte) ([]byte, int) {
	f := d.field
	sigma := make([]byte, len(s)+1)
	prev := make([]byte, len(s)+1)
	sigma[0], prev[0] = 1, 1
	length, shift := 0, 1
	var prevDisc byte = 1

	for n := range s {
		disc := s[n]
		for i := 1; i <= length; i++ {
			disc ^= f.Multiply(sigma[i], s[n-i])
		}
		if disc == 0 {
			shift++
			continue
		}
		scale := f.Divide(disc, prevDisc)
		if 2*length <= n {
			saved := append([]byte(nil), sigma...)
			for i := 0; i+shift < len(sigma); i++ {
				sigma[i+shift] ^= f.Multiply(scale, prev[i])
			}
			length = n + 1 - length
			prev = saved
			prevDisc = disc
			shift = 1
		} else {
			for i := 0; i+shift < len(sigma); i++ {
				sigma[i+shift] ^= f.Multiply(scale, prev[i])
			}
			shift++
		}
	}
	return sigma[:length+1], length
}

// chienSearch returns the block indexes whose locators are roots of sigma.
// Index i holds the coefficient of x^(n-1-i), so its locator is
// alpha^(n-1-i) and the root tested is alpha^-(n-1-i).
func (d *Decoder) chienSearch(sigma []byte, n int) []int {
	var positions []int
	for i := 0; i < n; i++ {
		if d.field.evalAscending(sigma, d.field.Exp(-(n-1-i))) == 0 {
			positions = append(positions, i)
		}
	}
	return positions
}

// evaluator computes omega = S(x) * sigma(x) mod x^len(s).
func (d *Decoder) evaluator(s, sigma []byte) []byte {
	omega := make([]byte, len(s))
	for i, sc := range s {
		for j, lc := range sigma {
			if i+j >= len(omega) {
				break
			}
			omega[i+j] ^= d.field.Multiply(sc, lc)
		}
	}
	return omega
}

// forney computes the error magnitude at the locator alpha^power as
// X * omega(X^-1) / sigma'(X^-1).
func (d *Decoder) forney(sigma, omega []byte, power int) (byte, error) {
	f := d.field
	x := f.Exp(power)
	xInv := f.Exp(-power)
	denom := f.evalDerivative(sigma, xInv)
	if denom == 0 {
		return 0, ErrUncorrectable
	}
	return f.Multiply(x, f.Divide(f.evalAscending(omega, xInv), denom)), nil
}
