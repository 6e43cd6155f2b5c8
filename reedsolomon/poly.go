package reedsolomon

// Polynomials are plain byte slices. Codeword polynomials are stored highest
// degree first, the way they appear in a block. Locator and evaluator
// polynomials built during decoding are stored lowest degree first.

// evalDescending evaluates p (highest degree first) at x using Horner's rule.
func (f *Field) evalDescending(p []byte, x byte) byte {
	var y byte
	for _, c := range p {
		y = f.Multiply(y, x) ^ c
	}
	return y
}

// evalAscending evaluates p (lowest degree first) at x.
func (f *Field) evalAscending(p []byte, x byte) byte {
	var y byte
	for i := len(p) - 1; i >= 0; i-- {
		y = f.Multiply(y, x) ^ p[i]
	}
	return y
}

// evalDerivative evaluates the formal derivative of p (lowest degree first)
// at x. In characteristic 2 only the odd-degree terms survive.
func (f *Field) evalDerivative(p []byte, x byte) byte {
	var y byte
	x2 := f.Multiply(x, x)
	// p'(x) = p1 + p3 x^2 + p5 x^4 + ...
	for i := len(p) - 1; i >= 1; i-- {
		if i%2 == 1 {
			y = f.Multiply(y, x2) ^ p[i]
		}
	}
	return y
}

// mulDescending multiplies two polynomials stored highest degree first.
func (f *Field) mulDescending(a, b []byte) []byte {
	out := make([]byte, len(a)+len(b)-1)
	for i, ca := range a {
		if ca == 0 {
			continue
		}
		for j, cb := range b {
			out[i+j] ^= f.Multiply(ca, cb)
		}
	}
	return out
}
