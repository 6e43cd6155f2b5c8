// Package reedsolomon implements Reed-Solomon error correction over the QR
// code field GF(2^8).
package reedsolomon

import "fmt"

// Field is GF(256) generated by a primitive polynomial, with generator 2.
// Multiplication and division are exp/log table lookups.
type Field struct {
	expTable  [512]byte
	logTable  [256]int
	primitive int
}

// QRField is GF(256) with primitive polynomial x^8 + x^4 + x^3 + x^2 + 1.
var QRField = NewField(0x011D)

// NewField builds the exp and log tables for the given primitive polynomial.
func NewField(primitive int) *Field {
	f := &Field{primitive: primitive}
	x := 1
	for i := 0; i < 255; i++ {
		f.expTable[i] = byte(x)
		f.logTable[x] = i
		x <<= 1
		if x >= 256 {
			x ^= primitive
		}
	}
	// doubled so Multiply never needs a modulo
	for i := 255; i < len(f.expTable); i++ {
		f.expTable[i] = f.expTable[i-255]
	}
	return f
}

// Exp returns alpha^a. Negative exponents are reduced modulo 255.
func (f *Field) Exp(a int) byte {
	a %= 255
	if a < 0 {
		a += 255
	}
	return f.expTable[a]
}

// Log returns the discrete logarithm of a.
func (f *Field) Log(a byte) int {
	if a == 0 {
		panic("reedsolomon: log(0)")
	}
	return f.logTable[a]
}

// Inverse returns the multiplicative inverse of a.
func (f *Field) Inverse(a byte) byte {
	if a == 0 {
		panic("reedsolomon: inverse(0)")
	}
	return f.expTable[255-f.logTable[a]]
}

// Multiply returns a * b in this field.
func (f *Field) Multiply(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[f.logTable[a]+f.logTable[b]]
}

// Divide returns a / b in this field.
func (f *Field) Divide(a, b byte) byte {
	if b == 0 {
		panic("reedsolomon: division by zero")
	}
	if a == 0 {
		return 0
	}
	return f.expTable[f.logTable[a]+255-f.logTable[b]]
}

// String returns a string representation.
func (f *Field) String() string {
	return fmt.Sprintf("GF(0x%x,256)", f.primitive)
}
