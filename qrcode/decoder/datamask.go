package decoder

// MaskID identifies one of the eight data mask patterns.
type MaskID int

// maskPredicates report whether the module at (row i, column j) is inverted.
var maskPredicates = [8]func(i, j int) bool{
	func(i, j int) bool { return (i+j)&0x01 == 0 },                       // 000
	func(i, j int) bool { return i&0x01 == 0 },                           // 001
	func(i, j int) bool { return j%3 == 0 },                              // 010
	func(i, j int) bool { return (i+j)%3 == 0 },                          // 011
	func(i, j int) bool { return ((i/2)+(j/3))&0x01 == 0 },               // 100
	func(i, j int) bool { return (i*j)%6 == 0 },                          // 101
	func(i, j int) bool { return ((i * j) % 6) < 3 },                     // 110
	func(i, j int) bool { return ((i + j + ((i * j) % 3)) & 0x01) == 0 }, // 111
}

// Masked reports whether mask m inverts the module at (row, col).
func (m MaskID) Masked(row, col int) bool {
	return maskPredicates[m](row, col)
}
