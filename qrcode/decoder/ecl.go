// Package decoder turns a calibrated view of a QR symbol into its payload:
// version and format information, module sampling, unmasking, codeword
// de-interleaving, Reed-Solomon correction and bitstream parsing.
package decoder

// ECLevel represents the four QR code error correction levels.
type ECLevel int

const (
	ECLevelL ECLevel = iota // ~7% correction
	ECLevelM                // ~15% correction
	ECLevelQ                // ~25% correction
	ECLevelH                // ~30% correction
)

// errCorrPercent bounds the share of fixed modules that may read wrong.
var errCorrPercent = [4]int{7, 15, 25, 30}

// Bits returns the 2-bit encoding of this level.
func (ecl ECLevel) Bits() int {
	switch ecl {
	case ECLevelL:
		return 0x01
	case ECLevelM:
		return 0x00
	case ECLevelQ:
		return 0x03
	case ECLevelH:
		return 0x02
	}
	return 0
}

// Ordinal returns the ordinal position (L=0, M=1, Q=2, H=3).
func (ecl ECLevel) Ordinal() int {
	return int(ecl)
}

// String returns the level name.
func (ecl ECLevel) String() string {
	switch ecl {
	case ECLevelL:
		return "L"
	case ECLevelM:
		return "M"
	case ECLevelQ:
		return "Q"
	case ECLevelH:
		return "H"
	}
	return "?"
}

// ECLevelForBits returns the ECLevel for the given 2-bit value.
func ECLevelForBits(bits int) (ECLevel, error) {
	switch bits {
	case 0:
		return ECLevelM, nil
	case 1:
		return ECLevelL, nil
	case 2:
		return ECLevelH, nil
	case 3:
		return ECLevelQ, nil
	}
	return 0, errInvalidECLevel
}
