package decoder

import "math/bits"

const formatInfoMaskQR = 0x5412

// FormatInformation is a symbol's error correction level and data mask.
type FormatInformation struct {
	ECLevel ECLevel
	Mask    MaskID
}

// formatInfoDecodeLookup pairs every masked 15-bit format word with its
// 5 data bits.
var formatInfoDecodeLookup = [32][2]int{
	{0x5412, 0x00}, {0x5125, 0x01}, {0x5E7C, 0x02}, {0x5B4B, 0x03},
	{0x45F9, 0x04}, {0x40CE, 0x05}, {0x4F97, 0x06}, {0x4AA0, 0x07},
	{0x77C4, 0x08}, {0x72F3, 0x09}, {0x7DAA, 0x0A}, {0x789D, 0x0B},
	{0x662F, 0x0C}, {0x6318, 0x0D}, {0x6C41, 0x0E}, {0x6976, 0x0F},
	{0x1689, 0x10}, {0x13BE, 0x11}, {0x1CE7, 0x12}, {0x19D0, 0x13},
	{0x0762, 0x14}, {0x0255, 0x15}, {0x0D0C, 0x16}, {0x083B, 0x17},
	{0x355F, 0x18}, {0x3068, 0x19}, {0x3F31, 0x1A}, {0x3A06, 0x1B},
	{0x24B4, 0x1C}, {0x2183, 0x1D}, {0x2EDA, 0x1E}, {0x2BED, 0x1F},
}

func newFormatInformation(formatInfo int) FormatInformation {
	ecLevel, _ := ECLevelForBits((formatInfo >> 3) & 0x03)
	return FormatInformation{
		ECLevel: ecLevel,
		Mask:    MaskID(formatInfo & 0x07),
	}
}

// DecodeFormatInformation resolves one sampled (still masked) 15-bit format word.
func DecodeFormatInformation(maskedFormatInfo int) (FormatInformation, error) {
	bestDifference := 32
	bestFormatInfo := 0
	for _, entry := range formatInfoDecodeLookup {
		target := entry[0]
		if target == maskedFormatInfo {
			return newFormatInformation(entry[1]), nil
		}
		bitsDiff := bits.OnesCount(uint(maskedFormatInfo ^ target))
		if bitsDiff < bestDifference {
			bestFormatInfo = entry[1]
			bestDifference = bitsDiff
		}
	}
	if bestDifference <= maxInfoBitErrors {
		return newFormatInformation(bestFormatInfo), nil
	}
	return FormatInformation{}, ErrFormatUndetermined
}

// EncodeFormatInformation returns the masked 15-bit format word.
func EncodeFormatInformation(fi FormatInformation) int {
	return formatInfoDecodeLookup[fi.ECLevel.Bits()<<3|int(fi.Mask)][0]
}

// EncodeVersionInformation returns the 18-bit version word for versions 7-40.
func EncodeVersionInformation(number int) int {
	return versionDecodeInfo[number-7]
}

// FormatInfoPositions returns the (row, col) cells of both copies of the
// format word, bit 14 first. The first copy wraps the top-left finder; the
// second is split between the bottom-left and top-right finders.
func FormatInfoPositions(dimension int) (one, two [15][2]int) {
	one = [15][2]int{
		{8, 0}, {8, 1}, {8, 2}, {8, 3}, {8, 4}, {8, 5}, {8, 7}, {8, 8},
		{7, 8}, {5, 8}, {4, 8}, {3, 8}, {2, 8}, {1, 8}, {0, 8},
	}
	for i := 0; i < 7; i++ {
		two[i] = [2]int{dimension - 1 - i, 8}
	}
	for i := 7; i < 15; i++ {
		two[i] = [2]int{8, dimension - 15 + i}
	}
	return one, two
}

// VersionInfoPositions returns the (row, col) cells of both copies of the
// version word, bit 17 first. Bit k of the first copy sits at
// (k/3, dimension-11+k%3); the second copy is its transpose.
func VersionInfoPositions(dimension int) (one, two [18][2]int) {
	for i := 0; i < 18; i++ {
		k := 17 - i
		one[i] = [2]int{k / 3, dimension - 11 + k%3}
		two[i] = [2]int{dimension - 11 + k%3, k / 3}
	}
	return one, two
}
