package decoder

// Mode is a 4-bit segment mode indicator.
type Mode int

const (
	ModeTerminator   Mode = 0x0
	ModeNumeric      Mode = 0x1
	ModeAlphanumeric Mode = 0x2
	ModeByte         Mode = 0x4
	ModeECI          Mode = 0x7
)

// characterCountBits contains [v1-9, v10-26, v27-40] count field widths.
var characterCountBits = map[Mode][3]int{
	ModeNumeric:      {10, 12, 14},
	ModeAlphanumeric: {9, 11, 13},
	ModeByte:         {8, 16, 16},
}

// CharacterCountBits returns the width of the character count field for
// this mode in the given version.
func (m Mode) CharacterCountBits(version int) int {
	var offset int
	if version <= 9 {
		offset = 0
	} else if version <= 26 {
		offset = 1
	} else {
		offset = 2
	}
	return characterCountBits[m][offset]
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeTerminator:
		return "terminator"
	case ModeNumeric:
		return "numeric"
	case ModeAlphanumeric:
		return "alphanumeric"
	case ModeByte:
		return "byte"
	case ModeECI:
		return "eci"
	}
	return "unknown"
}
