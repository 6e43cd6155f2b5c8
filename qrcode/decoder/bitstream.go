package decoder

import (
	"errors"
	"fmt"

	"github.com/ericlevine/qrdecode/bitutil"
)

const alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// Bitstream is the decoded content of a symbol's data codewords.
type Bitstream struct {
	// Bytes is the concatenation of every segment's output.
	Bytes []byte
	// ECI is the last ECI designator seen, or -1.
	ECI int
}

// DecodeBitStream parses mode segments until a terminator or until fewer
// than four bits remain.
func DecodeBitStream(data []byte, version int) (*Bitstream, error) {
	bs := bitutil.NewBitReader(data)
	out := &Bitstream{ECI: -1}

	for bs.Available() >= 4 {
		modeBits, _ := bs.ReadBits(4)
		mode := Mode(modeBits)
		switch mode {
		case ModeTerminator:
			return out, nil
		case ModeECI:
			value, err := parseECIValue(bs)
			if err != nil {
				return nil, err
			}
			out.ECI = value
		case ModeNumeric, ModeAlphanumeric, ModeByte:
			count, err := readBits(bs, mode.CharacterCountBits(version))
			if err != nil {
				return nil, err
			}
			switch mode {
			case ModeNumeric:
				out.Bytes, err = decodeNumericSegment(bs, out.Bytes, count)
			case ModeAlphanumeric:
				out.Bytes, err = decodeAlphanumericSegment(bs, out.Bytes, count)
			default:
				out.Bytes, err = decodeByteSegment(bs, out.Bytes, count)
			}
			if err != nil {
				return nil, fmt.Errorf("%s segment: %w", mode, err)
			}
		default:
			return nil, fmt.Errorf("%w: indicator %04b", ErrUnsupportedMode, modeBits)
		}
	}
	return out, nil
}

func readBits(bs *bitutil.BitReader, n int) (int, error) {
	v, err := bs.ReadBits(n)
	if errors.Is(err, bitutil.ErrNotEnoughBits) {
		return 0, ErrTruncatedData
	}
	return v, err
}

// parseECIValue reads a 1, 2 or 3 byte designator whose length is given by
// its leading bits: 0xxxxxxx, 10xxxxxx, 110xxxxx.
func parseECIValue(bs *bitutil.BitReader) (int, error) {
	first, err := readBits(bs, 8)
	if err != nil {
		return 0, err
	}
	switch {
	case first&0x80 == 0:
		return first & 0x7F, nil
	case first&0xC0 == 0x80:
		second, err := readBits(bs, 8)
		if err != nil {
			return 0, err
		}
		return (first&0x3F)<<8 | second, nil
	case first&0xE0 == 0xC0:
		rest, err := readBits(bs, 16)
		if err != nil {
			return 0, err
		}
		return (first&0x1F)<<16 | rest, nil
	}
	return 0, fmt.Errorf("%w: bad ECI designator %#x", ErrFormat, first)
}

func decodeByteSegment(bs *bitutil.BitReader, out []byte, count int) ([]byte, error) {
	for i := 0; i < count; i++ {
		val, err := readBits(bs, 8)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(val))
	}
	return out, nil
}

func toAlphaNumericChar(value int) (byte, error) {
	if value >= len(alphanumericChars) {
		return 0, fmt.Errorf("%w: alphanumeric value %d", ErrFormat, value)
	}
	return alphanumericChars[value], nil
}

func decodeAlphanumericSegment(bs *bitutil.BitReader, out []byte, count int) ([]byte, error) {
	for count > 1 {
		nextTwo, err := readBits(bs, 11)
		if err != nil {
			return nil, err
		}
		c1, err := toAlphaNumericChar(nextTwo / 45)
		if err != nil {
			return nil, err
		}
		c2, err := toAlphaNumericChar(nextTwo % 45)
		if err != nil {
			return nil, err
		}
		out = append(out, c1, c2)
		count -= 2
	}
	if count == 1 {
		val, err := readBits(bs, 6)
		if err != nil {
			return nil, err
		}
		c, err := toAlphaNumericChar(val)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// numericGroups maps a group of 1, 2 or 3 digits to its bit width.
var numericGroups = [4]struct{ bits, limit int }{
	1: {4, 10},
	2: {7, 100},
	3: {10, 1000},
}

func decodeNumericSegment(bs *bitutil.BitReader, out []byte, count int) ([]byte, error) {
	for count > 0 {
		digits := min(count, 3)
		g := numericGroups[digits]
		value, err := readBits(bs, g.bits)
		if err != nil {
			return nil, err
		}
		if value >= g.limit {
			return nil, fmt.Errorf("%w: %d-digit group value %d", ErrFormat, digits, value)
		}
		switch digits {
		case 3:
			out = append(out, byte('0'+value/100), byte('0'+value/10%10), byte('0'+value%10))
		case 2:
			out = append(out, byte('0'+value/10), byte('0'+value%10))
		default:
			out = append(out, byte('0'+value))
		}
		count -= digits
	}
	return out, nil
}
