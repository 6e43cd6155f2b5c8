package charset

import (
	"bytes"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sjisStats summarises a payload read as Shift_JIS.
type sjisStats struct {
	valid bool
	// katakana counts half-width katakana bytes.
	katakana int
	// maxKatakanaRun and maxDoubleRun are the longest runs of half-width
	// katakana and of double-byte characters.
	maxKatakanaRun int
	maxDoubleRun   int
}

func scanShiftJIS(payload []byte) sjisStats {
	s := sjisStats{valid: true}
	katakanaRun, doubleRun := 0, 0
	trail := false
	for _, b := range payload {
		switch {
		case trail:
			if b < 0x40 || b == 0x7F || b > 0xFC {
				return sjisStats{}
			}
			trail = false
		case b == 0x80 || b == 0xA0 || b > 0xEF:
			return sjisStats{}
		case b > 0xA0 && b < 0xE0:
			s.katakana++
			doubleRun = 0
			katakanaRun++
			s.maxKatakanaRun = max(s.maxKatakanaRun, katakanaRun)
		case b > 0x7F:
			trail = true
			katakanaRun = 0
			doubleRun++
			s.maxDoubleRun = max(s.maxDoubleRun, doubleRun)
		default:
			katakanaRun, doubleRun = 0, 0
		}
	}
	if trail {
		return sjisStats{}
	}
	return s
}

// scanLatin1 reports whether payload avoids the C1 control range, and how
// many bytes fall on the rarely used high symbols.
func scanLatin1(payload []byte) (valid bool, highOther int) {
	for _, b := range payload {
		switch {
		case b > 0x7F && b < 0xA0:
			return false, 0
		case b > 0x9F && (b < 0xC0 || b == 0xD7 || b == 0xF7):
			highOther++
		}
	}
	return true, highOther
}

// Guess picks the character set a payload without an ECI designator was
// most likely written in: UTF-8, Shift_JIS or ISO-8859-1.
func Guess(payload []byte) *ECI {
	isUTF8 := utf8.Valid(payload)
	multiByte := utf8.RuneCount(payload) < len(payload)
	sjis := scanShiftJIS(payload)
	isLatin1, highOther := scanLatin1(payload)

	switch {
	case isUTF8 && (multiByte || bytes.HasPrefix(payload, utf8BOM)):
		return ECIUTF8
	case sjis.valid && (sjis.maxKatakanaRun >= 3 || sjis.maxDoubleRun >= 3):
		return ECISJIS
	case isLatin1 && sjis.valid:
		// Two katakana in a row, or a payload heavy in high symbols, reads
		// better as Shift_JIS.
		if (sjis.maxKatakanaRun == 2 && sjis.katakana == 2) || highOther*10 >= len(payload) {
			return ECISJIS
		}
		return ECIISO8859_1
	case isLatin1:
		return ECIISO8859_1
	case sjis.valid:
		return ECISJIS
	}
	return ECIUTF8
}
