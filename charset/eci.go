// Package charset turns decoded QR payload bytes into text, using the
// symbol's ECI designator when it has one and a guess when it does not.
package charset

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// ErrFormatECI indicates an ECI designator outside the character set range.
var ErrFormatECI = errors.New("charset: invalid ECI value")

// ECI is a character set Extended Channel Interpretation.
type ECI struct {
	Value   int
	Name    string
	Aliases []string
	// Encoding decodes the character set; nil means the bytes are already UTF-8.
	Encoding encoding.Encoding
}

// Pre-defined ECIs.
var (
	ECICp437      = &ECI{0, "Cp437", []string{"IBM437"}, charmap.CodePage437}
	ECIISO8859_1  = &ECI{1, "ISO-8859-1", []string{"ISO8859_1", "latin1"}, charmap.ISO8859_1}
	ECIISO8859_2  = &ECI{4, "ISO-8859-2", []string{"ISO8859_2"}, charmap.ISO8859_2}
	ECIISO8859_3  = &ECI{5, "ISO-8859-3", []string{"ISO8859_3"}, charmap.ISO8859_3}
	ECIISO8859_4  = &ECI{6, "ISO-8859-4", []string{"ISO8859_4"}, charmap.ISO8859_4}
	ECIISO8859_5  = &ECI{7, "ISO-8859-5", []string{"ISO8859_5"}, charmap.ISO8859_5}
	ECIISO8859_6  = &ECI{8, "ISO-8859-6", []string{"ISO8859_6"}, charmap.ISO8859_6}
	ECIISO8859_7  = &ECI{9, "ISO-8859-7", []string{"ISO8859_7"}, charmap.ISO8859_7}
	ECIISO8859_8  = &ECI{10, "ISO-8859-8", []string{"ISO8859_8"}, charmap.ISO8859_8}
	ECIISO8859_9  = &ECI{11, "ISO-8859-9", []string{"ISO8859_9"}, charmap.ISO8859_9}
	ECIISO8859_10 = &ECI{12, "ISO-8859-10", []string{"ISO8859_10"}, charmap.ISO8859_10}
	ECIISO8859_11 = &ECI{13, "ISO-8859-11", []string{"ISO8859_11", "TIS-620"}, charmap.Windows874}
	ECIISO8859_13 = &ECI{15, "ISO-8859-13", []string{"ISO8859_13"}, charmap.ISO8859_13}
	ECIISO8859_14 = &ECI{16, "ISO-8859-14", []string{"ISO8859_14"}, charmap.ISO8859_14}
	ECIISO8859_15 = &ECI{17, "ISO-8859-15", []string{"ISO8859_15"}, charmap.ISO8859_15}
	ECIISO8859_16 = &ECI{18, "ISO-8859-16", []string{"ISO8859_16"}, charmap.ISO8859_16}
	ECISJIS       = &ECI{20, "Shift_JIS", []string{"SJIS"}, japanese.ShiftJIS}
	ECICp1250     = &ECI{21, "windows-1250", []string{"Cp1250"}, charmap.Windows1250}
	ECICp1251     = &ECI{22, "windows-1251", []string{"Cp1251"}, charmap.Windows1251}
	ECICp1252     = &ECI{23, "windows-1252", []string{"Cp1252"}, charmap.Windows1252}
	ECICp1256     = &ECI{24, "windows-1256", []string{"Cp1256"}, charmap.Windows1256}
	ECIUTF16BE    = &ECI{25, "UTF-16BE", []string{"UnicodeBig", "UnicodeBigUnmarked"}, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)}
	ECIUTF8       = &ECI{26, "UTF-8", []string{"UTF8"}, nil}
	ECIASCII      = &ECI{27, "US-ASCII", []string{"ASCII"}, nil}
	ECIBig5       = &ECI{28, "Big5", nil, traditionalchinese.Big5}
	ECIGB18030    = &ECI{29, "GB18030", []string{"GB2312", "EUC_CN", "GBK"}, simplifiedchinese.GB18030}
	ECIEUC_KR     = &ECI{30, "EUC-KR", []string{"EUC_KR"}, korean.EUCKR}
)

var (
	valueToECI map[int]*ECI
	nameToECI  map[string]*ECI
)

func init() {
	valueToECI = make(map[int]*ECI)
	nameToECI = make(map[string]*ECI)

	allECIs := []*ECI{
		ECICp437, ECIISO8859_1, ECIISO8859_2, ECIISO8859_3, ECIISO8859_4,
		ECIISO8859_5, ECIISO8859_6, ECIISO8859_7, ECIISO8859_8, ECIISO8859_9,
		ECIISO8859_10, ECIISO8859_11, ECIISO8859_13, ECIISO8859_14,
		ECIISO8859_15, ECIISO8859_16, ECISJIS, ECICp1250, ECICp1251,
		ECICp1252, ECICp1256, ECIUTF16BE, ECIUTF8, ECIASCII, ECIBig5,
		ECIGB18030, ECIEUC_KR,
	}

	// Designators that share a character set.
	extraValues := map[*ECI][]int{
		ECICp437:     {0, 2},
		ECIISO8859_1: {1, 3},
		ECIASCII:     {27, 170},
	}

	for _, eci := range allECIs {
		if vals, ok := extraValues[eci]; ok {
			for _, v := range vals {
				valueToECI[v] = eci
			}
		} else {
			valueToECI[eci.Value] = eci
		}
		nameToECI[strings.ToUpper(eci.Name)] = eci
		for _, alias := range eci.Aliases {
			nameToECI[strings.ToUpper(alias)] = eci
		}
	}
}

// GetECIByValue returns the ECI for a designator, or nil if the designator
// is valid but names no known character set.
func GetECIByValue(value int) (*ECI, error) {
	if value < 0 || value >= 900 {
		return nil, ErrFormatECI
	}
	return valueToECI[value], nil
}

// GetECIByName returns the ECI for a character set name or alias, ignoring
// case, or nil.
func GetECIByName(name string) *ECI {
	return nameToECI[strings.ToUpper(name)]
}
