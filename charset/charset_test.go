package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetECIByValue(t *testing.T) {
	for value, want := range map[int]*ECI{
		0: ECICp437, 2: ECICp437, 3: ECIISO8859_1, 20: ECISJIS, 26: ECIUTF8, 170: ECIASCII,
	} {
		got, err := GetECIByValue(value)
		require.NoError(t, err)
		assert.Same(t, want, got, "value %d", value)
	}

	got, err := GetECIByValue(899)
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, value := range []int{-1, 900, 100000} {
		_, err := GetECIByValue(value)
		assert.ErrorIs(t, err, ErrFormatECI)
	}
}

func TestGetECIByName(t *testing.T) {
	assert.Same(t, ECISJIS, GetECIByName("shift_jis"))
	assert.Same(t, ECISJIS, GetECIByName("SJIS"))
	assert.Same(t, ECIISO8859_1, GetECIByName("latin1"))
	assert.Same(t, ECIGB18030, GetECIByName("GBK"))
	assert.Nil(t, GetECIByName("klingon"))
}

func TestGuess(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		want  *ECI
	}{
		{"ascii", []byte("hello"), ECIISO8859_1},
		{"utf-8", []byte("h\xc3\xa9llo"), ECIUTF8},
		{"latin-1", []byte("caf\xe9"), ECIISO8859_1},
		{"katakana", []byte{0xB1, 0xB2, 0xB3}, ECISJIS},
		{"kanji", []byte{0x93, 0xFA, 0x96, 0x7B, 0x8C, 0xEA}, ECISJIS},
		{"utf-8 bom", []byte("\xef\xbb\xbfplain"), ECIUTF8},
		{"c1 control", []byte{0x85, 0x41}, ECISJIS},
		{"two katakana", []byte{0xB1, 0xB2}, ECISJIS},
		{"dangling lead byte", []byte{0x41, 0xE9}, ECIISO8859_1},
	}
	for _, tt := range tests {
		assert.Same(t, tt.want, Guess(tt.bytes), tt.name)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		eci     int
		hint    string
		want    string
	}{
		{"eci utf-8", []byte("\xc3\xa9t\xc3\xa9"), 26, "", "été"},
		{"eci latin-1", []byte("\xe9t\xe9"), 3, "", "été"},
		{"eci shift_jis", []byte{0x93, 0xFA, 0x96, 0x7B}, 20, "", "日本"},
		{"eci cyrillic", []byte{0xCF, 0xF0, 0xE8}, 22, "", "При"},
		{"eci overrides hint", []byte("\xe9"), 3, "UTF-8", "é"},
		{"unknown eci falls back to hint", []byte("\xe9"), 899, "ISO-8859-1", "é"},
		{"hint", []byte{0xB1, 0xB2}, -1, "Shift_JIS", "ｱｲ"},
		{"guess", []byte("plain"), -1, "", "plain"},
		{"guess katakana", []byte{0xB1, 0xB2, 0xB3}, -1, "", "ｱｲｳ"},
		{"utf-16 bom overrides hint", []byte{0xFE, 0xFF, 0x00, 0x41, 0x00, 0xE9}, -1, "ISO-8859-1", "Aé"},
		{"eci overrides utf-16 bom", []byte{0xFE, 0xFF}, 3, "", "þÿ"},
		{"utf-16 eci without bom", []byte{0x00, 0x41}, 25, "", "A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Decode(tt.payload, tt.eci, tt.hint), tt.name)
	}
}

func TestResolve(t *testing.T) {
	assert.Same(t, ECIUTF16BE, Resolve([]byte{0xFE, 0xFF, 0x00, 0x41}, -1, "Shift_JIS"))
	assert.Same(t, ECISJIS, Resolve([]byte("abc"), -1, "sjis"))
	assert.Same(t, ECIISO8859_1, Resolve([]byte("abc"), -1, "no-such-charset"))
	// A lone byte order mark is too short to be UTF-16 text.
	assert.Same(t, ECIISO8859_1, Resolve([]byte{0xFE, 0xFF}, -1, ""))
}
