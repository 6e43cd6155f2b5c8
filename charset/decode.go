package charset

import (
	"bytes"

	"golang.org/x/text/transform"
)

var utf16BEBOM = []byte{0xFE, 0xFF}

// Resolve picks the character set for a payload: the ECI designator when
// it names a known set (eci is -1 when the symbol has none), then a UTF-16
// byte order mark, then the hint, else a guess from the bytes.
func Resolve(payload []byte, eci int, hint string) *ECI {
	if eci >= 0 {
		if e, err := GetECIByValue(eci); err == nil && e != nil {
			return e
		}
	}
	if len(payload) > 2 && bytes.HasPrefix(payload, utf16BEBOM) {
		return ECIUTF16BE
	}
	if hint != "" {
		if e := GetECIByName(hint); e != nil {
			return e
		}
	}
	return Guess(payload)
}

// DecodeWith converts payload from cs to a UTF-8 string. Payloads that do
// not decode are returned unchanged.
func DecodeWith(payload []byte, cs *ECI) string {
	if cs == nil || cs.Encoding == nil {
		return string(payload)
	}
	decoded, _, err := transform.Bytes(cs.Encoding.NewDecoder(), payload)
	if err != nil {
		return string(payload)
	}
	return string(decoded)
}

// Decode is DecodeWith(payload, Resolve(payload, eci, hint)).
func Decode(payload []byte, eci int, hint string) string {
	return DecodeWith(payload, Resolve(payload, eci, hint))
}
