package testutil

import (
	"image"

	"github.com/liyue201/goqr"
	skip2 "github.com/skip2/go-qrcode"
	"github.com/vitrun/qart/qr"
)

// Skip2 encodes content with github.com/skip2/go-qrcode, which chooses the
// version and mask itself. The grid includes skip2's own quiet zone.
func Skip2(content string, level skip2.RecoveryLevel) (Symbol, error) {
	code, err := skip2.New(content, level)
	if err != nil {
		return nil, err
	}
	return Symbol(code.Bitmap()), nil
}

// Qart encodes content with github.com/vitrun/qart/qr, which always picks
// the smallest version and mask 0.
func Qart(content string, level qr.Level) (Symbol, error) {
	code, err := qr.Encode(content, level)
	if err != nil {
		return nil, err
	}
	s := make(Symbol, code.Size)
	for y := range s {
		s[y] = make([]bool, code.Size)
		for x := range s[y] {
			s[y][x] = code.Black(x, y)
		}
	}
	return s, nil
}

// Recognize decodes img with github.com/liyue201/goqr and returns every payload.
func Recognize(img image.Image) ([][]byte, error) {
	codes, err := goqr.Recognize(img)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, len(codes))
	for _, c := range codes {
		payload := make([]byte, 0, len(c.Payload))
		for _, b := range c.Payload {
			payload = append(payload, byte(b))
		}
		out = append(out, payload)
	}
	return out, nil
}
