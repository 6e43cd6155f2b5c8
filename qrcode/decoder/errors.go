package decoder

import "errors"

// Hypothesis-local failures. Each one means the current corner or alignment
// candidate is wrong; none of them is fatal to decoding the image.
var (
	ErrVersionUndetermined = errors.New("qrcode/decoder: version information unreadable")
	ErrFormatUndetermined  = errors.New("qrcode/decoder: format information unreadable")
	ErrFixedModuleMismatch = errors.New("qrcode/decoder: too many fixed modules mismatch")
	ErrUncorrectableBlock  = errors.New("qrcode/decoder: uncorrectable codeword block")
	ErrTruncatedData       = errors.New("qrcode/decoder: bitstream truncated")
	ErrUnsupportedMode     = errors.New("qrcode/decoder: unsupported mode")
	ErrFormat              = errors.New("qrcode/decoder: malformed segment")
)

var (
	errInvalidECLevel = errors.New("qrcode/decoder: invalid error correction level")
	errInvalidVersion = errors.New("qrcode/decoder: invalid version number")
)
