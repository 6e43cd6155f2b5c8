package detector

import "errors"

// ErrVersionOutOfRange is returned when a corner's finder spacing implies
// a symbol larger than version 40.
var ErrVersionOutOfRange = errors.New("qrcode/detector: estimated version out of range")
