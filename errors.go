package qrdecode

import "errors"

// ErrNotFound is returned when no QR code could be decoded from the image:
// fewer than three usable finder patterns, or every candidate corner failed.
var ErrNotFound = errors.New("qr code not found")
