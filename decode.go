package qrdecode

import (
	"io"
	"log/slog"
)

// DecodeOptions configures QR decoding behavior. The zero value is valid.
type DecodeOptions struct {
	// Parallelism is the number of corner hypotheses evaluated concurrently.
	// Values below 2 evaluate them sequentially.
	Parallelism int

	// MaxHypotheses caps the number of candidate corners tried. Zero means no cap.
	MaxHypotheses int

	// CharacterSet names the character set used for Result.Text when the
	// symbol carries no ECI designator. Empty means guess.
	CharacterSet string

	// Logger receives debug records for rejected hypotheses. Nil discards them.
	Logger *slog.Logger
}

// Log returns the configured logger, or one that discards everything.
func (o *DecodeOptions) Log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}
