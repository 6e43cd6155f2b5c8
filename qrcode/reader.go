// Package qrcode finds and decodes QR symbols in binary images.
//
// Every unordered triple of finder patterns that forms a plausible corner
// is an independent hypothesis. Each one calibrates its own geometry and
// runs the full decode; failures only discard that hypothesis.
package qrcode

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/charset"
	"github.com/ericlevine/qrdecode/qrcode/decoder"
	"github.com/ericlevine/qrdecode/qrcode/detector"
	"github.com/ericlevine/qrdecode/transform"
)

// Reader decodes QR codes from binary images. It is safe for concurrent use.
type Reader struct {
	opts qrdecode.DecodeOptions
	log  *slog.Logger
}

// NewReader creates a Reader. opts may be nil.
func NewReader(opts *qrdecode.DecodeOptions) *Reader {
	r := &Reader{}
	if opts != nil {
		r.opts = *opts
	}
	r.log = r.opts.Log()
	return r
}

// Decode returns the first symbol found in img.
func (r *Reader) Decode(ctx context.Context, img qrdecode.Bitmap) (qrdecode.Result, error) {
	results, err := r.DecodeAll(ctx, img)
	if err != nil {
		return qrdecode.Result{}, err
	}
	return results[0], nil
}

// DecodeAll returns every distinct payload found in img, in the order the
// corner hypotheses were discovered. It returns qrdecode.ErrNotFound when
// nothing decodes.
func (r *Reader) DecodeAll(ctx context.Context, img qrdecode.Bitmap) ([]qrdecode.Result, error) {
	finders := detector.FindFinders(img)
	if len(finders) < 3 {
		r.log.Debug("too few finder patterns", "found", len(finders))
		return nil, qrdecode.ErrNotFound
	}

	corners := r.corners(finders)
	r.log.Debug("corner hypotheses", "finders", len(finders), "corners", len(corners))

	results := make([]*qrdecode.Result, len(corners))
	if r.opts.Parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.opts.Parallelism)
		for i, c := range corners {
			i, c := i, c
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = r.tryCorner(img, i, c)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, c := range corners {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = r.tryCorner(img, i, c)
		}
	}

	var out []qrdecode.Result
	seen := make(map[string]bool)
	for _, res := range results {
		if res == nil || seen[string(res.Bytes)] {
			continue
		}
		seen[string(res.Bytes)] = true
		out = append(out, *res)
	}
	if len(out) == 0 {
		return nil, qrdecode.ErrNotFound
	}
	return out, nil
}

// corners enumerates unordered finder triples and keeps those that form an
// L, up to MaxHypotheses.
func (r *Reader) corners(finders []*detector.Finder) []*detector.Corner {
	var out []*detector.Corner
	for i := 0; i < len(finders); i++ {
		for j := i + 1; j < len(finders); j++ {
			for k := j + 1; k < len(finders); k++ {
				c := detector.NewCorner(finders[i], finders[j], finders[k])
				if c == nil {
					continue
				}
				out = append(out, c)
				if r.opts.MaxHypotheses > 0 && len(out) == r.opts.MaxHypotheses {
					return out
				}
			}
		}
	}
	return out
}

// tryCorner runs one hypothesis to completion and returns its result, or
// nil after logging why it was rejected.
func (r *Reader) tryCorner(img qrdecode.Bitmap, index int, c *detector.Corner) *qrdecode.Result {
	res, stage, err := r.decodeCorner(img, c)
	if err != nil {
		r.log.Debug("hypothesis rejected", "triple", index, "stage", stage, "err", err)
		return nil
	}
	r.log.Debug("hypothesis decoded", "triple", index, "version", res.Version,
		"ecLevel", res.ECLevel, "errorsCorrected", res.ErrorsCorrected)
	return res
}

func (r *Reader) decodeCorner(img qrdecode.Bitmap, c *detector.Corner) (*qrdecode.Result, string, error) {
	version, err := c.EstimateVersion()
	if err != nil {
		return nil, "geometry", err
	}
	tl, tr, bl := c.Centers()
	attempt, err := decoder.NewAttempt(img, tl, tr, bl, version)
	if err != nil {
		return nil, "version/format", err
	}

	decoded, err := attempt.Decode(attempt.Affine)
	if err == nil {
		return r.result(decoded, c, nil), "", nil
	}
	if attempt.Version.Number == 1 {
		return nil, "decode", err
	}

	dim := attempt.Version.Dimension()
	for _, a := range detector.FindAlignments(img, attempt.Affine, c, dim) {
		center := a.Center()
		t, terr := transform.ForCornerAndAlignment(tl, tr, bl, center, dim)
		if terr != nil {
			err = terr
			continue
		}
		d, derr := attempt.Decode(t)
		if derr != nil {
			err = derr
			continue
		}
		return r.result(d, c, &center), "", nil
	}
	return nil, "alignment", err
}

func (r *Reader) result(d *decoder.Decoded, c *detector.Corner, alignment *qrdecode.Point) *qrdecode.Result {
	tl, tr, bl := c.Centers()
	return &qrdecode.Result{
		Bytes:           d.Bytes,
		Text:            charset.Decode(d.Bytes, d.ECI, r.opts.CharacterSet),
		Version:         d.Version.Number,
		Dimension:       d.Version.Dimension(),
		ECLevel:         d.ECLevel.String(),
		Mask:            int(d.Mask),
		ECI:             d.ECI,
		ErrorsCorrected: d.ErrorsCorrected,
		Finders:         [3]qrdecode.Point{tl, tr, bl},
		Alignment:       alignment,
	}
}
