package decoder

import (
	"errors"
	"fmt"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/reedsolomon"
	"github.com/ericlevine/qrdecode/transform"
)

// Decoded is the outcome of one successful attempt.
type Decoded struct {
	Bytes           []byte
	ECI             int
	ErrorsCorrected int
	Version         *Version
	ECLevel         ECLevel
	Mask            MaskID
}

// Attempt is the state owned by a single corner hypothesis: the finder
// centres, the calibrated version, its affine transform and the format
// information read through it. Attempts share nothing but the image.
type Attempt struct {
	img        qrdecode.Bitmap
	topLeft    qrdecode.Point
	topRight   qrdecode.Point
	bottomLeft qrdecode.Point

	Version *Version
	Format  FormatInformation
	Affine  *transform.Affine
}

// NewAttempt calibrates the affine transform for the estimated version,
// confirms the version from the symbol for versions 7 and up, and reads the
// format information.
func NewAttempt(img qrdecode.Bitmap, topLeft, topRight, bottomLeft qrdecode.Point, estimatedVersion int) (*Attempt, error) {
	v, err := GetVersionForNumber(estimatedVersion)
	if err != nil {
		return nil, err
	}
	a := &Attempt{img: img, topLeft: topLeft, topRight: topRight, bottomLeft: bottomLeft}
	if err := a.calibrate(v); err != nil {
		return nil, err
	}

	if v.Number >= 7 {
		decoded, err := a.readVersion()
		if err != nil {
			return nil, err
		}
		if decoded.Number != v.Number {
			if err := a.calibrate(decoded); err != nil {
				return nil, err
			}
		}
	}

	if a.Format, err = a.readFormat(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Attempt) calibrate(v *Version) error {
	t, err := transform.ForCorner(a.topLeft, a.topRight, a.bottomLeft, v.Dimension())
	if err != nil {
		return err
	}
	a.Version, a.Affine = v, t
	return nil
}

// readInfo samples the given modules through the affine transform, first
// module in the most significant bit.
func (a *Attempt) readInfo(cells [][2]int) (int, error) {
	bits := 0
	for _, c := range cells {
		black, err := transform.Module(a.img, a.Affine, c[0], c[1])
		if err != nil {
			return 0, err
		}
		bits <<= 1
		if black {
			bits |= 1
		}
	}
	return bits, nil
}

func (a *Attempt) readVersion() (*Version, error) {
	one, two := VersionInfoPositions(a.Version.Dimension())
	for _, cells := range [][][2]int{one[:], two[:]} {
		bits, err := a.readInfo(cells)
		if err != nil {
			continue
		}
		if v, err := DecodeVersionInformation(bits); err == nil {
			return v, nil
		}
	}
	return nil, ErrVersionUndetermined
}

func (a *Attempt) readFormat() (FormatInformation, error) {
	one, two := FormatInfoPositions(a.Version.Dimension())
	for _, cells := range [][][2]int{one[:], two[:]} {
		bits, err := a.readInfo(cells)
		if err != nil {
			continue
		}
		if fi, err := DecodeFormatInformation(bits); err == nil {
			return fi, nil
		}
	}
	return FormatInformation{}, ErrFormatUndetermined
}

// Decode samples every module through t and decodes the symbol: fixed
// pattern check, unmasking, zig-zag unload, de-interleave, Reed-Solomon per
// block and bitstream parsing.
func (a *Attempt) Decode(t transform.Transform) (*Decoded, error) {
	m, err := SampleMatrix(a.Version, a.Format.ECLevel, func(row, col int) (bool, error) {
		return transform.Module(a.img, t, row, col)
	})
	if err != nil {
		return nil, err
	}
	return DecodeMatrix(m, a.Version, a.Format)
}

// DecodeMatrix decodes an already sampled symbol matrix.
func DecodeMatrix(m *SymbolMatrix, version *Version, format FormatInformation) (*Decoded, error) {
	codewords := unloadCodewords(m.unmask(format.Mask), version.TotalCodewords)
	if len(codewords) != version.TotalCodewords {
		return nil, fmt.Errorf("%w: only %d codewords in matrix", ErrTruncatedData, len(codewords))
	}

	blocks := GetDataBlocks(codewords, version, format.ECLevel)
	rs := reedsolomon.NewDecoder()
	data := make([]byte, 0, version.ECBlocksForLevel(format.ECLevel).NumDataCodewords())
	corrected := 0
	for i, block := range blocks {
		n, err := rs.Decode(block.Codewords, len(block.Codewords)-block.NumDataCodewords)
		if errors.Is(err, reedsolomon.ErrUncorrectable) {
			return nil, fmt.Errorf("%w: block %d of %d", ErrUncorrectableBlock, i+1, len(blocks))
		}
		if err != nil {
			return nil, err
		}
		corrected += n
		data = append(data, block.Codewords[:block.NumDataCodewords]...)
	}

	stream, err := DecodeBitStream(data, version.Number)
	if err != nil {
		return nil, err
	}
	return &Decoded{
		Bytes:           stream.Bytes,
		ECI:             stream.ECI,
		ErrorsCorrected: corrected,
		Version:         version,
		ECLevel:         format.ECLevel,
		Mask:            format.Mask,
	}, nil
}
