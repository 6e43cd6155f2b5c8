package qrcode

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"testing"

	skip2 "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitrun/qart/qr"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/binarizer"
	"github.com/ericlevine/qrdecode/bitutil"
	"github.com/ericlevine/qrdecode/internal/testutil"
	"github.com/ericlevine/qrdecode/qrcode/decoder"
	"github.com/ericlevine/qrdecode/transform"
)

// skip2 bitmaps carry a four module quiet zone of their own.
const skip2Quiet = 4

func skip2Bitmap(t *testing.T, content string, level skip2.RecoveryLevel, scale int) *bitutil.BitMatrix {
	t.Helper()
	s, err := testutil.Skip2(content, level)
	require.NoError(t, err)
	return testutil.Render(s, scale, 0)
}

func threshold(t *testing.T, img image.Image) *bitutil.BitMatrix {
	t.Helper()
	bm, err := binarizer.FromImage(img, 128)
	require.NoError(t, err)
	return bm
}

// sideBySide draws symbols left to right on one bitmap.
func sideBySide(scale int, symbols ...testutil.Symbol) *bitutil.BitMatrix {
	width, height := 0, 0
	for _, s := range symbols {
		width += s.Size()
		height = max(height, s.Size())
	}
	bm := bitutil.NewBitMatrixWithSize(width*scale, height*scale)
	left := 0
	for _, s := range symbols {
		for row, cells := range s {
			for col, black := range cells {
				if black {
					bm.SetRegion((left+col)*scale, row*scale, scale, scale)
				}
			}
		}
		left += s.Size()
	}
	return bm
}

func TestDecodeSkip2RoundTrip(t *testing.T) {
	contents := []string{
		"1234567890",
		"HELLO WORLD",
		"Hello, World! This is a test.",
		"https://example.com/some/longer/path?with=query&and=more#fragment",
		"héllo wörld",
	}
	levels := map[string]skip2.RecoveryLevel{
		"L": skip2.Low, "M": skip2.Medium, "Q": skip2.High, "H": skip2.Highest,
	}
	r := NewReader(nil)
	for name, level := range levels {
		for _, content := range contents {
			t.Run(name+"/"+content, func(t *testing.T) {
				res, err := r.Decode(context.Background(), skip2Bitmap(t, content, level, 4))
				require.NoError(t, err)
				assert.Equal(t, content, string(res.Bytes))
				assert.Equal(t, content, res.Text)
				assert.Equal(t, name, res.ECLevel)
				assert.Equal(t, 17+4*res.Version, res.Dimension)
				assert.Equal(t, 0, res.ErrorsCorrected)
			})
		}
	}
}

func TestDecodeLargeVersion(t *testing.T) {
	content := string(bytes.Repeat([]byte("0123456789abcdef"), 40))
	res, err := NewReader(nil).Decode(context.Background(), skip2Bitmap(t, content, skip2.Medium, 3))
	require.NoError(t, err)
	assert.Equal(t, content, string(res.Bytes))
	assert.GreaterOrEqual(t, res.Version, 7)
}

func TestDecodeRotated(t *testing.T) {
	s, err := testutil.Skip2("rotate me, please", skip2.Medium)
	require.NoError(t, err)

	bm := testutil.Render(s, 6, 0)
	for turns := 1; turns <= 3; turns++ {
		bm = bm.Rotate90()
		res, err := NewReader(nil).Decode(context.Background(), bm)
		require.NoError(t, err, "%d quarter turns", turns)
		assert.Equal(t, "rotate me, please", res.Text, "%d quarter turns", turns)
	}

	img := testutil.Image(s, 6, 0)
	for _, angle := range []float64{8, -12} {
		bm, err := binarizer.FromImage(testutil.Rotate(img, angle), 128)
		require.NoError(t, err)
		res, err := NewReader(nil).Decode(context.Background(), bm)
		require.NoError(t, err, "angle %v", angle)
		assert.Equal(t, "rotate me, please", res.Text, "angle %v", angle)
	}
}

func TestDecodeThroughAlignment(t *testing.T) {
	const content = "perspective needs the bottom-right alignment mark"
	s, err := testutil.Skip2(content, skip2.Medium)
	require.NoError(t, err)
	require.Equal(t, 33+2*skip2Quiet, s.Size())

	// The bottom-right corner is pulled well inside the parallelogram the
	// three finders imply, so the affine grid drifts by several modules.
	quad := [4]qrdecode.Point{{X: 40, Y: 40}, {X: 340, Y: 50}, {X: 45, Y: 350}, {X: 320, Y: 320}}
	const side = 380
	warped, err := testutil.Warp(s, side, side, quad)
	require.NoError(t, err)

	n := float64(s.Size())
	toImage, err := transform.NewProjective([4]qrdecode.Point{{X: 0, Y: 0}, {X: n, Y: 0}, {X: 0, Y: n}, {X: n, Y: n}}, quad)
	require.NoError(t, err)
	// Centre of module (26, 26) plus the quiet zone, as a pixel index.
	mark := toImage.Map(26+skip2Quiet+0.5, 26+skip2Quiet+0.5)
	mark.X -= 0.5
	mark.Y -= 0.5

	upsideDown := warped.Rotate90().Rotate90()
	tests := []struct {
		name string
		img  *bitutil.BitMatrix
		mark qrdecode.Point
	}{
		{"upright", warped, mark},
		{"upside down", upsideDown, qrdecode.Point{X: side - 1 - mark.X, Y: side - 1 - mark.Y}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewReader(nil).Decode(context.Background(), tt.img)
			require.NoError(t, err)
			assert.Equal(t, content, res.Text)
			assert.Equal(t, 4, res.Version)
			require.NotNil(t, res.Alignment)
			assert.InDelta(t, tt.mark.X, res.Alignment.X, 1.5)
			assert.InDelta(t, tt.mark.Y, res.Alignment.Y, 1.5)

			// The same corner without the alignment mark does not decode.
			attempt, err := decoder.NewAttempt(tt.img, res.Finders[0], res.Finders[1], res.Finders[2], res.Version)
			require.NoError(t, err)
			_, err = attempt.Decode(attempt.Affine)
			assert.Error(t, err)
		})
	}
}

func TestDecodeQartScenario(t *testing.T) {
	s, err := testutil.Qart("01234567", qr.M)
	require.NoError(t, err)
	res, err := NewReader(nil).Decode(context.Background(), testutil.Render(s, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37}, res.Bytes)
	assert.Equal(t, 1, res.Version)
	assert.Equal(t, "M", res.ECLevel)
	assert.Equal(t, 0, res.Mask)
	assert.Equal(t, 0, res.ErrorsCorrected)
	assert.Equal(t, -1, res.ECI)
	assert.Nil(t, res.Alignment)
}

func TestDecodeCorrectsDamage(t *testing.T) {
	s, err := testutil.Skip2("HI", skip2.Medium)
	require.NoError(t, err)
	require.Equal(t, 21+2*skip2Quiet, s.Size())

	// The four bottom-right modules hold bits of the first codeword.
	for _, p := range [][2]int{{20, 20}, {20, 19}, {19, 20}, {19, 19}} {
		row, col := p[0]+skip2Quiet, p[1]+skip2Quiet
		s[row][col] = !s[row][col]
	}
	res, err := NewReader(nil).Decode(context.Background(), testutil.Render(s, 4, 0))
	require.NoError(t, err)
	assert.Equal(t, "HI", res.Text)
	assert.Equal(t, 1, res.ErrorsCorrected)
}

func TestDecodeMatchesGoqr(t *testing.T) {
	for _, content := range []string{"differential", "HTTPS://EXAMPLE.COM/ABC", "98765432109876543210"} {
		s, err := testutil.Skip2(content, skip2.Medium)
		require.NoError(t, err)
		img := testutil.Image(s, 6, 0)

		theirs, err := testutil.Recognize(img)
		require.NoError(t, err)
		require.Len(t, theirs, 1)

		ours, err := NewReader(nil).Decode(context.Background(), threshold(t, img))
		require.NoError(t, err)
		assert.Equal(t, theirs[0], ours.Bytes)
	}
}

func TestDecodeAllFindsEverySymbol(t *testing.T) {
	a, err := testutil.Skip2("first symbol", skip2.Medium)
	require.NoError(t, err)
	b, err := testutil.Skip2("SECOND", skip2.High)
	require.NoError(t, err)
	img := sideBySide(4, a, b)

	sequential, err := NewReader(nil).DecodeAll(context.Background(), img)
	require.NoError(t, err)
	var texts []string
	for _, res := range sequential {
		texts = append(texts, res.Text)
	}
	assert.ElementsMatch(t, []string{"first symbol", "SECOND"}, texts)

	parallel, err := NewReader(&qrdecode.DecodeOptions{Parallelism: 4}).DecodeAll(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
}

func TestDecodeMaxHypotheses(t *testing.T) {
	r := NewReader(&qrdecode.DecodeOptions{MaxHypotheses: 1})
	res, err := r.Decode(context.Background(), skip2Bitmap(t, "just one", skip2.Low, 4))
	require.NoError(t, err)
	assert.Equal(t, "just one", res.Text)
}

func TestDecodeNotFound(t *testing.T) {
	var logs bytes.Buffer
	r := NewReader(&qrdecode.DecodeOptions{
		Logger: slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	_, err := r.Decode(context.Background(), bitutil.NewBitMatrix(100))
	assert.ErrorIs(t, err, qrdecode.ErrNotFound)
	assert.Contains(t, logs.String(), "too few finder patterns")
}

func TestDecodeCancelled(t *testing.T) {
	img := skip2Bitmap(t, "cancelled", skip2.Low, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, parallelism := range []int{0, 4} {
		_, err := NewReader(&qrdecode.DecodeOptions{Parallelism: parallelism}).DecodeAll(ctx, img)
		assert.True(t, errors.Is(err, context.Canceled), "parallelism %d: %v", parallelism, err)
	}
}

func TestDecodeCharacterSetHint(t *testing.T) {
	// Without an ECI the hint decides how 0xE9 reads.
	s, err := testutil.Skip2("caf\xe9", skip2.Medium)
	require.NoError(t, err)
	r := NewReader(&qrdecode.DecodeOptions{CharacterSet: "windows-1252"})
	res, err := r.Decode(context.Background(), testutil.Render(s, 4, 0))
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9"), res.Bytes)
	assert.Equal(t, "café", res.Text)
}
