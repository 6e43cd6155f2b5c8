// Package transform maps QR symbol module coordinates to image pixel
// coordinates and samples the image through that mapping.
package transform

import "github.com/ericlevine/qrdecode"

// Transform maps a module position (x = column, y = row) to the pixel
// coordinates of that module's centre.
type Transform interface {
	Map(x, y float64) qrdecode.Point
}

// Affine is the 6-coefficient map
//
//	px = a*x + b*y + c
//	py = d*x + e*y + f
type Affine struct {
	a, b, c float64
	d, e, f float64
}

// NewAffine returns the affine transform taking each from[i] to to[i].
// The X and Y pixel equations are solved independently.
func NewAffine(from, to [3]qrdecode.Point) (*Affine, error) {
	sys := func(pick func(qrdecode.Point) float64) [][]float64 {
		m := make([][]float64, 3)
		for i := range m {
			m[i] = []float64{from[i].X, from[i].Y, 1, pick(to[i])}
		}
		return m
	}
	xs, err := solve(sys(func(p qrdecode.Point) float64 { return p.X }))
	if err != nil {
		return nil, err
	}
	ys, err := solve(sys(func(p qrdecode.Point) float64 { return p.Y }))
	if err != nil {
		return nil, err
	}
	return &Affine{a: xs[0], b: xs[1], c: xs[2], d: ys[0], e: ys[1], f: ys[2]}, nil
}

// Map implements Transform.
func (t *Affine) Map(x, y float64) qrdecode.Point {
	return qrdecode.Point{
		X: t.a*x + t.b*y + t.c,
		Y: t.d*x + t.e*y + t.f,
	}
}

// Projective is the 8-coefficient homography
//
//	px = (h0*x + h1*y + h2) / (h6*x + h7*y + 1)
//	py = (h3*x + h4*y + h5) / (h6*x + h7*y + 1)
type Projective struct {
	h [8]float64
}

// NewProjective returns the homography taking each from[i] to to[i].
func NewProjective(from, to [4]qrdecode.Point) (*Projective, error) {
	m := make([][]float64, 8)
	for i := 0; i < 4; i++ {
		x, y := from[i].X, from[i].Y
		px, py := to[i].X, to[i].Y
		m[2*i] = []float64{x, y, 1, 0, 0, 0, -x * px, -y * px, px}
		m[2*i+1] = []float64{0, 0, 0, x, y, 1, -x * py, -y * py, py}
	}
	h, err := solve(m)
	if err != nil {
		return nil, err
	}
	var t Projective
	copy(t.h[:], h)
	return &t, nil
}

// Map implements Transform.
func (t *Projective) Map(x, y float64) qrdecode.Point {
	w := t.h[6]*x + t.h[7]*y + 1
	return qrdecode.Point{
		X: (t.h[0]*x + t.h[1]*y + t.h[2]) / w,
		Y: (t.h[3]*x + t.h[4]*y + t.h[5]) / w,
	}
}

// ForCorner returns the affine transform that puts the three finder centres
// at modules (3,3), (dimension-4,3) and (3,dimension-4).
func ForCorner(topLeft, topRight, bottomLeft qrdecode.Point, dimension int) (*Affine, error) {
	far := float64(dimension - 4)
	return NewAffine(
		[3]qrdecode.Point{{X: 3, Y: 3}, {X: far, Y: 3}, {X: 3, Y: far}},
		[3]qrdecode.Point{topLeft, topRight, bottomLeft},
	)
}

// ForCornerAndAlignment extends ForCorner with the bottom-right alignment
// centre at module (dimension-7, dimension-7).
func ForCornerAndAlignment(topLeft, topRight, bottomLeft, alignment qrdecode.Point, dimension int) (*Projective, error) {
	far := float64(dimension - 4)
	align := float64(dimension - 7)
	return NewProjective(
		[4]qrdecode.Point{{X: 3, Y: 3}, {X: far, Y: 3}, {X: 3, Y: far}, {X: align, Y: align}},
		[4]qrdecode.Point{topLeft, topRight, bottomLeft, alignment},
	)
}
