package emath

import "fmt"

// Bicubic interpolation over a plane of samples. For the unit cell
// with top-left corner (x,y) we gather the four corner values and
// finite-difference estimates of the derivatives at the corners, and
// convert them into the coefficients of a bicubic patch:
//
//   f(fx,fy) = sum_{i,j=0..3} a(j,i) * fx^j * fy^i
//
// https://en.wikipedia.org/wiki/Bicubic_interpolation

// Rows of the standard matrix that maps the 16 corner constraints
// onto the 16 polynomial coefficients.
var hermiteRows = [16][16]float64{
	{ 1, 0, 0, 0,  0, 0, 0, 0,  0, 0, 0, 0,  0, 0, 0, 0},
	{ 0, 0, 0, 0,  1, 0, 0, 0,  0, 0, 0, 0,  0, 0, 0, 0},
	{-3, 3, 0, 0, -2,-1, 0, 0,  0, 0, 0, 0,  0, 0, 0, 0},
	{ 2,-2, 0, 0,  1, 1, 0, 0,  0, 0, 0, 0,  0, 0, 0, 0},
	{ 0, 0, 0, 0,  0, 0, 0, 0,  1, 0, 0, 0,  0, 0, 0, 0},
	{ 0, 0, 0, 0,  0, 0, 0, 0,  0, 0, 0, 0,  1, 0, 0, 0},
	{ 0, 0, 0, 0,  0, 0, 0, 0, -3, 3, 0, 0, -2,-1, 0, 0},
	{ 0, 0, 0, 0,  0, 0, 0, 0,  2,-2, 0, 0,  1, 1, 0, 0},
	{-3, 0, 3, 0,  0, 0, 0, 0, -2, 0,-1, 0,  0, 0, 0, 0},
	{ 0, 0, 0, 0, -3, 0, 3, 0,  0, 0, 0, 0, -2, 0,-1, 0},
	{ 9,-9,-9, 9,  6, 3,-6,-3,  6,-6, 3,-3,  4, 2, 2, 1},
	{-6, 6, 6,-6, -3,-3, 3, 3, -4, 4,-2, 2, -2,-2,-1,-1},
	{ 2, 0,-2, 0,  0, 0, 0, 0,  1, 0, 1, 0,  0, 0, 0, 0},
	{ 0, 0, 0, 0,  2, 0,-2, 0,  0, 0, 0, 0,  1, 0, 1, 0},
	{-6, 6, 6,-6, -4,-2, 4, 2, -3, 3,-3, 3, -2,-1,-2,-1},
	{ 4,-4,-4, 4,  2, 2,-2,-2,  2,-2, 2,-2,  1, 1, 1, 1},
}

// hermiteBasis is built once, and only ever read.
var hermiteBasis = newHermiteBasis()

func newHermiteBasis() *Matrix {
	m, _ := NewMatrix(16, 16)
	for r:=0; r<16; r++ {
		for c:=0; c<16; c++ {
			m.Set(r, c, hermiteRows[r][c])
		}
	}
	return m
}

// HermiteBasis returns a copy of the 16x16 basis-conversion matrix.
func HermiteBasis() *Matrix { return hermiteBasis.Copy() }

// HermitePatch returns the 4x4 coefficient matrix for the cell whose
// top-left corner is (x,y) in the plane p. If the cell would run off
// the far edge of the plane on either axis, the previous cell on that
// axis is used instead. Derivatives that would need a sample before
// the start of the plane are zero.
func HermitePatch(p *Matrix, x, y int) (*Matrix, error) {
	if p.rows < 2 || p.cols < 2 {
		return nil, fmt.Errorf("hermite patch on %dx%d plane: %w", p.rows, p.cols, ErrDegenerateInput)
	}
	if !p.inRange(x, y) {
		return nil, fmt.Errorf("hermite patch at (%d,%d) in %dx%d: %w", x, y, p.rows, p.cols, ErrIndexOutOfRange)
	}

	if x+1 >= p.rows { x = p.rows-2 }
	if y+1 >= p.cols { y = p.cols-2 }

	P := p.At
	b := make([]float64, 16)

	b[0] = P(x,   y)
	b[1] = P(x+1, y)
	b[2] = P(x,   y+1)
	b[3] = P(x+1, y+1)

	if y > 0 {
		b[4] = P(x,   y) - P(x,   y-1)
		b[5] = P(x+1, y) - P(x+1, y-1)
	}
	b[6] = P(x,   y+1) - P(x,   y)
	b[7] = P(x+1, y+1) - P(x+1, y)

	if x > 0 {
		b[8] = P(x, y) - P(x-1, y)
	}
	b[9] = P(x+1, y) - P(x, y)
	if x > 0 {
		b[10] = P(x, y+1) - P(x-1, y+1)
	}
	b[11] = P(x+1, y+1) - P(x, y+1)

	if x > 0 && y > 0 {
		b[12] = P(x, y) - P(x-1, y-1)
	}
	if y > 0 {
		b[13] = P(x+1, y) - P(x, y-1)
	}
	if x > 0 {
		b[14] = P(x, y+1) - P(x-1, y)
	}
	b[15] = P(x+1, y+1) - P(x, y)

	bv, err := NewMatrixFromValues(16, 1, b)
	if err != nil {
		return nil, err
	}

	a, err := Mul(hermiteBasis, bv)
	if err != nil {
		return nil, err
	}
	if err := a.Resize(4, 4); err != nil {
		return nil, err
	}

	return a, nil
}

// BicubicAt evaluates the patch a at fractional offset (fx,fy) within
// its cell. Offsets outside [0,1] extrapolate; nothing is clamped.
func BicubicAt(a *Matrix, fx, fy float64) float64 {
	v := 0.0
	fyPow := 1.0
	for i:=0; i<4; i++ {
		fxPow := 1.0
		for j:=0; j<4; j++ {
			v += a.At(j, i) * fxPow * fyPow
			fxPow *= fx
		}
		fyPow *= fy
	}
	return v
}

// Interpolate is HermitePatch followed by BicubicAt.
func Interpolate(p *Matrix, x, y int, fx, fy float64) (float64, error) {
	a, err := HermitePatch(p, x, y)
	if err != nil {
		return 0, err
	}
	return BicubicAt(a, fx, fy), nil
}
