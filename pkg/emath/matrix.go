package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// A Matrix is a dense grid of floats, stored column-major: element
// (r,c) lives at values[r + rows*c].
//
// Image channel planes are Matrices with one row per image column,
// so that At(x,y) is the sample at (x,y), and the flat values are in
// the same order as a row-major scan of the image.
type Matrix struct {
	rows   int
	cols   int
	values []float64
}

func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("new matrix %dx%d: %w", rows, cols, ErrDegenerateInput)
	}
	return &Matrix{rows: rows, cols: cols, values: make([]float64, rows*cols)}, nil
}

// NewMatrixFromValues takes a copy of vals, which must be in column-major order.
func NewMatrixFromValues(rows, cols int, vals []float64) (*Matrix, error) {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	if err := m.SetValues(vals); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Matrix)Rows() int           { return m.rows }
func (m *Matrix)Cols() int           { return m.cols }
func (m *Matrix)Dims() (int, int)    { return m.rows, m.cols }

func (m *Matrix)inRange(r, c int) bool {
	return r >= 0 && r < m.rows && c >= 0 && c < m.cols
}

// At panics if (r,c) is outside the matrix, in the same way that
// gonum's matrices do.
func (m *Matrix)At(r, c int) float64 {
	if !m.inRange(r, c) {
		panic(fmt.Errorf("at (%d,%d) in %dx%d: %w", r, c, m.rows, m.cols, ErrIndexOutOfRange))
	}
	return m.values[r + m.rows*c]
}

func (m *Matrix)Set(r, c int, v float64) {
	if !m.inRange(r, c) {
		panic(fmt.Errorf("set (%d,%d) in %dx%d: %w", r, c, m.rows, m.cols, ErrIndexOutOfRange))
	}
	m.values[r + m.rows*c] = v
}

// Get is a non-panicking At.
func (m *Matrix)Get(r, c int) (float64, error) {
	if !m.inRange(r, c) {
		return 0, fmt.Errorf("get (%d,%d) in %dx%d: %w", r, c, m.rows, m.cols, ErrIndexOutOfRange)
	}
	return m.values[r + m.rows*c], nil
}

// Values returns a copy of the contents, column-major.
func (m *Matrix)Values() []float64 {
	vals := make([]float64, len(m.values))
	copy(vals, m.values)
	return vals
}

func (m *Matrix)SetValues(vals []float64) error {
	if len(vals) != len(m.values) {
		return fmt.Errorf("set %d values into %dx%d: %w", len(vals), m.rows, m.cols, ErrDimensionMismatch)
	}
	copy(m.values, vals)
	return nil
}

func (m1 *Matrix)Copy() *Matrix {
	m2 := Matrix{rows: m1.rows, cols: m1.cols, values: make([]float64, len(m1.values))}
	copy(m2.values, m1.values)
	return &m2
}

// Resize reshapes the matrix in place. The flat contents are kept as
// they are, so the new shape must hold exactly the same number of
// elements.
func (m *Matrix)Resize(rows, cols int) error {
	if rows < 1 || cols < 1 || rows*cols != len(m.values) {
		return fmt.Errorf("resize %dx%d to %dx%d: %w", m.rows, m.cols, rows, cols, ErrDimensionMismatch)
	}
	m.rows, m.cols = rows, cols
	return nil
}

// Mul returns the product a*b.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("mul %dx%d by %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}

	out, err := NewMatrix(a.rows, b.cols)
	if err != nil {
		return nil, err
	}

	for c:=0; c<b.cols; c++ {
		for r:=0; r<a.rows; r++ {
			sum := 0.0
			for k:=0; k<a.cols; k++ {
				sum += a.values[r + a.rows*k] * b.values[k + b.rows*c]
			}
			out.values[r + out.rows*c] = sum
		}
	}

	return out, nil
}

func (m *Matrix)minMax() (float64, float64) {
	min := math.MaxFloat64
	max := -1.0 * min
	for _, v := range m.values {
		if v > max { max = v }
		if v < min { min = v }
	}
	return min, max
}

func (m *Matrix)Stats() string {
	min, max := m.minMax()
	return fmt.Sprintf("m[%dx%d, vals{%f,%f}]", m.rows, m.cols, min, max)
}

// ToImg saves the matrix as a grayscale PNG, treating it as a plane
// (rows are x, cols are y). The range of values is stretched to fill
// [0,1], and gamma scaled so it looks normal to human eyes.
func (m *Matrix)ToImg(title, filename string) error {
	min, max := m.minMax()
	span := max - min
	if span == 0 {
		span = 1
	}

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{m.rows, m.cols}})
	for x:=0; x<m.rows; x++ {
		for y:=0; y<m.cols; y++ {
			gray := uint16(GammaExpand_F64((m.At(x,y) - min) / span) * 65535.0)
			img.Set(x, y, color.RGBA64{gray, gray, gray, 0xFFFF})
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,0,0)
	dc.DrawString(title, 10, 20)
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("matrix toimg '%s': %v", filename, err)
	}
	return nil
}
