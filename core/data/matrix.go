// Package data provides the numeric buffer types shared by the binning,
// objective and sampling packages.
package data

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/forust-go/forust/pkg/errors"
)

// Float constrains the numeric width of the core. Everything is written
// once against this constraint and instantiated for float32 or float64.
type Float interface {
	~float32 | ~float64
}

// MaxValue returns the maximum representable value of T. It is used as the
// sentinel upper cut boundary: every finite value compares strictly less
// than or equal to it, so no finite value can escape the last bin.
func MaxValue[T Float]() T {
	switch any(T(0)).(type) {
	case float32:
		return T(math.MaxFloat32)
	default:
		max := math.MaxFloat64
		return T(max)
	}
}

// IsNaN reports whether v is a missing (NaN) value.
func IsNaN[T Float](v T) bool {
	return v != v
}

// IsNonFinite reports whether v is NaN or an infinity. Non-finite entries
// are treated as missing throughout the binning path.
func IsNonFinite[T Float](v T) bool {
	return v != v || v > MaxValue[T]() || v < -MaxValue[T]()
}

// Matrix is a rectangular numeric buffer stored column-contiguous: the
// entry for column c, row r lives at offset c*Rows + r. It is immutable
// once constructed.
type Matrix[T Float] struct {
	Data []T
	Rows int
	Cols int
}

// NewMatrix wraps data as a rows x cols column-major matrix. The slice is
// not copied; the caller must not mutate it for the lifetime of the matrix.
func NewMatrix[T Float](data []T, rows, cols int) (*Matrix[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.NewValidationError("rows/cols", "must be strictly positive", []int{rows, cols})
	}
	if len(data) != rows*cols {
		return nil, errors.NewDimensionError("NewMatrix", rows*cols, len(data), 0)
	}
	return &Matrix[T]{Data: data, Rows: rows, Cols: cols}, nil
}

// Col returns the contiguous slice holding column j. The slice aliases the
// matrix buffer; callers must treat it as read-only.
func (m *Matrix[T]) Col(j int) []T {
	return m.Data[j*m.Rows : (j+1)*m.Rows]
}

// At returns the entry at row r, column c.
func (m *Matrix[T]) At(r, c int) T {
	return m.Data[c*m.Rows+r]
}

// FromDense copies a gonum row-major matrix into the column-major layout
// this core operates on.
func FromDense(d mat.Matrix) *Matrix[float64] {
	rows, cols := d.Dims()
	buf := make([]float64, rows*cols)
	for c := 0; c < cols; c++ {
		col := buf[c*rows : (c+1)*rows]
		for r := 0; r < rows; r++ {
			col[r] = d.At(r, c)
		}
	}
	return &Matrix[float64]{Data: buf, Rows: rows, Cols: cols}
}
