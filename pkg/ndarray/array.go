// Package ndarray provides the small row-major N-dimensional array used to
// hold measurement data. Arrays are immutable once built: every operation
// returns a new array, so one Array can back any number of viewers.
package ndarray

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Range is a half-open index interval [Start, Stop) along one axis.
type Range struct {
	Start int
	Stop  int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	if r.Stop < r.Start {
		return 0
	}
	return r.Stop - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.Stop)
}

// Array is an N-dimensional float64 array stored in row-major order
// (the last axis varies fastest).
type Array struct {
	shape   []int
	strides []int
	data    []float64
}

// New wraps data with the given shape. The data slice is not copied and must
// not be modified afterwards.
func New(shape []int, data []float64) (*Array, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("shape must have at least one dimension")
	}
	size := 1
	for i, n := range shape {
		if n <= 0 {
			return nil, fmt.Errorf("dimension %d has non-positive length %d", i, n)
		}
		size *= n
	}
	if len(data) != size {
		return nil, fmt.Errorf("data length %d does not match shape %v (size %d)", len(data), shape, size)
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return &Array{shape: s, strides: stridesFor(s), data: data}, nil
}

// Zeros allocates a zero-filled array.
func Zeros(shape ...int) (*Array, error) {
	size := 1
	for _, n := range shape {
		size *= n
	}
	if size < 0 {
		size = 0
	}
	return New(shape, make([]float64, size))
}

// FromFunc builds an array by evaluating fn at every multi-index.
func FromFunc(shape []int, fn func(idx []int) float64) (*Array, error) {
	a, err := Zeros(shape...)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(shape))
	for i := range a.data {
		a.data[i] = fn(idx)
		increment(idx, a.shape)
	}
	return a, nil
}

func stridesFor(shape []int) []int {
	strides := make([]int, len(shape))
	step := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = step
		step *= shape[i]
	}
	return strides
}

// increment advances a row-major multi-index by one position.
func increment(idx, shape []int) {
	for d := len(idx) - 1; d >= 0; d-- {
		idx[d]++
		if idx[d] < shape[d] {
			return
		}
		idx[d] = 0
	}
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() []int {
	s := make([]int, len(a.shape))
	copy(s, a.shape)
	return s
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.shape) }

// Dim returns the length of axis d.
func (a *Array) Dim(d int) int { return a.shape[d] }

// Size returns the total number of elements.
func (a *Array) Size() int { return len(a.data) }

// Values returns the backing data in row-major order. Callers must treat it
// as read-only.
func (a *Array) Values() []float64 { return a.data }

// At returns the element at the given multi-index.
func (a *Array) At(idx ...int) float64 {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: index rank %d does not match array rank %d", len(idx), len(a.shape)))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			panic(fmt.Sprintf("ndarray: index %d out of range for axis %d (length %d)", i, d, a.shape[d]))
		}
		off += i * a.strides[d]
	}
	return a.data[off]
}

// Extract copies out the hyperslab described by one range per axis. The
// result keeps every axis, including those reduced to length 1.
func (a *Array) Extract(ranges []Range) (*Array, error) {
	if len(ranges) != len(a.shape) {
		return nil, fmt.Errorf("selection has %d ranges, array has %d dimensions", len(ranges), len(a.shape))
	}
	outShape := make([]int, len(ranges))
	for d, r := range ranges {
		if r.Start < 0 || r.Stop > a.shape[d] || r.Len() == 0 {
			return nil, fmt.Errorf("range %s out of bounds for axis %d (length %d)", r, d, a.shape[d])
		}
		outShape[d] = r.Len()
	}

	out, err := Zeros(outShape...)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(outShape))
	for i := range out.data {
		off := 0
		for d, v := range idx {
			off += (ranges[d].Start + v) * a.strides[d]
		}
		out.data[i] = a.data[off]
		increment(idx, outShape)
	}
	return out, nil
}

// Mean averages over the given axes and drops them from the result. Passing
// no axes returns a copy of the array. Reducing every axis yields a
// one-element, one-dimensional array.
func (a *Array) Mean(axes ...int) (*Array, error) {
	reduced := make([]bool, len(a.shape))
	for _, ax := range axes {
		if ax < 0 || ax >= len(a.shape) {
			return nil, fmt.Errorf("axis %d out of range for %d-dimensional array", ax, len(a.shape))
		}
		if reduced[ax] {
			return nil, fmt.Errorf("axis %d repeated", ax)
		}
		reduced[ax] = true
	}

	var outShape []int
	count := 1
	for d, n := range a.shape {
		if reduced[d] {
			count *= n
			continue
		}
		outShape = append(outShape, n)
	}
	if len(outShape) == 0 {
		outShape = []int{1}
	}

	out, err := Zeros(outShape...)
	if err != nil {
		return nil, err
	}
	outStrides := out.strides
	idx := make([]int, len(a.shape))
	for _, v := range a.data {
		off, k := 0, 0
		for d, i := range idx {
			if reduced[d] {
				continue
			}
			off += i * outStrides[k]
			k++
		}
		out.data[off] += v
		increment(idx, a.shape)
	}
	floats.Scale(1/float64(count), out.data)
	return out, nil
}

// Transpose2D swaps the two axes of a 2D array.
func (a *Array) Transpose2D() (*Array, error) {
	if len(a.shape) != 2 {
		return nil, fmt.Errorf("transpose needs a 2D array, got shape %v", a.shape)
	}
	rows, cols := a.shape[0], a.shape[1]
	out := make([]float64, len(a.data))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c*rows+r] = a.data[r*cols+c]
		}
	}
	return New([]int{cols, rows}, out)
}

func (a *Array) String() string {
	dims := make([]string, len(a.shape))
	for i, n := range a.shape {
		dims[i] = fmt.Sprint(n)
	}
	return fmt.Sprintf("ndarray(%s)", strings.Join(dims, "x"))
}
