// Package reduce turns extracted sub-arrays into renderable views: 2D images
// oriented for display and 1D spectra.
package reduce

import (
	"fmt"
	"sort"

	"dimviz/pkg/ndarray"
	"dimviz/pkg/roles"
)

// keep averages sub over every axis not listed in dims. Axes that were cut
// to a single index are dropped this way without touching the kept axes,
// even when a kept axis itself has length 1.
func keep(sub *ndarray.Array, dims ...int) (*ndarray.Array, error) {
	wanted := make(map[int]bool, len(dims))
	for _, d := range dims {
		wanted[d] = true
	}
	var others []int
	for d := 0; d < sub.Rank(); d++ {
		if !wanted[d] {
			others = append(others, d)
		}
	}
	return sub.Mean(others...)
}

// orient arranges a 2D array whose axes are dims (in axis order) so that
// xDim runs horizontally: rows follow the other axis, columns follow xDim.
func orient(m *ndarray.Array, dims [2]int, xDim int) (*ndarray.Array, error) {
	if m.Rank() != 2 {
		return nil, fmt.Errorf("expected 2D block, got shape %v", m.Shape())
	}
	lo := dims[0]
	if dims[1] < lo {
		lo = dims[1]
	}
	if lo == xDim {
		return m.Transpose2D()
	}
	return m, nil
}

func sorted(dims [2]int) [2]int {
	s := []int{dims[0], dims[1]}
	sort.Ints(s)
	return [2]int{s[0], s[1]}
}

// Image reduces an image-mode block to rows x cols with the first image axis
// horizontal.
func Image(sub *ndarray.Array, a roles.Assignment) (*ndarray.Array, error) {
	m, err := keep(sub, a.ImageDims[0], a.ImageDims[1])
	if err != nil {
		return nil, err
	}
	return orient(m, a.ImageDims, a.ImageDims[0])
}

// StackMean averages a block that spans the whole stack axis, giving the
// mean image of all frames.
func StackMean(sub *ndarray.Array, a roles.Assignment) (*ndarray.Array, error) {
	if a.StackDim < 0 {
		return nil, fmt.Errorf("%s has no stack dimension", a.Mode)
	}
	if sub.Dim(a.StackDim) != a.Shape[a.StackDim] {
		return nil, fmt.Errorf("stack mean needs the full stack axis, got %d of %d frames", sub.Dim(a.StackDim), a.Shape[a.StackDim])
	}
	return Image(sub, a)
}

// Navigation reduces a block spanning both navigation axes to the
// navigation image, x axis horizontal. For spectral images this is the mean
// over the spectral axis; for 4D data the mean over the 4D-slice axes.
func Navigation(sub *ndarray.Array, a roles.Assignment) (*ndarray.Array, error) {
	if !a.Mode.HasCursor() {
		return nil, fmt.Errorf("%s has no navigation image", a.Mode)
	}
	nav := a.NavDims()
	m, err := keep(sub, sorted(nav)[0], sorted(nav)[1])
	if err != nil {
		return nil, err
	}
	return orient(m, sorted(nav), nav[0])
}

// Spectrum averages everything but the spectral axis.
func Spectrum(sub *ndarray.Array, a roles.Assignment) (*ndarray.Array, error) {
	if a.SpectralDim < 0 {
		return nil, fmt.Errorf("%s has no spectral dimension", a.Mode)
	}
	return keep(sub, a.SpectralDim)
}

// Slice4D averages the bin window over the scan axes, leaving the 2D
// diffraction slice with image_x horizontal.
func Slice4D(sub *ndarray.Array, a roles.Assignment) (*ndarray.Array, error) {
	if a.Mode != roles.Mode4DImage {
		return nil, fmt.Errorf("%s has no 4D slice", a.Mode)
	}
	dims := sorted(a.SliceDims)
	m, err := keep(sub, dims[0], dims[1])
	if err != nil {
		return nil, err
	}
	return orient(m, dims, a.SliceDims[0])
}
