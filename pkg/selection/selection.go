// Package selection builds the per-axis ranges used to cut a view out of a
// dataset, and owns the bounds clamp applied to cursor windows.
package selection

import (
	"strings"

	"dimviz/pkg/ndarray"
	"dimviz/pkg/roles"
)

// Range is a half-open interval along one axis.
type Range = ndarray.Range

// Selection holds exactly one contiguous range per dataset axis.
type Selection []Range

// Window is the part of the interaction state that drives a selection.
type Window struct {
	X, Y       int
	BinX, BinY int
	Frame      int
}

// Clamp applies the bounds rule to one navigation axis: the bin is limited
// to [1, length], then the cursor is moved so that cursor+bin <= length and
// cursor >= 0. Clamp is idempotent.
func Clamp(cursor, bin, length int) (int, int) {
	if length < 1 {
		return 0, 0
	}
	if bin < 1 {
		bin = 1
	}
	if bin > length {
		bin = length
	}
	if cursor+bin > length {
		cursor = length - bin
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor, bin
}

// ClampWindow clamps both navigation axes of w.
func ClampWindow(w Window, lenX, lenY int) Window {
	w.X, w.BinX = Clamp(w.X, w.BinX, lenX)
	w.Y, w.BinY = Clamp(w.Y, w.BinY, lenY)
	return w
}

// Build returns the selection for assignment a at window w. Cursor windows
// and the frame index are clamped before use, so the result is always
// inside the array.
func Build(a roles.Assignment, w Window) Selection {
	if a.Mode.HasCursor() {
		lx, ly := a.NavLengths()
		w = ClampWindow(w, lx, ly)
	}
	if n := a.StackLength(); n > 0 {
		if w.Frame >= n {
			w.Frame = n - 1
		}
		if w.Frame < 0 {
			w.Frame = 0
		}
	}

	sel := make(Selection, a.Rank())
	for d := range sel {
		switch a.Usage(d) {
		case roles.UsageFull:
			sel[d] = Range{Start: 0, Stop: a.Shape[d]}
		case roles.UsageStack:
			sel[d] = Range{Start: w.Frame, Stop: w.Frame + 1}
		case roles.UsageNavX:
			sel[d] = Range{Start: w.X, Stop: w.X + w.BinX}
		case roles.UsageNavY:
			sel[d] = Range{Start: w.Y, Stop: w.Y + w.BinY}
		default:
			i := a.FixedIndex(d)
			sel[d] = Range{Start: i, Stop: i + 1}
		}
	}
	return sel
}

// WithFullAxis returns a copy of s with axis dim opened to its full length.
func (s Selection) WithFullAxis(dim, length int) Selection {
	out := make(Selection, len(s))
	copy(out, s)
	out[dim] = Range{Start: 0, Stop: length}
	return out
}

// Shape returns the extent of the selected block.
func (s Selection) Shape() []int {
	shape := make([]int, len(s))
	for i, r := range s {
		shape[i] = r.Len()
	}
	return shape
}

// Len returns the number of selected elements.
func (s Selection) Len() int {
	n := 1
	for _, r := range s {
		n *= r.Len()
	}
	return n
}

// String formats the selection like a slicing tuple, e.g. "[0:1, 2:4, 0:100]".
func (s Selection) String() string {
	parts := make([]string, len(s))
	for i, r := range s {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
