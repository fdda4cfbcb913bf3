package reduce

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"dimviz/pkg/ndarray"
)

// Aspect is the pixel aspect handling the canvas should use for an image.
type Aspect int

const (
	AspectEqual Aspect = iota
	AspectAuto
)

func (a Aspect) String() string {
	if a == AspectAuto {
		return "auto"
	}
	return "equal"
}

// View is a reduced, display-ready array plus its labels.
type View struct {
	// Data is row-major; images are Shape[0] rows by Shape[1] columns
	Data  []float64
	Shape []int

	// XValues are the physical coordinates of a 1D view
	XValues []float64

	XLabel string
	YLabel string
	Title  string

	// Extent is the physical span left, right, bottom, top of an image
	Extent []float64
	// XUnits names the units of the horizontal axis, used for scale bars
	XUnits string

	Aspect     Aspect
	HideXTicks bool
	HideYTicks bool
}

// NewView wraps a reduced array.
func NewView(m *ndarray.Array) View {
	return View{Data: m.Values(), Shape: m.Shape()}
}

// IsImage reports whether the view is two-dimensional.
func (v View) IsImage() bool { return len(v.Shape) == 2 }

// Rows and Cols give the image size; a 1D view is a single row.
func (v View) Rows() int {
	if len(v.Shape) == 2 {
		return v.Shape[0]
	}
	return 1
}

func (v View) Cols() int {
	return v.Shape[len(v.Shape)-1]
}

// Matrix copies the view into a dense matrix.
func (v View) Matrix() *mat.Dense {
	data := make([]float64, len(v.Data))
	copy(data, v.Data)
	return mat.NewDense(v.Rows(), v.Cols(), data)
}

// Summary describes the value distribution of a view.
type Summary struct {
	Min, Max     float64
	Mean, StdDev float64
}

// Summarize returns basic statistics of the view values.
func (v View) Summarize() (Summary, error) {
	if len(v.Data) == 0 {
		return Summary{}, fmt.Errorf("empty view")
	}
	mean, std := stat.MeanStdDev(v.Data, nil)
	if len(v.Data) == 1 {
		std = 0
	}
	return Summary{Min: floats.Min(v.Data), Max: floats.Max(v.Data), Mean: mean, StdDev: std}, nil
}

// ApplyAspect sets the aspect decision for a navigation or image view: an
// image only one cell wide along an axis is stretched (auto aspect) and the
// ticks of that axis are hidden.
func (v *View) ApplyAspect() {
	v.Aspect, v.HideXTicks, v.HideYTicks = AspectFor(v.Shape)
}

// AspectFor decides the aspect handling for an image of the given shape.
func AspectFor(shape []int) (Aspect, bool, bool) {
	if len(shape) != 2 {
		return AspectAuto, false, false
	}
	hideY := shape[0] == 1
	hideX := shape[1] == 1
	if hideX || hideY {
		return AspectAuto, hideX, hideY
	}
	return AspectEqual, false, false
}
