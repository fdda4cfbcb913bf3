package visualization

import (
	"fmt"

	"dimviz/pkg/ndarray"
	"dimviz/pkg/reduce"
	"dimviz/pkg/roles"
	"dimviz/pkg/selection"
)

// currentView must be called with v.mu held.
func (v *Visualizer) currentView() (reduce.View, error) {
	a := v.assign
	state := v.nav.State()
	sel := selection.Build(a, state.Window())

	switch a.Mode {
	case roles.ModeImage:
		img, err := v.reduceAt(sel, reduce.Image)
		if err != nil {
			return reduce.View{}, err
		}
		view := v.imageView(img, a.ImageDims)
		view.Title = v.ds.Title
		if a.Rank() > 2 {
			view.Title = fmt.Sprintf("%s_image %d", v.ds.Title, v.firstFixedIndex())
		}
		return view, nil

	case roles.ModeImageStack:
		if state.Average {
			img, err := v.reduceAt(sel.WithFullAxis(a.StackDim, a.Shape[a.StackDim]), reduce.StackMean)
			if err != nil {
				return reduce.View{}, err
			}
			view := v.imageView(img, a.ImageDims)
			view.Title = fmt.Sprintf("%s (average)", v.ds.Title)
			return view, nil
		}
		img, err := v.reduceAt(sel, reduce.Image)
		if err != nil {
			return reduce.View{}, err
		}
		view := v.imageView(img, a.ImageDims)
		view.Title = fmt.Sprintf("%s_image %d", v.ds.Title, sel[a.StackDim].Start)
		return view, nil

	case roles.ModeSpectralImage:
		spectrum, err := v.reduceAt(sel, reduce.Spectrum)
		if err != nil {
			return reduce.View{}, err
		}
		view := v.spectrumView(spectrum)
		nav := a.NavDims()
		view.Title = fmt.Sprintf("spectrum %d, %d", sel[nav[0]].Start, sel[nav[1]].Start)
		return view, nil

	case roles.Mode4DImage:
		slice, err := v.reduceAt(sel, reduce.Slice4D)
		if err != nil {
			return reduce.View{}, err
		}
		view := v.imageView(slice, a.SliceDims)
		view.Title = fmt.Sprintf("set %d, %d", sel[a.ScanDims[0]].Start, sel[a.ScanDims[1]].Start)
		return view, nil

	case roles.ModeCurve:
		spectrum, err := v.reduceAt(sel, reduce.Spectrum)
		if err != nil {
			return reduce.View{}, err
		}
		view := v.spectrumView(spectrum)
		view.Title = v.ds.Title
		return view, nil
	}
	return reduce.View{}, fmt.Errorf("unsupported mode %s", a.Mode)
}

// navigationView builds the navigation image of cursor modes from a block
// spanning both navigation axes.
func (v *Visualizer) navigationView() (reduce.View, error) {
	a := v.assign
	nav := a.NavDims()
	sel := selection.Build(a, v.nav.State().Window())
	sel = sel.WithFullAxis(nav[0], a.Shape[nav[0]]).WithFullAxis(nav[1], a.Shape[nav[1]])

	img, err := v.reduceAt(sel, reduce.Navigation)
	if err != nil {
		return reduce.View{}, err
	}
	view := reduce.NewView(img)
	if v.horizontal {
		view.XLabel = fmt.Sprintf("%s [pixels]", v.axisQuantity(nav[0]))
	} else {
		view.YLabel = fmt.Sprintf("%s [pixels]", v.axisQuantity(nav[1]))
	}
	view.Title = v.ds.Title
	view.Extent = []float64{0, float64(a.Shape[nav[0]]), float64(a.Shape[nav[1]]), 0}
	view.XUnits = "pixels"
	view.ApplyAspect()
	return view, nil
}

type reducer func(*ndarray.Array, roles.Assignment) (*ndarray.Array, error)

func (v *Visualizer) reduceAt(sel selection.Selection, fn reducer) (*ndarray.Array, error) {
	sub, err := v.ds.Array.Extract(sel)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", sel, err)
	}
	return fn(sub, v.assign)
}

// imageView labels a 2D block whose horizontal axis is dims[0].
func (v *Visualizer) imageView(img *ndarray.Array, dims [2]int) reduce.View {
	view := reduce.NewView(img)
	view.XLabel = v.ds.Label(dims[0])
	view.YLabel = v.ds.Label(dims[1])
	ext := v.ds.Extent(dims[0], dims[1])
	view.Extent = []float64{ext[0], ext[1], ext[3], ext[2]}
	view.XUnits = v.ds.Axes[dims[0]].Units
	view.ApplyAspect()
	return view
}

func (v *Visualizer) spectrumView(spectrum *ndarray.Array) reduce.View {
	dim := v.assign.SpectralDim
	view := reduce.NewView(spectrum)
	view.XValues = v.ds.AxisValues(dim)
	view.XLabel = v.ds.Label(dim)
	view.YLabel = v.ds.DataDescriptor()
	view.XUnits = v.ds.Axes[dim].Units
	return view
}

func (v *Visualizer) axisQuantity(dim int) string {
	if q := v.ds.Axes[dim].Quantity; q != "" {
		return q
	}
	return v.ds.Axes[dim].Name
}

func (v *Visualizer) firstFixedIndex() int {
	for d := 0; d < v.assign.Rank(); d++ {
		if v.assign.Usage(d) == roles.UsageFixed {
			return v.assign.FixedIndex(d)
		}
	}
	return 0
}
