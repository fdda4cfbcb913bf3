package models

import (
	"fmt"

	"dimviz/pkg/axis"
	"dimviz/pkg/ndarray"
)

// Axis describes one dimension of a dataset
type Axis struct {
	// Name is the short name of the axis, e.g. "x" or "energy_loss"
	Name string `yaml:"name"`

	// Quantity is the physical quantity measured along the axis
	Quantity string `yaml:"quantity"`

	// Units of the coordinate values
	Units string `yaml:"units"`

	// Role decides how the axis is used when visualizing
	Role axis.Role `yaml:"role"`

	// Values holds the physical coordinate of every index. A nil slice
	// means the coordinates are the indices themselves.
	Values []float64 `yaml:"values,omitempty"`
}

// Dataset is an N-dimensional measurement together with per-axis metadata.
// The array is never modified by the visualizers and may be shared.
type Dataset struct {
	// Title is shown in view titles and used for exported file names
	Title string

	// Quantity and Units describe the measured values
	Quantity string
	Units    string

	// Array holds the measurement values
	Array *ndarray.Array

	// Axes has exactly one entry per array dimension
	Axes []Axis
}

// Validate checks that the metadata matches the array.
func (d *Dataset) Validate() error {
	if d == nil || d.Array == nil {
		return fmt.Errorf("dataset has no data")
	}
	if len(d.Axes) != d.Array.Rank() {
		return fmt.Errorf("dataset has %d axes for %d dimensions", len(d.Axes), d.Array.Rank())
	}
	for i, ax := range d.Axes {
		if ax.Values != nil && len(ax.Values) != d.Array.Dim(i) {
			return fmt.Errorf("axis %d (%s) has %d values for length %d", i, ax.Name, len(ax.Values), d.Array.Dim(i))
		}
	}
	return nil
}

// Shape returns the array shape.
func (d *Dataset) Shape() []int { return d.Array.Shape() }

// Rank returns the number of dimensions.
func (d *Dataset) Rank() int { return d.Array.Rank() }

// Roles returns the role of every axis in axis order.
func (d *Dataset) Roles() []axis.Role {
	roles := make([]axis.Role, len(d.Axes))
	for i, ax := range d.Axes {
		roles[i] = ax.Role
	}
	return roles
}

// AxisValues returns the coordinate vector of axis dim, falling back to
// 0..n-1 when none was set.
func (d *Dataset) AxisValues(dim int) []float64 {
	if v := d.Axes[dim].Values; v != nil {
		return v
	}
	values := make([]float64, d.Array.Dim(dim))
	for i := range values {
		values[i] = float64(i)
	}
	return values
}

// Label returns the display label of axis dim.
func (d *Dataset) Label(dim int) string {
	ax := d.Axes[dim]
	name := ax.Quantity
	if name == "" {
		name = ax.Name
	}
	return descriptor(name, ax.Units)
}

// DataDescriptor returns the label of the measured values.
func (d *Dataset) DataDescriptor() string {
	return descriptor(d.Quantity, d.Units)
}

// Extent returns the physical span [first, last + step) of the given axes,
// interleaved as lo0, hi0, lo1, hi1, ...
func (d *Dataset) Extent(dims ...int) []float64 {
	extent := make([]float64, 0, 2*len(dims))
	for _, dim := range dims {
		values := d.AxisValues(dim)
		lo := values[0]
		step := 1.0
		if len(values) > 1 {
			step = values[1] - values[0]
		}
		extent = append(extent, lo, values[len(values)-1]+step)
	}
	return extent
}

func descriptor(quantity, units string) string {
	if quantity == "" {
		quantity = "generic"
	}
	if units == "" {
		units = "a.u."
	}
	return fmt.Sprintf("%s (%s)", quantity, units)
}
