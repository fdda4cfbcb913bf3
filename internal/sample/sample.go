// Package sample generates synthetic datasets for every visualizer mode. The
// CLI uses them when no data is loaded, and tests use them as fixtures.
package sample

import (
	"fmt"
	"math"

	"dimviz/internal/models"
	"dimviz/pkg/axis"
	"dimviz/pkg/ndarray"
	"dimviz/pkg/roles"
)

func gauss(x, center, width float64) float64 {
	d := (x - center) / width
	return math.Exp(-0.5 * d * d)
}

func linspace(start, step float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = start + step*float64(i)
	}
	return values
}

// Dataset returns a synthetic dataset suited to mode.
func Dataset(mode roles.Mode) (*models.Dataset, error) {
	switch mode {
	case roles.ModeImage:
		return Image(64, 48)
	case roles.ModeImageStack:
		return ImageStack(64, 48, 16)
	case roles.ModeSpectralImage:
		return SpectrumImage(32, 24, 200)
	case roles.Mode4DImage:
		return FourD(16, 12, 32, 32)
	case roles.ModeCurve:
		return Curve(4, 200)
	}
	return nil, fmt.Errorf("no sample data for mode %s", mode)
}

func spatialAxis(name string, n int) models.Axis {
	return models.Axis{Name: name, Quantity: name, Units: "nm", Role: axis.Spatial, Values: linspace(0, 0.5, n)}
}

// Image is a width x height image of two blobs.
func Image(width, height int) (*models.Dataset, error) {
	w, h := float64(width), float64(height)
	arr, err := ndarray.FromFunc([]int{width, height}, func(idx []int) float64 {
		x, y := float64(idx[0]), float64(idx[1])
		return 100*gauss(x, w/3, w/8)*gauss(y, h/2, h/6) + 60*gauss(x, 2*w/3, w/10)*gauss(y, h/3, h/10)
	})
	if err != nil {
		return nil, err
	}
	return &models.Dataset{
		Title: "blobs", Quantity: "intensity", Units: "counts", Array: arr,
		Axes: []models.Axis{spatialAxis("x", width), spatialAxis("y", height)},
	}, nil
}

// ImageStack is a time series of a blob drifting to the right.
func ImageStack(width, height, frames int) (*models.Dataset, error) {
	w, h := float64(width), float64(height)
	arr, err := ndarray.FromFunc([]int{width, height, frames}, func(idx []int) float64 {
		x, y, t := float64(idx[0]), float64(idx[1]), float64(idx[2])
		cx := w/4 + t*w/(2*float64(frames))
		return 100 * gauss(x, cx, w/10) * gauss(y, h/2, h/8)
	})
	if err != nil {
		return nil, err
	}
	return &models.Dataset{
		Title: "drift", Quantity: "intensity", Units: "counts", Array: arr,
		Axes: []models.Axis{
			spatialAxis("x", width),
			spatialAxis("y", height),
			{Name: "t", Quantity: "time", Units: "s", Role: axis.Temporal, Values: linspace(0, 0.1, frames)},
		},
	}, nil
}

// SpectrumImage is a spectrum image whose peak shifts along x and whose
// intensity falls off along y.
func SpectrumImage(width, height, channels int) (*models.Dataset, error) {
	energy := linspace(280, 0.25, channels)
	arr, err := ndarray.FromFunc([]int{width, height, channels}, func(idx []int) float64 {
		x, y := float64(idx[0]), float64(idx[1])
		peak := 290 + 20*x/float64(width)
		amp := 50 + 50*(1-y/float64(height))
		return 5 + amp*gauss(energy[idx[2]], peak, 2)
	})
	if err != nil {
		return nil, err
	}
	return &models.Dataset{
		Title: "core loss", Quantity: "intensity", Units: "counts", Array: arr,
		Axes: []models.Axis{
			spatialAxis("x", width),
			spatialAxis("y", height),
			{Name: "E", Quantity: "energy loss", Units: "eV", Role: axis.Spectral, Values: energy},
		},
	}, nil
}

// FourD is a 4D dataset ordered (scan_y, scan_x, ky, kx): at every scan
// position a diffraction disk whose center follows the scan position.
func FourD(scanY, scanX, ky, kx int) (*models.Dataset, error) {
	arr, err := ndarray.FromFunc([]int{scanY, scanX, ky, kx}, func(idx []int) float64 {
		sy, sx := float64(idx[0])/float64(scanY), float64(idx[1])/float64(scanX)
		cy := float64(ky)/2 + 4*(sy-0.5)
		cx := float64(kx)/2 + 4*(sx-0.5)
		dy, dx := float64(idx[2])-cy, float64(idx[3])-cx
		if math.Hypot(dx, dy) < float64(kx)/6 {
			return 100
		}
		return 1
	})
	if err != nil {
		return nil, err
	}
	reciprocal := func(name string, n int) models.Axis {
		return models.Axis{Name: name, Quantity: name, Units: "1/nm", Role: axis.Unclassified, Values: linspace(-float64(n)/2*0.1, 0.1, n)}
	}
	return &models.Dataset{
		Title: "4D scan", Quantity: "intensity", Units: "counts", Array: arr,
		Axes: []models.Axis{
			spatialAxis("y", scanY),
			spatialAxis("x", scanX),
			reciprocal("ky", ky),
			reciprocal("kx", kx),
		},
	}, nil
}

// Curve is a set of spectra with growing peak height, one per selector
// index.
func Curve(curves, channels int) (*models.Dataset, error) {
	energy := linspace(0, 0.1, channels)
	arr, err := ndarray.FromFunc([]int{curves, channels}, func(idx []int) float64 {
		return float64(idx[0]+1) * gauss(energy[idx[1]], 10, 1.5)
	})
	if err != nil {
		return nil, err
	}
	return &models.Dataset{
		Title: "spectra", Quantity: "intensity", Units: "counts", Array: arr,
		Axes: []models.Axis{
			{Name: "n", Role: axis.Unclassified},
			{Name: "E", Quantity: "energy", Units: "eV", Role: axis.Spectral, Values: energy},
		},
	}, nil
}
