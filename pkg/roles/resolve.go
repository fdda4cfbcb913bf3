// Package roles turns per-axis role tags into a validated slot assignment for
// one visualizer mode. All role-pattern rules live here.
package roles

import (
	"fmt"

	"dimviz/pkg/axis"
)

// Options carries caller-supplied choices that influence resolution.
type Options struct {
	// SelectorIndex pins non-displayed axes in image and curve modes. An
	// index outside an axis falls back to 0.
	SelectorIndex int

	// Explicit 4D overrides. Nil means infer.
	ScanX    *int
	ScanY    *int
	Image4DX *int
	Image4DY *int
}

// census groups axis indices by role, in axis order.
type census struct {
	image    []int
	spatial  []int
	spectral []int
	temporal []int
	other    []int
}

func classify(m Mode, roles []axis.Role) (census, error) {
	var c census
	for i, r := range roles {
		switch r {
		case axis.Spatial:
			c.image = append(c.image, i)
			c.spatial = append(c.spatial, i)
		case axis.Reciprocal:
			c.image = append(c.image, i)
		case axis.Spectral:
			c.spectral = append(c.spectral, i)
		case axis.Temporal:
			c.temporal = append(c.temporal, i)
		case axis.Unclassified:
			c.other = append(c.other, i)
		default:
			return census{}, &ClassificationError{Mode: m, Err: fmt.Errorf("axis %d has unknown role %s", i, r)}
		}
	}
	return c, nil
}

// Resolve validates roles against the requested mode and returns the slot
// assignment. It fails with *ClassificationError when the roles do not fit
// the mode and *ConfigurationError when explicit overrides are invalid.
func Resolve(roles []axis.Role, shape []int, m Mode, opts Options) (Assignment, error) {
	if len(roles) != len(shape) {
		return Assignment{}, &ClassificationError{Mode: m, Err: fmt.Errorf("%d roles for %d dimensions", len(roles), len(shape))}
	}
	c, err := classify(m, roles)
	if err != nil {
		return Assignment{}, err
	}

	a := newAssignment(m, shape)
	switch m {
	case ModeImage:
		err = resolveImage(&a, c, opts)
	case ModeImageStack:
		err = resolveImageStack(&a, c)
	case ModeSpectralImage:
		err = resolveSpectralImage(&a, c)
	case Mode4DImage:
		err = resolve4D(&a, c, opts)
	case ModeCurve:
		err = resolveCurve(&a, c, opts)
	default:
		err = &ConfigurationError{Field: "mode", Reason: fmt.Sprintf("unsupported mode %s", m)}
	}
	if err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func needImageDims(a *Assignment, c census) error {
	if len(c.image) != 2 {
		return classErr(a.Mode, ErrImageDims, "found %d", len(c.image))
	}
	a.ImageDims = [2]int{c.image[0], c.image[1]}
	return nil
}

// pin marks every axis still UsageFixed at index, falling back to 0 where
// index is outside the axis.
func pin(a *Assignment, index int) {
	for d, u := range a.usage {
		if u != UsageFixed {
			continue
		}
		if index < 0 || index >= a.Shape[d] {
			a.fixed[d] = 0
		} else {
			a.fixed[d] = index
		}
	}
}

func resolveImage(a *Assignment, c census, opts Options) error {
	if err := needImageDims(a, c); err != nil {
		return err
	}
	a.usage[a.ImageDims[0]] = UsageFull
	a.usage[a.ImageDims[1]] = UsageFull
	pin(a, opts.SelectorIndex)
	return nil
}

func resolveImageStack(a *Assignment, c census) error {
	if err := needImageDims(a, c); err != nil {
		return err
	}
	switch {
	case len(c.temporal) > 1:
		return classErr(a.Mode, ErrAmbiguousStackDim, "%d TEMPORAL axes %v", len(c.temporal), c.temporal)
	case len(c.temporal) == 1:
		a.StackDim = c.temporal[0]
	case len(a.Shape) == 3:
		for d := range a.Shape {
			if d != a.ImageDims[0] && d != a.ImageDims[1] {
				a.StackDim = d
			}
		}
	default:
		return classErr(a.Mode, ErrNoStackDim, "no TEMPORAL axis among %d dimensions", len(a.Shape))
	}
	a.usage[a.ImageDims[0]] = UsageFull
	a.usage[a.ImageDims[1]] = UsageFull
	a.usage[a.StackDim] = UsageStack
	pin(a, 0)
	return nil
}

func resolveSpectralImage(a *Assignment, c census) error {
	if err := needImageDims(a, c); err != nil {
		return err
	}
	if len(c.spectral) != 1 {
		return classErr(a.Mode, ErrSpectralDims, "found %d", len(c.spectral))
	}
	a.SpectralDim = c.spectral[0]
	a.usage[a.ImageDims[0]] = UsageNavX
	a.usage[a.ImageDims[1]] = UsageNavY
	a.usage[a.SpectralDim] = UsageFull
	pin(a, 0)
	return nil
}

func resolveCurve(a *Assignment, c census, opts Options) error {
	if len(c.spectral) != 1 {
		return classErr(a.Mode, ErrSpectralDims, "found %d", len(c.spectral))
	}
	a.SpectralDim = c.spectral[0]
	a.usage[a.SpectralDim] = UsageFull
	pin(a, opts.SelectorIndex)
	return nil
}

// resolve4D assigns scan and 4D-slice axes. The first SPATIAL axis found
// becomes scan_y and the second scan_x; without two SPATIAL axes the
// slow-scan-first order scan_y=0, scan_x=1 applies. The slice axes are the
// lowest remaining indices, image_y first.
func resolve4D(a *Assignment, c census, opts Options) error {
	rank := len(a.Shape)
	if rank < 4 {
		return classErr(a.Mode, ErrTooFewDims, "need at least 4, have %d", rank)
	}

	fields := []struct {
		name string
		v    *int
	}{{"scan_x", opts.ScanX}, {"scan_y", opts.ScanY}, {"image_4d_x", opts.Image4DX}, {"image_4d_y", opts.Image4DY}}
	seen := map[int]string{}
	for _, f := range fields {
		if f.v == nil {
			continue
		}
		if *f.v < 0 || *f.v >= rank {
			return &ConfigurationError{Field: f.name, Reason: fmt.Sprintf("axis %d out of range for %d dimensions", *f.v, rank)}
		}
		if other, ok := seen[*f.v]; ok {
			return &ConfigurationError{Field: f.name, Reason: fmt.Sprintf("axis %d already used by %s", *f.v, other)}
		}
		seen[*f.v] = f.name
	}

	scanX, scanY := -1, -1
	if opts.ScanX != nil {
		scanX = *opts.ScanX
	}
	if opts.ScanY != nil {
		scanY = *opts.ScanY
	}
	claimed := func(d int) bool {
		_, ok := seen[d]
		return ok || d == scanX || d == scanY
	}

	for _, d := range c.spatial {
		if claimed(d) {
			continue
		}
		if scanY < 0 {
			scanY = d
		} else if scanX < 0 {
			scanX = d
		}
	}
	if scanX < 0 || scanY < 0 {
		if opts.ScanX == nil && opts.ScanY == nil {
			scanY, scanX = 0, 1
		} else {
			for d := 0; d < rank && (scanX < 0 || scanY < 0); d++ {
				if claimed(d) {
					continue
				}
				if scanY < 0 {
					scanY = d
				} else {
					scanX = d
				}
			}
		}
	}
	if scanX == scanY {
		return classErr(a.Mode, ErrScanDims, "scan_x and scan_y both resolve to axis %d", scanX)
	}

	imageX, imageY := -1, -1
	if opts.Image4DX != nil {
		imageX = *opts.Image4DX
	}
	if opts.Image4DY != nil {
		imageY = *opts.Image4DY
	}
	for d := 0; d < rank && (imageX < 0 || imageY < 0); d++ {
		if d == scanX || d == scanY || d == imageX || d == imageY {
			continue
		}
		if imageY < 0 {
			imageY = d
		} else {
			imageX = d
		}
	}
	if imageX < 0 || imageY < 0 || imageX == imageY || imageX == scanX || imageX == scanY || imageY == scanX || imageY == scanY {
		return classErr(a.Mode, ErrSliceDims, "resolved image_4d_x=%d image_4d_y=%d with scan_x=%d scan_y=%d", imageX, imageY, scanX, scanY)
	}

	a.ScanDims = [2]int{scanX, scanY}
	a.SliceDims = [2]int{imageX, imageY}
	a.usage[scanX] = UsageNavX
	a.usage[scanY] = UsageNavY
	a.usage[imageX] = UsageFull
	a.usage[imageY] = UsageFull
	pin(a, 0)
	return nil
}
