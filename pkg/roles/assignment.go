package roles

// Usage describes how the selection treats one axis.
type Usage int

const (
	// UsageFixed pins the axis at a single index.
	UsageFixed Usage = iota
	// UsageFull takes the whole axis (displayed image or spectral axis).
	UsageFull
	// UsageStack takes the current frame.
	UsageStack
	// UsageNavX and UsageNavY take the cursor+bin window.
	UsageNavX
	UsageNavY
)

func (u Usage) String() string {
	switch u {
	case UsageFixed:
		return "fixed"
	case UsageFull:
		return "full"
	case UsageStack:
		return "stack"
	case UsageNavX:
		return "nav-x"
	case UsageNavY:
		return "nav-y"
	}
	return "unknown"
}

// Assignment is the resolved mapping from role slots to axis indices. It is
// built once by Resolve and never modified.
type Assignment struct {
	Mode  Mode
	Shape []int

	// ImageDims are the two displayed axes of image, image-stack and
	// spectral-image modes, in axis order.
	ImageDims [2]int

	// SpectralDim is -1 when the mode has no spectral axis.
	SpectralDim int

	// StackDim is -1 outside image-stack mode.
	StackDim int

	// ScanDims holds (scan_x, scan_y) in 4D mode.
	ScanDims [2]int

	// SliceDims holds (image_x, image_y) in 4D mode.
	SliceDims [2]int

	usage []Usage
	fixed []int
}

// Rank returns the number of axes the assignment covers.
func (a Assignment) Rank() int { return len(a.usage) }

// Usage returns how axis dim is selected.
func (a Assignment) Usage(dim int) Usage { return a.usage[dim] }

// FixedIndex returns the pinned index of a UsageFixed axis.
func (a Assignment) FixedIndex(dim int) int { return a.fixed[dim] }

// NavDims returns the (x, y) navigation axes of cursor modes.
func (a Assignment) NavDims() [2]int {
	if a.Mode == Mode4DImage {
		return a.ScanDims
	}
	return a.ImageDims
}

// NavLengths returns the lengths of the navigation axes.
func (a Assignment) NavLengths() (int, int) {
	nav := a.NavDims()
	return a.Shape[nav[0]], a.Shape[nav[1]]
}

// StackLength returns the number of frames, or 0 without a stack axis.
func (a Assignment) StackLength() int {
	if a.StackDim < 0 {
		return 0
	}
	return a.Shape[a.StackDim]
}

// Slots returns the named role slots used by the mode.
func (a Assignment) Slots() map[string]int {
	slots := map[string]int{}
	switch a.Mode {
	case ModeImage:
		slots["image_dim_0"] = a.ImageDims[0]
		slots["image_dim_1"] = a.ImageDims[1]
	case ModeImageStack:
		slots["image_dim_0"] = a.ImageDims[0]
		slots["image_dim_1"] = a.ImageDims[1]
		slots["stack_dim"] = a.StackDim
	case ModeSpectralImage:
		slots["image_dim_0"] = a.ImageDims[0]
		slots["image_dim_1"] = a.ImageDims[1]
		slots["spectral_dim"] = a.SpectralDim
	case Mode4DImage:
		slots["scan_x"] = a.ScanDims[0]
		slots["scan_y"] = a.ScanDims[1]
		slots["4d_dim_0"] = a.SliceDims[0]
		slots["4d_dim_1"] = a.SliceDims[1]
	case ModeCurve:
		slots["spectral_dim"] = a.SpectralDim
	}
	return slots
}

func newAssignment(m Mode, shape []int) Assignment {
	s := make([]int, len(shape))
	copy(s, shape)
	return Assignment{
		Mode:        m,
		Shape:       s,
		SpectralDim: -1,
		StackDim:    -1,
		usage:       make([]Usage, len(shape)),
		fixed:       make([]int, len(shape)),
	}
}
