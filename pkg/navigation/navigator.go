package navigation

import (
	"math"
)

// Navigator owns the interaction state of one visualizer together with the
// ROI rectangle drawn over the navigation image.
type Navigator struct {
	state State

	// area is the navigation image in display pixels
	area Rect
	// roi is the rectangle marking the current cursor+bin window
	roi Rect

	lenX, lenY int
	stackLen   int
}

// NewNavigator creates a navigator for a navigation image of lenX x lenY
// cells drawn with the given pixel size per cell, and a stack of stackLen
// frames (0 when there is no stack axis).
func NewNavigator(lenX, lenY, stackLen int, cellWidth, cellHeight float64) *Navigator {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	if cellHeight <= 0 {
		cellHeight = 1
	}
	n := &Navigator{
		state:    NewState(),
		area:     Rect{Width: float64(lenX) * cellWidth, Height: float64(lenY) * cellHeight},
		roi:      Rect{Width: cellWidth, Height: cellHeight},
		lenX:     lenX,
		lenY:     lenY,
		stackLen: stackLen,
	}
	n.settle()
	return n
}

// State returns a copy of the current state.
func (n *Navigator) State() State { return n.state }

// ROI returns the current region-of-interest rectangle.
func (n *Navigator) ROI() Rect { return n.roi }

// Area returns the navigation image rectangle.
func (n *Navigator) Area() Rect { return n.area }

// StackLength returns the number of frames.
func (n *Navigator) StackLength() int { return n.stackLen }

// cellSize is the pixel size of one cell, derived from the ROI and bin.
func (n *Navigator) cellSize() (float64, float64) {
	return n.roi.Width / float64(n.state.BinX), n.roi.Height / float64(n.state.BinY)
}

// settle re-clamps the cursor and moves the ROI to match it.
func (n *Navigator) settle() {
	n.state = ClampState(n.state, n.lenX, n.lenY)
	cw, ch := n.cellSize()
	n.roi.X = n.area.X + float64(n.state.X)*cw
	n.roi.Y = n.area.Y + float64(n.state.Y)*ch
}

// Click moves the cursor to the cell under (px, py). Clicks outside the
// navigation image are ignored. It reports whether the click was accepted.
func (n *Navigator) Click(px, py float64) bool {
	if math.IsNaN(px) || math.IsNaN(py) || math.IsInf(px, 0) || math.IsInf(py, 0) {
		return false
	}
	if !n.area.Contains(px, py) {
		return false
	}
	dx, dy := px-n.area.X, py-n.area.Y
	cw, ch := n.cellSize()
	n.state.X = int(math.Floor(dx / cw))
	n.state.Y = int(math.Floor(dy / ch))
	n.settle()
	return true
}

// Scroll steps the frame by one, wrapping at both ends.
func (n *Navigator) Scroll(dir Direction) {
	if n.stackLen < 1 {
		return
	}
	step := -1
	if dir == Up {
		step = 1
	}
	n.state.Frame = ((n.state.Frame+step)%n.stackLen + n.stackLen) % n.stackLen
}

// SetFrame jumps to frame i. Values outside the stack are clamped.
func (n *Navigator) SetFrame(i int) {
	if n.stackLen < 1 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= n.stackLen {
		i = n.stackLen - 1
	}
	n.state.Frame = i
}

// SetBin resizes the bin window. Each bin is clamped to [1, axis length].
// The ROI keeps its top-left anchor and scales by the new/old bin ratio.
func (n *Navigator) SetBin(binX, binY int) {
	oldX, oldY := n.state.BinX, n.state.BinY
	binX = clampBin(binX, n.lenX)
	binY = clampBin(binY, n.lenY)
	n.state.BinX, n.state.BinY = binX, binY
	n.roi.Width = n.roi.Width * float64(binX) / float64(oldX)
	n.roi.Height = n.roi.Height * float64(binY) / float64(oldY)
	n.settle()
}

// SetBinScalar applies the same bin to both axes.
func (n *Navigator) SetBinScalar(bin int) {
	n.SetBin(bin, bin)
}

// ToggleAverage switches between the stack mean and the current frame.
// Turning averaging off returns to the frame shown before it was turned on.
func (n *Navigator) ToggleAverage(on bool) {
	if on == n.state.Average {
		return
	}
	n.state.Average = on
	if !on && n.stackLen > 0 {
		n.state.Frame = n.state.Frame % n.stackLen
	}
}

func clampBin(bin, length int) int {
	if bin < 1 {
		bin = 1
	}
	if length >= 1 && bin > length {
		bin = length
	}
	return bin
}
