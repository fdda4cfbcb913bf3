// Package navigation holds the interaction state of a visualizer and the
// event handlers that mutate it. Handlers never fail: out-of-range input is
// clamped or ignored.
package navigation

import (
	"dimviz/pkg/selection"
)

// State is the mutable interaction record of one visualizer.
type State struct {
	X, Y       int
	BinX, BinY int
	Frame      int
	Average    bool
}

// NewState returns the initial state: cursor at the origin, 1x1 bin,
// first frame, no averaging.
func NewState() State {
	return State{BinX: 1, BinY: 1}
}

// Window returns the selection-driving part of the state.
func (s State) Window() selection.Window {
	return selection.Window{X: s.X, Y: s.Y, BinX: s.BinX, BinY: s.BinY, Frame: s.Frame}
}

// ClampState applies the bounds rule to both navigation axes.
func ClampState(s State, lenX, lenY int) State {
	s.X, s.BinX = selection.Clamp(s.X, s.BinX, lenX)
	s.Y, s.BinY = selection.Clamp(s.Y, s.BinY, lenY)
	return s
}

// Rect is an axis-aligned rectangle in display pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether (px, py) lies inside r, edges included.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && py >= r.Y && px <= r.X+r.Width && py <= r.Y+r.Height
}

// Direction is a scroll direction.
type Direction int

const (
	Up Direction = iota
	Down
)
