package visualization

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"dimviz/internal/models"
	"dimviz/pkg/navigation"
	"dimviz/pkg/reduce"
	"dimviz/pkg/roles"
	"dimviz/pkg/selection"
)

// ViewUpdate is what a visualizer hands to its canvas after every accepted
// event.
type ViewUpdate struct {
	// ID identifies the visualizer that produced the update
	ID uuid.UUID

	// Mode of the visualizer
	Mode roles.Mode

	// View is the current image, spectrum or 4D slice
	View reduce.View

	// Navigation is the navigation image of cursor modes, nil otherwise
	Navigation *reduce.View

	// Area and ROI are the navigation image and ROI rectangle in display pixels
	Area navigation.Rect
	ROI  navigation.Rect

	// State is a copy of the interaction state
	State navigation.State

	// Horizontal places the navigation image left of the view instead of above it
	Horizontal bool
}

// Canvas renders views. It is the only collaborator a visualizer talks to.
type Canvas interface {
	Redraw(u ViewUpdate) error
}

// Options configures a visualizer.
type Options struct {
	// Resolve carries the selector index and 4D axis overrides
	Resolve roles.Options

	// PixelsPerCell is the display size of one navigation cell
	PixelsPerCell float64

	// Horizontal lays the navigation image and the view side by side. The
	// navigation image then carries its x label; stacked, its y label.
	Horizontal bool

	// Canvas receives every redraw; nil disables drawing
	Canvas Canvas

	// Logger receives progress and canvas errors; nil discards them
	Logger *log.Logger
}

// Visualizer connects a dataset, its resolved axis roles and the interaction
// state of one view. The dataset is only read and may be shared between
// visualizers; the interaction state belongs to this instance alone.
type Visualizer struct {
	mu sync.Mutex

	id     uuid.UUID
	ds     *models.Dataset
	assign roles.Assignment
	nav    *navigation.Navigator

	// navView is computed once at construction for cursor modes
	navView *reduce.View

	canvas     Canvas
	logger     *log.Logger
	horizontal bool
}

// New builds a visualizer for ds in the given mode. It fails when the axis
// roles do not fit the mode; no visualizer is returned in that case.
func New(ds *models.Dataset, mode roles.Mode, opts Options) (*Visualizer, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	assign, err := roles.Resolve(ds.Roles(), ds.Shape(), mode, opts.Resolve)
	if err != nil {
		return nil, fmt.Errorf("cannot show %q as %s: %w", ds.Title, mode, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	v := &Visualizer{
		id:     uuid.New(),
		ds:     ds,
		assign: assign,
		canvas:     opts.Canvas,
		logger:     logger,
		horizontal: opts.Horizontal,
	}

	lenX, lenY := 1, 1
	switch {
	case mode.HasCursor():
		lenX, lenY = assign.NavLengths()
	case mode == roles.ModeImage || mode == roles.ModeImageStack:
		lenX, lenY = assign.Shape[assign.ImageDims[0]], assign.Shape[assign.ImageDims[1]]
	}
	v.nav = navigation.NewNavigator(lenX, lenY, assign.StackLength(), opts.PixelsPerCell, opts.PixelsPerCell)

	if mode.HasCursor() {
		navView, err := v.navigationView()
		if err != nil {
			return nil, fmt.Errorf("failed to build navigation image: %w", err)
		}
		v.navView = &navView
	}

	logger.Printf("visualizer %s: %s %v as %s, slots %v", v.id, ds.Title, assign.Shape, mode, assign.Slots())
	v.redraw()
	return v, nil
}

// ID returns the instance identifier.
func (v *Visualizer) ID() uuid.UUID { return v.id }

// Assignment returns the resolved role slots.
func (v *Visualizer) Assignment() roles.Assignment { return v.assign }

// State returns a copy of the interaction state.
func (v *Visualizer) State() navigation.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.nav.State()
}

// Cursor returns the current cursor cell.
func (v *Visualizer) Cursor() (int, int) {
	s := v.State()
	return s.X, s.Y
}

// ROIRectangle returns the ROI rectangle in display pixels.
func (v *Visualizer) ROIRectangle() navigation.Rect {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.nav.ROI()
}

// Selection returns the selection for the current state.
func (v *Visualizer) Selection() selection.Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return selection.Build(v.assign, v.nav.State().Window())
}

// NavigationView returns the navigation image of cursor modes.
func (v *Visualizer) NavigationView() (reduce.View, bool) {
	if v.navView == nil {
		return reduce.View{}, false
	}
	return *v.navView, true
}

// CurrentView reduces the current selection to a renderable view.
func (v *Visualizer) CurrentView() (reduce.View, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.currentView()
}

// Click moves the cursor to the cell under the display pixel (px, py).
// Clicks outside the navigation image are ignored.
func (v *Visualizer) Click(px, py float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.assign.Mode.HasCursor() || !v.nav.Click(px, py) {
		return false
	}
	v.redrawLocked()
	return true
}

// Scroll steps one frame up or down, wrapping around the stack.
func (v *Visualizer) Scroll(dir navigation.Direction) {
	v.mutate(func(n *navigation.Navigator) { n.Scroll(dir) })
}

// SetFrame jumps to frame i.
func (v *Visualizer) SetFrame(i int) {
	v.mutate(func(n *navigation.Navigator) { n.SetFrame(i) })
}

// SetBin resizes the bin window of cursor modes.
func (v *Visualizer) SetBin(binX, binY int) {
	if !v.assign.Mode.HasCursor() {
		return
	}
	v.mutate(func(n *navigation.Navigator) { n.SetBin(binX, binY) })
}

// SetBinScalar applies one bin size to both axes.
func (v *Visualizer) SetBinScalar(bin int) {
	v.SetBin(bin, bin)
}

// ToggleAverage switches an image stack between the mean of all frames and
// the current frame.
func (v *Visualizer) ToggleAverage(on bool) {
	if !v.assign.Mode.HasStack() {
		return
	}
	v.mutate(func(n *navigation.Navigator) { n.ToggleAverage(on) })
}

// mutate applies fn and redraws when the state or ROI changed.
func (v *Visualizer) mutate(fn func(n *navigation.Navigator)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	before, roi := v.nav.State(), v.nav.ROI()
	fn(v.nav)
	if v.nav.State() != before || v.nav.ROI() != roi {
		v.redrawLocked()
	}
}

func (v *Visualizer) redraw() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.redrawLocked()
}

// redrawLocked notifies the canvas. Failures are logged, never returned:
// the interactive loop must survive a broken canvas.
func (v *Visualizer) redrawLocked() {
	if v.canvas == nil {
		return
	}
	view, err := v.currentView()
	if err != nil {
		v.logger.Printf("visualizer %s: failed to reduce view: %v", v.id, err)
		return
	}
	u := ViewUpdate{
		ID:         v.id,
		Mode:       v.assign.Mode,
		View:       view,
		Navigation: v.navView,
		Area:       v.nav.Area(),
		ROI:        v.nav.ROI(),
		State:      v.nav.State(),
		Horizontal: v.horizontal,
	}
	if err := v.canvas.Redraw(u); err != nil {
		v.logger.Printf("visualizer %s: canvas redraw failed: %v", v.id, err)
	}
}
