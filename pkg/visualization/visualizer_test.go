package visualization

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dimviz/internal/models"
	"dimviz/pkg/axis"
	"dimviz/pkg/navigation"
	"dimviz/pkg/ndarray"
	"dimviz/pkg/roles"
)

// recordingCanvas keeps every update it receives
type recordingCanvas struct {
	updates []ViewUpdate
	err     error
}

func (c *recordingCanvas) Redraw(u ViewUpdate) error {
	c.updates = append(c.updates, u)
	return c.err
}

func (c *recordingCanvas) last() ViewUpdate {
	return c.updates[len(c.updates)-1]
}

// testDataset builds a dataset whose values encode their index, one decimal
// digit per axis, so reductions can be checked by hand.
func testDataset(t *testing.T, shape []int, roleList []axis.Role) *models.Dataset {
	t.Helper()
	arr, err := ndarray.FromFunc(shape, func(idx []int) float64 {
		v := 0
		for _, i := range idx {
			v = v*10 + i
		}
		return float64(v)
	})
	require.NoError(t, err)
	axes := make([]models.Axis, len(shape))
	for i, r := range roleList {
		axes[i] = models.Axis{Name: string(rune('a' + i)), Quantity: r.String(), Units: "nm", Role: r}
	}
	return &models.Dataset{Title: "test data", Quantity: "intensity", Units: "counts", Array: arr, Axes: axes}
}

func TestNewFailsOnWrongRoles(t *testing.T) {
	ds := testDataset(t, []int{4, 4}, []axis.Role{axis.Spatial, axis.Spatial})

	v, err := New(ds, roles.ModeImageStack, Options{})
	require.Error(t, err)
	assert.Nil(t, v)
	assert.ErrorIs(t, err, roles.ErrNoStackDim)
	var ce *roles.ClassificationError
	assert.True(t, errors.As(err, &ce))

	ds = testDataset(t, []int{3, 4, 4, 5}, []axis.Role{axis.Temporal, axis.Spatial, axis.Spatial, axis.Temporal})
	_, err = New(ds, roles.ModeImageStack, Options{})
	assert.ErrorIs(t, err, roles.ErrAmbiguousStackDim)

	bad := testDataset(t, []int{4, 4}, []axis.Role{axis.Spatial, axis.Spatial})
	bad.Axes = bad.Axes[:1]
	_, err = New(bad, roles.ModeImage, Options{})
	assert.Error(t, err, "invalid dataset")
}

func TestImageMode(t *testing.T) {
	ds := testDataset(t, []int{3, 4, 2}, []axis.Role{axis.Spatial, axis.Spatial, axis.Unclassified})
	canvas := &recordingCanvas{}
	v, err := New(ds, roles.ModeImage, Options{Canvas: canvas, Resolve: roles.Options{SelectorIndex: 1}})
	require.NoError(t, err)
	require.Len(t, canvas.updates, 1, "initial redraw")

	view := canvas.last().View
	require.Equal(t, 4, view.Rows())
	require.Equal(t, 3, view.Cols())
	// row 2 is y=2, column 1 is x=1, selector 1 on the third axis
	assert.Equal(t, 121.0, view.Data[2*3+1])
	assert.Equal(t, "test data_image 1", view.Title)
	assert.Equal(t, "SPATIAL (nm)", view.XLabel)

	// image mode has no cursor: clicks and bins are ignored
	assert.False(t, v.Click(1, 1))
	v.SetBin(2, 2)
	assert.Len(t, canvas.updates, 1)
	_, ok := v.NavigationView()
	assert.False(t, ok)
}

func TestImageStackMode(t *testing.T) {
	ds := testDataset(t, []int{2, 3, 5}, []axis.Role{axis.Spatial, axis.Spatial, axis.Unclassified})
	canvas := &recordingCanvas{}
	v, err := New(ds, roles.ModeImageStack, Options{Canvas: canvas})
	require.NoError(t, err)
	require.Equal(t, 2, v.Assignment().StackDim)

	v.Scroll(navigation.Down)
	assert.Equal(t, 4, v.State().Frame, "scrolling down from 0 wraps")
	view := canvas.last().View
	assert.Equal(t, 114.0, view.Data[1*2+1])
	assert.Equal(t, "test data_image 4", view.Title)

	v.Scroll(navigation.Up)
	assert.Equal(t, 0, v.State().Frame)

	v.SetFrame(3)
	v.ToggleAverage(true)
	view = canvas.last().View
	assert.InDelta(t, 112, view.Data[1*2+1], 1e-9, "stack mean")
	assert.Equal(t, "test data (average)", view.Title)

	v.ToggleAverage(false)
	assert.Equal(t, 3, v.State().Frame)
	assert.Equal(t, 113.0, canvas.last().View.Data[1*2+1])
}

func TestSpectralImageMode(t *testing.T) {
	ds := testDataset(t, []int{4, 3, 6}, []axis.Role{axis.Spatial, axis.Spatial, axis.Spectral})
	ds.Axes[2].Values = []float64{100, 101, 102, 103, 104, 105}
	canvas := &recordingCanvas{}
	v, err := New(ds, roles.ModeSpectralImage, Options{Canvas: canvas, PixelsPerCell: 10, Horizontal: true})
	require.NoError(t, err)

	nav, ok := v.NavigationView()
	require.True(t, ok)
	require.Equal(t, []int{3, 4}, nav.Shape)
	assert.InDelta(t, 322.5, nav.Data[2*4+3], 1e-9, "spectral mean")

	require.True(t, v.Click(25, 12))
	x, y := v.Cursor()
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
	u := canvas.last()
	assert.Equal(t, navigation.Rect{X: 20, Y: 10, Width: 10, Height: 10}, u.ROI)
	assert.True(t, u.Horizontal)
	assert.Equal(t, "spectrum 2, 1", u.View.Title)
	require.Len(t, u.View.Data, 6)
	assert.Equal(t, 100.0, u.View.XValues[0])
	assert.Equal(t, 215.0, u.View.Data[5])

	assert.False(t, v.Click(-1, 5), "click outside the image")

	v.SetBin(2, 3)
	s := v.State()
	assert.Equal(t, navigation.State{X: 2, Y: 0, BinX: 2, BinY: 3}, s)
	roi := v.ROIRectangle()
	assert.Equal(t, 20.0, roi.Width)
	assert.Equal(t, 30.0, roi.Height)
	assert.Equal(t, 0.0, roi.Y)
	// x in {2,3}, y in {0,1,2}
	assert.InDelta(t, 250+10, canvas.last().View.Data[0], 1e-9)

	assert.Equal(t, []int{2, 3, 6}, v.Selection().Shape())
}

func TestNavigationLabelFollowsLayout(t *testing.T) {
	ds := testDataset(t, []int{4, 3, 6}, []axis.Role{axis.Spatial, axis.Spatial, axis.Spectral})
	ds.Axes[0].Quantity = "distance x"
	ds.Axes[1].Quantity = "distance y"

	side, err := New(ds, roles.ModeSpectralImage, Options{Horizontal: true})
	require.NoError(t, err)
	nav, _ := side.NavigationView()
	assert.Equal(t, "distance x [pixels]", nav.XLabel)
	assert.Empty(t, nav.YLabel)

	stacked, err := New(ds, roles.ModeSpectralImage, Options{Horizontal: false})
	require.NoError(t, err)
	nav, _ = stacked.NavigationView()
	assert.Empty(t, nav.XLabel)
	assert.Equal(t, "distance y [pixels]", nav.YLabel)
}

func TestFourDImageMode(t *testing.T) {
	ds := testDataset(t, []int{2, 3, 4, 5}, []axis.Role{axis.Spatial, axis.Unclassified, axis.Spatial, axis.Unclassified})
	canvas := &recordingCanvas{}
	v, err := New(ds, roles.Mode4DImage, Options{Canvas: canvas})
	require.NoError(t, err)
	slots := v.Assignment().Slots()
	assert.Equal(t, 0, slots["scan_y"])
	assert.Equal(t, 2, slots["scan_x"])

	nav, _ := v.NavigationView()
	assert.Equal(t, []int{2, 4}, nav.Shape)

	require.True(t, v.Click(3.5, 1.2))
	view := canvas.last().View
	assert.Equal(t, "set 3, 1", view.Title)
	require.Equal(t, []int{3, 5}, view.Shape)
	assert.Equal(t, 1234.0, view.Data[2*5+4])
}

func TestCurveMode(t *testing.T) {
	ds := testDataset(t, []int{3, 7}, []axis.Role{axis.Spatial, axis.Spectral})
	v, err := New(ds, roles.ModeCurve, Options{Resolve: roles.Options{SelectorIndex: 2}})
	require.NoError(t, err)

	view, err := v.CurrentView()
	require.NoError(t, err)
	require.Len(t, view.Data, 7)
	assert.Equal(t, 26.0, view.Data[6], "spectrum at index 2")
	assert.Equal(t, "intensity (counts)", view.YLabel)
}

func TestCanvasErrorsAreSwallowed(t *testing.T) {
	ds := testDataset(t, []int{4, 4, 3}, []axis.Role{axis.Spatial, axis.Spatial, axis.Spectral})
	canvas := &recordingCanvas{err: errors.New("display gone")}
	v, err := New(ds, roles.ModeSpectralImage, Options{Canvas: canvas})
	require.NoError(t, err)

	assert.True(t, v.Click(1, 1))
	assert.Len(t, canvas.updates, 2)
}

func TestSharedDatasetKeepsIndependentState(t *testing.T) {
	ds := testDataset(t, []int{5, 5, 4}, []axis.Role{axis.Spatial, axis.Spatial, axis.Spectral})
	a, err := New(ds, roles.ModeSpectralImage, Options{})
	require.NoError(t, err)
	b, err := New(ds, roles.ModeSpectralImage, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())

	a.Click(3, 3)
	x, y := b.Cursor()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}
