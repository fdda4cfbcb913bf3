package roles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dimviz/pkg/axis"
)

const (
	sp = axis.Spatial
	rc = axis.Reciprocal
	se = axis.Spectral
	tm = axis.Temporal
	un = axis.Unclassified
)

func intPtr(v int) *int { return &v }

func TestResolveImage(t *testing.T) {
	a, err := Resolve([]axis.Role{sp, un, rc}, []int{4, 3, 5}, ModeImage, Options{SelectorIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 2}, a.ImageDims)
	assert.Equal(t, UsageFull, a.Usage(0))
	assert.Equal(t, UsageFixed, a.Usage(1))
	assert.Equal(t, 2, a.FixedIndex(1))
	assert.Equal(t, map[string]int{"image_dim_0": 0, "image_dim_1": 2}, a.Slots())

	// selector beyond the axis falls back to 0
	a, err = Resolve([]axis.Role{sp, un, rc}, []int{4, 3, 5}, ModeImage, Options{SelectorIndex: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, a.FixedIndex(1))

	_, err = Resolve([]axis.Role{sp, un, un}, []int{4, 3, 5}, ModeImage, Options{})
	assert.ErrorIs(t, err, ErrImageDims)
	var ce *ClassificationError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, ModeImage, ce.Mode)
}

func TestResolveImageStackNeedsStackAxis(t *testing.T) {
	_, err := Resolve([]axis.Role{sp, sp}, []int{8, 8}, ModeImageStack, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoStackDim)
	var ce *ClassificationError
	assert.True(t, errors.As(err, &ce))
}

func TestResolveImageStackInfersResidualAxis(t *testing.T) {
	a, err := Resolve([]axis.Role{sp, sp, un}, []int{8, 8, 6}, ModeImageStack, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, a.StackDim)
	assert.Equal(t, 6, a.StackLength())
	assert.Equal(t, UsageStack, a.Usage(2))
}

func TestResolveImageStackPrefersTemporal(t *testing.T) {
	a, err := Resolve([]axis.Role{un, tm, sp, sp}, []int{2, 5, 8, 8}, ModeImageStack, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, a.StackDim)
	assert.Equal(t, [2]int{2, 3}, a.ImageDims)
	assert.Equal(t, UsageFixed, a.Usage(0))
	assert.Equal(t, 0, a.FixedIndex(0))

	_, err = Resolve([]axis.Role{un, un, sp, sp}, []int{2, 5, 8, 8}, ModeImageStack, Options{})
	assert.ErrorIs(t, err, ErrNoStackDim)

	_, err = Resolve([]axis.Role{sp, tm, un}, []int{8, 5, 8}, ModeImageStack, Options{})
	assert.ErrorIs(t, err, ErrImageDims)
}

func TestResolveImageStackRejectsTwoTemporalAxes(t *testing.T) {
	_, err := Resolve([]axis.Role{tm, sp, sp, tm}, []int{3, 4, 4, 5}, ModeImageStack, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousStackDim)
	var ce *ClassificationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ModeImageStack, ce.Mode)
}

func TestResolveSpectralImage(t *testing.T) {
	a, err := Resolve([]axis.Role{sp, sp, se}, []int{6, 4, 100}, ModeSpectralImage, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, a.SpectralDim)
	assert.Equal(t, [2]int{0, 1}, a.NavDims())
	assert.Equal(t, UsageNavX, a.Usage(0))
	assert.Equal(t, UsageNavY, a.Usage(1))
	assert.Equal(t, UsageFull, a.Usage(2))
	x, y := a.NavLengths()
	assert.Equal(t, 6, x)
	assert.Equal(t, 4, y)

	_, err = Resolve([]axis.Role{sp, un, se}, []int{6, 4, 100}, ModeSpectralImage, Options{})
	assert.ErrorIs(t, err, ErrImageDims)

	_, err = Resolve([]axis.Role{sp, sp, un}, []int{6, 4, 100}, ModeSpectralImage, Options{})
	assert.ErrorIs(t, err, ErrSpectralDims)
	assert.NotErrorIs(t, err, ErrImageDims)

	_, err = Resolve([]axis.Role{sp, sp, se, se}, []int{6, 4, 10, 10}, ModeSpectralImage, Options{})
	assert.ErrorIs(t, err, ErrSpectralDims)
}

func TestResolve4DDiscoveryOrder(t *testing.T) {
	a, err := Resolve([]axis.Role{sp, un, sp, un}, []int{5, 6, 7, 8}, Mode4DImage, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, a.Slots()["scan_y"])
	assert.Equal(t, 2, a.Slots()["scan_x"])
	assert.ElementsMatch(t, []int{1, 3}, []int{a.SliceDims[0], a.SliceDims[1]})
	assert.Equal(t, 1, a.SliceDims[1], "image_y takes the lowest remaining axis")
	assert.Equal(t, UsageNavX, a.Usage(2))
	assert.Equal(t, UsageNavY, a.Usage(0))
}

func TestResolve4DDefaultsToSlowScanFirst(t *testing.T) {
	a, err := Resolve([]axis.Role{un, un, rc, rc}, []int{5, 6, 7, 8}, Mode4DImage, Options{})
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, a.ScanDims)
	assert.Equal(t, [2]int{3, 2}, a.SliceDims)

	// a single SPATIAL axis is not enough either
	a, err = Resolve([]axis.Role{un, un, sp, un}, []int{5, 6, 7, 8}, Mode4DImage, Options{})
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, a.ScanDims)
}

func TestResolve4DOverrides(t *testing.T) {
	a, err := Resolve([]axis.Role{sp, sp, un, un}, []int{5, 6, 7, 8}, Mode4DImage, Options{
		ScanX: intPtr(3), ScanY: intPtr(2), Image4DX: intPtr(0), Image4DY: intPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, [2]int{3, 2}, a.ScanDims)
	assert.Equal(t, [2]int{0, 1}, a.SliceDims)

	// a partial override keeps discovery for the rest
	a, err = Resolve([]axis.Role{sp, un, sp, un}, []int{5, 6, 7, 8}, Mode4DImage, Options{ScanX: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 0}, a.ScanDims)
	assert.Equal(t, [2]int{3, 1}, a.SliceDims)

	_, err = Resolve([]axis.Role{sp, sp, un, un}, []int{5, 6, 7, 8}, Mode4DImage, Options{ScanX: intPtr(1), ScanY: intPtr(1)})
	var cfg *ConfigurationError
	require.True(t, errors.As(err, &cfg))
	assert.Equal(t, "scan_y", cfg.Field)

	_, err = Resolve([]axis.Role{sp, sp, un, un}, []int{5, 6, 7, 8}, Mode4DImage, Options{Image4DX: intPtr(4)})
	assert.True(t, errors.As(err, &cfg))
}

func TestResolve4DTooFewDims(t *testing.T) {
	_, err := Resolve([]axis.Role{sp, sp, se}, []int{5, 6, 7}, Mode4DImage, Options{})
	assert.ErrorIs(t, err, ErrTooFewDims)
}

func TestResolveCurve(t *testing.T) {
	a, err := Resolve([]axis.Role{sp, se}, []int{4, 50}, ModeCurve, Options{SelectorIndex: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, a.SpectralDim)
	assert.Equal(t, 3, a.FixedIndex(0))

	_, err = Resolve([]axis.Role{sp, sp}, []int{4, 50}, ModeCurve, Options{})
	assert.ErrorIs(t, err, ErrSpectralDims)
}

func TestResolveRejectsMismatchedShape(t *testing.T) {
	_, err := Resolve([]axis.Role{sp, sp}, []int{4, 4, 4}, ModeImage, Options{})
	var ce *ClassificationError
	assert.True(t, errors.As(err, &ce))

	_, err = Resolve([]axis.Role{sp, axis.Role(99)}, []int{4, 4}, ModeImage, Options{})
	assert.True(t, errors.As(err, &ce))
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeImage, ModeImageStack, ModeSpectralImage, Mode4DImage, ModeCurve} {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParseMode("movie")
	assert.Error(t, err)
	assert.True(t, ModeSpectralImage.HasCursor())
	assert.True(t, Mode4DImage.HasCursor())
	assert.False(t, ModeImageStack.HasCursor())
	assert.True(t, ModeImageStack.HasStack())
}
