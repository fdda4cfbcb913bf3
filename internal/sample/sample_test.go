package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dimviz/pkg/roles"
)

func TestDatasetResolvesForEveryMode(t *testing.T) {
	for _, mode := range []roles.Mode{roles.ModeImage, roles.ModeImageStack, roles.ModeSpectralImage, roles.Mode4DImage, roles.ModeCurve} {
		t.Run(mode.String(), func(t *testing.T) {
			ds, err := Dataset(mode)
			require.NoError(t, err)
			require.NoError(t, ds.Validate())

			_, err = roles.Resolve(ds.Roles(), ds.Shape(), mode, roles.Options{})
			assert.NoError(t, err)
		})
	}
}

func TestFourDLayout(t *testing.T) {
	ds, err := FourD(4, 5, 12, 12)
	require.NoError(t, err)

	a, err := roles.Resolve(ds.Roles(), ds.Shape(), roles.Mode4DImage, roles.Options{})
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 0}, a.ScanDims)
	assert.Equal(t, [2]int{3, 2}, a.SliceDims)

	// disk center sits near the middle of the pattern
	assert.Equal(t, 100.0, ds.Array.At(2, 2, 6, 6))
	assert.Equal(t, 1.0, ds.Array.At(2, 2, 0, 0))
}

func TestSpectrumImagePeakShifts(t *testing.T) {
	ds, err := SpectrumImage(8, 4, 120)
	require.NoError(t, err)

	argmax := func(x int) int {
		best := 0
		for c := 0; c < 120; c++ {
			if ds.Array.At(x, 0, c) > ds.Array.At(x, 0, best) {
				best = c
			}
		}
		return best
	}
	assert.Less(t, argmax(0), argmax(7))
}
