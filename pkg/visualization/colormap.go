package visualization

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
)

// ColorMap maps a normalized intensity in [0, 1] to a color.
type ColorMap struct {
	Name  string
	stops []color.RGBA
}

// At returns the color for t, clamped to [0, 1].
func (c ColorMap) At(t float64) color.RGBA {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(c.stops)-1)
	i := int(pos)
	if i >= len(c.stops)-1 {
		return c.stops[len(c.stops)-1]
	}
	f := pos - float64(i)
	a, b := c.stops[i], c.stops[i+1]
	lerp := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*f + 0.5) }
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

var colorMaps = map[string][]color.RGBA{
	"gray": {{0, 0, 0, 255}, {255, 255, 255, 255}},
	"hot":  {{10, 0, 0, 255}, {230, 0, 0, 255}, {255, 210, 0, 255}, {255, 255, 255, 255}},
	"viridis": {
		{68, 1, 84, 255}, {72, 40, 120, 255}, {62, 74, 137, 255}, {49, 104, 142, 255},
		{38, 130, 142, 255}, {31, 158, 137, 255}, {53, 183, 121, 255}, {109, 205, 89, 255},
		{180, 222, 44, 255}, {253, 231, 37, 255},
	},
}

// ColorMapByName looks up a colormap. There is no implicit default: callers
// pass the name from their configuration.
func ColorMapByName(name string) (ColorMap, error) {
	stops, ok := colorMaps[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(colorMaps))
		for n := range colorMaps {
			names = append(names, n)
		}
		sort.Strings(names)
		return ColorMap{}, fmt.Errorf("unknown colormap %q (want one of %s)", name, strings.Join(names, ", "))
	}
	return ColorMap{Name: strings.ToLower(name), stops: stops}, nil
}

// ContrastLimits returns the intensities at the low and high percentiles of
// data. A flat image gets a unit-wide window so it renders without division
// by zero.
func ContrastLimits(data []float64, lowPct, highPct float64) (float64, float64, error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("no data")
	}
	var lo, hi float64
	var err error
	if lowPct <= 0 {
		lo, err = stats.Min(data)
	} else {
		lo, err = stats.PercentileNearestRank(data, lowPct)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("low contrast limit: %w", err)
	}
	if highPct >= 100 {
		hi, err = stats.Max(data)
	} else {
		hi, err = stats.PercentileNearestRank(data, highPct)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("high contrast limit: %w", err)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi, nil
}

// ScaleBar is the size and caption of a scale bar.
type ScaleBar struct {
	Size  int
	Label string
}

// ScaleBarFor sizes a scale bar at about a tenth of the horizontal extent,
// never shorter than one unit.
func ScaleBarFor(extentWidth float64, units string) ScaleBar {
	size := int(math.Abs(extentWidth)/10 + .5)
	if size < 1 {
		size = 1
	}
	return ScaleBar{Size: size, Label: fmt.Sprintf("%d %s", size, units)}
}
