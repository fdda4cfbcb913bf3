package roles

import (
	"fmt"
	"strings"
)

// Mode selects which kind of visualizer the axes are resolved for.
type Mode int

const (
	ModeImage Mode = iota
	ModeImageStack
	ModeSpectralImage
	Mode4DImage
	ModeCurve
)

var modeNames = []string{"image", "image-stack", "spectral-image", "4d-image", "curve"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (want one of %s)", s, strings.Join(modeNames, ", "))
}

// HasCursor reports whether the mode navigates with a cursor and bin window.
func (m Mode) HasCursor() bool {
	return m == ModeSpectralImage || m == Mode4DImage
}

// HasStack reports whether the mode steps through frames.
func (m Mode) HasStack() bool {
	return m == ModeImageStack
}
