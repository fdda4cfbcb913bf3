package roles

import (
	"errors"
	"fmt"
)

var (
	// ErrImageDims means the number of Spatial/Reciprocal axes is wrong.
	ErrImageDims = errors.New("need exactly two SPATIAL or RECIPROCAL dimensions")

	// ErrSpectralDims means the number of Spectral axes is wrong.
	ErrSpectralDims = errors.New("need exactly one SPECTRAL dimension")

	// ErrNoStackDim means no axis could serve as the frame axis.
	ErrNoStackDim = errors.New("no stack dimension")

	// ErrAmbiguousStackDim means more than one axis claims to be the frame axis.
	ErrAmbiguousStackDim = errors.New("ambiguous stack dimension")

	// ErrTooFewDims means the dataset has fewer axes than the mode needs.
	ErrTooFewDims = errors.New("too few dimensions")

	// ErrScanDims and ErrSliceDims mean the 4D axes did not resolve to two
	// distinct axes each.
	ErrScanDims  = errors.New("need two distinct scan dimensions")
	ErrSliceDims = errors.New("need two distinct 4D image dimensions")
)

// ClassificationError reports axis roles that do not fit the requested mode.
type ClassificationError struct {
	Mode   Mode
	Reason string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Mode, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Mode, e.Err, e.Reason)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// ConfigurationError reports an invalid explicit axis override.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func classErr(m Mode, err error, format string, args ...interface{}) error {
	return &ClassificationError{Mode: m, Err: err, Reason: fmt.Sprintf(format, args...)}
}
