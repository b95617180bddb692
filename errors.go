package mosaic

import "fmt"

// InsufficientAntennasError reports an antenna geometry too small for a
// point spread function; a valid ellipse fit needs a non-degenerate
// baseline set.
type InsufficientAntennasError struct {
	Count int
}

func (e *InsufficientAntennasError) Error() string {
	return fmt.Sprintf("mosaic: %d antennas supplied, the point spread function needs at least 3", e.Count)
}

// InvalidOverlapError reports an overlap fraction outside the open
// interval (0, 1).
type InvalidOverlapError struct {
	Overlap float64
}

func (e *InvalidOverlapError) Error() string {
	return fmt.Sprintf("mosaic: overlap %v outside the open interval (0, 1)", e.Overlap)
}

// UnsupportedModeError reports an operation invoked on an Overlap result of
// the wrong mode.
type UnsupportedModeError struct {
	Mode      OverlapMode
	Operation string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("mosaic: %s is only supported in counter mode, result is in %v mode", e.Operation, e.Mode)
}
