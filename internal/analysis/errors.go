package analysis

import "fmt"

// InsufficientDataError indicates fewer valid rows than a fit needs.
type InsufficientDataError struct {
	N    int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d valid row(s), need at least %d", e.N, e.Need)
}

// InsufficientVarianceError indicates one axis has identical observations,
// which leaves the slope or the correlation undefined.
type InsufficientVarianceError struct {
	Axis   string // "x" or "y"
	Column string
}

func (e *InsufficientVarianceError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("insufficient variance: every %s value (%s) is identical", e.Axis, e.Column)
	}
	return fmt.Sprintf("insufficient variance: every %s value is identical", e.Axis)
}
