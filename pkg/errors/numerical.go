// Numeric validation helpers shared by the binning and sampling paths.

package errors

import "math"

// CheckPositiveFinite returns a ValidationError unless v is finite and
// strictly positive. Weight totals and scale factors go through this before
// they are divided by.
func CheckPositiveFinite(param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewValidationError(param, "must be finite", v)
	}
	if v <= 0 {
		return NewValidationError(param, "must be strictly positive", v)
	}
	return nil
}

// CheckUnitInterval returns a ValidationError unless v lies in [0, 1].
func CheckUnitInterval(param string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return NewValidationError(param, "must be in [0, 1]", v)
	}
	return nil
}
