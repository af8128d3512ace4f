package domain

import "math"

// MaxAmount bounds every monetary input. Keeping inputs under this ceiling
// keeps the longest projections finite.
const MaxAmount = 1e12

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NewValidationError(field, "must be a finite number")
	}
	return nil
}

// checkAmount accepts finite, non-negative amounts up to MaxAmount.
func checkAmount(field string, v float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return NewValidationError(field, "cannot be negative")
	}
	if v > MaxAmount {
		return NewValidationError(field, "cannot exceed %.0f", MaxAmount)
	}
	return nil
}

func checkRange(field string, v, min, max float64) error {
	if err := checkFinite(field, v); err != nil {
		return err
	}
	if v < min || v > max {
		return NewValidationError(field, "must be between %g and %g", min, max)
	}
	return nil
}

func checkPercent(field string, v float64) error {
	return checkRange(field, v, 0, 100)
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
