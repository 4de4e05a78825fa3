package errors

// ValidateRows checks the construction precondition of a channel: the top and
// bottom terminal rows must have the same number of columns.
func ValidateRows(top, bottom int) error {
	if top != bottom {
		return New(ErrCodeRowMismatch, "terminal lengths at top and bottom are unequal (%d != %d)", top, bottom)
	}
	return nil
}

// ValidateDimension checks that a geometric unit (column width, track height,
// render scale) is strictly positive.
func ValidateDimension(name string, v float64) error {
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %v", name, v)
	}
	return nil
}
