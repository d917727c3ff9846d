package kit

// RequireExists checks that a field is non-empty (entity exists).
func RequireExists(field, errMsg string) *CommandError {
	if field == "" {
		return NewFailedPrecondition(errMsg)
	}
	return nil
}

// RequireNotBlank checks that a caller-supplied field is non-empty.
func RequireNotBlank(field, errMsg string) *CommandError {
	if field == "" {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// RequirePositive checks that a value is greater than zero.
func RequirePositive(value int64, errMsg string) *CommandError {
	if value <= 0 {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// RequireNonNegative checks that a value is zero or greater.
func RequireNonNegative(value int64, errMsg string) *CommandError {
	if value < 0 {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// RequireNotEmpty checks that a slice has at least one element.
func RequireNotEmpty[T any](items []T, errMsg string) *CommandError {
	if len(items) == 0 {
		return NewFailedPrecondition(errMsg)
	}
	return nil
}

// RequireStatus checks that the current status matches the expected value.
func RequireStatus[S ~string](actual, expected S, errMsg string) *CommandError {
	if actual != expected {
		return NewFailedPrecondition(errMsg)
	}
	return nil
}

// RequireStatusNot checks that the current status is NOT the forbidden value.
func RequireStatusNot[S ~string](actual, forbidden S, errMsg string) *CommandError {
	if actual == forbidden {
		return NewFailedPrecondition(errMsg)
	}
	return nil
}

// First returns the first non-nil error, or nil.
//
// Lets handlers chain Require* checks without a nil-interface trap:
//
//	if err := kit.First(kit.RequireExists(...), kit.RequirePositive(...)); err != nil {
//	    return nil, err
//	}
func First(errs ...*CommandError) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
