package driver

import "fmt"

// ValidationError marks a failure as input-validation-fatal: the request
// itself was malformed rather than something going wrong mid-run, so
// callers can distinguish it from unexpected pipeline failures (e.g. to
// return a 400 instead of a 500 at an HTTP boundary).
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
