package loader

import "fmt"

// LoadError is returned whenever the aggregated feed cannot be obtained.
type LoadError struct {
	Op     string // "fetch", "status", "read" or "decode"
	Source string
	cause  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Source, e.Op, e.cause)
}

func (e *LoadError) Unwrap() error {
	return e.cause
}

func newLoadError(op, source string, cause error) *LoadError {
	return &LoadError{Op: op, Source: source, cause: cause}
}
