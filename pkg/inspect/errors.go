package inspect

import (
	"errors"
	"fmt"
)

// PathError records a failure while rendering the value at Path.
//
// Paths start at $ for the rendered value and append [i] for list
// elements, ["key"] for map entries, and .Name for fields and attributes.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("inspect %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// errPanic wraps a value recovered from a panicking user method.
var errPanic = errors.New("panic")

func recovered(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", errPanic, err)
	}
	return fmt.Errorf("%w: %v", errPanic, r)
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}
