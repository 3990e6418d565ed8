// SPDX-License-Identifier: MPL-2.0

package portable

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/exp/constraints"
)

// ErrOutOfRange is the sentinel error wrapped by RangeError.
var ErrOutOfRange = errors.New("value out of range")

// RangeError is returned when a value does not fit the target type.
type RangeError struct {
	Value  string
	Target string
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("value %s out of range for %s", e.Value, e.Target)
}

// Unwrap returns ErrOutOfRange for errors.Is() compatibility.
func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// Convert converts v to T, failing instead of wrapping or truncating.
func Convert[T, F constraints.Integer](v F) (T, error) {
	out, err := safecast.Conv[T](v)
	if err != nil {
		var zero T
		return zero, &RangeError{Value: fmt.Sprint(v), Target: fmt.Sprintf("%T", zero)}
	}
	return out, nil
}

// MustConvert is Convert for values already known to fit; it panics otherwise.
func MustConvert[T, F constraints.Integer](v F) T {
	out, err := Convert[T](v)
	if err != nil {
		panic(err)
	}
	return out
}
