// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// PointerSize32 is the byte width of a native address on 32-bit x86.
	PointerSize32 PointerSize = 4
	// PointerSize64 is the byte width of a native address on 64-bit x86.
	PointerSize64 PointerSize = 8
)

// ErrInvalidPointerSize is the sentinel error wrapped by InvalidPointerSizeError.
var ErrInvalidPointerSize = errors.New("invalid pointer size configuration")

type (
	// PointerSize is the configured byte width of a native address on the
	// target platform. It is a build input, never auto-detected by the
	// detectors themselves, and only 4 and 8 are supported.
	PointerSize int

	// InvalidPointerSizeError is returned when a PointerSize is neither 4 nor 8.
	InvalidPointerSizeError struct {
		Value PointerSize
	}
)

// Error implements the error interface.
func (e *InvalidPointerSizeError) Error() string {
	if e.Value == 0 {
		return "pointer size is not configured and the toolchain does not report one (must be 4 or 8)"
	}
	return fmt.Sprintf("invalid pointer size configuration %d (must be 4 or 8)", e.Value)
}

// Unwrap returns ErrInvalidPointerSize for errors.Is() compatibility.
func (e *InvalidPointerSizeError) Unwrap() error { return ErrInvalidPointerSize }

// Validate returns an error unless the PointerSize is 4 or 8.
func (p PointerSize) Validate() error {
	switch p {
	case PointerSize32, PointerSize64:
		return nil
	default:
		return &InvalidPointerSizeError{Value: p}
	}
}

// IsValid returns whether the PointerSize is supported, and the validation
// errors if it is not.
func (p PointerSize) IsValid() (bool, []error) {
	if err := p.Validate(); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Bits returns the width in bits (32 or 64), or 0 for an invalid size.
func (p PointerSize) Bits() int {
	if p.Validate() != nil {
		return 0
	}
	return int(p) * 8
}

// String returns the decimal representation of the PointerSize.
func (p PointerSize) String() string { return strconv.Itoa(int(p)) }
