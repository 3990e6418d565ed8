// SPDX-License-Identifier: MPL-2.0

// Package arch validates the target processor family and selects the
// architecture name from the configured pointer size.
package arch

import (
	"errors"
	"fmt"

	"github.com/coral/coralenv/pkg/symbols"
	"github.com/coral/coralenv/pkg/types"
)

const (
	// Unknown is the zero value.
	Unknown Arch = iota
	// X86_32 is 32-bit x86.
	X86_32
	// X86_64 is 64-bit x86.
	X86_64
)

// ErrUnsupportedArch is returned when the toolchain does not target x86.
var ErrUnsupportedArch = errors.New("unsupported architecture: coral requires a 32 or 64-bit x86 processor")

// x86Markers are the symbols GCC-compatible compilers (__i386, __x86_64 and
// their trailing-underscore forms) and MSVC (_M_IX86, _M_X64) define for x86.
var x86Markers = []string{"__i386", "__i386__", "__x86_64", "__x86_64__", "_M_IX86", "_M_X64"}

// Arch is the architecture tag of a build.
type Arch int

// Name returns the architecture segment of the build key.
func (a Arch) Name() string {
	switch a {
	case X86_32:
		return "x86_32"
	case X86_64:
		return "x86_64"
	default:
		return ""
	}
}

// String returns the architecture name, or "unknown".
func (a Arch) String() string {
	if n := a.Name(); n != "" {
		return n
	}
	return "unknown"
}

// PointerSize returns the pointer size implied by the architecture.
func (a Arch) PointerSize() types.PointerSize {
	switch a {
	case X86_32:
		return types.PointerSize32
	case X86_64:
		return types.PointerSize64
	default:
		return 0
	}
}

// IsX86 reports whether the toolchain targets the x86 family.
func IsX86(s symbols.Set) bool {
	return s.AnyDefined(x86Markers...)
}

// Detect confirms the x86 family and picks the architecture from the
// configured pointer size: 4 selects x86_32, 8 selects x86_64. An invalid
// pointer size and a non-x86 toolchain are both reported, pointer size
// first, joined into one error; an invalid value never falls through to a
// default.
func Detect(s symbols.Set, ptr types.PointerSize) (Arch, error) {
	var errs []error
	if err := ptr.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !IsX86(s) {
		errs = append(errs, ErrUnsupportedArch)
	}
	if len(errs) > 0 {
		return Unknown, errors.Join(errs...)
	}
	return FromPointerSize(ptr)
}

// FromPointerSize maps a validated pointer size to its x86 architecture.
func FromPointerSize(ptr types.PointerSize) (Arch, error) {
	switch ptr {
	case types.PointerSize32:
		return X86_32, nil
	case types.PointerSize64:
		return X86_64, nil
	default:
		return Unknown, ptr.Validate()
	}
}

// ParseName maps a build-key architecture segment back to its tag.
func ParseName(name string) (Arch, error) {
	switch name {
	case "x86_32":
		return X86_32, nil
	case "x86_64":
		return X86_64, nil
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedArch, name)
	}
}
