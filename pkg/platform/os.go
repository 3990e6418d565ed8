// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
)

// GOOS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

const (
	// OSUnknown is the zero value; it is never returned alongside a nil error.
	OSUnknown OS = iota
	// OSLinux is any Linux kernel target.
	OSLinux
	// OSMac is macOS with a GNU-compatible toolchain.
	OSMac
	// OSWindows is 32 or 64-bit Windows.
	OSWindows
)

var (
	// ErrUnsupportedOS is the sentinel error wrapped by UnsupportedOSError.
	ErrUnsupportedOS = errors.New("unknown or unsupported OS")
	// ErrInvalidOS is returned when an OS value is outside the known tags.
	ErrInvalidOS = errors.New("invalid OS tag")
)

type (
	// OS is the operating system tag of a build.
	OS int

	// UnsupportedOSError is returned when no OS predicate holds.
	UnsupportedOSError struct {
		// Source names what was inspected, e.g. "toolchain symbols" or a GOOS value.
		Source string
	}
)

// Error implements the error interface.
func (e *UnsupportedOSError) Error() string {
	return fmt.Sprintf("unknown or unsupported OS (%s): coral requires Linux, MacOSX or Windows", e.Source)
}

// Unwrap returns ErrUnsupportedOS for errors.Is() compatibility.
func (e *UnsupportedOSError) Unwrap() error { return ErrUnsupportedOS }

// Name returns the OS segment of the build key: "Linux", "MacOSX" or "Windows".
// OSUnknown yields the empty string.
func (o OS) Name() string {
	switch o {
	case OSLinux:
		return "Linux"
	case OSMac:
		return "MacOSX"
	case OSWindows:
		return "Windows"
	default:
		return ""
	}
}

// String returns the OS name, or "unknown" for OSUnknown.
func (o OS) String() string {
	if n := o.Name(); n != "" {
		return n
	}
	return "unknown"
}

// IsUnix reports whether the OS is Unix-like, i.e. anything but Windows.
func (o OS) IsUnix() bool {
	return o != OSWindows && o != OSUnknown
}

// IsValid returns whether the OS is one of the detected tags.
func (o OS) IsValid() (bool, []error) {
	switch o {
	case OSLinux, OSMac, OSWindows:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %d", ErrInvalidOS, int(o))}
	}
}

// ParseName maps a build-key OS segment back to its tag.
func ParseName(name string) (OS, error) {
	for _, o := range []OS{OSLinux, OSMac, OSWindows} {
		if o.Name() == name {
			return o, nil
		}
	}
	return OSUnknown, &UnsupportedOSError{Source: fmt.Sprintf("name %q", name)}
}

// FromGOOS maps a Go GOOS value to its tag.
func FromGOOS(goos string) (OS, error) {
	switch goos {
	case Linux:
		return OSLinux, nil
	case Darwin:
		return OSMac, nil
	case Windows:
		return OSWindows, nil
	default:
		return OSUnknown, &UnsupportedOSError{Source: "GOOS=" + goos}
	}
}
