// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCompilerTooNew is the sentinel error wrapped by VersionTooNewError.
	ErrCompilerTooNew = errors.New("compiler not recognized (too new)")
	// ErrCompilerTooOld is the sentinel error wrapped by VersionTooOldError.
	ErrCompilerTooOld = errors.New("compiler too old")
	// ErrInvalidPolicy is returned when a Policy's brackets are empty, unsorted or unnamed.
	ErrInvalidPolicy = errors.New("invalid MSVC version policy")
)

type (
	// Bracket maps every raw _MSC_VER from Min up to the next bracket's Min
	// to one release version string.
	Bracket struct {
		Min     int    `json:"min" mapstructure:"min" toml:"min"`
		Version string `json:"version" mapstructure:"version" toml:"version"`
	}

	// Policy is the validated MSVC version range. Brackets must be sorted by
	// strictly ascending Min. The highest Min is also the upper bound: any
	// newer raw version is rejected.
	Policy struct {
		Brackets []Bracket
	}

	// VersionTooNewError is returned for a raw version above the policy's upper bound.
	VersionTooNewError struct {
		Raw     int
		Highest Bracket
	}

	// VersionTooOldError is returned for a raw version below the policy's lower bound.
	VersionTooOldError struct {
		Raw     int
		Minimum Bracket
	}
)

// Error implements the error interface.
func (e *VersionTooNewError) Error() string {
	return fmt.Sprintf("MSVC compiler _MSC_VER=%d was not recognized (maybe it's too new?): highest supported is %s (_MSC_VER=%d)",
		e.Raw, e.Highest.Version, e.Highest.Min)
}

// Unwrap returns ErrCompilerTooNew for errors.Is() compatibility.
func (e *VersionTooNewError) Unwrap() error { return ErrCompilerTooNew }

// Error implements the error interface.
func (e *VersionTooOldError) Error() string {
	return fmt.Sprintf("MSVC compiler _MSC_VER=%d is too old: minimum required version is %s (_MSC_VER=%d)",
		e.Raw, e.Minimum.Version, e.Minimum.Min)
}

// Unwrap returns ErrCompilerTooOld for errors.Is() compatibility.
func (e *VersionTooOldError) Unwrap() error { return ErrCompilerTooOld }

// DefaultPolicy returns the validated MSVC releases: Visual C++ 2010 (10.0)
// and Visual C++ 2012 (11.0).
func DefaultPolicy() Policy {
	return Policy{Brackets: []Bracket{
		{Min: 1600, Version: "10.0"},
		{Min: 1700, Version: "11.0"},
	}}
}

// Validate checks that the brackets are non-empty, strictly ascending and named.
func (p Policy) Validate() error {
	if len(p.Brackets) == 0 {
		return fmt.Errorf("%w: no versions listed", ErrInvalidPolicy)
	}
	for i, b := range p.Brackets {
		if strings.TrimSpace(b.Version) == "" {
			return fmt.Errorf("%w: bracket %d (min %d) has no version", ErrInvalidPolicy, i, b.Min)
		}
		if b.Min <= 0 {
			return fmt.Errorf("%w: bracket %d has non-positive min %d", ErrInvalidPolicy, i, b.Min)
		}
		if i > 0 && b.Min <= p.Brackets[i-1].Min {
			return fmt.Errorf("%w: bracket %d (min %d) is not above bracket %d (min %d)",
				ErrInvalidPolicy, i, b.Min, i-1, p.Brackets[i-1].Min)
		}
	}
	return nil
}

// Resolve maps a raw _MSC_VER to its release version string.
func (p Policy) Resolve(raw int) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	lowest := p.Brackets[0]
	highest := p.Brackets[len(p.Brackets)-1]
	if raw > highest.Min {
		return "", &VersionTooNewError{Raw: raw, Highest: highest}
	}
	if raw < lowest.Min {
		return "", &VersionTooOldError{Raw: raw, Minimum: lowest}
	}

	for i := len(p.Brackets) - 1; i >= 0; i-- {
		if raw >= p.Brackets[i].Min {
			return p.Brackets[i].Version, nil
		}
	}
	// Unreachable: raw >= lowest.Min.
	return lowest.Version, nil
}
