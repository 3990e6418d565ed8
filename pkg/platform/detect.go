// SPDX-License-Identifier: MPL-2.0

package platform

import "github.com/coral/coralenv/pkg/symbols"

// predicate is one ordered OS detection rule.
type predicate struct {
	os    OS
	holds func(symbols.Set) bool
}

// osPredicates are evaluated in order and the first match wins. Apple is
// checked first because Apple's GNU-compatible toolchains also define
// generic Unix markers.
var osPredicates = []predicate{
	{os: OSMac, holds: func(s symbols.Set) bool {
		return s.Defined("__APPLE__") && s.Defined("__GNUC__")
	}},
	{os: OSLinux, holds: func(s symbols.Set) bool {
		return s.AnyDefined("__linux__", "__linux")
	}},
	{os: OSWindows, holds: func(s symbols.Set) bool {
		return s.AnyDefined("_WIN32", "__WIN32__")
	}},
}

// DetectOS selects the OS from toolchain symbols.
func DetectOS(s symbols.Set) (OS, error) {
	for _, p := range osPredicates {
		if p.holds(s) {
			return p.os, nil
		}
	}
	return OSUnknown, &UnsupportedOSError{Source: "toolchain symbols"}
}
