// SPDX-License-Identifier: MPL-2.0

package linkage

import "github.com/coral/coralenv/pkg/compiler"

const (
	// ForceInline asks the compiler to always inline a function.
	ForceInline Inline = iota + 1
	// NoInline forbids inlining a function.
	NoInline
)

// Inline is an inlining directive.
type Inline int

// Spelling returns the attribute text for the given compiler family, or ""
// when the family is unknown.
func (i Inline) Spelling(f compiler.Family) string {
	switch f {
	case compiler.FamilyMSVC:
		switch i {
		case ForceInline:
			return "__forceinline"
		case NoInline:
			return "__declspec(noinline)"
		}
	case compiler.FamilyGNU:
		switch i {
		case ForceInline:
			return "__attribute__((always_inline))"
		case NoInline:
			return "__attribute__((noinline))"
		}
	}
	return ""
}

// String returns "force-inline" or "no-inline".
func (i Inline) String() string {
	switch i {
	case ForceInline:
		return "force-inline"
	case NoInline:
		return "no-inline"
	default:
		return "unknown"
	}
}
