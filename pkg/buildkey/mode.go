// SPDX-License-Identifier: MPL-2.0

package buildkey

import (
	"fmt"

	"github.com/coral/coralenv/pkg/symbols"
)

const (
	// ModeDebug is a build with assertions enabled.
	ModeDebug Mode = "debug"
	// ModeRelease is a build compiled with NDEBUG and without _DEBUG.
	ModeRelease Mode = "release"
)

// Mode is the build mode. It is recorded in manifests and headers but is not
// part of the key: debug and release builds of one key are ABI compatible.
type Mode string

// DetectMode returns ModeDebug when _DEBUG is defined or NDEBUG is not.
func DetectMode(s symbols.Set) Mode {
	if s.Defined("_DEBUG") || !s.Defined("NDEBUG") {
		return ModeDebug
	}
	return ModeRelease
}

// Validate returns an error unless the mode is debug or release.
func (m Mode) Validate() error {
	switch m {
	case ModeDebug, ModeRelease:
		return nil
	default:
		return fmt.Errorf("invalid build mode %q (valid: debug, release)", string(m))
	}
}

// String returns the mode name.
func (m Mode) String() string { return string(m) }
