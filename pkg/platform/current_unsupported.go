// SPDX-License-Identifier: MPL-2.0

//go:build !(linux || darwin || windows)

package platform

// Coral only supports Linux, MacOSX and Windows. Building for any other GOOS
// must fail here rather than produce a binary with a guessed platform.
var _ = "unsupported operating system: coral requires Linux, MacOSX or Windows" + 1
