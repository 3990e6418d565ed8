// SPDX-License-Identifier: MPL-2.0

// Package platform detects the target operating system.
//
// Detection reads toolchain feature symbols in a fixed priority order and
// selects exactly one of Linux, MacOSX or Windows; anything else is an
// error, never a guess. The package also refuses to compile for a Go target
// outside those three, so a Go build for an unsupported OS fails at build
// time the same way the C++ side does.
package platform
