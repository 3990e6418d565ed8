// SPDX-License-Identifier: MPL-2.0

//go:build !(386 || amd64)

package portable

// Portable integers are only defined for 32 and 64-bit x86.
var _ = "unsupported architecture: coral requires a 32 or 64-bit x86 processor" + 1
