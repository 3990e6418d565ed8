// SPDX-License-Identifier: MPL-2.0

// Package linkage resolves the C++ inlining and symbol export attributes for a
// compiler family and target OS.
package linkage
