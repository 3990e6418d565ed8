// SPDX-License-Identifier: MPL-2.0

// Package portable defines Coral's fixed-width integer types and their limits.
//
// The 8, 16 and 32-bit types never vary with the target. Only Intptr and
// Uintptr follow the pointer width: 32 bits on 386 and 64 bits on amd64.
// Building for any other GOARCH is a compile error.
//
// Values written with Encode carry their width in the encoding, so the bytes
// of a value depend only on its portable type and never on the host.
package portable
