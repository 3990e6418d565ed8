// SPDX-License-Identifier: MPL-2.0

// Package symbols models the predefined feature symbols a C/C++ toolchain
// exposes to identify the target OS, compiler and architecture.
//
// A Set is the single input every detector in this module reads. Sets come
// from a preprocessor macro dump (Parse), from a Go GOOS/GOARCH pair (FromGo),
// or from literal definitions (New, Of).
package symbols
