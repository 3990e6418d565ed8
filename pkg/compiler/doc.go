// SPDX-License-Identifier: MPL-2.0

// Package compiler identifies the C++ compiler family, its sub-variant and
// its version from toolchain symbols.
//
// Detection is layered the way toolchains nest their markers: MSVC is
// exclusive; otherwise a GNU-compatible compiler is refined into MinGW,
// LLVM-GCC (and, only once LLVM is confirmed, Clang) or plain GCC.
//
// MSVC versions are resolved through a bounded Policy. ABI compatibility is
// only promised for the versions a Policy lists, so anything older or newer
// is rejected instead of mapped to the nearest known release.
package compiler
