// SPDX-License-Identifier: MPL-2.0

// Package buildkey assembles the canonical build key: the single string that
// identifies the ABI compatibility class of a Coral build,
//
//	"{OS} {Arch} {compiler}-{version}"   e.g. "Linux x86_64 gcc-4.8"
//
// Binaries with different keys must never be mixed. Assemble is a pure
// function of its inputs, and every axis it cannot resolve is reported in a
// single ValidationError instead of being defaulted.
//
// The package also defines the build manifest, a small record written next
// to build outputs in TOML or msgpack form.
package buildkey
