// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the coralenv command line interface.
//
// coralenv is the explicit build-time validation step for Coral: it gathers
// the predefined symbols of the target toolchain, resolves the build
// environment and either emits the build key, header and manifest or fails
// the build with an itemized report of every unsupported axis.
package cmd
