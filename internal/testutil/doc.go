// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that redirect the per-user
// configuration directory into a temporary location.
package testutil
