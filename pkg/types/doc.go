// SPDX-License-Identifier: MPL-2.0

// Package types holds small validated value types shared across coralenv
// packages: the configured pointer size of the target and process exit codes.
package types
