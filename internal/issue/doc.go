// SPDX-License-Identifier: MPL-2.0

// Package issue turns build environment failures into actionable CLI
// diagnostics: an error with remediation hints, plus a catalog of Markdown
// explanations rendered in verbose mode.
package issue
