// SPDX-License-Identifier: MPL-2.0

// Package config loads coralenv configuration using Viper with CUE as the
// file format.
//
// A project-local coralenv.cue takes precedence over the user file at
// ~/.config/coralenv/config.cue (XDG on Linux, ~/Library/Application Support
// on macOS, %APPDATA% on Windows). Files are validated against the embedded
// #Config schema (config_schema.cue). Environment variables prefixed with
// CORALENV_ override scalar settings, e.g. CORALENV_COMPILER_COMMAND.
package config
