// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// MustSetenv sets the environment variable key to value.
// It returns a cleanup function that restores the original value (or unsets it).
// The test fails immediately if the operation fails.
func MustSetenv(t testing.TB, key, value string) func() {
	t.Helper()
	originalValue, hadValue := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	return func() {
		if hadValue {
			if err := os.Setenv(key, originalValue); err != nil {
				t.Errorf("failed to restore env %s: %v", key, err)
			}
			return
		}
		if err := os.Unsetenv(key); err != nil {
			t.Errorf("failed to unset env %s: %v", key, err)
		}
	}
}

// SetConfigHome points the per-user configuration directory at a fresh
// directory under dir and returns the directory applications will use:
//   - Windows: %APPDATA%
//   - macOS: $HOME/Library/Application Support
//   - others: $XDG_CONFIG_HOME
//
// Cleanups are registered with t, so callers must not run in parallel.
func SetConfigHome(t testing.TB, dir string) string {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		t.Cleanup(MustSetenv(t, "APPDATA", dir))
		return dir
	case "darwin":
		t.Cleanup(MustSetenv(t, "HOME", dir))
		return filepath.Join(dir, "Library", "Application Support")
	default:
		t.Cleanup(MustSetenv(t, "XDG_CONFIG_HOME", dir))
		return dir
	}
}
