// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"testing"
)

func TestMustSetenvRestores(t *testing.T) {
	const key = "CORALENV_TESTUTIL_PROBE"

	cleanup := MustSetenv(t, key, "set")
	if got := os.Getenv(key); got != "set" {
		t.Errorf("%s = %q, want %q", key, got, "set")
	}
	cleanup()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s still set after cleanup", key)
	}
}

func TestSetConfigHome(t *testing.T) {
	dir := t.TempDir()
	got := SetConfigHome(t, dir)

	var env string
	switch runtime.GOOS {
	case "windows":
		env = "APPDATA"
	case "darwin":
		env = "HOME"
	default:
		env = "XDG_CONFIG_HOME"
	}
	if v := os.Getenv(env); v != dir {
		t.Errorf("%s = %q, want %q", env, v, dir)
	}
	if got == "" {
		t.Error("SetConfigHome() returned an empty directory")
	}
}
