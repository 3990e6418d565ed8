// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"runtime"
	"testing"

	"github.com/coral/coralenv/pkg/symbols"
)

func TestDetectOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		symbols symbols.Set
		want    OS
	}{
		{name: "linux", symbols: symbols.Of("__linux__", "__GNUC__"), want: OSLinux},
		{name: "linux legacy marker", symbols: symbols.Of("__linux"), want: OSLinux},
		{name: "mac with gnu toolchain", symbols: symbols.Of("__APPLE__", "__GNUC__", "__MACH__"), want: OSMac},
		{name: "windows", symbols: symbols.Of("_WIN32", "_MSC_VER"), want: OSWindows},
		{name: "windows alternative marker", symbols: symbols.Of("__WIN32__"), want: OSWindows},
		// Apple wins over overlapping Linux markers.
		{name: "apple before linux", symbols: symbols.Of("__APPLE__", "__GNUC__", "__linux__"), want: OSMac},
		// Linux wins over Windows markers (e.g. cross toolchains that leak _WIN32).
		{name: "linux before windows", symbols: symbols.Of("__linux__", "_WIN32"), want: OSLinux},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DetectOS(tt.symbols)
			if err != nil {
				t.Fatalf("DetectOS() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectOS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectOSUnsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		symbols symbols.Set
	}{
		{name: "empty", symbols: symbols.Set{}},
		{name: "apple without gnu", symbols: symbols.Of("__APPLE__", "__MACH__")},
		{name: "freebsd", symbols: symbols.Of("__FreeBSD__", "__GNUC__")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DetectOS(tt.symbols)
			if !errors.Is(err, ErrUnsupportedOS) {
				t.Fatalf("DetectOS() error = %v, want ErrUnsupportedOS", err)
			}
			if got != OSUnknown {
				t.Errorf("DetectOS() = %v, want OSUnknown", got)
			}
		})
	}
}

func TestOSName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		os       OS
		want     string
		wantUnix bool
	}{
		{os: OSLinux, want: "Linux", wantUnix: true},
		{os: OSMac, want: "MacOSX", wantUnix: true},
		{os: OSWindows, want: "Windows", wantUnix: false},
		{os: OSUnknown, want: "", wantUnix: false},
	}

	for _, tt := range tests {
		if got := tt.os.Name(); got != tt.want {
			t.Errorf("OS(%d).Name() = %q, want %q", tt.os, got, tt.want)
		}
		if got := tt.os.IsUnix(); got != tt.wantUnix {
			t.Errorf("OS(%d).IsUnix() = %v, want %v", tt.os, got, tt.wantUnix)
		}
		if tt.want == "" {
			continue
		}
		back, err := ParseName(tt.want)
		if err != nil || back != tt.os {
			t.Errorf("ParseName(%q) = %v, %v", tt.want, back, err)
		}
	}

	for _, bad := range []string{"linux", "MacOS", "Win", ""} {
		if _, err := ParseName(bad); !errors.Is(err, ErrUnsupportedOS) {
			t.Errorf("ParseName(%q) error = %v, want ErrUnsupportedOS", bad, err)
		}
	}

	if valid, errs := OSUnknown.IsValid(); valid || !errors.Is(errs[0], ErrInvalidOS) {
		t.Errorf("OSUnknown.IsValid() = %v, %v", valid, errs)
	}
}

func TestFromGOOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos    string
		want    OS
		wantErr bool
	}{
		{goos: Linux, want: OSLinux},
		{goos: Darwin, want: OSMac},
		{goos: Windows, want: OSWindows},
		{goos: "freebsd", wantErr: true},
		{goos: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := FromGOOS(tt.goos)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedOS) {
				t.Errorf("FromGOOS(%q) error = %v, want ErrUnsupportedOS", tt.goos, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FromGOOS(%q) = %v, %v; want %v", tt.goos, got, err, tt.want)
		}
	}
}

func TestCurrentMatchesRuntime(t *testing.T) {
	t.Parallel()

	want, err := FromGOOS(runtime.GOOS)
	if err != nil {
		t.Skipf("GOOS %s maps to a sibling tag: %v", runtime.GOOS, err)
	}
	if Current != want {
		t.Errorf("Current = %v, want %v", Current, want)
	}
}

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"con", true},
		{"CON", true},
		{"Con.h", true},
		{"nul.tar.gz", true},
		{"com1", true},
		{"LPT9.hpp", true},
		{"config.h", false},
		{"coral_config.h", false},
		{"com10", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsWindowsReservedName(tt.input); got != tt.expected {
			t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
