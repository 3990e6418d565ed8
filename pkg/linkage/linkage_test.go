// SPDX-License-Identifier: MPL-2.0

package linkage

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coral/coralenv/pkg/compiler"
	"github.com/coral/coralenv/pkg/platform"
)

func TestInlineSpelling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		inline Inline
		family compiler.Family
		want   string
	}{
		{ForceInline, compiler.FamilyMSVC, "__forceinline"},
		{ForceInline, compiler.FamilyGNU, "__attribute__((always_inline))"},
		{NoInline, compiler.FamilyMSVC, "__declspec(noinline)"},
		{NoInline, compiler.FamilyGNU, "__attribute__((noinline))"},
		{ForceInline, compiler.FamilyUnknown, ""},
	}

	for _, tt := range tests {
		if got := tt.inline.Spelling(tt.family); got != tt.want {
			t.Errorf("%s.Spelling(%s) = %q, want %q", tt.inline, tt.family, got, tt.want)
		}
	}
}

func TestResolveExport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		os           platform.OS
		noExport     bool
		buildingCore bool
		want         Export
	}{
		{"no export on windows core", platform.OSWindows, true, true, ExportNone},
		{"no export on linux", platform.OSLinux, true, false, ExportNone},
		{"windows core", platform.OSWindows, false, true, ExportDLLExport},
		{"windows client", platform.OSWindows, false, false, ExportDLLImport},
		{"linux core", platform.OSLinux, false, true, ExportDefaultVisible},
		{"mac client", platform.OSMac, false, false, ExportDefaultVisible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveExport(tt.os, tt.noExport, tt.buildingCore); got != tt.want {
				t.Errorf("ResolveExport() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveDLLAndExceptionExport(t *testing.T) {
	t.Parallel()

	tests := []struct {
		os            platform.OS
		noExport      bool
		wantDLL       Export
		wantException Export
	}{
		{platform.OSWindows, false, ExportDLLExport, ExportNone},
		{platform.OSWindows, true, ExportNone, ExportNone},
		{platform.OSLinux, false, ExportDefaultVisible, ExportDefaultVisible},
		{platform.OSLinux, true, ExportNone, ExportNone},
		{platform.OSMac, false, ExportDefaultVisible, ExportDefaultVisible},
	}

	for _, tt := range tests {
		if got := ResolveDLLExport(tt.os, tt.noExport); got != tt.wantDLL {
			t.Errorf("ResolveDLLExport(%s, %v) = %s, want %s", tt.os, tt.noExport, got, tt.wantDLL)
		}
		if got := ResolveExceptionExport(tt.os, tt.noExport); got != tt.wantException {
			t.Errorf("ResolveExceptionExport(%s, %v) = %s, want %s", tt.os, tt.noExport, got, tt.wantException)
		}
	}
}

func TestExportSpelling(t *testing.T) {
	t.Parallel()

	want := map[Export]string{
		ExportNone:           "",
		ExportDLLExport:      "__declspec(dllexport)",
		ExportDLLImport:      "__declspec(dllimport)",
		ExportDefaultVisible: `__attribute__((visibility("default")))`,
	}
	for e, s := range want {
		if got := e.Spelling(); got != s {
			t.Errorf("%s.Spelling() = %q, want %q", e, got, s)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	got := Resolve(Options{OS: platform.OSWindows, Family: compiler.FamilyMSVC, BuildingCore: true})
	want := Attributes{
		ForceInline:     "__forceinline",
		NoInline:        "__declspec(noinline)",
		Export:          ExportDLLExport,
		DLLExport:       ExportDLLExport,
		ExceptionExport: ExportNone,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}
