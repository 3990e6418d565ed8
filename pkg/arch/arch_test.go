// SPDX-License-Identifier: MPL-2.0

package arch

import (
	"errors"
	"testing"

	"github.com/coral/coralenv/pkg/symbols"
	"github.com/coral/coralenv/pkg/types"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		symbols symbols.Set
		ptr     types.PointerSize
		want    Arch
		wantErr error
	}{
		{name: "gcc i386 ptr4", symbols: symbols.Of("__i386"), ptr: 4, want: X86_32},
		{name: "gcc x86_64 ptr8", symbols: symbols.Of("__x86_64"), ptr: 8, want: X86_64},
		{name: "msvc ix86", symbols: symbols.Of("_M_IX86"), ptr: 4, want: X86_32},
		{name: "msvc x64", symbols: symbols.Of("_M_X64"), ptr: 8, want: X86_64},
		{name: "trailing underscore markers", symbols: symbols.Of("__x86_64__"), ptr: 8, want: X86_64},
		// The configured pointer size decides, not the marker (x32 ABI, -m32 builds).
		{name: "x86_64 marker with ptr4", symbols: symbols.Of("__x86_64"), ptr: 4, want: X86_32},
		{name: "arm", symbols: symbols.Of("__aarch64__"), ptr: 8, wantErr: ErrUnsupportedArch},
		{name: "no markers", symbols: symbols.Set{}, ptr: 4, wantErr: ErrUnsupportedArch},
		{name: "invalid pointer size", symbols: symbols.Of("__x86_64"), ptr: 16, wantErr: types.ErrInvalidPointerSize},
		{name: "zero pointer size", symbols: symbols.Of("__i386"), ptr: 0, wantErr: types.ErrInvalidPointerSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Detect(tt.symbols, tt.ptr)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Detect() error = %v, want %v", err, tt.wantErr)
				}
				if got != Unknown {
					t.Errorf("Detect() = %v alongside error, want Unknown", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectReportsPointerSizeAndArch(t *testing.T) {
	t.Parallel()

	_, err := Detect(symbols.Of("__aarch64__"), 0)
	for _, want := range []error{types.ErrInvalidPointerSize, ErrUnsupportedArch} {
		if !errors.Is(err, want) {
			t.Errorf("Detect() error = %v, want it to match %v", err, want)
		}
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	if X86_32.Name() != "x86_32" || X86_64.Name() != "x86_64" || Unknown.Name() != "" {
		t.Errorf("unexpected names: %q %q %q", X86_32.Name(), X86_64.Name(), Unknown.Name())
	}
	for _, a := range []Arch{X86_32, X86_64} {
		back, err := ParseName(a.Name())
		if err != nil || back != a {
			t.Errorf("ParseName(%q) = %v, %v", a.Name(), back, err)
		}
		if got, _ := FromPointerSize(a.PointerSize()); got != a {
			t.Errorf("FromPointerSize(%d) = %v, want %v", a.PointerSize(), got, a)
		}
	}
	if _, err := ParseName("x86"); !errors.Is(err, ErrUnsupportedArch) {
		t.Errorf("ParseName(x86) error = %v", err)
	}
}
