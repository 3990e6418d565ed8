// SPDX-License-Identifier: MPL-2.0

package symbols

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const gccDump = `#define __SSP_STRONG__ 3
#define __DBL_MIN_EXP__ (-1021)
#define __GNUC__ 4
#define __GNUC_MINOR__ 8
#define __linux 1
#define __linux__ 1
#define __x86_64 1
#define __x86_64__ 1
#define __STDC_HOSTED__ 1
#define __INT64_C(c) c ## L
#define __VERSION__ "4.8.5 20150623 (Red Hat 4.8.5-44)"
#define _LP64 1

#define __cplusplus 199711L
`

func TestParse(t *testing.T) {
	t.Parallel()

	set, err := Parse(strings.NewReader(gccDump))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !set.Defined("__GNUC__") {
		t.Error("__GNUC__ should be defined")
	}
	if set.Defined("__INT64_C") {
		t.Error("function-like macro __INT64_C should be skipped")
	}
	if v, _ := set.Value("__VERSION__"); v != `"4.8.5 20150623 (Red Hat 4.8.5-44)"` {
		t.Errorf("__VERSION__ = %q", v)
	}
	if v, _ := set.Value("__DBL_MIN_EXP__"); v != "(-1021)" {
		t.Errorf("__DBL_MIN_EXP__ = %q", v)
	}
	if n, err := set.Int("__cplusplus"); err != nil || n != 199711 {
		t.Errorf("Int(__cplusplus) = %d, %v; want 199711", n, err)
	}
	if got := set.Len(); got != 12 {
		t.Errorf("Len() = %d, want 12", got)
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{name: "not a define", input: "#define A 1\n#undef A\n", wantLine: 2},
		{name: "missing name", input: "#define\n", wantLine: 1},
		{name: "glued keyword", input: "#defineX 1\n", wantLine: 1},
		{name: "bad identifier", input: "\n\n#define 9abc 1\n", wantLine: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMalformedDefine) {
				t.Fatalf("Parse() error = %v, want ErrMalformedDefine", err)
			}
			var mde *MalformedDefineError
			if !errors.As(err, &mde) {
				t.Fatalf("error is not *MalformedDefineError: %T", err)
			}
			if mde.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", mde.Line, tt.wantLine)
			}
		})
	}
}

func TestInt(t *testing.T) {
	t.Parallel()

	set := New(map[string]string{
		"_MSC_VER":  "1600",
		"LONGVAL":   "42L",
		"EMPTY":     "",
		"EXPR":      "(1+2)",
		"__GNUC__":  "13",
		"UNSIGNED":  "7u",
		"NEG":       "-3",
		"SPACEY":    " 5",
		"HEXLIKE":   "0x10",
		"ZEROPAD":   "08",
		"UPPERSUFF": "9UL",
	})

	tests := []struct {
		name    string
		want    int
		wantErr error
	}{
		{name: "_MSC_VER", want: 1600},
		{name: "LONGVAL", want: 42},
		{name: "__GNUC__", want: 13},
		{name: "UNSIGNED", want: 7},
		{name: "NEG", want: -3},
		{name: "ZEROPAD", want: 8},
		{name: "UPPERSUFF", want: 9},
		{name: "EMPTY", wantErr: ErrNotInteger},
		{name: "EXPR", wantErr: ErrNotInteger},
		{name: "SPACEY", wantErr: ErrNotInteger},
		{name: "HEXLIKE", wantErr: ErrNotInteger},
		{name: "MISSING", wantErr: ErrNotDefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := set.Int(tt.name)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Int(%s) error = %v, want %v", tt.name, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Int(%s) unexpected error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Int(%s) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestMergeAndImmutability(t *testing.T) {
	t.Parallel()

	src := map[string]string{"A": "1", "B": "2"}
	base := New(src)
	src["C"] = "3"
	if base.Defined("C") {
		t.Fatal("New must copy its input")
	}

	merged := base.Merge(New(map[string]string{"B": "20", "D": "4"}))
	want := map[string]string{"A": "1", "B": "20", "D": "4"}
	if diff := cmp.Diff(want, merged.Map()); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
	if v, _ := base.Value("B"); v != "2" {
		t.Errorf("Merge must not modify the receiver, B = %q", v)
	}

	m := merged.Map()
	m["A"] = "changed"
	if v, _ := merged.Value("A"); v != "1" {
		t.Error("Map must return a copy")
	}
}

func TestAnyDefined(t *testing.T) {
	t.Parallel()

	set := Of("_WIN32")
	if !set.AnyDefined("_WIN32", "__WIN32__") {
		t.Error("AnyDefined should match _WIN32")
	}
	if set.AnyDefined("__linux__", "__linux") {
		t.Error("AnyDefined should not match linux markers")
	}
	if set.AnyDefined() {
		t.Error("AnyDefined with no names must be false")
	}
}

func TestWriteToRoundTrip(t *testing.T) {
	t.Parallel()

	set := New(map[string]string{"__GNUC__": "4", "__linux__": "1", "__EMPTY": ""})

	var buf bytes.Buffer
	if _, err := set.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}

	want := "#define __EMPTY\n#define __GNUC__ 4\n#define __linux__ 1\n"
	if buf.String() != want {
		t.Errorf("WriteTo() = %q, want %q", buf.String(), want)
	}

	back, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(set.Map(), back.Map()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromGo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos, goarch string
		defined      []string
		undefined    []string
		ptr          int
	}{
		{goos: "linux", goarch: "amd64", defined: []string{"__linux__", "__linux", "__x86_64"}, undefined: []string{"__APPLE__", "_WIN32", "__GNUC__"}, ptr: 8},
		{goos: "linux", goarch: "386", defined: []string{"__linux__", "__i386"}, undefined: []string{"__x86_64"}, ptr: 4},
		{goos: "darwin", goarch: "amd64", defined: []string{"__APPLE__", "__x86_64__"}, undefined: []string{"__GNUC__"}, ptr: 8},
		{goos: "windows", goarch: "amd64", defined: []string{"_WIN32", "_WIN64", "__x86_64"}, undefined: []string{"_MSC_VER"}, ptr: 8},
		{goos: "windows", goarch: "386", defined: []string{"_WIN32", "__i386"}, undefined: []string{"_WIN64"}, ptr: 4},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			t.Parallel()

			set := FromGo(tt.goos, tt.goarch)
			for _, n := range tt.defined {
				if !set.Defined(n) {
					t.Errorf("%s should be defined", n)
				}
			}
			for _, n := range tt.undefined {
				if set.Defined(n) {
					t.Errorf("%s should not be defined", n)
				}
			}
			if got, err := set.Int("__SIZEOF_POINTER__"); err != nil || got != tt.ptr {
				t.Errorf("__SIZEOF_POINTER__ = %d, %v; want %d", got, err, tt.ptr)
			}
		})
	}

	if got := FromGo("plan9", "arm64").Len(); got != 0 {
		t.Errorf("unsupported platform should yield empty set, got %d symbols", got)
	}
}
