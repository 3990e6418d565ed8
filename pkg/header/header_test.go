// SPDX-License-Identifier: MPL-2.0

package header

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/coral/coralenv/pkg/buildenv"
	"github.com/coral/coralenv/pkg/symbols"
	"github.com/coral/coralenv/pkg/types"
)

func resolve(t *testing.T, defs map[string]string, ptr types.PointerSize) buildenv.Environment {
	t.Helper()

	if _, ok := defs["__cplusplus"]; !ok {
		defs["__cplusplus"] = "201103L"
	}
	env, err := buildenv.Resolve(buildenv.Inputs{Symbols: symbols.New(defs), PointerSize: ptr})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return env
}

func generate(t *testing.T, env buildenv.Environment, opts Options) string {
	t.Helper()

	var buf bytes.Buffer
	if err := Generate(&buf, env, opts); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return buf.String()
}

func TestGenerateClang(t *testing.T) {
	t.Parallel()

	env := resolve(t, map[string]string{
		"__APPLE__":       "1",
		"__GNUC__":        "4",
		"__GNUC_MINOR__":  "2",
		"__llvm__":        "1",
		"__clang__":       "1",
		"__clang_major__": "15",
		"__clang_minor__": "0",
		"__x86_64__":      "1",
		"NDEBUG":          "1",
	}, 8)
	out := generate(t, env, Options{Generator: "coralenv test"})

	for _, want := range []string{
		"Generated by coralenv test. Do not edit.",
		"#ifndef _CO_CONFIG_H_\n#define _CO_CONFIG_H_\n",
		"#define CORAL_POINTER_SIZE 8\n",
		"#define CORAL_BUILD_MODE \"release\"\n",
		"#define CORAL_NDEBUG\n",
		"#define CORAL_OS_MAC\n",
		"#define CORAL_OS_UNIX\n",
		"#define CORAL_CC_GNU\n",
		"#define CORAL_CC_LLVM\n",
		"#define CORAL_CC_CLANG\n",
		"#define CORAL_ARCH_X86_64\n",
		"#define CORAL_BUILD_KEY \"MacOSX x86_64 clang-15.0\"\n",
		"#define CORAL_FORCE_INLINE __attribute__((always_inline))\n",
		"#define CORAL_EXPORT __attribute__((visibility(\"default\")))\n",
		"#define CORAL_EXPORT_EXCEPTION __attribute__((visibility(\"default\")))\n",
		"typedef long long intptr;\n",
		"typedef unsigned long long uintptr;\n",
		"const int8 MIN_INT8 = -127 - 1;\n",
		"const uint16 MAX_UINT16 = 0xFFFF;\n",
		"const int32 MIN_INT32 = -2147483647 - 1;\n",
		"const uint32 MAX_UINT32 = 0xFFFFFFFF;\n",
		"#endif // _CO_CONFIG_H_\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "CORAL_OS_WIN") || strings.Contains(out, "CORAL_CC_MSVC") {
		t.Errorf("header has markers of another platform:\n%s", out)
	}
}

func TestGenerateWindowsMSVC(t *testing.T) {
	t.Parallel()

	env := resolve(t, map[string]string{"_WIN32": "1", "_MSC_VER": "1700", "_M_IX86": "600"}, 4)
	out := generate(t, env, Options{Guard: "CORAL_CONFIG_H"})

	for _, want := range []string{
		"#ifndef CORAL_CONFIG_H\n",
		"#define CORAL_BUILD_MODE \"debug\"\n",
		"#define CORAL_OS_WIN\n",
		"#define CORAL_CC_MSVC\n",
		"#define CORAL_ARCH_X86_32\n",
		"#define CORAL_CC_VERSION \"11.0\"\n",
		"#define CORAL_FORCE_INLINE __forceinline\n",
		"#define CORAL_NO_INLINE __declspec(noinline)\n",
		"#define CORAL_EXPORT __declspec(dllimport)\n",
		"#define CORAL_DLL_EXPORT __declspec(dllexport)\n",
		"#define CORAL_EXPORT_EXCEPTION\n",
		"typedef int intptr;\n",
		"typedef unsigned uintptr;\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"CORAL_OS_UNIX", "CORAL_NDEBUG", "CORAL_CC_GNU"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("header should not define %s", unwanted)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	env := resolve(t, map[string]string{"__linux__": "1", "__GNUC__": "9", "__GNUC_MINOR__": "3", "__i386__": "1"}, 4)
	first := generate(t, env, Options{})
	for range 5 {
		if again := generate(t, env, Options{}); again != first {
			t.Fatal("Generate() output differs between runs")
		}
	}
}

func TestGenerateInvalidGuard(t *testing.T) {
	t.Parallel()

	env := resolve(t, map[string]string{"__linux__": "1", "__GNUC__": "9", "__GNUC_MINOR__": "3", "__i386__": "1"}, 4)
	var buf bytes.Buffer
	if err := Generate(&buf, env, Options{Guard: "1BAD-GUARD"}); !errors.Is(err, ErrInvalidGuard) {
		t.Errorf("Generate() error = %v, want ErrInvalidGuard", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on failure")
	}
}

func TestValidateFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{path: "include/co/Config.h"},
		{path: "config.h"},
		{path: "build/CON.h", wantErr: true},
		{path: "aux.h", wantErr: true},
		{path: "lpt1", wantErr: true},
		{path: "console.h"},
	}

	for _, tt := range tests {
		err := ValidateFileName(tt.path)
		if tt.wantErr != errors.Is(err, ErrReservedFileName) {
			t.Errorf("ValidateFileName(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}
