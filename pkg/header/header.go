// SPDX-License-Identifier: MPL-2.0

// Package header writes the C++ configuration header that carries a resolved
// build environment into framework sources.
package header

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/coral/coralenv/pkg/arch"
	"github.com/coral/coralenv/pkg/buildenv"
	"github.com/coral/coralenv/pkg/buildkey"
	"github.com/coral/coralenv/pkg/compiler"
	"github.com/coral/coralenv/pkg/platform"
	"github.com/coral/coralenv/pkg/portable"
)

// DefaultGuard is the include guard used when Options.Guard is empty.
const DefaultGuard = "_CO_CONFIG_H_"

var (
	// ErrInvalidGuard is returned for an include guard that is not a C identifier.
	ErrInvalidGuard = errors.New("invalid include guard")
	// ErrReservedFileName is returned for an output name Windows cannot create.
	ErrReservedFileName = errors.New("reserved file name")

	//go:embed config.h.tmpl
	headerSource string

	headerTemplate = template.Must(template.New("config.h").Parse(headerSource))

	guardPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

type (
	// Options control header generation.
	Options struct {
		// Guard is the include guard macro; DefaultGuard when empty.
		Guard string
		// Generator is written into the banner comment, e.g. "coralenv 1.2.0".
		Generator string
	}

	// define is one preprocessor definition; an empty Value defines a flag.
	define struct {
		Name  string
		Value string
	}

	typedef struct {
		Type string
		Name string
	}

	limitLine struct {
		Type string
		Name string
		Expr string
	}

	templateData struct {
		Guard     string
		Generator string
		Key       string
		Defines   []define
		Typedefs  []typedef
		Limits    []limitLine
	}
)

// Generate writes the configuration header for env to w. The output depends
// only on env and opts.
func Generate(w io.Writer, env buildenv.Environment, opts Options) error {
	guard := opts.Guard
	if guard == "" {
		guard = DefaultGuard
	}
	if !guardPattern.MatchString(guard) {
		return fmt.Errorf("%w %q", ErrInvalidGuard, guard)
	}

	data := templateData{
		Guard:     guard,
		Generator: opts.Generator,
		Key:       env.Key.String(),
		Defines:   defines(env),
		Typedefs:  typedefs(env),
		Limits:    limitLines(),
	}

	var buf bytes.Buffer
	if err := headerTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render header: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ValidateFileName rejects output paths whose base name is reserved on Windows.
func ValidateFileName(path string) error {
	if base := filepath.Base(path); platform.IsWindowsReservedName(base) {
		return fmt.Errorf("%w %q: Windows reserves this device name", ErrReservedFileName, base)
	}
	return nil
}

func defines(env buildenv.Environment) []define {
	var defs []define
	add := func(name, value string) { defs = append(defs, define{Name: name, Value: value}) }
	quote := func(s string) string { return `"` + s + `"` }

	add("CORAL_POINTER_SIZE", env.PointerSize.String())
	add("CORAL_BUILD_MODE", quote(env.Mode.String()))
	if env.Mode == buildkey.ModeRelease {
		add("CORAL_NDEBUG", "")
	}

	switch env.Key.OS {
	case platform.OSLinux:
		add("CORAL_OS_LINUX", "")
	case platform.OSMac:
		add("CORAL_OS_MAC", "")
	case platform.OSWindows:
		add("CORAL_OS_WIN", "")
	}
	if env.Unix {
		add("CORAL_OS_UNIX", "")
	}

	switch env.Key.Compiler.Family() {
	case compiler.FamilyMSVC:
		add("CORAL_CC_MSVC", "")
	case compiler.FamilyGNU:
		add("CORAL_CC_GNU", "")
	}
	switch env.Key.Compiler {
	case compiler.TagMinGW:
		add("CORAL_CC_MINGW", "")
	case compiler.TagLLVMGCC:
		add("CORAL_CC_LLVM", "")
	case compiler.TagClang:
		add("CORAL_CC_LLVM", "")
		add("CORAL_CC_CLANG", "")
	}

	switch env.Key.Arch {
	case arch.X86_32:
		add("CORAL_ARCH_X86_32", "")
	case arch.X86_64:
		add("CORAL_ARCH_X86_64", "")
	}

	add("CORAL_OS_NAME", quote(env.Key.OS.Name()))
	add("CORAL_ARCH_NAME", quote(env.Key.Arch.Name()))
	add("CORAL_CC_NAME", quote(env.Key.Compiler.Name()))
	add("CORAL_CC_VERSION", quote(env.Key.Version))
	add("CORAL_BUILD_KEY", quote(env.Key.String()))

	attrs := env.Attributes
	add("CORAL_FORCE_INLINE", attrs.ForceInline)
	add("CORAL_NO_INLINE", attrs.NoInline)
	add("CORAL_EXPORT", attrs.Export.Spelling())
	add("CORAL_DLL_EXPORT", attrs.DLLExport.Spelling())
	add("CORAL_EXPORT_EXCEPTION", attrs.ExceptionExport.Spelling())

	return defs
}

func typedefs(env buildenv.Environment) []typedef {
	intptr, uintptr := "int", "unsigned"
	if env.PointerSize.Bits() == 64 {
		intptr, uintptr = "long long", "unsigned long long"
	}
	return []typedef{
		{Type: "signed char", Name: "int8"},
		{Type: "unsigned char", Name: "uint8"},
		{Type: "short", Name: "int16"},
		{Type: "unsigned short", Name: "uint16"},
		{Type: "int", Name: "int32"},
		{Type: "unsigned", Name: "uint32"},
		{Type: intptr, Name: "intptr"},
		{Type: uintptr, Name: "uintptr"},
	}
}

// limitLines spells each limit the way C needs it: the most negative value
// as -(max) - 1 and unsigned maximums in hex.
func limitLines() []limitLine {
	var lines []limitLine
	for _, l := range portable.Limits() {
		upper := strings.ToUpper(l.Name)
		if !l.Signed {
			lines = append(lines, limitLine{Type: l.Name, Name: "MAX_" + upper, Expr: "0x" + strings.Repeat("F", l.Bits/4)})
			continue
		}
		lines = append(lines,
			limitLine{Type: l.Name, Name: "MIN_" + upper, Expr: fmt.Sprintf("-%d - 1", -(l.Min + 1))},
			limitLine{Type: l.Name, Name: "MAX_" + upper, Expr: strconv.FormatUint(l.Max, 10)},
		)
	}
	return lines
}
