// SPDX-License-Identifier: MPL-2.0

package compiler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/coral/coralenv/pkg/symbols"
)

const (
	// FamilyUnknown is the zero value.
	FamilyUnknown Family = iota
	// FamilyMSVC is the Microsoft Visual C++ compiler.
	FamilyMSVC
	// FamilyGNU is any compiler defining the GNU-compatible __GNUC__ markers.
	FamilyGNU
)

const (
	// TagUnknown is the zero value.
	TagUnknown Tag = iota
	// TagMSVC is Microsoft Visual C++.
	TagMSVC
	// TagGCC is plain GCC.
	TagGCC
	// TagMinGW is the Windows-hosted GNU toolchain.
	TagMinGW
	// TagLLVMGCC is a GNU-compatible compiler with an LLVM backend.
	TagLLVMGCC
	// TagClang is Clang; a refinement of TagLLVMGCC.
	TagClang
)

var (
	// ErrUnknownCompiler is the sentinel error wrapped by UnknownCompilerError.
	ErrUnknownCompiler = errors.New("unknown compiler")
	// ErrMissingVersion is returned when the version markers of a detected
	// compiler are absent or not decimal integers.
	ErrMissingVersion = errors.New("compiler version not reported")
	// ErrNotCPlusPlus is returned when the toolchain symbols come from a
	// compiler running in C mode.
	ErrNotCPlusPlus = errors.New("coral requires a C++ compiler: __cplusplus is not defined")
)

type (
	// Family is the compiler family, which alone decides attribute spellings.
	Family int

	// Tag is the compiler sub-variant; exactly one is selected per build.
	Tag int

	// Compiler is a detected compiler and its resolved version string.
	Compiler struct {
		Tag     Tag
		Version string
	}

	// UnknownCompilerError is returned when neither MSVC nor GNU markers are present.
	UnknownCompilerError struct{}
)

// Error implements the error interface.
func (e *UnknownCompilerError) Error() string {
	return "unknown compiler: coral requires one compatible with GCC or MSVC"
}

// Unwrap returns ErrUnknownCompiler for errors.Is() compatibility.
func (e *UnknownCompilerError) Unwrap() error { return ErrUnknownCompiler }

// String returns "msvc", "gnu" or "unknown".
func (f Family) String() string {
	switch f {
	case FamilyMSVC:
		return "msvc"
	case FamilyGNU:
		return "gnu"
	default:
		return "unknown"
	}
}

// Family returns the family a tag belongs to.
func (t Tag) Family() Family {
	switch t {
	case TagMSVC:
		return FamilyMSVC
	case TagGCC, TagMinGW, TagLLVMGCC, TagClang:
		return FamilyGNU
	default:
		return FamilyUnknown
	}
}

// Name returns the compiler segment of the build key.
func (t Tag) Name() string {
	switch t {
	case TagMSVC:
		return "msvc"
	case TagGCC:
		return "gcc"
	case TagMinGW:
		return "mingw"
	case TagLLVMGCC:
		return "llvm-gcc"
	case TagClang:
		return "clang"
	default:
		return ""
	}
}

// String returns the tag name, or "unknown".
func (t Tag) String() string {
	if n := t.Name(); n != "" {
		return n
	}
	return "unknown"
}

// ParseName maps a build-key compiler segment back to its tag.
func ParseName(name string) (Tag, error) {
	for _, t := range []Tag{TagMSVC, TagGCC, TagMinGW, TagLLVMGCC, TagClang} {
		if t.Name() == name {
			return t, nil
		}
	}
	return TagUnknown, fmt.Errorf("%w: %q", ErrUnknownCompiler, name)
}

// DetectTag selects the compiler sub-variant from toolchain symbols.
func DetectTag(s symbols.Set) (Tag, error) {
	if s.Defined("_MSC_VER") {
		return TagMSVC, nil
	}
	if !s.Defined("__GNUC__") {
		return TagUnknown, &UnknownCompilerError{}
	}

	switch {
	case s.Defined("__MINGW32__"):
		return TagMinGW, nil
	case s.Defined("__llvm__"):
		if s.Defined("__clang__") {
			return TagClang, nil
		}
		return TagLLVMGCC, nil
	default:
		return TagGCC, nil
	}
}

// CheckLanguage fails with ErrNotCPlusPlus unless the symbols were produced
// by a compiler in C++ mode.
func CheckLanguage(s symbols.Set) error {
	if !s.Defined("__cplusplus") {
		return ErrNotCPlusPlus
	}
	return nil
}

// Detect selects the compiler and resolves its version. MSVC versions are
// resolved through policy; GNU-family versions are "major.minor".
func Detect(s symbols.Set, policy Policy) (Compiler, error) {
	tag, err := DetectTag(s)
	if err != nil {
		return Compiler{}, err
	}

	version, err := Version(s, tag, policy)
	if err != nil {
		return Compiler{Tag: tag}, err
	}

	return Compiler{Tag: tag, Version: version}, nil
}

// Version resolves the version string of an already detected compiler.
func Version(s symbols.Set, tag Tag, policy Policy) (string, error) {
	switch tag {
	case TagMSVC:
		raw, err := s.Int("_MSC_VER")
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrMissingVersion, err)
		}
		return policy.Resolve(raw)
	case TagClang:
		return majorMinor(s, "__clang_major__", "__clang_minor__")
	case TagGCC, TagMinGW, TagLLVMGCC:
		return majorMinor(s, "__GNUC__", "__GNUC_MINOR__")
	default:
		return "", &UnknownCompilerError{}
	}
}

// GNUVersion formats a GNU-family version as "major.minor", without padding.
func GNUVersion(major, minor int) string {
	return strconv.Itoa(major) + "." + strconv.Itoa(minor)
}

func majorMinor(s symbols.Set, majorName, minorName string) (string, error) {
	major, err := s.Int(majorName)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMissingVersion, err)
	}
	minor, err := s.Int(minorName)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMissingVersion, err)
	}
	if major < 0 || minor < 0 {
		return "", fmt.Errorf("%w: negative %s/%s", ErrMissingVersion, majorName, minorName)
	}
	return GNUVersion(major, minor), nil
}
