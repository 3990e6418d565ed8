// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "resolve build environment"},
			expected: "failed to resolve build environment",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "write header", Resource: "include/co/Config.h"},
			expected: "failed to write header: include/co/Config.h",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "probe compiler",
				Resource:  "g++",
				Cause:     errors.New("executable file not found in $PATH"),
			},
			expected: "failed to probe compiler: g++: executable file not found in $PATH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	root := errors.New("_MSC_VER 1800")
	err := NewErrorContext().
		WithOperation("resolve build environment").
		WithSuggestion("Add an MSVC version bracket").
		WithSuggestions("Use a supported compiler").
		WithIssue(CompilerTooNewId).
		Wrap(fmt.Errorf("version: %w", root)).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "\n  • Add an MSVC version bracket") || !strings.Contains(short, "\n  • Use a supported compiler") {
		t.Errorf("Format(false) missing suggestions:\n%s", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) must not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "1. version: _MSC_VER 1800") || !strings.Contains(verbose, "2. _MSC_VER 1800") {
		t.Errorf("Format(true) missing chain:\n%s", verbose)
	}
	if !errors.Is(err, root) {
		t.Error("errors.Is should reach the root cause")
	}
	if err.Issue != CompilerTooNewId || !err.HasSuggestions() {
		t.Errorf("Build() = %+v", err)
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	t.Parallel()

	if NewErrorContext().Wrap(errors.New("x")).Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
}
