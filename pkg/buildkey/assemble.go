// SPDX-License-Identifier: MPL-2.0

package buildkey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coral/coralenv/pkg/arch"
	"github.com/coral/coralenv/pkg/compiler"
	"github.com/coral/coralenv/pkg/platform"
	"github.com/coral/coralenv/pkg/symbols"
	"github.com/coral/coralenv/pkg/types"
)

const (
	// AxisOS is the operating system axis.
	AxisOS Axis = "os"
	// AxisCompiler is the compiler family/variant axis.
	AxisCompiler Axis = "compiler"
	// AxisVersion is the compiler version axis.
	AxisVersion Axis = "version"
	// AxisArchitecture is the processor architecture axis.
	AxisArchitecture Axis = "architecture"
	// AxisPointerSize is the pointer size configuration axis.
	AxisPointerSize Axis = "pointer-size"
)

// ErrUnsupportedEnvironment is matched by every ValidationError.
var ErrUnsupportedEnvironment = errors.New("unsupported build environment")

type (
	// Axis names one independent detection decision.
	Axis string

	// AxisError is a failure on a single axis.
	AxisError struct {
		Axis Axis
		Err  error
	}

	// ValidationError lists every axis that failed, in evaluation order.
	ValidationError struct {
		Failures []*AxisError
	}

	// Inputs are everything a build key depends on. A zero MSVC policy
	// means compiler.DefaultPolicy.
	Inputs struct {
		Symbols     symbols.Set
		PointerSize types.PointerSize
		MSVC        compiler.Policy
	}
)

// Error implements the error interface.
func (e *AxisError) Error() string {
	return string(e.Axis) + ": " + e.Err.Error()
}

// Unwrap returns the underlying axis failure.
func (e *AxisError) Unwrap() error { return e.Err }

// Error implements the error interface, itemizing each failing axis.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "unsupported build environment: %d failure(s)", len(e.Failures))
	for _, f := range e.Failures {
		sb.WriteString("\n  - ")
		sb.WriteString(f.Error())
	}
	return sb.String()
}

// Unwrap exposes ErrUnsupportedEnvironment and every axis failure to errors.Is/As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures)+1)
	errs = append(errs, ErrUnsupportedEnvironment)
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}

// Axes returns the failing axes in evaluation order.
func (e *ValidationError) Axes() []Axis {
	axes := make([]Axis, 0, len(e.Failures))
	for _, f := range e.Failures {
		axes = append(axes, f.Axis)
	}
	return axes
}

// Assemble derives the build key from in. Every axis is evaluated even after
// a failure so the error names all of them; no key is returned on failure.
func Assemble(in Inputs) (Key, error) {
	var failures []*AxisError
	fail := func(axis Axis, err error) {
		failures = append(failures, &AxisError{Axis: axis, Err: err})
	}

	osTag, err := platform.DetectOS(in.Symbols)
	if err != nil {
		fail(AxisOS, err)
	}

	policy := in.MSVC
	if len(policy.Brackets) == 0 {
		policy = compiler.DefaultPolicy()
	}
	cc, err := compiler.Detect(in.Symbols, policy)
	if errors.Is(err, compiler.ErrUnknownCompiler) {
		fail(AxisCompiler, err)
	} else {
		if lerr := compiler.CheckLanguage(in.Symbols); lerr != nil {
			fail(AxisCompiler, lerr)
		}
		if err != nil {
			fail(AxisVersion, err)
		}
	}

	a, err := arch.Detect(in.Symbols, in.PointerSize)
	for _, e := range unjoin(err) {
		if errors.Is(e, types.ErrInvalidPointerSize) {
			fail(AxisPointerSize, e)
		} else {
			fail(AxisArchitecture, e)
		}
	}

	if len(failures) > 0 {
		return Key{}, &ValidationError{Failures: failures}
	}

	return Key{OS: osTag, Arch: a, Compiler: cc.Tag, Version: cc.Version}, nil
}

// unjoin splits an errors.Join result into its parts.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
