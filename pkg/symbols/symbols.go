// SPDX-License-Identifier: MPL-2.0

package symbols

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrMalformedDefine is the sentinel error wrapped by MalformedDefineError.
	ErrMalformedDefine = errors.New("malformed define directive")
	// ErrNotDefined is returned when a symbol lookup requires a defined symbol.
	ErrNotDefined = errors.New("symbol not defined")
	// ErrNotInteger is returned when a symbol's value is not a decimal integer.
	ErrNotInteger = errors.New("symbol value is not an integer")
)

type (
	// Set is an immutable set of predefined toolchain symbols, mapping each
	// macro name to its replacement text. Object-like macros defined without a
	// value map to the empty string.
	Set struct {
		defs map[string]string
	}

	// MalformedDefineError is returned by Parse for a #define line it cannot read.
	MalformedDefineError struct {
		Line int
		Text string
	}
)

// Error implements the error interface.
func (e *MalformedDefineError) Error() string {
	return fmt.Sprintf("line %d: malformed define directive %q", e.Line, e.Text)
}

// Unwrap returns ErrMalformedDefine for errors.Is() compatibility.
func (e *MalformedDefineError) Unwrap() error { return ErrMalformedDefine }

// New returns a Set holding a copy of defs.
func New(defs map[string]string) Set {
	return Set{defs: maps.Clone(defs)}
}

// Of returns a Set where every name is defined with the value "1".
func Of(names ...string) Set {
	defs := make(map[string]string, len(names))
	for _, n := range names {
		defs[n] = "1"
	}
	return Set{defs: defs}
}

// Parse reads the output of a preprocessor macro dump (cc -dM -E) and returns
// the object-like macros it defines. Function-like macros are skipped since
// no detection rule depends on them.
func Parse(r io.Reader) (Set, error) {
	defs := make(map[string]string)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rest, ok := strings.CutPrefix(line, "#define")
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			return Set{}, &MalformedDefineError{Line: lineNo, Text: line}
		}
		rest = strings.TrimLeft(rest, " \t")
		name, value, _ := strings.Cut(rest, " ")
		if strings.Contains(name, "(") {
			continue
		}
		if !isIdentifier(name) {
			return Set{}, &MalformedDefineError{Line: lineNo, Text: line}
		}
		defs[name] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return Set{}, fmt.Errorf("failed to read symbol dump: %w", err)
	}

	return Set{defs: defs}, nil
}

// Defined reports whether name is defined.
func (s Set) Defined(name string) bool {
	_, ok := s.defs[name]
	return ok
}

// AnyDefined reports whether at least one of names is defined.
func (s Set) AnyDefined(names ...string) bool {
	for _, n := range names {
		if s.Defined(n) {
			return true
		}
	}
	return false
}

// Value returns the replacement text of name and whether it is defined.
func (s Set) Value(name string) (string, bool) {
	v, ok := s.defs[name]
	return v, ok
}

// Int returns the value of name parsed as a decimal integer. Integer suffixes
// such as L or U are accepted, matching what compilers emit for version macros.
func (s Set) Int(name string) (int, error) {
	v, ok := s.defs[name]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, ErrNotDefined)
	}
	n, err := strconv.Atoi(strings.TrimRight(v, "uUlL"))
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", name, v, ErrNotInteger)
	}
	return n, nil
}

// Names returns the defined names in sorted order.
func (s Set) Names() []string {
	return slices.Sorted(maps.Keys(s.defs))
}

// Len returns the number of defined symbols.
func (s Set) Len() int { return len(s.defs) }

// Merge returns a new Set with the symbols of s and other; other wins on conflict.
func (s Set) Merge(other Set) Set {
	defs := make(map[string]string, len(s.defs)+len(other.defs))
	maps.Copy(defs, s.defs)
	maps.Copy(defs, other.defs)
	return Set{defs: defs}
}

// Map returns a copy of the underlying definitions.
func (s Set) Map() map[string]string {
	return maps.Clone(s.defs)
}

// WriteTo writes the set in the same "#define NAME VALUE" form Parse reads,
// sorted by name.
func (s Set) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, name := range s.Names() {
		line := "#define " + name
		if v := s.defs[name]; v != "" {
			line += " " + v
		}
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
