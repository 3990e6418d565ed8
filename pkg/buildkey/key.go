// SPDX-License-Identifier: MPL-2.0

package buildkey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coral/coralenv/pkg/arch"
	"github.com/coral/coralenv/pkg/compiler"
	"github.com/coral/coralenv/pkg/platform"
)

// ErrMalformedKey is the sentinel error wrapped by MalformedKeyError.
var ErrMalformedKey = errors.New("malformed build key")

type (
	// Key is the structured form of a build key.
	Key struct {
		OS       platform.OS
		Arch     arch.Arch
		Compiler compiler.Tag
		Version  string
	}

	// MalformedKeyError is returned by Parse for a string that is not a canonical key.
	MalformedKeyError struct {
		Value  string
		Reason string
	}
)

// Error implements the error interface.
func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("malformed build key %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrMalformedKey for errors.Is() compatibility.
func (e *MalformedKeyError) Unwrap() error { return ErrMalformedKey }

// String formats the key canonically. It is the only formatter of build keys.
func (k Key) String() string {
	return k.OS.Name() + " " + k.Arch.Name() + " " + k.Compiler.Name() + "-" + k.Version
}

// IsZero reports whether the key is the zero value.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Compatible reports whether binaries built under k and other may be mixed.
// Keys are a static label, so this is plain equality.
func (k Key) Compatible(other Key) bool {
	return k == other
}

// Parse reads a canonical build key. Parse(k.String()) == k for every
// assembled key; any other spelling is rejected.
func Parse(s string) (Key, error) {
	parts := strings.Split(s, " ")
	if len(parts) != 3 {
		return Key{}, &MalformedKeyError{Value: s, Reason: "expected three space-separated segments"}
	}

	osTag, err := platform.ParseName(parts[0])
	if err != nil {
		return Key{}, &MalformedKeyError{Value: s, Reason: err.Error()}
	}
	a, err := arch.ParseName(parts[1])
	if err != nil {
		return Key{}, &MalformedKeyError{Value: s, Reason: err.Error()}
	}

	// Compiler names may contain '-' (llvm-gcc); versions never do.
	i := strings.LastIndex(parts[2], "-")
	if i <= 0 || i == len(parts[2])-1 {
		return Key{}, &MalformedKeyError{Value: s, Reason: "expected compiler-version segment"}
	}
	tag, err := compiler.ParseName(parts[2][:i])
	if err != nil {
		return Key{}, &MalformedKeyError{Value: s, Reason: err.Error()}
	}

	return Key{OS: osTag, Arch: a, Compiler: tag, Version: parts[2][i+1:]}, nil
}
