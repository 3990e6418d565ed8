// SPDX-License-Identifier: MPL-2.0

// Package buildenv resolves the complete build environment record from
// toolchain symbols and build configuration.
package buildenv

import (
	"github.com/coral/coralenv/pkg/buildkey"
	"github.com/coral/coralenv/pkg/compiler"
	"github.com/coral/coralenv/pkg/linkage"
	"github.com/coral/coralenv/pkg/symbols"
	"github.com/coral/coralenv/pkg/types"
)

type (
	// Inputs are the build-time inputs to Resolve.
	Inputs struct {
		Symbols      symbols.Set
		PointerSize  types.PointerSize
		NoExport     bool
		BuildingCore bool
		// MSVC overrides compiler.DefaultPolicy when it has brackets.
		MSVC compiler.Policy
	}

	// Environment is the resolved, immutable description of one build.
	Environment struct {
		Key         buildkey.Key
		PointerSize types.PointerSize
		Mode        buildkey.Mode
		Unix        bool
		Attributes  linkage.Attributes
	}
)

// Resolve evaluates every detection axis on in. On failure the error is a
// *buildkey.ValidationError naming each failing axis and no Environment is
// returned. Identical inputs always produce identical results.
func Resolve(in Inputs) (Environment, error) {
	key, err := buildkey.Assemble(buildkey.Inputs{
		Symbols:     in.Symbols,
		PointerSize: in.PointerSize,
		MSVC:        in.MSVC,
	})
	if err != nil {
		return Environment{}, err
	}

	return Environment{
		Key:         key,
		PointerSize: in.PointerSize,
		Mode:        buildkey.DetectMode(in.Symbols),
		Unix:        key.OS.IsUnix(),
		Attributes: linkage.Resolve(linkage.Options{
			OS:           key.OS,
			Family:       key.Compiler.Family(),
			NoExport:     in.NoExport,
			BuildingCore: in.BuildingCore,
		}),
	}, nil
}

// Family returns the compiler family of the build.
func (e Environment) Family() compiler.Family { return e.Key.Compiler.Family() }

// Manifest returns the build manifest for e.
func (e Environment) Manifest(generator string) buildkey.Manifest {
	return buildkey.NewManifest(e.Key, e.PointerSize, e.Mode, e.Attributes.Export.String(), generator)
}
