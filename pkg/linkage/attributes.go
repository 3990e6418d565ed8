// SPDX-License-Identifier: MPL-2.0

package linkage

import (
	"github.com/coral/coralenv/pkg/compiler"
	"github.com/coral/coralenv/pkg/platform"
)

type (
	// Options are the inputs to Resolve.
	Options struct {
		OS           platform.OS
		Family       compiler.Family
		NoExport     bool
		BuildingCore bool
	}

	// Attributes holds the resolved attribute spellings for one build.
	Attributes struct {
		ForceInline     string
		NoInline        string
		Export          Export
		DLLExport       Export
		ExceptionExport Export
	}
)

// Resolve evaluates every attribute for opts.
func Resolve(opts Options) Attributes {
	return Attributes{
		ForceInline:     ForceInline.Spelling(opts.Family),
		NoInline:        NoInline.Spelling(opts.Family),
		Export:          ResolveExport(opts.OS, opts.NoExport, opts.BuildingCore),
		DLLExport:       ResolveDLLExport(opts.OS, opts.NoExport),
		ExceptionExport: ResolveExceptionExport(opts.OS, opts.NoExport),
	}
}
