// SPDX-License-Identifier: MPL-2.0

package linkage

import "github.com/coral/coralenv/pkg/platform"

const (
	// ExportNone expands to nothing.
	ExportNone Export = iota
	// ExportDLLExport marks a symbol exported from a Windows DLL.
	ExportDLLExport
	// ExportDLLImport marks a symbol imported from a Windows DLL.
	ExportDLLImport
	// ExportDefaultVisible gives a symbol default ELF/Mach-O visibility.
	ExportDefaultVisible
)

// Export is a shared-library symbol visibility attribute.
type Export int

// Spelling returns the attribute text.
func (e Export) Spelling() string {
	switch e {
	case ExportDLLExport:
		return "__declspec(dllexport)"
	case ExportDLLImport:
		return "__declspec(dllimport)"
	case ExportDefaultVisible:
		return `__attribute__((visibility("default")))`
	default:
		return ""
	}
}

// String returns the short name used in manifests and reports.
func (e Export) String() string {
	switch e {
	case ExportDLLExport:
		return "dllexport"
	case ExportDLLImport:
		return "dllimport"
	case ExportDefaultVisible:
		return "default"
	default:
		return "none"
	}
}

// ResolveExport returns the attribute for symbols of the framework's own
// public interface. Building the core library exports them on Windows, while
// code linking against it imports them.
//
//	noExport  windows  buildingCore  result
//	true      any      any           None
//	false     true     true          DLLExport
//	false     true     false         DLLImport
//	false     false    any           DefaultVisible
func ResolveExport(os platform.OS, noExport, buildingCore bool) Export {
	switch {
	case noExport:
		return ExportNone
	case os == platform.OSWindows && buildingCore:
		return ExportDLLExport
	case os == platform.OSWindows:
		return ExportDLLImport
	default:
		return ExportDefaultVisible
	}
}

// ResolveDLLExport returns the attribute for symbols every module exports,
// such as its bootstrap entry point.
func ResolveDLLExport(os platform.OS, noExport bool) Export {
	switch {
	case noExport:
		return ExportNone
	case os == platform.OSWindows:
		return ExportDLLExport
	default:
		return ExportDefaultVisible
	}
}

// ResolveExceptionExport returns the attribute for exception classes. Windows
// needs none since exception type information crosses DLL boundaries by name.
func ResolveExceptionExport(os platform.OS, noExport bool) Export {
	if os == platform.OSWindows {
		return ExportNone
	}
	return ResolveDLLExport(os, noExport)
}
