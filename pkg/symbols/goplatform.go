// SPDX-License-Identifier: MPL-2.0

package symbols

// GOOS/GOARCH values understood by FromGo.
const (
	goosLinux   = "linux"
	goosDarwin  = "darwin"
	goosWindows = "windows"
	goarch386   = "386"
	goarchAMD64 = "amd64"
)

// FromGo returns the OS and architecture markers a C toolchain targeting the
// given Go platform predefines. It carries no compiler markers; those only
// come from probing a real compiler or from configuration.
//
// Unknown GOOS or GOARCH values contribute nothing, so detection on the
// resulting set fails for that axis instead of guessing.
func FromGo(goos, goarch string) Set {
	defs := make(map[string]string)

	switch goos {
	case goosLinux:
		defs["__linux__"] = "1"
		defs["__linux"] = "1"
		defs["__unix__"] = "1"
	case goosDarwin:
		defs["__APPLE__"] = "1"
		defs["__MACH__"] = "1"
	case goosWindows:
		defs["_WIN32"] = "1"
	}

	switch goarch {
	case goarch386:
		defs["__i386"] = "1"
		defs["__i386__"] = "1"
		defs["__SIZEOF_POINTER__"] = "4"
	case goarchAMD64:
		defs["__x86_64"] = "1"
		defs["__x86_64__"] = "1"
		defs["__SIZEOF_POINTER__"] = "8"
		if goos == goosWindows {
			defs["_WIN64"] = "1"
		}
	}

	return Set{defs: defs}
}
