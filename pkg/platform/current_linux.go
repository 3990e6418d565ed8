// SPDX-License-Identifier: MPL-2.0

package platform

// Current is the OS tag of the Go build target.
const Current = OSLinux
