// SPDX-License-Identifier: MPL-2.0

// Package container runs compiler probes inside Docker or Podman images, so
// cross toolchains shipped as images can be detected without installing them
// on the host.
package container
