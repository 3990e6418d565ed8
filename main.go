// SPDX-License-Identifier: MPL-2.0

// Command coralenv validates the Coral build environment.
package main

import cmd "github.com/coral/coralenv/cmd/coralenv"

func main() {
	cmd.Execute()
}
