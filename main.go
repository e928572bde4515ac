// SPDX-License-Identifier: MPL-2.0

package main

import cmd "pybundle-cli/cmd/pybundle"

func main() {
	cmd.Execute()
}
