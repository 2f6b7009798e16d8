// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/facmod/facmod/cmd/facmod"

func main() {
	cmd.Execute()
}
