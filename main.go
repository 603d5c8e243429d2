// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/workscript/workscript/cmd/workscript"

func main() {
	cmd.Execute()
}
