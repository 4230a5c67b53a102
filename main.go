// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/Specter099/ssmtree/cmd/ssmtree"

func main() {
	cmd.Execute()
}
