// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "github.com/packvet/packvet/cmd/packvet"
)

func main() {
	cmd.Execute()
}
