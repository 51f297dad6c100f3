// Copyright © 2024 The MNL authors

package main

import "github.com/mnl-lang/mnl/cmd"

func main() {
	cmd.Execute()
}
