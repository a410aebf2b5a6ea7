// Package main is the entry point for the gnaw CLI.
package main

import "gnaw.dev/pkg/gnaw/cmd"

func main() {
	cmd.Execute()
}
