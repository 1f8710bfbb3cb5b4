// Package main is the entry point for the typist CLI.
//
// Usage:
//
//	typist [flags] <command> [subcommand] [args]
//
// Commands:
//
//	convert    - Convert an image to typist art
//	catalog    - Build and inspect glyph catalogs
//	version    - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/wbrown/typist/cmd/typist/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
