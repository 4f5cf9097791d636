// Package main provides the CLI entrypoint for typeprobe.
//
// typeprobe is an interactive explorer for Go types:
//   - Loads linked modules or plugin files exporting a module manifest
//   - Discovers the types implementing the module's marker interface
//   - Constructs one instance per type and invokes its members from text
//   - Generates manifests from package sources
package main

import (
	"os"

	_ "typeprobe/fsmodel"
	"typeprobe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
