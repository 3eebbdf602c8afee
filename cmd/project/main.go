// Package main is the entry point for the project CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/project-cli/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
