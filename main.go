// Package main is the entry point for the winpeek command-line tool.
package main

import (
	"os"

	"github.com/winpeek/winpeek/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
