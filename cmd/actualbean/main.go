// Package main is the entry point for the actualbean CLI.
package main

import (
	"os"

	"github.com/rufex/actualbean/cmd/actualbean/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
