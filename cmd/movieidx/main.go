// Package main provides the entry point for the movieidx CLI.
package main

import (
	"os"

	"github.com/movieidx/movieidx/cmd/movieidx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
