// Package main is the entry point for the autolink CLI tool.
package main

import (
	"os"

	"github.com/benjaminschreck/go-autolink/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
