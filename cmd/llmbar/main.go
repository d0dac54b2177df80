// Package main is the entry point for the llmbar CLI.
package main

import (
	"os"

	"github.com/watchfire-io/llmbar/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
