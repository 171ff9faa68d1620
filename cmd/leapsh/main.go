// Package main is the entry point of the leapsh command.
package main

import (
	"os"

	"github.com/leapstack-labs/leapsh/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
