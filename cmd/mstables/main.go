// Package main provides the mstables CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/mstables/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
