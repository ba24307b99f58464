// Package main provides the sqlround CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlround/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
