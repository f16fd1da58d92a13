// Package main provides the grantsql CLI.
package main

import (
	"os"

	"github.com/grantstack-labs/grantsql/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
