// Package main is the entry point for pstats, a stats fetcher and terminal
// dashboard for Plausible Analytics.
package main

import (
	"os"

	"github.com/j-veylop/pstats/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
