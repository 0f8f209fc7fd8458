// Package main provides the firepal CLI.
package main

import (
	"os"

	"github.com/bendaniels95/firelanding/internal/cli"
)

// Set via -ldflags at release time.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	if version != "" {
		cli.Version = version
	}
	if commit != "" {
		cli.GitCommit = commit
	}
	if date != "" {
		cli.BuildDate = date
	}
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
