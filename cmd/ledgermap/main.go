// Package main provides the entry point for the ledgermap CLI tool.
package main

import "github.com/ledgerscope/ledgermap/cmd/ledgermap/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
