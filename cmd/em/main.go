// Package main is the entry point for the em CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/emblem/internal/cli"
	"github.com/yaklabco/emblem/internal/logging"

	// Import lints package to register built-in lints via init().
	_ "github.com/yaklabco/emblem/pkg/lint/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, cli.ErrLintIssuesFound) {
		// The report already explains ErrLintIssuesFound.
		logger := logging.Default()
		logger.Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
