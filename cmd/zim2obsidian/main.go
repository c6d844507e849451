// Package main is the entry point for the zim2obsidian CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/zim2obsidian/internal/cli"
	"github.com/yaklabco/zim2obsidian/internal/logging"
	"github.com/yaklabco/zim2obsidian/pkg/convert"
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

	if err := rootCmd.Execute(); err != nil {
		// Don't log ErrPagesFailed - the per-page errors are already on
		// the run log, the sentinel only carries the exit code.
		if !errors.Is(err, convert.ErrPagesFailed) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
