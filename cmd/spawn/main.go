// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the spawn command-line interface (CLI).
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/spawn/cmd/spawn/batch"
	"github.com/matt-FFFFFF/spawn/cmd/spawn/run"
	"github.com/matt-FFFFFF/spawn/cmd/spawn/version"
	"github.com/matt-FFFFFF/spawn/internal/ctxlog"
	"github.com/matt-FFFFFF/spawn/internal/entrypoint"
	"github.com/matt-FFFFFF/spawn/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		batch.BatchCmd,
		version.VersionCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "spawn",
	Usage:     "Run processes and collect their output",
	Description: `spawn runs external processes and collects everything they write to
stdout and stderr. A run finishes once both streams are closed and the process
has exited; a non-zero exit code is reported together with the captured output.`,
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
	// Errors are mapped to exit codes by entrypoint.Main after cleanup has run.
	ExitErrHandler: func(context.Context, *cli.Command, error) {},
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	stopSignals := signalbroker.Listen(ctx, cancel)

	rootCmd.Version = version.String()

	_, status := entrypoint.Main(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, rootCmd.Run(ctx, os.Args)
	}, func(ctx context.Context) {
		stopSignals()
		cancel()
		ctxlog.Debug(ctx, "cleaned up")
	})

	entrypoint.Exit(status)
}
