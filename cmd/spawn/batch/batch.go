// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batch contains the "spawn batch" command.
package batch

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/spawn/internal/batch"
	"github.com/matt-FFFFFF/spawn/internal/ctxlog"
	"github.com/matt-FFFFFF/spawn/internal/procrun"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag            = "file"
	parallelFlag        = "parallel"
	continueOnErrorFlag = "continue-on-error"
	successFlag         = "output-success"
	noOutputFlag        = "no-output"
)

// BatchCmd runs the commands listed in a YAML batch file.
var BatchCmd = New()

// New returns a fresh "batch" command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Run the processes listed in a YAML batch file",
		Description: `Run every command listed in a YAML batch file and print a report.

Commands run one after another and stop at the first failure, unless the file
or the flags ask for parallel execution or to continue on error.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      fileFlag,
				Aliases:   []string{"f"},
				Usage:     "Path of the batch file",
				TakesFile: true,
				Required:  true,
				OnlyOnce:  true,
			},
			&cli.BoolFlag{
				Name:     parallelFlag,
				Aliases:  []string{"p"},
				Usage:    "Start all commands at once (overrides the file)",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     continueOnErrorFlag,
				Usage:    "Keep going after a failed command (overrides the file)",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     successFlag,
				Aliases:  []string{"success"},
				Usage:    "Include the output of successful commands in the report",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     noOutputFlag,
				Usage:    "Leave captured output out of the report",
				OnlyOnce: true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	path := cmd.String(fileFlag)

	def, err := batch.Load(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load batch file %s: %s", path, err), 1)
	}

	if cmd.IsSet(parallelFlag) {
		def.Parallel = cmd.Bool(parallelFlag)
	}

	if cmd.IsSet(continueOnErrorFlag) {
		def.ContinueOnError = cmd.Bool(continueOnErrorFlag)
	}

	logger.Debug("running batch", "file", path, "commands", len(def.Commands))

	results, execErr := batch.Execute(ctx, def, procrun.New())

	opts := batch.DefaultOutputOptions()
	opts.IncludeOutput = !cmd.Bool(noOutputFlag)
	opts.ShowSuccessDetails = cmd.Bool(successFlag)

	if err := batch.WriteResults(cmd.Root().Writer, def.Name, results, opts); err != nil {
		return cli.Exit(fmt.Sprintf("failed to write results: %s", err), 1)
	}

	if execErr != nil {
		logger.Debug("batch failed", "error", execErr)
		return cli.Exit(fmt.Sprintf("%d of %d commands failed", results.Count(batch.StatusError), len(results)), 1)
	}

	return nil
}
