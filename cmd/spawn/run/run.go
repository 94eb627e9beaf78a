// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the "spawn run" command.
package run

import (
	"context"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/spawn/internal/ctxlog"
	"github.com/matt-FFFFFF/spawn/internal/procrun"
	"github.com/urfave/cli/v3"
)

const (
	dirFlag       = "dir"
	envFlag       = "env"
	clearEnvFlag  = "clear-env"
	shellFlag     = "shell"
	maxOutputFlag = "max-output"

	// SpawnFailedExitCode is the status used when the process could not be started.
	SpawnFailedExitCode = 127
)

// RunCmd runs a single process and prints its output.
var RunCmd = New()

// New returns a fresh "run" command.
func New() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a process and print its combined output",
		ArgsUsage: "-- PATH [ARGS...]",
		Description: `Run a process to completion and print everything it wrote to stdout and stderr.

The command exits with the process's exit code when it is non-zero,
and with 127 when the process cannot be started.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      dirFlag,
				Aliases:   []string{"C"},
				Usage:     "Working directory for the process",
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.StringMapFlag{
				Name:    envFlag,
				Aliases: []string{"e"},
				Usage:   "Set an environment variable (KEY=VALUE), may be repeated",
			},
			&cli.BoolFlag{
				Name:     clearEnvFlag,
				Usage:    "Do not inherit the current environment",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     shellFlag,
				Aliases:  []string{"s"},
				Usage:    "Run the command line through the system shell",
				OnlyOnce: true,
			},
			&cli.Int64Flag{
				Name:     maxOutputFlag,
				Usage:    "Maximum number of output bytes to keep, 0 for no limit",
				OnlyOnce: true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	spec, err := specFromCommand(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	logger.Debug("running process", "path", spec.Path, "args", spec.Args)

	out, runErr := procrun.Run(ctx, spec)

	return report(cmd.Root().Writer, out, runErr)
}

func specFromCommand(cmd *cli.Command) (procrun.LaunchSpec, error) {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return procrun.LaunchSpec{}, fmt.Errorf("missing PATH, usage: %s %s", cmd.FullName(), cmd.ArgsUsage)
	}

	return procrun.LaunchSpec{
		Path: args[0],
		Args: args[1:],
		Options: &procrun.Options{
			Dir:       cmd.String(dirFlag),
			Env:       cmd.StringMap(envFlag),
			ClearEnv:  cmd.Bool(clearEnvFlag),
			Shell:     cmd.Bool(shellFlag),
			MaxOutput: cmd.Int64(maxOutputFlag),
		},
	}, nil
}

// report writes the captured output and maps the run error to a cli exit error.
func report(w io.Writer, out string, runErr error) error {
	if runErr == nil {
		_, err := io.WriteString(w, out)
		return err //nolint:wrapcheck
	}

	re, ok := procrun.AsRunError(runErr)
	if !ok {
		return cli.Exit(runErr.Error(), 1)
	}

	switch re.Kind {
	case procrun.SpawnFailed:
		return cli.Exit(re.Error(), SpawnFailedExitCode)
	default:
		if _, err := io.WriteString(w, re.Output); err != nil {
			return err //nolint:wrapcheck
		}

		code := re.ExitCode
		if code <= 0 {
			code = 1
		}

		return cli.Exit(fmt.Sprintf("%s exited with code %d", re.Path, re.ExitCode), code)
	}
}
