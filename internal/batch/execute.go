// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/spawn/internal/ctxlog"
	"github.com/matt-FFFFFF/spawn/internal/procrun"
)

// Runner runs a single process. *procrun.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, spec procrun.LaunchSpec) (string, error)
}

// Execute runs every command in def with runner.
// The returned error aggregates the failures; it is nil when every command succeeded.
func Execute(ctx context.Context, def *Definition, runner Runner) (Results, error) {
	logger := ctxlog.Logger(ctx).With("batch", def.Name, "parallel", def.Parallel)
	logger.Debug("executing batch", "commands", len(def.Commands))

	var results Results
	if def.Parallel {
		results = executeParallel(ctx, def, runner)
	} else {
		results = executeSerial(ctx, def, runner)
	}

	var merr *multierror.Error

	for _, res := range results {
		if res.Status == StatusError {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", res.Label, res.Error))
		}
	}

	logger.Debug("batch finished",
		"succeeded", results.Count(StatusSuccess),
		"failed", results.Count(StatusError),
		"skipped", results.Count(StatusSkipped),
	)

	return results, merr.ErrorOrNil()
}

func executeSerial(ctx context.Context, def *Definition, runner Runner) Results {
	results := make(Results, len(def.Commands))
	failed := false

	for i, c := range def.Commands {
		switch {
		case ctx.Err() != nil:
			results[i] = skipped(c, errors.Join(ErrSkippedCancelled, ctx.Err()))
		case failed && !def.ContinueOnError:
			results[i] = skipped(c, ErrSkippedAfterFailure)
		default:
			results[i] = runOne(ctx, c, def.Env, runner)
			failed = failed || results[i].Status == StatusError
		}
	}

	return results
}

func executeParallel(ctx context.Context, def *Definition, runner Runner) Results {
	results := make(Results, len(def.Commands))

	if ctx.Err() != nil {
		for i, c := range def.Commands {
			results[i] = skipped(c, errors.Join(ErrSkippedCancelled, ctx.Err()))
		}

		return results
	}

	wg := &sync.WaitGroup{}

	for i, c := range def.Commands {
		wg.Add(1)

		go func(i int, c CommandDefinition) {
			defer wg.Done()

			results[i] = runOne(ctx, c, def.Env, runner)
		}(i, c)
	}

	wg.Wait()

	return results
}

func runOne(ctx context.Context, c CommandDefinition, env map[string]string, runner Runner) *Result {
	res := &Result{Label: c.Label()}

	out, err := runner.Run(ctx, c.LaunchSpec(env))
	if err == nil {
		res.Output = out
		res.Status = StatusSuccess

		return res
	}

	res.Error = err
	res.Status = StatusError
	res.ExitCode = procrun.ExitCode(err)

	if re, ok := procrun.AsRunError(err); ok {
		res.Output = re.Output
	}

	ctxlog.Debug(ctx, "command failed", "label", res.Label, "exitCode", res.ExitCode)

	return res
}

func skipped(c CommandDefinition, reason error) *Result {
	return &Result{
		Label:  c.Label(),
		Error:  reason,
		Status: StatusSkipped,
	}
}
