// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package entrypoint runs a program's main step followed by its cleanup and turns
// the outcome into a process exit status.
package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/matt-FFFFFF/spawn/internal/ctxlog"
)

// ErrPanic wraps a value recovered from a panicking step.
var ErrPanic = errors.New("panic in main")

// osExit is replaced in tests.
var osExit = os.Exit

// Step is a unit of program work producing a T.
type Step[T any] func(context.Context) (T, error)

// Main runs main and then cleanup, whether or not main failed or panicked.
// A failure is logged with its stack (for panics) and mapped to a non-zero status
// by Status.
func Main[T any](ctx context.Context, main Step[T], cleanup func(context.Context)) (T, int) {
	v, err := call(ctx, main)

	if cleanup != nil {
		cleanup(ctx)
	}

	if err == nil {
		return v, 0
	}

	ctxlog.Error(ctx, "caught error running main", "error", err)

	return v, Status(err)
}

func call[T any](ctx context.Context, step Step[T]) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.Debug(ctx, "recovered panic", "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return step(ctx)
}

// Status maps err to an exit status: 0 for nil, the code of the first error in
// the chain that reports a non-zero ExitCode, and 1 otherwise.
func Status(err error) int {
	if err == nil {
		return 0
	}

	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) && coder.ExitCode() != 0 {
		return coder.ExitCode()
	}

	return 1
}

// Exit terminates the process with status.
func Exit(status int) {
	osExit(status)
}
