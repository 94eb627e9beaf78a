// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker listens for OS signals on behalf of the spawn CLI.
// The default set is SIGINT, SIGTERM and SIGQUIT.
//
// Signals are not forwarded to child processes: a running process finishes and
// its output is still collected. The first signal of a kind is logged, the second
// one cancels the root context so no further batch commands are started.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/spawn/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}

// New creates a channel that receives the OS signals that should terminate the CLI.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "registering signal handler", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Listen registers for sigs and watches them until ctx is done or stop is called.
// The second signal of a kind calls cancel. stop unregisters the handler and
// waits for the watcher to return.
func Listen(ctx context.Context, cancel context.CancelFunc, sigs ...os.Signal) (stop func()) {
	ctx = ctxlog.With(ctx, "component", "signalbroker")
	ch := New(ctx, sigs...)

	watchCtx, stopWatch := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(watchCtx, ch, cancel)
	}()

	return func() {
		Stop(ch)
		stopWatch()
		<-done
	}
}

// Stop stops delivery of signals to ch. It is safe to call more than once.
func Stop(ch chan os.Signal) {
	signal.Stop(ch)
}
