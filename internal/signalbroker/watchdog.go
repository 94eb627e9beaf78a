// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/spawn/internal/ctxlog"
)

// Watch reads signals from sigCh until it is closed or ctx is done.
// The second signal of the same kind stops delivery, closes sigCh and calls cancel.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	logger := ctxlog.Logger(ctx)
	seen := make(map[os.Signal]struct{})

	for {
		var (
			sig os.Signal
			ok  bool
		)

		select {
		case <-ctx.Done():
			return
		case sig, ok = <-sigCh:
			if !ok {
				return
			}
		}

		if _, dup := seen[sig]; dup {
			logger.Warn("second signal received, cancelling", "signal", sig.String())
			Stop(sigCh)
			close(sigCh)
			cancel()

			return
		}

		logger.Info("signal received, send again to cancel", "signal", sig.String())

		seen[sig] = struct{}{}
	}
}
