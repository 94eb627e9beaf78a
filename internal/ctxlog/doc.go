// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger writes through PrettyHandler: one line per record with a
// timestamp, a coloured level, the message and the attributes rendered as JSON.
// The level is read from SPAWN_LOG_LEVEL (DEBUG, INFO, WARN or ERROR) at start-up
// and defaults to INFO.
package ctxlog
