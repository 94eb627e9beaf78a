// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for console output.
// Colour is decided once at start-up: NO_COLOR disables it, FORCE_COLOR enables it,
// otherwise it is enabled only when stdout is a terminal.
package color
