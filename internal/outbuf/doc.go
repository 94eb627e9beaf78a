// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package outbuf provides Accumulator, a single output buffer that several readers
// can be drained into at the same time. It is used to merge a child process's
// stdout and stderr in arrival order while remembering the last complete line
// for log summaries.
package outbuf
