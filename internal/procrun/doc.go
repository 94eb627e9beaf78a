// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package procrun runs an external process to completion and returns everything it
// wrote to stdout and stderr as one string.
//
// A run waits for three completion signals: stdout closed, stderr closed and
// process exit. They arrive in any order. The run settles once, after all three,
// either with the captured output (exit code 0) or with a *RunError carrying the
// exit code and the captured output. A process that cannot be started settles
// with a *RunError of kind SpawnFailed and no output.
//
// There is no timeout, retry or signal forwarding. The context passed to Run
// carries the logger; cancelling it does not stop the child.
package procrun
