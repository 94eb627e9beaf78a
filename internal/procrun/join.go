// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procrun

import "sync"

// signalKind names one of the completion signals a run waits for.
type signalKind int

const (
	stdoutClosed signalKind = iota
	stderrClosed
	processExited

	numSignals = 3
)

func (k signalKind) String() string {
	switch k {
	case stdoutClosed:
		return "stdout closed"
	case stderrClosed:
		return "stderr closed"
	case processExited:
		return "process exited"
	default:
		return "unknown"
	}
}

// completion is emitted once by each listener.
type completion struct {
	kind     signalKind
	exitCode int   // processExited only
	err      error // read error for streams, wait error for the process
}

// join counts down the three completion signals and reports settlement once.
// Repeated signals of a kind already seen, and any signal after settlement, are ignored.
type join struct {
	mu        sync.Mutex
	seen      [numSignals]bool
	remaining int
	settled   bool
	exitCode  int
	waitErr   error
}

func newJoin() *join {
	return &join{remaining: numSignals, exitCode: -1}
}

// signal records c and returns true only for the call that completes the join.
func (j *join) signal(c completion) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.settled || c.kind < 0 || c.kind >= numSignals || j.seen[c.kind] {
		return false
	}

	j.seen[c.kind] = true

	if c.kind == processExited {
		j.exitCode = c.exitCode
		j.waitErr = c.err
	}

	j.remaining--
	if j.remaining > 0 {
		return false
	}

	j.settled = true

	return true
}

// exit returns the recorded exit code and wait error.
func (j *join) exit() (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.exitCode, j.waitErr
}

func (j *join) isSettled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.settled
}
