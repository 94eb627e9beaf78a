// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procrun

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSpawnFailed matches any *RunError of kind SpawnFailed.
	ErrSpawnFailed = errors.New("could not start process")
	// ErrNonZeroExit matches any *RunError of kind NonZeroExit.
	ErrNonZeroExit = errors.New("process exited with non-zero code")
	// ErrEmptyPath is the cause of a SpawnFailed error when LaunchSpec.Path is empty.
	ErrEmptyPath = errors.New("empty executable path")
)

// Kind identifies why a run failed.
type Kind int

const (
	// SpawnFailed means the process was never started.
	SpawnFailed Kind = iota + 1
	// NonZeroExit means the process ran and exited with a code other than 0.
	NonZeroExit
)

func (k Kind) String() string {
	switch k {
	case SpawnFailed:
		return "SpawnFailed"
	case NonZeroExit:
		return "NonZeroExit"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RunError is the error returned by Run.
type RunError struct {
	Kind Kind
	// Path is the executable as given in the LaunchSpec.
	Path string
	// ExitCode is -1 for SpawnFailed and for processes terminated by a signal.
	ExitCode int
	// Output holds everything captured from stdout and stderr. Empty for SpawnFailed.
	Output string
	// Truncated is set when Output was cut at Options.MaxOutput.
	Truncated bool
	// Err is the underlying OS error, if any.
	Err error
}

func (e *RunError) Error() string {
	sb := strings.Builder{}
	sb.WriteString(e.Path)
	sb.WriteString(": ")

	switch e.Kind {
	case SpawnFailed:
		sb.WriteString(ErrSpawnFailed.Error())

		if e.Err != nil {
			sb.WriteString(": ")
			sb.WriteString(e.Err.Error())
		}
	default:
		fmt.Fprintf(&sb, "Failed with exit code: %d\nOutput:\n%s", e.ExitCode, e.Output)

		if e.Err != nil {
			sb.WriteString("\n")
			sb.WriteString(e.Err.Error())
		}
	}

	return sb.String()
}

// Unwrap exposes the kind sentinel and the OS error to errors.Is and errors.As.
func (e *RunError) Unwrap() []error {
	errs := make([]error, 0, 2) //nolint:mnd

	switch e.Kind {
	case SpawnFailed:
		errs = append(errs, ErrSpawnFailed)
	case NonZeroExit:
		errs = append(errs, ErrNonZeroExit)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// AsRunError is a shorthand for errors.As with a *RunError target.
func AsRunError(err error) (*RunError, bool) {
	var re *RunError
	if errors.As(err, &re) {
		return re, true
	}

	return nil, false
}
