// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"errors"
	"io"
	"slices"
)

var (
	// ErrSkippedAfterFailure marks commands not run because an earlier command failed.
	ErrSkippedAfterFailure = errors.New("skipped: an earlier command failed")
	// ErrSkippedCancelled marks commands not run because the context was cancelled.
	ErrSkippedCancelled = errors.New("skipped: cancelled")
)

// Status is the outcome of one command.
type Status int

const (
	StatusUnknown Status = iota
	StatusSuccess
	StatusError
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result is the outcome of one command in a batch.
type Result struct {
	Label    string
	ExitCode int
	Output   string // Captured stdout and stderr, merged.
	Error    error
	Status   Status
}

// Results are kept in declaration order.
type Results []*Result

// HasError reports whether any command failed. Skipped commands do not count.
func (r Results) HasError() bool {
	return slices.ContainsFunc(r, func(res *Result) bool {
		return res.Status == StatusError
	})
}

// Count returns how many results have status s.
func (r Results) Count(s Status) int {
	n := 0

	for _, res := range r {
		if res.Status == s {
			n++
		}
	}

	return n
}

// Write renders the results to w with default options.
func (r Results) Write(w io.Writer) error {
	return WriteResults(w, "", r, nil)
}
