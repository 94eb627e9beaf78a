// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matt-FFFFFF/spawn/internal/color"
	"github.com/matt-FFFFFF/spawn/internal/procrun"
)

const outputIndent = "     "

// OutputOptions controls what WriteResults includes.
type OutputOptions struct {
	IncludeOutput      bool // Print captured output for failed commands.
	ShowSuccessDetails bool // Also print captured output for successful commands.
}

// DefaultOutputOptions prints output for failures only.
func DefaultOutputOptions() *OutputOptions {
	return &OutputOptions{
		IncludeOutput: true,
	}
}

// WriteResults writes a report for results, headed by title when it is not empty.
func WriteResults(w io.Writer, title string, results Results, options *OutputOptions) error {
	if options == nil {
		options = DefaultOutputOptions()
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, color.Colorize(title, color.Bold)); err != nil {
			return err //nolint:wrapcheck
		}
	}

	for _, r := range results {
		if err := writeResult(w, r, options); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d succeeded, %d failed, %d skipped\n",
		results.Count(StatusSuccess), results.Count(StatusError), results.Count(StatusSkipped))

	return err //nolint:wrapcheck
}

func writeResult(w io.Writer, r *Result, options *OutputOptions) error {
	var marker, labelStyle string

	switch r.Status {
	case StatusSuccess:
		marker = color.Colorize("✓", color.FgGreen)
		labelStyle = color.ControlString(color.Bold, color.FgGreen)
	case StatusError:
		marker = color.Colorize("✗", color.FgRed)
		labelStyle = color.ControlString(color.Bold, color.FgRed)
	case StatusSkipped:
		marker = color.Colorize("~", color.FgYellow)
		labelStyle = color.ControlString(color.Bold, color.FgYellow)
	default:
		marker = color.Colorize("?", color.FgWhite)
	}

	label := r.Label
	if label == "" {
		label = "[unnamed]"
	}

	sb := strings.Builder{}
	fmt.Fprintf(&sb, "%s %s%s%s", marker, labelStyle, label, color.ControlString(color.Reset))

	if r.ExitCode != 0 {
		fmt.Fprintf(&sb, " (exit code: %d)", r.ExitCode)
	}

	sb.WriteString("\n")

	if r.Error != nil {
		fmt.Fprintf(&sb, "  %s %s\n", color.Colorize("➜ Error:", color.FgRed), errorSummary(r.Error))
	}

	showOutput := options.IncludeOutput &&
		(r.Status == StatusError || options.ShowSuccessDetails) &&
		r.Output != ""

	if showOutput {
		sb.WriteString("  ➜ Output:\n")
		sb.WriteString(indent(r.Output, outputIndent))
	}

	_, err := io.WriteString(w, sb.String())

	return err //nolint:wrapcheck
}

// errorSummary keeps the report to one line; the output is printed separately.
func errorSummary(err error) string {
	if re, ok := procrun.AsRunError(err); ok && re.Kind == procrun.NonZeroExit {
		return procrun.ErrNonZeroExit.Error()
	}

	if errors.Is(err, ErrSkippedAfterFailure) {
		return ErrSkippedAfterFailure.Error()
	}

	return strings.ReplaceAll(err.Error(), "\n", " ")
}

func indent(output, prefix string) string {
	sb := strings.Builder{}

	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		if line != "" {
			sb.WriteString(prefix)
			sb.WriteString(line)
		}

		sb.WriteString("\n")
	}

	return sb.String()
}
