// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/matt-FFFFFF/spawn/internal/color"
	"github.com/matt-FFFFFF/spawn/internal/procrun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() Results {
	return Results{
		{Label: "greet", Status: StatusSuccess, Output: "hello\n"},
		{
			Label:    "fail",
			Status:   StatusError,
			ExitCode: 3,
			Output:   "out\nerr\n",
			Error:    &procrun.RunError{Kind: procrun.NonZeroExit, Path: "sh", ExitCode: 3, Output: "out\nerr\n"},
		},
		{Label: "later", Status: StatusSkipped, Error: ErrSkippedAfterFailure},
		{Label: "", Status: StatusError, ExitCode: -1, Error: errors.New("line one\nline two")},
	}
}

func TestWriteResults_Default(t *testing.T) {
	orig := color.Enabled()
	defer color.SetEnabled(orig)
	color.SetEnabled(false)

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, "checks", sampleResults(), nil))

	want := "checks\n" +
		"✓ greet\n" +
		"✗ fail (exit code: 3)\n" +
		"  ➜ Error: process exited with non-zero code\n" +
		"  ➜ Output:\n" +
		"     out\n" +
		"     err\n" +
		"~ later\n" +
		"  ➜ Error: skipped: an earlier command failed\n" +
		"✗ [unnamed] (exit code: -1)\n" +
		"  ➜ Error: line one line two\n" +
		"1 succeeded, 2 failed, 1 skipped\n"

	assert.Equal(t, want, buf.String())
}

func TestWriteResults_SuccessDetails(t *testing.T) {
	orig := color.Enabled()
	defer color.SetEnabled(orig)
	color.SetEnabled(false)

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, "", sampleResults()[:1], &OutputOptions{IncludeOutput: true, ShowSuccessDetails: true}))

	assert.Equal(t, "✓ greet\n  ➜ Output:\n     hello\n1 succeeded, 0 failed, 0 skipped\n", buf.String())
}

func TestWriteResults_NoOutput(t *testing.T) {
	orig := color.Enabled()
	defer color.SetEnabled(orig)
	color.SetEnabled(false)

	var buf bytes.Buffer
	require.NoError(t, WriteResults(&buf, "", sampleResults()[1:2], &OutputOptions{}))

	assert.NotContains(t, buf.String(), "Output:")
}

func TestResults_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleResults().Write(&buf))
	assert.Contains(t, buf.String(), "greet")
}

func TestIndent_PreservesBlankLines(t *testing.T) {
	assert.Equal(t, "  a\n\n  b\n", indent("a\n\nb\n", "  "))
}
