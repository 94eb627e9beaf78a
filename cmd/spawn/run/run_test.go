// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := &cli.Command{
		Name:           "spawn",
		Writer:         &out,
		ErrWriter:      &bytes.Buffer{},
		Commands:       []*cli.Command{New()},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(context.Background(), append([]string{"spawn", "run"}, args...))

	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	var ec cli.ExitCoder
	require.True(t, errors.As(err, &ec), "expected an exit coder, got %v", err)

	return ec.ExitCode()
}

func TestRunCmd_Success(t *testing.T) {
	out, err := runCLI(t, "--", "echo", "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
}

func TestRunCmd_NonZeroExit(t *testing.T) {
	out, err := runCLI(t, "--", "sh", "-c", "echo partial; exit 3")
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(t, err))
	assert.Equal(t, "partial\n", out, "output is printed even when the process fails")
	assert.Contains(t, err.Error(), "exited with code 3")
}

func TestRunCmd_SpawnFailed(t *testing.T) {
	out, err := runCLI(t, "--", "definitely-not-a-real-binary-xyz")
	require.Error(t, err)
	assert.Equal(t, SpawnFailedExitCode, exitCode(t, err))
	assert.Empty(t, out)
}

func TestRunCmd_MissingPath(t *testing.T) {
	_, err := runCLI(t)
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(t, err))
	assert.Contains(t, err.Error(), "missing PATH")
}

func TestRunCmd_Flags(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t,
		"--dir", dir,
		"--env", "SPAWN_CLI_TEST=from-flag",
		"--shell",
		"--", "echo", "$SPAWN_CLI_TEST", "&&", "pwd",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "from-flag\n")
	assert.Contains(t, out, dir)
}

func TestRunCmd_ClearEnv(t *testing.T) {
	t.Setenv("SPAWN_CLI_INHERITED", "visible")

	out, err := runCLI(t, "--clear-env", "--env", "ONLY=this", "--", "/usr/bin/env")
	require.NoError(t, err)
	assert.Equal(t, "ONLY=this\n", out)
}

func TestRunCmd_MaxOutput(t *testing.T) {
	out, err := runCLI(t, "--max-output", "4", "--", "echo", "abcdefgh")
	require.NoError(t, err)
	assert.Equal(t, "abcd", out)
}
