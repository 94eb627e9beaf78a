// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/matt-FFFFFF/spawn/internal/batch"
	"github.com/matt-FFFFFF/spawn/internal/color"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const failingBatch = `
name: checks
commands:
  - name: first
    path: echo
    args: [one]
  - name: broken
    path: sh
    args: ["-c", "echo oops; exit 2"]
  - name: last
    path: echo
    args: [three]
`

func withFile(t *testing.T, name, content string) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))

	stubs := gostub.Stub(&batch.FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)

	was := color.Enabled()
	color.SetEnabled(false)
	t.Cleanup(func() { color.SetEnabled(was) })
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

	err := root.Run(context.Background(), append([]string{"spawn", "batch"}, args...))

	return out.String(), err
}

func TestBatchCmd_StopsAfterFailure(t *testing.T) {
	withFile(t, "/checks.yaml", failingBatch)

	out, err := runCLI(t, "-f", "/checks.yaml")
	require.Error(t, err)

	var ec cli.ExitCoder
	require.True(t, errors.As(err, &ec))
	assert.Equal(t, 1, ec.ExitCode())

	assert.Contains(t, out, "checks\n")
	assert.Contains(t, out, "✓ first")
	assert.Contains(t, out, "✗ broken (exit code: 2)")
	assert.Contains(t, out, "oops")
	assert.Contains(t, out, "~ last")
	assert.Contains(t, out, "1 succeeded, 1 failed, 1 skipped\n")
}

func TestBatchCmd_ContinueOnErrorFlag(t *testing.T) {
	withFile(t, "/checks.yaml", failingBatch)

	out, err := runCLI(t, "-f", "/checks.yaml", "--continue-on-error", "--no-output")
	require.Error(t, err)
	assert.Contains(t, out, "2 succeeded, 1 failed, 0 skipped\n")
	assert.NotContains(t, out, "oops")
}

func TestBatchCmd_ParallelSuccess(t *testing.T) {
	withFile(t, "/ok.yaml", `
name: ok
commands:
  - {name: a, path: echo, args: [alpha]}
  - {name: b, path: echo, args: [beta]}
`)

	out, err := runCLI(t, "-f", "/ok.yaml", "--parallel", "--output-success")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
	assert.Less(t, bytes.Index([]byte(out), []byte("✓ a")), bytes.Index([]byte(out), []byte("✓ b")))
	assert.Contains(t, out, "2 succeeded, 0 failed, 0 skipped\n")
}

func TestBatchCmd_LoadError(t *testing.T) {
	withFile(t, "/bad.yaml", "name: bad\ncommands: []\n")

	_, err := runCLI(t, "-f", "/bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load batch file /bad.yaml")
}

func TestBatchCmd_FileRequired(t *testing.T) {
	_, err := runCLI(t)
	require.Error(t, err)
}
