// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package entrypoint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/matt-FFFFFF/spawn/internal/ctxlog"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func logCtx(buf *bytes.Buffer) context.Context {
	return ctxlog.New(context.Background(), slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

func TestMain_Success(t *testing.T) {
	var buf bytes.Buffer

	cleaned := false

	v, status := Main(logCtx(&buf), func(context.Context) (string, error) {
		return "done", nil
	}, func(context.Context) {
		cleaned = true
	})

	assert.Equal(t, "done", v)
	assert.Equal(t, 0, status)
	assert.True(t, cleaned)
	assert.NotContains(t, buf.String(), "caught error")
}

func TestMain_Failure(t *testing.T) {
	var buf bytes.Buffer

	cleaned := false
	boom := errors.New("Failing.")

	_, status := Main(logCtx(&buf), func(context.Context) (int, error) {
		return 0, boom
	}, func(context.Context) {
		cleaned = true
	})

	assert.Equal(t, 1, status)
	assert.True(t, cleaned, "cleanup runs on the failure path too")
	assert.Contains(t, buf.String(), "caught error running main")
	assert.Contains(t, buf.String(), "Failing.")
}

func TestMain_Panic(t *testing.T) {
	var buf bytes.Buffer

	cleaned := false

	_, status := Main(logCtx(&buf), func(context.Context) (struct{}, error) {
		panic("thrown in callback")
	}, func(context.Context) {
		cleaned = true
	})

	assert.Equal(t, 1, status)
	assert.True(t, cleaned)
	assert.Contains(t, buf.String(), "thrown in callback")
	assert.Contains(t, buf.String(), "stack=")
}

func TestMain_NilCleanup(t *testing.T) {
	_, status := Main(context.Background(), func(context.Context) (int, error) {
		return 1, nil
	}, nil)
	assert.Equal(t, 0, status)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain error", err: errors.New("x"), want: 1},
		{name: "exit coder", err: cli.Exit("x", 3), want: 3},
		{name: "wrapped exit coder", err: fmt.Errorf("ctx: %w", cli.Exit("x", 127)), want: 127},
		{name: "zero exit coder", err: cli.Exit("x", 0), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestExit(t *testing.T) {
	var got int

	stubs := gostub.Stub(&osExit, func(code int) { got = code })
	defer stubs.Reset()

	Exit(42)
	require.Equal(t, 42, got)
}
