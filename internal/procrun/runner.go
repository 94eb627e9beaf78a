// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procrun

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/spawn/internal/ctxlog"
	"github.com/matt-FFFFFF/spawn/internal/outbuf"
)

const lastLineLogLength = 120

// pathSeparators mark a name as a path rather than a PATH lookup.
var pathSeparators = string([]rune{'/', filepath.Separator})

// Process creation hooks, replaced in tests.
var (
	lookPath     = exec.LookPath
	newPipe      = os.Pipe
	startProcess = os.StartProcess
)

// Runner starts processes and collects their output.
// A Runner holds no per-run state; concurrent calls to Run are independent.
type Runner struct {
	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger makes the Runner log to l instead of the logger carried by the context.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

var defaultRunner = New()

// Run runs spec with the default Runner.
func Run(ctx context.Context, spec LaunchSpec) (string, error) {
	return defaultRunner.Run(ctx, spec)
}

// Run starts the process described by spec, waits for stdout and stderr to close
// and for the process to exit, and returns the merged output.
// On failure the error is a *RunError.
func (r *Runner) Run(ctx context.Context, spec LaunchSpec) (string, error) {
	logger := r.logger
	if logger == nil {
		logger = ctxlog.Logger(ctx)
	}

	logger = logger.With("runID", uuid.NewString(), "path", spec.Path)

	opts := spec.options()
	name, args := spec.commandLine()

	logger.Debug("spawning process", "args", spec.Args, "dir", opts.Dir, "shell", opts.Shell)

	ps, stdout, stderr, err := start(name, args, opts)
	if err != nil {
		logger.Debug("spawn failed", "error", err)

		return "", &RunError{
			Kind:     SpawnFailed,
			Path:     spec.Path,
			ExitCode: -1,
			Err:      err,
		}
	}

	defer stdout.Close() //nolint:errcheck
	defer stderr.Close() //nolint:errcheck

	logger.Debug("process started", "pid", ps.Pid)

	acc := outbuf.New(opts.MaxOutput)
	// Buffered so no listener blocks once the join has settled.
	signals := make(chan completion, numSignals)

	drain := func(kind signalKind, rd io.Reader) {
		_, err := acc.Drain(rd)
		signals <- completion{kind: kind, err: err}
	}

	go drain(stdoutClosed, stdout)
	go drain(stderrClosed, stderr)
	go func() {
		state, err := ps.Wait()

		code := -1
		if state != nil {
			code = state.ExitCode()
		}

		signals <- completion{kind: processExited, exitCode: code, err: err}
	}()

	j := newJoin()
	for !j.isSettled() {
		c := <-signals
		if c.kind != processExited && c.err != nil {
			logger.Warn("error reading process output", "stream", c.kind.String(), "error", c.err)
		}

		logger.Debug("completion signal", "signal", c.kind.String())
		j.signal(c)
	}

	code, waitErr := j.exit()
	out := acc.String()

	logger.Debug("process settled",
		"exitCode", code,
		"bytes", len(out),
		"truncated", acc.Truncated(),
		"lastLine", acc.LastLine(lastLineLogLength),
	)

	if code == 0 && waitErr == nil {
		return out, nil
	}

	return "", &RunError{
		Kind:      NonZeroExit,
		Path:      spec.Path,
		ExitCode:  code,
		Output:    out,
		Truncated: acc.Truncated(),
		Err:       waitErr,
	}
}

// start creates the pipes and the process. On success the caller owns the two
// read ends; everything else has been closed.
func start(name string, args []string, opts Options) (*os.Process, *os.File, *os.File, error) {
	if name == "" {
		return nil, nil, nil, ErrEmptyPath
	}

	path, err := resolve(name, opts)
	if err != nil {
		return nil, nil, nil, err
	}

	// The child changes to opts.Dir before exec, so a relative path would be
	// looked up a second time from there.
	if path, err = filepath.Abs(path); err != nil {
		return nil, nil, nil, err //nolint:wrapcheck
	}

	var closers []io.Closer

	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	stdin, err := os.Open(os.DevNull)
	if err != nil {
		return nil, nil, nil, err //nolint:wrapcheck
	}

	closers = append(closers, stdin)

	rOut, wOut, err := newPipe()
	if err != nil {
		closeAll()
		return nil, nil, nil, err //nolint:wrapcheck
	}

	closers = append(closers, rOut, wOut)

	rErr, wErr, err := newPipe()
	if err != nil {
		closeAll()
		return nil, nil, nil, err //nolint:wrapcheck
	}

	closers = append(closers, rErr, wErr)

	ps, err := startProcess(path, append([]string{name}, args...), &os.ProcAttr{
		Dir:   opts.Dir,
		Env:   opts.environ(),
		Files: []*os.File{stdin, wOut, wErr},
	})
	if err != nil {
		closeAll()
		return nil, nil, nil, err //nolint:wrapcheck
	}

	// The child holds its own copies; the parent's write ends must be closed
	// for the read ends to see EOF.
	_ = stdin.Close()
	_ = wOut.Close()
	_ = wErr.Close()

	return ps, rOut, rErr, nil
}

// resolve finds the executable the way the child would see it.
// A relative path containing a separator is taken relative to opts.Dir.
// A bare name is searched in the PATH set through opts.Env, falling back to
// the parent's PATH when Env does not set one.
func resolve(name string, opts Options) (string, error) {
	if strings.ContainsAny(name, pathSeparators) {
		if opts.Dir != "" && !filepath.IsAbs(name) {
			name = filepath.Join(opts.Dir, name)
		}

		return lookPath(name) //nolint:wrapcheck
	}

	childPath, ok := opts.Env["PATH"]
	if !ok {
		return lookPath(name) //nolint:wrapcheck
	}

	for _, dir := range filepath.SplitList(childPath) {
		if dir == "" || !filepath.IsAbs(dir) {
			continue
		}

		if path, err := lookPath(filepath.Join(dir, name)); err == nil {
			return path, nil
		}
	}

	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// ExitCode returns the process exit code carried by err, 0 for a nil error
// and -1 for anything that is not a *RunError.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	if re, ok := AsRunError(err); ok {
		return re.ExitCode
	}

	return -1
}

// IsSpawnFailure reports whether err is a SpawnFailed *RunError.
func IsSpawnFailure(err error) bool {
	return errors.Is(err, ErrSpawnFailed)
}
