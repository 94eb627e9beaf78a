// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procrun

import (
	"maps"
	"os"
	"runtime"
	"slices"
	"strings"
)

// LaunchSpec describes one process to start.
type LaunchSpec struct {
	Path    string   // Executable name (looked up in PATH) or path.
	Args    []string // Arguments, not including the executable.
	Options *Options // Optional launch configuration.
}

// Options is passed through to process creation without validation.
type Options struct {
	Dir       string            // Working directory. Empty means the current directory.
	Env       map[string]string // Variables set on top of the inherited environment.
	ClearEnv  bool              // Do not inherit the parent's environment.
	Shell     bool              // Run Path and Args joined by spaces through the system shell.
	MaxOutput int64             // Cap on captured bytes. Zero or less means no cap.
}

// Command returns a LaunchSpec for path and args with no options.
func Command(path string, args ...string) LaunchSpec {
	return LaunchSpec{Path: path, Args: args}
}

func (s LaunchSpec) options() Options {
	if s.Options == nil {
		return Options{}
	}

	return *s.Options
}

// commandLine returns the executable to look up and the arguments to pass to it.
func (s LaunchSpec) commandLine() (string, []string) {
	if !s.options().Shell {
		return s.Path, s.Args
	}

	line := strings.Join(slices.Concat([]string{s.Path}, s.Args), " ")

	if runtime.GOOS == "windows" {
		comspec := os.Getenv("ComSpec")
		if comspec == "" {
			comspec = "cmd.exe"
		}

		return comspec, []string{"/d", "/s", "/c", `"` + line + `"`}
	}

	return "/bin/sh", []string{"-c", line}
}

// environ builds the child environment. Entries from Env replace inherited
// entries with the same key.
func (o Options) environ() []string {
	env := []string{}

	if !o.ClearEnv {
		for _, kv := range os.Environ() {
			k, _, _ := strings.Cut(kv, "=")
			if _, overridden := o.Env[k]; overridden {
				continue
			}

			env = append(env, kv)
		}
	}

	for _, k := range slices.Sorted(maps.Keys(o.Env)) {
		env = append(env, k+"="+o.Env[k])
	}

	return env
}
