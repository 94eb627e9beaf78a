// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import (
	"errors"
	"fmt"
	"maps"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/spawn/internal/procrun"
	"github.com/spf13/afero"
)

var (
	// ErrReadFile is returned when the batch file cannot be read.
	ErrReadFile = errors.New("failed to read batch file")
	// ErrInvalidYaml is returned when the batch file is not valid YAML for a Definition.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrNoCommands is returned when the batch file lists no commands.
	ErrNoCommands = errors.New("no commands specified")
	// ErrMissingPath is returned for a command without a path.
	ErrMissingPath = errors.New("command has no path")
	// ErrDuplicateName is returned when two commands share a name.
	ErrDuplicateName = errors.New("duplicate command name")
)

// Definition is the root of a batch file.
type Definition struct {
	Name            string              `yaml:"name"`
	Description     string              `yaml:"description,omitempty"`
	Parallel        bool                `yaml:"parallel,omitempty"`
	ContinueOnError bool                `yaml:"continue_on_error,omitempty"`
	Env             map[string]string   `yaml:"env,omitempty"` // Applied to every command; command env wins.
	Commands        []CommandDefinition `yaml:"commands"`
}

// CommandDefinition describes one process in a batch.
type CommandDefinition struct {
	Name      string            `yaml:"name"`
	Path      string            `yaml:"path"`
	Args      []string          `yaml:"args,omitempty"`
	Dir       string            `yaml:"dir,omitempty"`
	Env       map[string]string `yaml:"env,omitempty"`
	ClearEnv  bool              `yaml:"clear_env,omitempty"`
	Shell     bool              `yaml:"shell,omitempty"`
	MaxOutput int64             `yaml:"max_output,omitempty"`
}

// Label returns the name, falling back to the path.
func (c CommandDefinition) Label() string {
	if c.Name != "" {
		return c.Name
	}

	return c.Path
}

// LaunchSpec converts the definition, layering its env over inherited.
func (c CommandDefinition) LaunchSpec(inherited map[string]string) procrun.LaunchSpec {
	env := maps.Clone(inherited)
	if env == nil {
		env = make(map[string]string, len(c.Env))
	}

	maps.Copy(env, c.Env)

	return procrun.LaunchSpec{
		Path: c.Path,
		Args: c.Args,
		Options: &procrun.Options{
			Dir:       c.Dir,
			Env:       env,
			ClearEnv:  c.ClearEnv,
			Shell:     c.Shell,
			MaxOutput: c.MaxOutput,
		},
	}
}

// Load reads and validates the batch file at path from FsFactory().
func Load(path string) (*Definition, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}

	return Parse(data)
}

// Parse decodes and validates a batch file. Unknown fields are rejected.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.UnmarshalWithOptions(data, &def, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYaml, err) //nolint:errorlint
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

// Validate reports every problem found, not just the first.
func (d *Definition) Validate() error {
	if len(d.Commands) == 0 {
		return ErrNoCommands
	}

	var result *multierror.Error

	seen := make(map[string]int, len(d.Commands))

	for i, c := range d.Commands {
		if c.Path == "" {
			result = multierror.Append(result, fmt.Errorf("command %d (%q): %w", i, c.Name, ErrMissingPath))
		}

		if c.Name == "" {
			continue
		}

		if j, ok := seen[c.Name]; ok {
			result = multierror.Append(result, fmt.Errorf("command %d and %d: %w: %q", j, i, ErrDuplicateName, c.Name))
			continue
		}

		seen[c.Name] = i
	}

	return result.ErrorOrNil()
}
