// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package version contains the "spawn version" command.
package version

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/spawn"
	"github.com/urfave/cli/v3"
)

// VersionCmd prints the build version.
var VersionCmd = &cli.Command{
	Name:  "version",
	Usage: "Print the version",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintln(cmd.Root().Writer, String())
		return err //nolint:wrapcheck
	},
}

// String returns the version and commit.
func String() string {
	return fmt.Sprintf("%s (commit: %s)", spawn.Version, spawn.Commit)
}
