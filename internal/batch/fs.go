// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package batch

import "github.com/spf13/afero"

// FsFactory returns the filesystem batch files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}
