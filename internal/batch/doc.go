// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package batch runs a list of processes described in a YAML file.
//
// Commands run one after another by default, stopping at the first failure unless
// continue_on_error is set. With parallel set they all start at once. Every
// command is an independent procrun invocation; results are reported in the
// order the commands are declared.
package batch
