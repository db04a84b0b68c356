// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for tfd. It wires flags,
// validators, and actions for subcommands.
package command
