// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

// Package output provides sorting, filtering, and emission utilities used by
// commands to present results in various formats.
package output
