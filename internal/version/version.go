// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

// Package version holds the tfd version string.
package version

// Version is set at build time via -ldflags for release builds.
var Version = "0.3.0-dev"
