// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

// tfdgo is the main package for the tfd command line tool. It wires the
// CLI, delegates to internal packages, and serves as the entry point.
package main
