// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

// Package temps hands out temporary file paths and directories together
// with a cleanup function the caller defers.
package temps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// File reserves a path in the temp dir without creating the file, so the
// caller can hand it to code that insists on creating its own output.
// Cleanup removes the file if it came to exist.
func File() (string, func(), error) {
	dir, err := os.MkdirTemp("", "tfd-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	path := filepath.Join(dir, uuid.NewString())
	cleanup := func() {
		_ = os.RemoveAll(dir)
	}
	return path, cleanup, nil
}

// Dir creates a temporary directory. Cleanup removes it and everything in it.
func Dir() (string, func(), error) {
	dir, err := os.MkdirTemp("", "tfd-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	cleanup := func() {
		_ = os.RemoveAll(dir)
	}
	return dir, cleanup, nil
}
