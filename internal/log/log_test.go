// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestFileHandler_WritesAndCloses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tfd.log")
	h := NewFileHandler(path)

	err := h.HandleLog(&log.Entry{Level: log.InfoLevel, Message: "first"})
	assert.NoError(t, err)
	err = h.HandleLog(&log.Entry{Level: log.WarnLevel, Message: "second"})
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], " I first")
	assert.Contains(t, lines[1], " W second")
}

func TestFileHandler_AppendsAcrossHandlers(t *testing.T) {
	// Two handlers on the same path stand in for two processes sharing a log.
	path := filepath.Join(t.TempDir(), "shared.log")
	a := NewFileHandler(path)
	b := NewFileHandler(path)

	assert.NoError(t, a.HandleLog(&log.Entry{Level: log.InfoLevel, Message: "from a"}))
	assert.NoError(t, b.HandleLog(&log.Entry{Level: log.InfoLevel, Message: "from b"}))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "from a")
	assert.Contains(t, string(data), "from b")
}
