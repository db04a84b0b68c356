// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package temps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFile(t *testing.T) {
	path, cleanup, err := File()
	assert.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "path should not exist until written")

	assert.NoError(t, os.WriteFile(path, []byte("test"), 0o644))
	_, err = os.Stat(path)
	assert.NoError(t, err)

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "cleanup should remove the file")
}

func TestDir(t *testing.T) {
	dir, cleanup, err := Dir()
	assert.NoError(t, err)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())

	inner := filepath.Join(dir, "test")
	assert.NoError(t, os.WriteFile(inner, []byte("test"), 0o644))

	cleanup()
	_, err = os.Stat(inner)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
