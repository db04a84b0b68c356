// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package command

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermDBPath(t *testing.T) {
	p := TermDBPath("/data", "2012-06-01")
	assert.Equal(t, filepath.Join("/data", "geneontology", "go_201206-termdb.sqlite"), p)
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(v))
	}
	assert.Error(t, OutputValidator("csv"))
}

func TestJammedFlagValidator(t *testing.T) {
	assert.NoError(t, JammedFlagValidator("/data"))
	assert.Error(t, JammedFlagValidator("--filter"))
}

func TestGuessedRelease(t *testing.T) {
	date := guessedRelease()
	assert.Len(t, date, 10)
	assert.True(t, strings.HasSuffix(date, "-01"), date)
}

func TestGetMetaMissing(t *testing.T) {
	m := GetMeta(nil)
	assert.Empty(t, m.Args)
	assert.Empty(t, m.StartingDir)
}
