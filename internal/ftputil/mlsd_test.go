// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package ftputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMLSDLine(t *testing.T) {
	line := "unix.owner=14;unix.mode=0444;modify=20130212111247;perm=fle;type=dir;size=0; DATA"

	name, facts, err := ParseMLSDLine(line)
	assert.NoError(t, err)
	assert.Equal(t, "DATA", name)

	m := facts.Map()
	assert.Equal(t, "dir", m["type"])
	assert.Equal(t, "0", m["size"])
	assert.Equal(t, "20130212111247", m["modify"])
	assert.Equal(t, "14", m["unix.owner"])
}

func TestParseMLSDLine_KeywordsLowercased(t *testing.T) {
	name, facts, err := ParseMLSDLine("Type=file;Size=7254; README.TXT")
	assert.NoError(t, err)
	assert.Equal(t, "README.TXT", name)

	v, ok := facts.Get("type")
	assert.True(t, ok)
	assert.Equal(t, "file", v)

	v, ok = facts.Get("SIZE")
	assert.True(t, ok)
	assert.Equal(t, "7254", v)

	_, ok = facts.Get("perm")
	assert.False(t, ok)
}

func TestParseMLSDLine_DuplicateKeywordsKeepOrder(t *testing.T) {
	_, facts, err := ParseMLSDLine("os.unix=slink;os.unix=symlink; link")
	assert.NoError(t, err)
	assert.Len(t, facts, 2)

	// The list form keeps both; the first wins for Get, the last for Map.
	v, _ := facts.Get("os.unix")
	assert.Equal(t, "slink", v)
	assert.Equal(t, "symlink", facts.Map()["os.unix"])
}

func TestParseMLSDLine_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no pathname separator", "type=dir;size=0;"},
		{"unterminated fact", "type=dir;size=0 DATA"},
		{"fact without value", "typedir; DATA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseMLSDLine(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestParseMLSDLine_PathnameWithSpaces(t *testing.T) {
	name, facts, err := ParseMLSDLine("type=file;size=12; file with spaces.txt")
	assert.NoError(t, err)
	assert.Equal(t, "file with spaces.txt", name)
	assert.Equal(t, "12", facts.Map()["size"])
}
