// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMangleArgumentsHelpShortCircuit(t *testing.T) {
	args := mangleArguments([]string{"tfd", "fetch", "2012-06-01", "--help"})
	assert.Equal(t, []string{"tfd", "fetch", "--help"}, args)
}

func TestMangleArgumentsSetExpansion(t *testing.T) {
	t.Setenv("TFD_CFG", "testdata/tfd.yaml")

	args := mangleArguments([]string{"tfd", "fetch", "@mirror", "2012-06-01"})
	assert.Equal(t,
		[]string{"tfd", "fetch", "--source", "https://mirror.example.org/archive", "2012-06-01"},
		args)
}

func TestMangleArgumentsDefaultSet(t *testing.T) {
	t.Setenv("TFD_CFG", "testdata/tfd.yaml")

	args := mangleArguments([]string{"tfd", "fetch", "2012-06-01"})
	assert.Equal(t,
		[]string{"tfd", "fetch", "--titles", "2012-06-01"},
		args)
}
