// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// An https source guesses its releases from the calendar, so these run
// without touching the network.
func TestReleasesCommandLimit(t *testing.T) {
	t.Setenv("TFD_CACHE", "0")
	t.Setenv("TFD_DIR", t.TempDir())

	ctx := context.Background()
	for _, limit := range []string{"2", "0", "-1"} {
		app, err := InitApp(ctx, []string{"tfd", "releases"})
		assert.NoError(t, err)

		err = app.Run(ctx, []string{"tfd", "releases",
			"--source", "https://mirror.example.org/archive",
			"--limit=" + limit,
			"--output", "raw"})
		assert.NoError(t, err, "limit %s", limit)
	}
}

func TestReleasesCommandRejectsBadFilter(t *testing.T) {
	t.Setenv("TFD_CACHE", "0")
	t.Setenv("TFD_DIR", t.TempDir())

	ctx := context.Background()
	app, err := InitApp(ctx, []string{"tfd", "releases"})
	assert.NoError(t, err)

	err = app.Run(ctx, []string{"tfd", "releases",
		"--source", "https://mirror.example.org/archive",
		"--filter", "nooperand"})
	assert.ErrorContains(t, err, "invalid filter")
}
