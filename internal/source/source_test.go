// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDispatchesOnScheme(t *testing.T) {
	ctx := context.Background()

	src, err := New(ctx, "ftp://ftp.example.org/pub/go/godatabase/archive")
	assert.NoError(t, err)
	assert.Equal(t, "ftp", src.Type())

	src, err = New(ctx, "https://mirror.example.org/go/godatabase/archive")
	assert.NoError(t, err)
	assert.Equal(t, "http", src.Type())
}

func TestNewDefaultsToCanonicalSite(t *testing.T) {
	src, err := New(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, "ftp", src.Type())
	assert.Contains(t, src.String(), "geneontology.org")
}

func TestNewRejectsUnknownScheme(t *testing.T) {
	_, err := New(context.Background(), "gopher://example.org/archive")
	assert.ErrorContains(t, err, "unknown source scheme")
}
