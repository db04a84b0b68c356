// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package httpsrc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/todddeluca/tfdgo/internal/release"
)

func TestFetch(t *testing.T) {
	t.Setenv("TFD_CACHE", "0")

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("archive-bytes"))
	}))
	defer ts.Close()

	src, err := New(context.Background(), ts.URL+"/go/godatabase/archive")
	assert.NoError(t, err)

	data, err := src.Fetch(context.Background(), release.Release{Date: "2012-06-01"})
	assert.NoError(t, err)
	assert.Equal(t, []byte("archive-bytes"), data)
	assert.Equal(t, "/go/godatabase/archive/full/2012-06-01/go_201206-termdb-tables.tar.gz", gotPath)
}

func TestFetchNotFound(t *testing.T) {
	t.Setenv("TFD_CACHE", "0")

	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	src, err := New(context.Background(), ts.URL+"/archive")
	assert.NoError(t, err)

	_, err = src.Fetch(context.Background(), release.Release{Date: "2012-06-01"})
	assert.ErrorContains(t, err, "404")
}

func TestReleasesGuessesFromCalendar(t *testing.T) {
	src, err := New(context.Background(), "https://mirror.example.org/archive")
	assert.NoError(t, err)

	releases, err := src.Releases(context.Background())
	assert.NoError(t, err)
	assert.Len(t, releases, 2)
	for _, rel := range releases {
		assert.True(t, strings.HasSuffix(rel.Date, "-01"), rel.Date)
	}
	assert.Greater(t, releases[0].Date, releases[1].Date)
}
