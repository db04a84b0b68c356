// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package release

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGuess(t *testing.T) {
	tests := []struct {
		today time.Time
		want  string
	}{
		{date(2012, time.January, 15), "2011-12-01"},
		{date(2012, time.July, 3), "2012-06-01"},
		{date(2012, time.December, 31), "2012-11-01"},
		{date(2013, time.February, 1), "2013-01-01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Guess(tt.today))
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		spec    string
		want    string
		wantErr bool
	}{
		{"2012-06-01", "2012-06-01", false},
		{"201206", "2012-06-01", false},
		{"2012-13-01", "", true},
		{"201213", "", true},
		{"2012", "", true},
		{"", "", true},
		{"not-a-date", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Normalize(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "go_201206-termdb-tables.tar.gz", ArchiveBasename("2012-06-01"))

	assert.Equal(t,
		"ftp://ftp.geneontology.org/pub/go/godatabase/archive/full/2012-06-01/go_201206-termdb-tables.tar.gz",
		ArchiveURL(DefaultSource, "2012-06-01"))

	// Trailing slash on the base must not double up.
	assert.Equal(t,
		"https://mirror.example.com/archive/full/2012-06-01/go_201206-termdb-tables.tar.gz",
		ArchiveURL("https://mirror.example.com/archive/", "2012-06-01"))

	assert.Equal(t, "data/geneontology/go_201206-termdb-tables.tar.gz",
		ArchivePath("data", "2012-06-01"))

	dir, err := TablesDir("data", "2012-06-01")
	assert.NoError(t, err)
	assert.Equal(t, "data/geneontology/go_201206-termdb-tables", dir)

	tf, err := TermFile("data", "2012-06-01")
	assert.NoError(t, err)
	assert.Equal(t, "data/geneontology/go_201206-termdb-tables/term.txt", tf)
}

func TestFind(t *testing.T) {
	candidates := []Release{
		{Date: "2012-04-01"},
		{Date: "2012-06-01"},
		{Date: "2012-05-01"},
		{Date: "2011-12-01"},
	}

	tests := []struct {
		name    string
		specs   []string
		want    []string
		wantErr bool
	}{
		{name: "no specs means latest", specs: nil, want: []string{"2012-06-01"}},
		{name: "empty spec", specs: []string{""}, want: []string{"2012-06-01"}},
		{name: "latest", specs: []string{"latest"}, want: []string{"2012-06-01"}},
		{name: "latest~1", specs: []string{"latest~1"}, want: []string{"2012-05-01"}},
		{name: "latest~3", specs: []string{"latest~3"}, want: []string{"2011-12-01"}},
		{name: "latest~9 out of range", specs: []string{"latest~9"}, wantErr: true},
		{name: "exact date", specs: []string{"2012-05-01"}, want: []string{"2012-05-01"}},
		{name: "compact date", specs: []string{"201204"}, want: []string{"2012-04-01"}},
		{name: "missing date", specs: []string{"2010-01-01"}, wantErr: true},
		{name: "prefix picks newest", specs: []string{"2012"}, want: []string{"2012-06-01"}},
		{name: "prefix no match", specs: []string{"2009"}, wantErr: true},
		{
			name:  "two specs for a diff",
			specs: []string{"latest~1", "latest"},
			want:  []string{"2012-05-01", "2012-06-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(candidates, tt.specs...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			dates := make([]string, len(got))
			for i, r := range got {
				dates[i] = r.Date
			}
			assert.Equal(t, tt.want, dates)
		})
	}
}

func TestFind_NoCandidates(t *testing.T) {
	_, err := Find(nil, "latest")
	assert.Error(t, err)
}
