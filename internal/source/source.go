// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package source

import (
	"context"
	"fmt"
	"net/url"

	"github.com/apex/log"
	"github.com/todddeluca/tfdgo/internal/config"
	"github.com/todddeluca/tfdgo/internal/release"
	"github.com/todddeluca/tfdgo/internal/source/ftpsrc"
	"github.com/todddeluca/tfdgo/internal/source/httpsrc"
	"github.com/todddeluca/tfdgo/internal/source/s3src"
)

// Source is a remote archive site that can enumerate the releases it
// carries and hand back the termdb-tables archive for one of them.
type Source interface {
	// Releases() returns every release the source knows about, newest first.
	Releases(ctx context.Context) ([]release.Release, error)
	// Fetch() returns the raw termdb-tables archive for the release.
	Fetch(ctx context.Context, rel release.Release) ([]byte, error)
	String() string
	Type() string
}

// New builds the Source for rawurl, switching on the URL scheme. An empty
// rawurl falls back to the canonical archive site. Credentials and region
// come from the source.* keys of the config file.
func New(ctx context.Context, rawurl string) (Source, error) {
	if rawurl == "" {
		rawurl = release.DefaultSource
	}

	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("bad source url %s: %w", rawurl, err)
	}
	log.Debugf("New: scheme=%s host=%s path=%s", u.Scheme, u.Host, u.Path)

	switch u.Scheme {
	case "ftp":
		user, _ := config.GetString("source.user", "")
		pass, _ := config.GetString("source.password", "")
		return ftpsrc.New(ctx, rawurl, ftpsrc.WithCredentials(user, pass))
	case "http", "https":
		return httpsrc.New(ctx, rawurl)
	case "s3":
		region, _ := config.GetString("source.region", "")
		return s3src.New(ctx, rawurl, s3src.WithRegion(region))
	}

	return nil, fmt.Errorf("unknown source scheme %s", u.Scheme)
}
