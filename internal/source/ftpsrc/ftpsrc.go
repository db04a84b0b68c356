// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package ftpsrc

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/apex/log"
	"github.com/todddeluca/tfdgo/internal/cacheutil"
	"github.com/todddeluca/tfdgo/internal/ftputil"
	"github.com/todddeluca/tfdgo/internal/release"
	"github.com/todddeluca/tfdgo/internal/util"
)

// SourceFTP serves releases from an FTP archive site laid out the way the
// Gene Ontology archive is, with one directory per release under full/.
type SourceFTP struct {
	RawURL   string
	Base     *url.URL
	Username string
	Password string
}

type Option func(*SourceFTP)

// WithCredentials sets the login. Empty credentials mean anonymous.
func WithCredentials(username, password string) Option {
	return func(src *SourceFTP) {
		src.Username = username
		src.Password = password
	}
}

func New(_ context.Context, rawurl string, opts ...Option) (*SourceFTP, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("bad ftp source url %s: %w", rawurl, err)
	}

	src := &SourceFTP{RawURL: rawurl, Base: u}
	for _, opt := range opts {
		opt(src)
	}

	return src, nil
}

// Releases lists the full/ directory of the archive. Every subdirectory
// with a parseable ISO date name is a release.
func (src *SourceFTP) Releases(ctx context.Context) ([]release.Release, error) {
	conn, err := ftputil.Connect(ctx, src.RawURL, src.Username, src.Password)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	dirs, _, err := conn.ListDir(path.Join(src.Base.Path, "full"))
	if err != nil {
		return nil, err
	}

	var releases []release.Release
	for _, d := range dirs {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			log.Debugf("skipping non-release entry %s", d)
			continue
		}
		releases = append(releases, release.Release{Date: d})
	}
	release.Sort(releases)

	return releases, nil
}

// Fetch downloads the termdb-tables archive for rel, reading through the
// cache keyed by the archive URL.
func (src *SourceFTP) Fetch(ctx context.Context, rel release.Release) ([]byte, error) {
	key := release.ArchiveURL(src.RawURL, rel.Date)
	subdirs := []string{src.Base.Hostname(), "geneontology"}

	if err := cacheutil.AutoPurge(); err != nil {
		log.Warnf("failed to purge cache: %v", err)
	}

	if entry, ok := cacheutil.Read(subdirs, key); ok {
		log.Debugf("cache hit %s", key)
		return entry.Data, nil
	}

	remote := path.Join(src.Base.Path, "full", rel.Date, release.ArchiveBasename(rel.Date))

	var data []byte
	err := util.Retry(ctx, util.RetryOptions{Tries: 3, Delay: 2 * time.Second, Backoff: 2}, func() error {
		conn, err := ftputil.Connect(ctx, src.RawURL, src.Username, src.Password)
		if err != nil {
			return err
		}
		defer conn.Close()

		data, err = conn.Retrieve(remote)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", key, err)
	}

	if err := cacheutil.Write(subdirs, key, data); err != nil {
		log.WithError(err).Warn("error writing to cache")
	}

	return data, nil
}

func (src *SourceFTP) String() string {
	return src.RawURL
}

func (src *SourceFTP) Type() string {
	return "ftp"
}
