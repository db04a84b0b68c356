// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package httpsrc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/apex/log"
	"github.com/todddeluca/tfdgo/internal/cacheutil"
	"github.com/todddeluca/tfdgo/internal/release"
	"github.com/todddeluca/tfdgo/internal/util"
)

// statusError is a non-2xx response. Retrying won't change the answer, so
// the retry predicate treats it as terminal.
type statusError struct {
	url    string
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.url, e.status)
}

// SourceHTTP serves release archives over HTTP(S) from a mirror of the
// archive site. Plain HTTP servers don't offer a directory listing we can
// depend on, so Releases() falls back to guessing from the calendar.
type SourceHTTP struct {
	RawURL string
	Base   *url.URL
	Client *http.Client
}

func New(_ context.Context, rawurl string) (*SourceHTTP, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("bad http source url %s: %w", rawurl, err)
	}

	return &SourceHTTP{
		RawURL: rawurl,
		Base:   u,
		Client: &http.Client{Timeout: 10 * time.Minute},
	}, nil
}

// Releases returns the two releases guaranteed to exist by the publishing
// calendar, the guessed latest and the month before it.
func (src *SourceHTTP) Releases(_ context.Context) ([]release.Release, error) {
	latest := release.Guess(time.Now())

	t, err := time.Parse("2006-01-02", latest)
	if err != nil {
		return nil, err
	}
	previous := release.Guess(t)

	return []release.Release{{Date: latest}, {Date: previous}}, nil
}

// Fetch GETs the termdb-tables archive for rel, reading through the cache
// keyed by the archive URL.
func (src *SourceHTTP) Fetch(ctx context.Context, rel release.Release) ([]byte, error) {
	archiveURL := release.ArchiveURL(src.RawURL, rel.Date)
	subdirs := []string{src.Base.Hostname(), "geneontology"}

	if err := cacheutil.AutoPurge(); err != nil {
		log.Warnf("failed to purge cache: %v", err)
	}

	if entry, ok := cacheutil.Read(subdirs, archiveURL); ok {
		log.Debugf("cache hit: %s", entry.Path)
		return entry.Data, nil
	}

	retryOpts := util.RetryOptions{
		Tries:   3,
		Delay:   2 * time.Second,
		Backoff: 2,
		Pred: func(err error) bool {
			var se *statusError
			return !errors.As(err, &se)
		},
	}

	var doc bytes.Buffer
	err := util.Retry(ctx, retryOpts, func() error {
		doc.Reset()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := src.Client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to execute request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &statusError{url: archiveURL, status: resp.Status}
		}

		if _, err := doc.ReadFrom(resp.Body); err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := cacheutil.Write(subdirs, archiveURL, doc.Bytes()); err != nil {
		log.Warnf("failed to write archive to cache: %v", err)
	}

	return doc.Bytes(), nil
}

func (src *SourceHTTP) String() string {
	return src.RawURL
}

func (src *SourceHTTP) Type() string {
	return "http"
}
