// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package ftputil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/jlaffaye/ftp"
)

// DialTimeout bounds the initial connect. Listing and transfer deadlines
// are the server's problem.
const DialTimeout = 30 * time.Second

// Conn is a logged-in FTP session rooted at a host.
type Conn struct {
	c    *ftp.ServerConn
	host string
}

// Connect dials the host in rawurl and logs in. Empty credentials mean an
// anonymous login. The caller owns the connection and must Close it.
func Connect(ctx context.Context, rawurl, username, password string) (*Conn, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("invalid ftp url %q: %w", rawurl, err)
	}
	if u.Scheme != "ftp" {
		return nil, fmt.Errorf("not an ftp url: %s", rawurl)
	}

	addr := u.Host
	if u.Port() == "" {
		addr = u.Hostname() + ":21"
	}

	c, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(DialTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	if username == "" {
		username, password = "anonymous", "anonymous"
	}
	if err := c.Login(username, password); err != nil {
		_ = c.Quit()
		return nil, fmt.Errorf("failed to login to %s: %w", addr, err)
	}

	return &Conn{c: c, host: u.Hostname()}, nil
}

// Host returns the hostname the session is connected to.
func (conn *Conn) Host() string {
	return conn.host
}

// Close ends the session.
func (conn *Conn) Close() error {
	return conn.c.Quit()
}

// ListDir lists the directory at path, returning subdirectory and file
// names separately, each sorted. The current and parent entries are
// dropped.
func (conn *Conn) ListDir(path string) (dirs, files []string, err error) {
	entries, err := conn.c.List(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	for _, e := range entries {
		switch e.Type {
		case ftp.EntryTypeFolder:
			if e.Name != "." && e.Name != ".." {
				dirs = append(dirs, e.Name)
			}
		case ftp.EntryTypeFile:
			files = append(files, e.Name)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	return dirs, files, nil
}

// IsDir reports whether path refers to a directory, determined by a CWD
// probe. Servers reject CWD with 550 unless the pathname is an accessible
// directory, so a 550 means false; any other error propagates.
func (conn *Conn) IsDir(path string) (bool, error) {
	err := conn.c.ChangeDir(path)
	if err == nil {
		return true, nil
	}
	var pe *textproto.Error
	if errors.As(err, &pe) && pe.Code == ftp.StatusFileUnavailable {
		return false, nil
	}
	return false, fmt.Errorf("failed to probe %s: %w", path, err)
}

// Retrieve downloads the file at path.
func (conn *Conn) Retrieve(path string) ([]byte, error) {
	resp, err := conn.c.Retr(path)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve %s: %w", path, err)
	}
	defer resp.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

// WalkFunc receives each visited directory with its subdirectory and file
// names. Returning an error stops the walk.
type WalkFunc func(path string, dirs, files []string) error

// Walk traverses the directory tree rooted at path depth-first, calling fn
// for each directory. depth < 0 walks the whole tree; depth == 0 visits
// only the root. pause throttles listings so a public server isn't
// hammered.
func (conn *Conn) Walk(ctx context.Context, path string, depth int, pause time.Duration, fn WalkFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirs, files, err := conn.ListDir(path)
	if err != nil {
		return err
	}
	if err := fn(path, dirs, files); err != nil {
		return err
	}

	if pause > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
		}
	}

	if depth == 0 {
		return nil
	}

	for _, d := range dirs {
		sub := strings.TrimRight(path, "/") + "/" + d
		log.Debugf("walking %s", sub)
		if err := conn.Walk(ctx, sub, depth-1, pause, fn); err != nil {
			return err
		}
	}
	return nil
}
