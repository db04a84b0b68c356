// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
)

// ExtractTarGz unpacks a .tar.gz archive into destDir. Entries that would
// escape destDir are rejected. Directories are created with the dataset's
// group-writable mode; file modes come from the archive.
func ExtractTarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to read gzip header: %w", err)
	}
	defer gz.Close()

	if err := os.MkdirAll(destDir, 0o775); err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	var files int
	var bytes int64
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}

		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o775); err != nil {
				return fmt.Errorf("failed to create %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o775); err != nil {
				return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
			}
			n, err := writeFile(target, tr, hdr.FileInfo().Mode())
			if err != nil {
				return err
			}
			files++
			bytes += n
		default:
			// Symlinks and the like don't occur in the dataset; skip them
			// rather than write something surprising to disk.
			log.Debugf("skipping archive entry %s (type %c)", hdr.Name, hdr.Typeflag)
		}
	}

	log.Debugf("extracted %d files (%s) to %s", files, humanize.Bytes(uint64(bytes)), destDir)
	return nil
}

// Extract unpacks an archive next to itself, the way the dataset is laid
// out: <dir>/go_YYYYMM-termdb-tables.tar.gz extracts into <dir>/.
func Extract(archivePath string) error {
	if !strings.HasSuffix(archivePath, ".tar.gz") {
		return fmt.Errorf("%s is not a .tar.gz archive", archivePath)
	}
	return ExtractTarGz(archivePath, filepath.Dir(archivePath))
}

func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes destination", name)
	}
	return target, nil
}

func writeFile(target string, r io.Reader, mode os.FileMode) (int64, error) {
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", target, err)
	}
	n, err := io.Copy(out, r)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("failed to write %s: %w", target, err)
	}
	return n, out.Close()
}
