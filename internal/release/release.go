// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package release

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultSource is the archive root the Gene Ontology project publishes
// termdb releases under.
const DefaultSource = "ftp://ftp.geneontology.org/pub/go/godatabase/archive"

// DirMode is used for directories holding the dataset. The published
// dataset is world readable and group writable.
const DirMode = 0o775

// Release identifies one published termdb-tables release. Date is the ISO
// release day (always the first of the month, e.g. "2012-06-01"). Size and
// ModTime are filled in when the source listing provides them.
type Release struct {
	Date    string
	Size    int64
	ModTime time.Time
}

func (r Release) String() string {
	return r.Date
}

// Compact returns the YYYYMM form used in archive basenames.
func (r Release) Compact() string {
	return Compact(r.Date)
}

// Compact converts an ISO release date to its YYYYMM form.
func Compact(date string) string {
	return strings.ReplaceAll(date, "-", "")[:6]
}

// Guess returns a conservative release date as an ISO string. Full releases
// are published sometime in the first or second week of the month and named
// for the first day of the month, so the first day of the previous month is
// guaranteed to name the latest or penultimate release.
func Guess(today time.Time) string {
	year, month := today.Year(), today.Month()
	if month == time.January {
		year, month = year-1, time.December
	} else {
		month--
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// Normalize validates a release spec and returns its ISO form. Accepted
// forms are "YYYY-MM-DD" and the compact "YYYYMM" (which maps to the first
// of the month). An empty spec is an error; callers decide between Guess
// and Find for defaulting.
func Normalize(spec string) (string, error) {
	switch len(spec) {
	case 10:
		t, err := time.Parse("2006-01-02", spec)
		if err != nil {
			return "", fmt.Errorf("invalid release %q: %w", spec, err)
		}
		return t.Format("2006-01-02"), nil
	case 6:
		t, err := time.Parse("200601", spec)
		if err != nil {
			return "", fmt.Errorf("invalid release %q: %w", spec, err)
		}
		return t.Format("2006-01-02"), nil
	default:
		return "", fmt.Errorf("invalid release %q: want YYYY-MM-DD or YYYYMM", spec)
	}
}

// ArchiveBasename returns the archive filename for a release,
// e.g. "go_201206-termdb-tables.tar.gz".
func ArchiveBasename(date string) string {
	return fmt.Sprintf("go_%s-termdb-tables.tar.gz", Compact(date))
}

// ArchiveURL returns the source URL of a release archive,
// e.g. "<base>/full/2012-06-01/go_201206-termdb-tables.tar.gz".
func ArchiveURL(base, date string) string {
	return strings.TrimRight(base, "/") + path.Join("/full", date, ArchiveBasename(date))
}

// ArchivePath returns the local path of a downloaded archive,
// e.g. "<root>/geneontology/go_201206-termdb-tables.tar.gz".
func ArchivePath(root, date string) string {
	return filepath.Join(root, "geneontology", ArchiveBasename(date))
}

// TablesDir returns the directory an archive extracts into, the archive
// path minus its ".tar.gz" suffix.
func TablesDir(root, date string) (string, error) {
	p := ArchivePath(root, date)
	if !strings.HasSuffix(p, ".tar.gz") {
		return "", fmt.Errorf("archive path %s does not end in .tar.gz", p)
	}
	return strings.TrimSuffix(p, ".tar.gz"), nil
}

// TermFile returns the path to the term.txt table of a release.
func TermFile(root, date string) (string, error) {
	dir, err := TablesDir(root, date)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "term.txt"), nil
}

// Sort orders releases newest first, the order Find indexes into.
func Sort(releases []Release) {
	sort.Slice(releases, func(i, j int) bool {
		return releases[i].Date > releases[j].Date
	})
}

// Find resolves release specs against a candidate list. A spec could be -
//
//	empty     - the newest release.
//	latest    - the newest release.
//	latest~N  - the release N back from the newest.
//	date      - the release with that ISO date.
//	YYYYMM    - the release for that month.
//	prefix    - the newest release whose date starts with the prefix.
//
// Candidates are sorted newest first before resolution. One Release is
// returned per spec; no specs means one spec of "latest".
func Find(candidates []Release, specs ...string) ([]Release, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no candidate releases")
	}

	sorted := append([]Release(nil), candidates...)
	Sort(sorted)

	if len(specs) == 0 {
		specs = []string{"latest"}
	}

	var result []Release
	for _, s := range specs {
		var index = -1

		switch {
		case s == "" || strings.EqualFold(s, "latest"):
			index = 0
		case strings.HasPrefix(strings.ToLower(s), "latest~"):
			n, err := strconv.Atoi(s[len("latest~"):])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid release spec %q", s)
			}
			index = n
		default:
			if iso, err := Normalize(s); err == nil {
				for j, c := range sorted {
					if c.Date == iso {
						index = j
						break
					}
				}
				if index == -1 {
					return nil, fmt.Errorf("release %s not found", iso)
				}
			} else {
				// A prefix search. The first hit is the newest match.
				for j, c := range sorted {
					if strings.HasPrefix(c.Date, s) {
						index = j
						break
					}
				}
				if index == -1 {
					return nil, fmt.Errorf("no release matches %q", s)
				}
			}
		}

		if index > len(sorted)-1 {
			return nil, fmt.Errorf("index %d out of range for %d releases", index, len(sorted))
		}

		result = append(result, sorted[index])
	}

	return result, nil
}
