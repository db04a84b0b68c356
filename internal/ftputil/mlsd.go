// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package ftputil

import (
	"fmt"
	"strings"
)

// Fact is one keyword=value pair from an MLSD listing line. Keywords are
// lowercased. RFC 3659 section 7: facts are semicolon-terminated pairs
// with no spaces inside the fact set; the pathname follows the single
// space that ends the set.
type Fact struct {
	Keyword string
	Value   string
}

// Facts is the ordered fact list for one pathname. The list form is kept
// because a server may emit the same keyword more than once.
type Facts []Fact

// Map collapses the facts to a keyword-keyed map. Later duplicates win.
func (fs Facts) Map() map[string]string {
	m := make(map[string]string, len(fs))
	for _, f := range fs {
		m[f.Keyword] = f.Value
	}
	return m
}

// Get returns the value of the first fact with the given keyword.
func (fs Facts) Get(keyword string) (string, bool) {
	keyword = strings.ToLower(keyword)
	for _, f := range fs {
		if f.Keyword == keyword {
			return f.Value, true
		}
	}
	return "", false
}

// ParseMLSDLine splits a raw MLSD listing line into its pathname and
// facts, e.g.
//
//	"type=dir;modify=20130212111247;size=0; DATA" -> "DATA", [type=dir ...]
func ParseMLSDLine(line string) (string, Facts, error) {
	factStr, pathname, ok := strings.Cut(line, " ")
	if !ok {
		return "", nil, fmt.Errorf("malformed MLSD line %q: no pathname separator", line)
	}

	var facts Facts
	for factStr != "" {
		var fact string
		fact, factStr, ok = strings.Cut(factStr, ";")
		if !ok {
			return "", nil, fmt.Errorf("malformed MLSD line %q: unterminated fact %q", line, fact)
		}
		if fact == "" {
			continue
		}
		keyword, value, ok := strings.Cut(fact, "=")
		if !ok {
			return "", nil, fmt.Errorf("malformed MLSD fact %q in %q", fact, line)
		}
		facts = append(facts, Fact{Keyword: strings.ToLower(keyword), Value: value})
	}

	return strings.TrimSpace(pathname), facts, nil
}
