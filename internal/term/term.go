// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Term is one row of the term table. The columns come from the CREATE
// TABLE statement in the release's term.sql:
//
//	`id` int(11) NOT NULL AUTO_INCREMENT,
//	`name` varchar(255) NOT NULL DEFAULT '',
//	`term_type` varchar(55) NOT NULL,
//	`acc` varchar(255) NOT NULL,
//	`is_obsolete` int(11) NOT NULL DEFAULT '0',
//	`is_root` int(11) NOT NULL DEFAULT '0',
//	`is_relation` int(11) NOT NULL DEFAULT '0',
type Term struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	TermType   string `json:"term_type"`
	Acc        string `json:"acc"`
	IsObsolete int    `json:"is_obsolete"`
	IsRoot     int    `json:"is_root"`
	IsRelation int    `json:"is_relation"`
}

// Fields returns the term table column names in table order.
func Fields() []string {
	return []string{"id", "name", "term_type", "acc", "is_obsolete", "is_root", "is_relation"}
}

const numFields = 7

// Scanner streams Terms out of a tab-separated term.txt.
type Scanner struct {
	s    *bufio.Scanner
	line int
	cur  Term
	err  error
}

// NewScanner wraps a reader producing term.txt lines.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	// name fields are short, but stay generous about line length.
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Scanner{s: s}
}

// Scan advances to the next row. It returns false at EOF or on error;
// check Err to tell the two apart.
func (sc *Scanner) Scan() bool {
	if sc.err != nil {
		return false
	}
	for sc.s.Scan() {
		sc.line++
		line := strings.TrimRight(sc.s.Text(), "\r\n")
		if line == "" {
			continue
		}
		t, err := parseRow(line)
		if err != nil {
			sc.err = fmt.Errorf("line %d: %w", sc.line, err)
			return false
		}
		sc.cur = t
		return true
	}
	sc.err = sc.s.Err()
	return false
}

// Term returns the row read by the last successful Scan.
func (sc *Scanner) Term() Term {
	return sc.cur
}

// Err returns the first error encountered, or nil at clean EOF.
func (sc *Scanner) Err() error {
	return sc.err
}

func parseRow(line string) (Term, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != numFields {
		return Term{}, fmt.Errorf("want %d tab-separated fields, got %d", numFields, len(fields))
	}

	var t Term
	var err error
	if t.ID, err = strconv.Atoi(fields[0]); err != nil {
		return Term{}, fmt.Errorf("bad id %q: %w", fields[0], err)
	}
	t.Name = fields[1]
	t.TermType = fields[2]
	t.Acc = fields[3]
	if t.IsObsolete, err = strconv.Atoi(fields[4]); err != nil {
		return Term{}, fmt.Errorf("bad is_obsolete %q: %w", fields[4], err)
	}
	if t.IsRoot, err = strconv.Atoi(fields[5]); err != nil {
		return Term{}, fmt.Errorf("bad is_root %q: %w", fields[5], err)
	}
	if t.IsRelation, err = strconv.Atoi(fields[6]); err != nil {
		return Term{}, fmt.Errorf("bad is_relation %q: %w", fields[6], err)
	}
	return t, nil
}

// Read slurps every term out of a term.txt file.
func Read(path string) ([]Term, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open term table: %w", err)
	}
	defer f.Close()

	var terms []Term
	sc := NewScanner(f)
	for sc.Scan() {
		terms = append(terms, sc.Term())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return terms, nil
}

// Map returns the term as a field-name keyed row for the output layer.
func (t Term) Map() map[string]interface{} {
	return map[string]interface{}{
		"id":          t.ID,
		"name":        t.Name,
		"term_type":   t.TermType,
		"acc":         t.Acc,
		"is_obsolete": t.IsObsolete,
		"is_root":     t.IsRoot,
		"is_relation": t.IsRelation,
	}
}

// Maps converts terms into rows for the output layer.
func Maps(terms []Term) []map[string]interface{} {
	rows := make([]map[string]interface{}, len(terms))
	for i, t := range terms {
		rows[i] = t.Map()
	}
	return rows
}
