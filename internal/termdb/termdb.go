// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package termdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/apex/log"
	_ "modernc.org/sqlite"

	"github.com/todddeluca/tfdgo/internal/dbutil"
	"github.com/todddeluca/tfdgo/internal/term"
	"github.com/todddeluca/tfdgo/internal/util"
)

// schema mirrors the term table of the release's term.sql, minus the MySQL
// storage noise.
const schema = `
CREATE TABLE IF NOT EXISTS term (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	term_type   TEXT NOT NULL,
	acc         TEXT NOT NULL,
	is_obsolete INTEGER NOT NULL DEFAULT 0,
	is_root     INTEGER NOT NULL DEFAULT 0,
	is_relation INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS term_acc ON term (acc);
`

// batchSize bounds the argument groups per transaction chunk.
const batchSize = 500

// Open opens (creating if needed) a term database at path. ":memory:"
// works for tests and throwaway loads.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open term database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return db, nil
}

// Load replaces the term table contents with the given terms. The whole
// load runs in one transaction per batch so a failed load doesn't leave a
// half-written table mixed with old rows.
func Load(ctx context.Context, db *sql.DB, terms []term.Term) (int64, error) {
	if err := dbutil.WithTransaction(ctx, db, func(tx *sql.Tx) error {
		_, err := dbutil.Exec(ctx, tx, `DELETE FROM term`)
		return err
	}); err != nil {
		return 0, fmt.Errorf("failed to clear term table: %w", err)
	}

	const insert = `INSERT INTO term (id, name, term_type, acc, is_obsolete, is_root, is_relation)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	var total int64
	for _, batch := range util.GroupsOfN(terms, batchSize) {
		groups := make([][]any, len(batch))
		for i, t := range batch {
			groups[i] = []any{t.ID, t.Name, t.TermType, t.Acc, t.IsObsolete, t.IsRoot, t.IsRelation}
		}
		err := dbutil.WithTransaction(ctx, db, func(tx *sql.Tx) error {
			n, err := dbutil.ExecMany(ctx, tx, insert, groups)
			total += n
			return err
		})
		if err != nil {
			return total, fmt.Errorf("failed to load terms: %w", err)
		}
	}

	log.Debugf("loaded %d terms", total)
	return total, nil
}

// Count returns the number of loaded terms.
func Count(ctx context.Context, db *sql.DB) (int64, error) {
	rows, err := dbutil.Select(ctx, db, `SELECT count(*) FROM term`)
	if err != nil {
		return 0, err
	}
	n, ok := rows[0][0].(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected count type %T", rows[0][0])
	}
	return n, nil
}

// ByAcc returns the term with the given accession, e.g. "GO:0000001".
func ByAcc(ctx context.Context, db *sql.DB, acc string) (term.Term, error) {
	rows, err := dbutil.SelectMaps(ctx, db,
		`SELECT id, name, term_type, acc, is_obsolete, is_root, is_relation FROM term WHERE acc = ?`, acc)
	if err != nil {
		return term.Term{}, err
	}
	if len(rows) == 0 {
		return term.Term{}, fmt.Errorf("no term with acc %s", acc)
	}

	r := rows[0]
	return term.Term{
		ID:         int(r["id"].(int64)),
		Name:       r["name"].(string),
		TermType:   r["term_type"].(string),
		Acc:        r["acc"].(string),
		IsObsolete: int(r["is_obsolete"].(int64)),
		IsRoot:     int(r["is_root"].(int64)),
		IsRelation: int(r["is_relation"].(int64)),
	}, nil
}
