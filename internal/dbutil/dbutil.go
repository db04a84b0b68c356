// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package dbutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/apex/log"
)

// Reuser hands out an open *sql.DB, opening one on first use and replacing
// it whenever a ping fails. It covers two failure modes with one API:
// opening and closing connections rapidly can make a database balk, and a
// connection held open a long time can be closed from the far end.
type Reuser struct {
	mu   sync.Mutex
	open func() (*sql.DB, error)
	db   *sql.DB
}

// NewReuser wraps a factory that returns an open database handle.
func NewReuser(open func() (*sql.DB, error)) *Reuser {
	return &Reuser{open: open}
}

// DB returns a live handle, opening a new one if none exists or the
// existing one fails a ping.
func (r *Reuser) DB(ctx context.Context) (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		if err := r.db.PingContext(ctx); err == nil {
			return r.db, nil
		} else {
			log.WithError(err).Debug("connection failed ping, reopening")
			_ = r.db.Close()
			r.db = nil
		}
	}

	db, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	r.db = db
	return r.db, nil
}

// Close closes the held handle, if any.
func (r *Reuser) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// WithTransaction begins a transaction, runs fn, and commits. Any error
// from fn (or a panic) rolls the transaction back.
func WithTransaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.WithError(rbErr).Warn("rollback failed")
		}
		return err
	}
	return tx.Commit()
}

// Querier is the subset of *sql.DB and *sql.Tx the select helpers need.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Select returns the result rows as slices of values in column order.
func Select(ctx context.Context, q Querier, query string, args ...any) ([][]any, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var results [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		results = append(results, values)
	}
	return results, rows.Err()
}

// SelectMaps returns the result rows as column-name keyed maps. Note that
// column names generated by the query (functions, expressions) are named
// in a database-specific way, so prefer explicit aliases in the SQL when
// using this form.
func SelectMaps(ctx context.Context, q Querier, query string, args ...any) ([]map[string]any, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Exec executes a statement and returns the number of rows affected.
func Exec(ctx context.Context, q Querier, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("exec failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		// Some drivers can't report this; the statement still ran.
		return 0, nil
	}
	return n, nil
}

// Insert executes an insert and returns the last insert id.
func Insert(ctx context.Context, q Querier, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert failed: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read insert id: %w", err)
	}
	return id, nil
}

// ExecMany prepares a statement once and executes it for each group of
// args. Wrap in WithTransaction for atomicity; ExecMany itself does not
// manage transactions.
func ExecMany(ctx context.Context, q Querier, query string, argGroups [][]any) (int64, error) {
	stmt, err := q.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare failed: %w", err)
	}
	defer stmt.Close()

	var total int64
	for _, args := range argGroups {
		res, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return total, fmt.Errorf("exec failed: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}
	return total, nil
}
