// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package termdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/todddeluca/tfdgo/internal/term"
)

func sampleTerms() []term.Term {
	return []term.Term{
		{ID: 1, Name: "all", TermType: "universal", Acc: "all", IsRoot: 1},
		{ID: 2, Name: "mitochondrion inheritance", TermType: "biological_process", Acc: "GO:0000001"},
		{ID: 3, Name: "mitochondrial genome maintenance", TermType: "biological_process", Acc: "GO:0000002"},
	}
}

func TestLoadAndQuery(t *testing.T) {
	ctx := context.Background()
	db, err := Open(":memory:")
	assert.NoError(t, err)
	defer db.Close()

	n, err := Load(ctx, db, sampleTerms())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)

	count, err := Count(ctx, db)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	got, err := ByAcc(ctx, db, "GO:0000001")
	assert.NoError(t, err)
	assert.Equal(t, "mitochondrion inheritance", got.Name)
	assert.Equal(t, 2, got.ID)

	_, err = ByAcc(ctx, db, "GO:9999999")
	assert.Error(t, err)
}

func TestLoad_ReplacesExistingRows(t *testing.T) {
	ctx := context.Background()
	db, err := Open(":memory:")
	assert.NoError(t, err)
	defer db.Close()

	_, err = Load(ctx, db, sampleTerms())
	assert.NoError(t, err)

	// A second load must not accumulate rows.
	n, err := Load(ctx, db, sampleTerms()[:2])
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := Count(ctx, db)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLoad_Batches(t *testing.T) {
	ctx := context.Background()
	db, err := Open(":memory:")
	assert.NoError(t, err)
	defer db.Close()

	// More terms than one batch to exercise the chunked load.
	var terms []term.Term
	for i := 1; i <= batchSize+50; i++ {
		terms = append(terms, term.Term{
			ID:       i,
			Name:     fmt.Sprintf("term %d", i),
			TermType: "biological_process",
			Acc:      fmt.Sprintf("GO:%07d", i),
		})
	}

	n, err := Load(ctx, db, terms)
	assert.NoError(t, err)
	assert.Equal(t, int64(batchSize+50), n)

	count, err := Count(ctx, db)
	assert.NoError(t, err)
	assert.Equal(t, int64(batchSize+50), count)
}

func TestOpen_Idempotent(t *testing.T) {
	db, err := Open(":memory:")
	assert.NoError(t, err)
	defer db.Close()

	// Schema creation is IF NOT EXISTS, so re-running it is harmless.
	_, err = db.Exec(schema)
	assert.NoError(t, err)
}
