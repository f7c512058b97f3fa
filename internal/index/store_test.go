// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citescan/internal/cite"
	"github.com/pdiddy/citescan/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.IndexConfig{
		IndexDir: filepath.Join(t.TempDir(), "index"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func writeBrief(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestAndQuery(t *testing.T) {
	dir := t.TempDir()
	path := writeBrief(t, dir, "brief.txt",
		"See Bush v. Gore, 531 U.S. 98 (2000). The claim arises under 42 U.S.C. § 1983.")

	store := newTestStore(t)
	ex := cite.New(nil, types.ExtractConfig{})

	var buf bytes.Buffer
	summary, err := store.Ingest(context.Background(), ex, []string{path}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Indexed)
	assert.Equal(t, 1, summary.Total())
	assert.False(t, summary.HasFailures())
	assert.Contains(t, buf.String(), "indexing "+path)

	// Structured query by file: both citations, in document order.
	results, err := store.Query(context.Background(), QueryOptions{Path: path})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "531 U.S. 98", results[0].Text)
	assert.Equal(t, types.CiteFullCase, results[0].Type)
	assert.Equal(t, "42 U.S.C. § 1983", results[1].Text)
	assert.Equal(t, types.CiteFullLaw, results[1].Type)
	assert.Less(t, results[0].Start, results[1].Start)

	// Type filter.
	results, err = store.Query(context.Background(), QueryOptions{Type: types.CiteFullLaw})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "42 U.S.C. § 1983", results[0].Text)
	assert.Equal(t, path, results[0].Path)

	// Full-text search over citation text.
	results, err = store.Query(context.Background(), QueryOptions{Query: "1983"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, types.CiteFullLaw, results[0].Type)
}

func TestIngestSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := writeBrief(t, dir, "brief.txt", "See 531 U.S. 98.")

	store := newTestStore(t)
	ex := cite.New(nil, types.ExtractConfig{})

	var buf bytes.Buffer
	summary, err := store.Ingest(context.Background(), ex, []string{path}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Indexed)

	summary, err = store.Ingest(context.Background(), ex, []string{path}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Indexed)
}

func TestIngestReplacesChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeBrief(t, dir, "brief.txt", "See 531 U.S. 98 and 410 U.S. 113.")

	store := newTestStore(t)
	ex := cite.New(nil, types.ExtractConfig{})

	var buf bytes.Buffer
	_, err := store.Ingest(context.Background(), ex, []string{path}, &buf)
	require.NoError(t, err)

	// Rewrite with a single citation and force a newer mod time.
	require.NoError(t, os.WriteFile(path, []byte("Only 42 U.S.C. § 1983 remains."), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	summary, err := store.Ingest(context.Background(), ex, []string{path}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	results, err := store.Query(context.Background(), QueryOptions{Path: path})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "42 U.S.C. § 1983", results[0].Text)
}

func TestIngestMissingFile(t *testing.T) {
	store := newTestStore(t)
	ex := cite.New(nil, types.ExtractConfig{})

	var buf bytes.Buffer
	summary, err := store.Ingest(context.Background(), ex,
		[]string{filepath.Join(t.TempDir(), "missing.txt")}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, summary.HasFailures())
	assert.Contains(t, buf.String(), "failed")
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{}.IsEmpty())
	assert.False(t, QueryOptions{Query: "1983"}.IsEmpty())
	assert.False(t, QueryOptions{Type: types.CiteFullCase}.IsEmpty())
	assert.False(t, QueryOptions{Path: "brief.txt"}.IsEmpty())
}

func TestQueryLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeBrief(t, dir, "brief.txt",
		"See 531 U.S. 98; 410 U.S. 113; 5 U.S. 137.")

	store := newTestStore(t)
	ex := cite.New(nil, types.ExtractConfig{})

	var buf bytes.Buffer
	_, err := store.Ingest(context.Background(), ex, []string{path}, &buf)
	require.NoError(t, err)

	results, err := store.Query(context.Background(), QueryOptions{Path: path, MaxResults: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
