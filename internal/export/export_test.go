// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/citesift/internal/search"
	"github.com/pdiddy/citesift/pkg/types"
)

func sampleOutput() search.SearchOutput {
	return search.SearchOutput{
		Source: "citations.txt",
		Query:  search.Query{Keywords: []string{"graph", "kernel"}, Rule: search.RuleOr},
		Records: []types.Record{
			{Text: "Graph networks", Journal: "Journal X", Citations: 5, Year: 2020},
			{Text: "Kernel methods", Journal: "Journal Y", Citations: 10, Year: 2021},
		},
		Parsed:         3,
		TotalCitations: 15,
	}
}

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "archive", "citesift.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndRead(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, sampleOutput())
	require.NoError(t, err)
	assert.Positive(t, id)

	run, err := store.Run(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "citations.txt", run.Source)
	assert.Equal(t, []string{"graph", "kernel"}, run.Keywords)
	assert.Equal(t, "or", run.Rule)
	assert.Equal(t, 2, run.Matches)
	assert.Equal(t, 15, run.TotalCitations)
	assert.False(t, run.CreatedAt.IsZero())

	recs, err := store.Records(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sampleOutput().Records, recs)

	out, err := store.Output(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sampleOutput(), out)
}

func TestStoreRunsNewestFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, sampleOutput())
	require.NoError(t, err)

	empty := sampleOutput()
	empty.Records = nil
	empty.TotalCitations = 0
	second, err := store.Save(ctx, empty)
	require.NoError(t, err)

	runs, err := store.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, 0, runs[0].Matches)

	recs, err := store.Records(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestStoreRunNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.Run(context.Background(), 42)
	assert.ErrorContains(t, err, "run 42 not found")
}

func TestStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citesift.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	_, err = store.Save(ctx, sampleOutput())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.Runs(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, WriteXLSX(path, sampleOutput()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(recordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"#", "Citations", "Year", "Journal", "Text"}, rows[0])
	assert.Equal(t, []string{"1", "5", "2020", "Journal X", "Graph networks"}, rows[1])
	assert.Equal(t, []string{"2", "10", "2021", "Journal Y", "Kernel methods"}, rows[2])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Contains(t, summary, []string{"Total Citations", "15"})
	assert.Contains(t, summary, []string{"Rule", "OR"})
}
