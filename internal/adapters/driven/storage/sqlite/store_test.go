package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenloom/docquery/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func chunk(docID string, index int, text string, embedding []float32) domain.DocumentChunk {
	return domain.DocumentChunk{
		DocumentID:   docID,
		DocumentName: docID + ".txt",
		DocumentType: "txt",
		ChunkIndex:   index,
		TextContent:  text,
		CharStart:    index * 100,
		CharEnd:      index*100 + len(text),
		Embedding:    embedding,
		Timestamp:    time.Date(2026, 3, 14, 10, 0, index, 0, time.UTC),
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store := newTestStore(t)
	assert.FileExists(t, store.Path())
}

func TestNewStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.PutChunks(ctx, []domain.DocumentChunk{
		chunk("doc-a", 0, "persisted across reopens", []float32{1, 0}),
	}))
	require.NoError(t, store.Close())

	// Migrations are idempotent on an existing database.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	chunks, err := store.Find(ctx, "doc-a")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "persisted across reopens", chunks[0].TextContent)
	assert.Equal(t, []float32{1, 0}, chunks[0].Embedding)
}

func TestPutChunks_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	page := 3
	section := "Introduction"
	original := chunk("doc-a", 0, "full fidelity round trip", []float32{0.25, -0.5, 1})
	original.PageNumber = &page
	original.SectionTitle = &section

	require.NoError(t, store.PutChunks(ctx, []domain.DocumentChunk{original}))

	chunks, err := store.Find(ctx, "doc-a")
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	got := chunks[0]
	assert.Equal(t, original.DocumentID, got.DocumentID)
	assert.Equal(t, original.ChunkIndex, got.ChunkIndex)
	assert.Equal(t, original.TextContent, got.TextContent)
	assert.Equal(t, original.CharStart, got.CharStart)
	assert.Equal(t, original.CharEnd, got.CharEnd)
	assert.Equal(t, original.Embedding, got.Embedding)
	require.NotNil(t, got.PageNumber)
	assert.Equal(t, page, *got.PageNumber)
	require.NotNil(t, got.SectionTitle)
	assert.Equal(t, section, *got.SectionTitle)
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
}

func TestPutChunks_UpsertReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutChunks(ctx, []domain.DocumentChunk{
		chunk("doc-a", 0, "first version", []float32{1}),
	}))
	require.NoError(t, store.PutChunks(ctx, []domain.DocumentChunk{
		chunk("doc-a", 0, "second version", []float32{2}),
	}))

	chunks, err := store.Find(ctx, "doc-a")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "second version", chunks[0].TextContent)
}

func TestPutChunks_EmptyBatch(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PutChunks(context.Background(), nil))
}

func TestVectorSearch_RanksBySimilarity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutChunks(ctx, []domain.DocumentChunk{
		chunk("doc-a", 0, "exactly aligned", []float32{1, 0}),
		chunk("doc-a", 1, "orthogonal", []float32{0, 1}),
		chunk("doc-a", 2, "diagonal", []float32{1, 1}),
	}))

	hits, err := store.VectorSearch(ctx, []float32{1, 0}, 3, "")
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "exactly aligned", hits[0].TextContent)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	assert.Equal(t, "diagonal", hits[1].TextContent)
	assert.Equal(t, "orthogonal", hits[2].TextContent)
}

func TestVectorSearch_HonoursLimitAndFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutChunks(ctx, []domain.DocumentChunk{
		chunk("doc-a", 0, "a0", []float32{1, 0}),
		chunk("doc-a", 1, "a1", []float32{0.9, 0.1}),
		chunk("doc-b", 0, "b0", []float32{1, 0}),
	}))

	hits, err := store.VectorSearch(ctx, []float32{1, 0}, 1, "")
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = store.VectorSearch(ctx, []float32{1, 0}, 10, "doc-b")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "b0", hits[0].TextContent)
}

func TestVectorSearch_SkipsChunksWithoutEmbedding(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutChunks(ctx, []domain.DocumentChunk{
		chunk("doc-a", 0, "embedded", []float32{1}),
		chunk("doc-a", 1, "not embedded", nil),
	}))

	hits, err := store.VectorSearch(ctx, []float32{1}, 10, "")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "embedded", hits[0].TextContent)
}

func TestVectorSearch_ClosedStoreReportsSearchError(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.VectorSearch(context.Background(), []float32{1}, 5, "")
	require.ErrorIs(t, err, domain.ErrStoreSearch)
}

func TestListDocuments_Aggregates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutChunks(ctx, []domain.DocumentChunk{
		chunk("doc-a", 0, "a0", []float32{1}),
		chunk("doc-a", 1, "a1", []float32{1}),
		chunk("doc-a", 2, "a2", []float32{1}),
		chunk("doc-b", 0, "b0", []float32{1}),
	}))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "doc-a", docs[0].DocumentID)
	assert.Equal(t, 3, docs[0].ChunkCount)
	assert.Equal(t, "doc-a.txt", docs[0].DocumentName)
	// MAX(created_at) picks the newest chunk's timestamp.
	assert.True(t, docs[0].LastUpdated.Equal(time.Date(2026, 3, 14, 10, 0, 2, 0, time.UTC)))

	assert.Equal(t, "doc-b", docs[1].DocumentID)
	assert.Equal(t, 1, docs[1].ChunkCount)
}

func TestListDocuments_Empty(t *testing.T) {
	store := newTestStore(t)

	docs, err := store.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDeleteDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.PutChunks(ctx, []domain.DocumentChunk{
		chunk("doc-a", 0, "a0", []float32{1}),
		chunk("doc-a", 1, "a1", []float32{1}),
		chunk("doc-b", 0, "b0", []float32{1}),
	}))

	deleted, err := store.DeleteDocument(ctx, "doc-a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deleted, err = store.DeleteDocument(ctx, "doc-a")
	require.NoError(t, err)
	assert.Zero(t, deleted)

	remaining, err := store.Find(ctx, "")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "doc-b", remaining[0].DocumentID)
}
