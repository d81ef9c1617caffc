package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenloom/docquery/internal/adapters/driven/storage/memory"
	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driven"
)

// passthroughExtractor returns the file bytes as text.
type passthroughExtractor struct {
	err error
}

func (e *passthroughExtractor) SupportedExtensions() []string { return []string{"txt", "md"} }

func (e *passthroughExtractor) Extract(_ context.Context, content []byte) (*driven.ExtractResult, error) {
	if e.err != nil {
		return nil, e.err
	}
	return &driven.ExtractResult{Text: string(content)}, nil
}

// fakeRegistry serves one extractor for its supported extensions.
type fakeRegistry struct {
	extractor driven.Extractor
}

func (r *fakeRegistry) ForExtension(ext string) (driven.Extractor, error) {
	if r.extractor == nil {
		return nil, domain.ErrUnsupportedFormat
	}
	for _, supported := range r.extractor.SupportedExtensions() {
		if supported == ext {
			return r.extractor, nil
		}
	}
	return nil, domain.ErrUnsupportedFormat
}

func (r *fakeRegistry) Supported(ext string) bool {
	_, err := r.ForExtension(ext)
	return err == nil
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestPipeline(store driven.ChunkStore, registry driven.ExtractorRegistry) *IngestionPipeline {
	return NewIngestionPipeline(registry, newTestEmbedder(), store)
}

func TestIngestionPipeline_Run(t *testing.T) {
	store := memory.NewChunkStore()
	pipeline := newTestPipeline(store, &fakeRegistry{extractor: &passthroughExtractor{}})

	sentence := "Document ingestion joins extraction, chunking and embedding. "
	text := strings.Repeat(sentence, 2500/len(sentence)+1)[:2500]
	path := writeTempFile(t, "report.txt", text)

	receipt, err := pipeline.Run(context.Background(), path, 1000, 200)
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.DocumentID)
	assert.Equal(t, "report.txt", receipt.DocumentName)
	assert.Equal(t, 3, receipt.ChunksCreated)

	stored, err := store.Find(context.Background(), receipt.DocumentID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for i, chunk := range stored {
		assert.Equal(t, i, chunk.ChunkIndex)
		assert.Equal(t, "txt", chunk.DocumentType)
		assert.Equal(t, "report.txt", chunk.DocumentName)
		assert.NotEmpty(t, chunk.Embedding, "every persisted chunk carries an embedding")
		assert.NotEmpty(t, chunk.TextContent)
		assert.False(t, chunk.Timestamp.IsZero())
	}
}

func TestIngestionPipeline_UnsupportedExtension(t *testing.T) {
	store := memory.NewChunkStore()
	pipeline := newTestPipeline(store, &fakeRegistry{extractor: &passthroughExtractor{}})

	path := writeTempFile(t, "image.png", "not really a png")

	_, err := pipeline.Run(context.Background(), path, 1000, 200)
	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestIngestionPipeline_MissingFile(t *testing.T) {
	pipeline := newTestPipeline(memory.NewChunkStore(), &fakeRegistry{extractor: &passthroughExtractor{}})

	_, err := pipeline.Run(context.Background(), filepath.Join(t.TempDir(), "absent.txt"), 1000, 200)
	require.Error(t, err)
}

func TestIngestionPipeline_EmptyDocument(t *testing.T) {
	pipeline := newTestPipeline(memory.NewChunkStore(), &fakeRegistry{extractor: &passthroughExtractor{}})

	path := writeTempFile(t, "blank.txt", "   \n\t  ")

	_, err := pipeline.Run(context.Background(), path, 1000, 200)
	require.ErrorIs(t, err, domain.ErrEmptyDocument)
}

func TestIngestionPipeline_ExtractionFailure(t *testing.T) {
	pipeline := newTestPipeline(memory.NewChunkStore(),
		&fakeRegistry{extractor: &passthroughExtractor{err: assert.AnError}})

	path := writeTempFile(t, "broken.txt", "content")

	_, err := pipeline.Run(context.Background(), path, 1000, 200)
	require.ErrorIs(t, err, domain.ErrExtraction)
}

func TestIngestionPipeline_InvalidChunkConfigFailsFast(t *testing.T) {
	pipeline := newTestPipeline(memory.NewChunkStore(), &fakeRegistry{extractor: &passthroughExtractor{}})

	path := writeTempFile(t, "doc.txt", "some content")

	_, err := pipeline.Run(context.Background(), path, 0, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = pipeline.Run(context.Background(), path, 100, 100)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestionPipeline_EmbeddingFailureLeavesStoreUntouched(t *testing.T) {
	store := memory.NewChunkStore()
	embedder := NewEmbeddingClient(
		&scriptedProvider{failures: 100, err: assert.AnError},
		NewPacer(0),
		WithSleep(noSleep),
	)
	pipeline := NewIngestionPipeline(&fakeRegistry{extractor: &passthroughExtractor{}}, embedder, store)

	path := writeTempFile(t, "doc.txt", strings.Repeat("Sentences all the way down. ", 50))

	_, err := pipeline.Run(context.Background(), path, 200, 50)
	require.ErrorIs(t, err, domain.ErrEmbedding)

	stored, findErr := store.Find(context.Background(), "")
	require.NoError(t, findErr)
	assert.Empty(t, stored, "no partial persistence after an embedding failure")
}

func TestIngestionPipeline_StoreWriteFailure(t *testing.T) {
	store := &mockChunkStore{putErr: assert.AnError}
	pipeline := newTestPipeline(store, &fakeRegistry{extractor: &passthroughExtractor{}})

	path := writeTempFile(t, "doc.txt", "a single short document.")

	_, err := pipeline.Run(context.Background(), path, 1000, 200)
	require.ErrorIs(t, err, domain.ErrStoreWrite)
	require.ErrorIs(t, err, assert.AnError)
}

func TestNormalizeExtension(t *testing.T) {
	assert.Equal(t, "txt", NormalizeExtension("/tmp/file.TXT"))
	assert.Equal(t, "pdf", NormalizeExtension("report.pdf"))
	assert.Equal(t, "", NormalizeExtension("no-extension"))
}
