package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenloom/docquery/internal/core/domain"
)

func seedTestStore(t *testing.T) {
	t.Helper()
	err := chunkStore.PutChunks(context.Background(), []domain.DocumentChunk{
		{
			DocumentID:   "doc-1",
			ChunkIndex:   0,
			DocumentName: "guide.pdf",
			DocumentType: "pdf",
			TextContent:  "Installation steps.",
			Timestamp:    time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		},
		{
			DocumentID:   "doc-1",
			ChunkIndex:   1,
			DocumentName: "guide.pdf",
			DocumentType: "pdf",
			TextContent:  "Configuration steps.",
			Timestamp:    time.Date(2026, 3, 14, 10, 0, 1, 0, time.UTC),
		},
	})
	require.NoError(t, err)
}

func TestDocumentsListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"documents", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No documents stored.")
}

func TestDocumentsListCmd_PrintsDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedTestStore(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"documents", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "doc-1")
	assert.Contains(t, buf.String(), "guide.pdf")
	assert.Contains(t, buf.String(), "2 chunks")
}

func TestDocumentsListCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedTestStore(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"documents", "list", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		documentsJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"DocumentID\"")
	assert.Contains(t, buf.String(), "guide.pdf")
}

func TestDocumentsDeleteCmd_RemovesChunks(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedTestStore(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"documents", "delete", "doc-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Deleted 2 chunks")

	docs, err := chunkStore.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentsDeleteCmd_UnknownID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"documents", "delete", "absent"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No document found with ID absent")
}

func TestDocumentsDeleteCmd_RequiresArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"documents", "delete"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}
