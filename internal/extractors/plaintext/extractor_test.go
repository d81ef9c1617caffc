package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedExtensions(t *testing.T) {
	exts := New().SupportedExtensions()
	assert.Contains(t, exts, "txt")
	assert.Contains(t, exts, "md")
}

func TestExtract_UTF8(t *testing.T) {
	result, err := New().Extract(context.Background(), []byte("héllo wörld"))
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", result.Text)
	assert.Zero(t, result.PageCount)
}

func TestExtract_Latin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 but an invalid UTF-8 sequence on its own.
	result, err := New().Extract(context.Background(), []byte{'c', 'a', 'f', 0xE9})
	require.NoError(t, err)
	assert.Equal(t, "café", result.Text)
}

func TestExtract_Empty(t *testing.T) {
	result, err := New().Extract(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Text)
}

func TestExtract_MarkdownPassesThrough(t *testing.T) {
	src := "# Title\n\n- item one\n- item two\n"
	result, err := New().Extract(context.Background(), []byte(src))
	require.NoError(t, err)
	assert.Equal(t, src, result.Text)
}
