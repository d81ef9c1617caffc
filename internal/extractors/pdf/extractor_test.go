package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenloom/docquery/internal/core/domain"
)

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{"pdf"}, New().SupportedExtensions())
}

func TestExtract_NotAPDF(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("plain text pretending"))
	require.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtract_TruncatedHeader(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("%PDF-1.4"))
	require.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtract_Empty(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrExtraction)
}
