package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_SupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{"html", "htm", "xhtml"}, New().SupportedExtensions())
}

func TestExtractor_StripsMarkup(t *testing.T) {
	doc := `<!DOCTYPE html>
<html>
<head><title>Ignored</title><style>body { color: red; }</style></head>
<body>
<h1>Heading</h1>
<p>First paragraph.</p>
<script>console.log("ignored");</script>
<p>Second &amp; final paragraph.</p>
</body>
</html>`

	result, err := New().Extract(context.Background(), []byte(doc))

	require.NoError(t, err)
	assert.Equal(t, "Heading\nFirst paragraph.\nSecond & final paragraph.", result.Text)
}

func TestExtractor_ConvertsLineBreaks(t *testing.T) {
	result, err := New().Extract(context.Background(), []byte("line one<br>line two<hr/>line three"))

	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\nline three", result.Text)
}

func TestExtractor_RemovesComments(t *testing.T) {
	result, err := New().Extract(context.Background(), []byte("<p>kept</p><!-- dropped -->"))

	require.NoError(t, err)
	assert.Equal(t, "kept", result.Text)
}

func TestExtractor_EmptyDocument(t *testing.T) {
	result, err := New().Extract(context.Background(), []byte("<html><body></body></html>"))

	require.NoError(t, err)
	assert.Empty(t, result.Text)
}
