// Package plaintext extracts text from plain text and Markdown files.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/listenloom/docquery/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text formats. Markdown passes through
// unrendered; headings and list markers survive into the chunk text.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{"txt", "md", "markdown"}
}

// Extract decodes the file bytes as UTF-8, falling back to Latin-1 for
// files that are not valid UTF-8.
func (e *Extractor) Extract(_ context.Context, content []byte) (*driven.ExtractResult, error) {
	if utf8.Valid(content) {
		return &driven.ExtractResult{Text: string(content)}, nil
	}
	return &driven.ExtractResult{Text: decodeLatin1(content)}, nil
}

// decodeLatin1 maps each byte to the equivalent Unicode code point.
func decodeLatin1(content []byte) string {
	var b strings.Builder
	b.Grow(len(content))
	for _, c := range content {
		b.WriteRune(rune(c))
	}
	return b.String()
}
