package driven

import "context"

// Extractor converts raw file bytes into plain text.
// Each extractor handles specific file extensions.
type Extractor interface {
	// SupportedExtensions returns the normalized extensions this
	// extractor handles, without the leading dot (e.g. "txt", "pdf").
	SupportedExtensions() []string

	// Extract produces the plain text content of the file.
	Extract(ctx context.Context, content []byte) (*ExtractResult, error)
}

// ExtractResult is the output of text extraction.
type ExtractResult struct {
	// Text is the extracted plain text.
	Text string

	// PageCount is the number of pages for paginated formats, 0 otherwise.
	PageCount int
}

// ExtractorRegistry selects an extractor for a file extension.
type ExtractorRegistry interface {
	// ForExtension returns the extractor for the normalized extension.
	// It returns domain.ErrUnsupportedFormat when none is registered.
	ForExtension(ext string) (Extractor, error)

	// Supported reports whether the extension has a registered extractor.
	Supported(ext string) bool
}
