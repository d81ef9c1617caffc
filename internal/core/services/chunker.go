package services

import (
	"fmt"
	"strings"

	"github.com/listenloom/docquery/internal/core/domain"
)

// boundaryLookback is how far back from a window's end the chunker
// searches for a sentence terminator or line break.
const boundaryLookback = 100

// Window is one chunk produced by the Chunker: a trimmed slice of the
// source text together with its pre-trim byte offsets.
type Window struct {
	// Index is the zero-based chunk position. Indices are contiguous;
	// discarded empty slices do not consume one.
	Index int

	// Text is the whitespace-trimmed window content, never empty.
	Text string

	// Start and End are byte offsets of the window before trimming.
	Start int
	End   int
}

// Chunker splits plain text into overlapping windows with stable
// offsets. Window boundaries bias toward sentence completeness: when a
// window does not reach the end of the text, it is shortened to end
// one past the nearest '.' or line break found within the last
// boundaryLookback bytes.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker creates a chunker. chunkSize must be positive and overlap
// must satisfy 0 <= overlap < chunkSize; anything else is a
// configuration error.
func NewChunker(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap must be in [0, %d), got %d", domain.ErrInvalidInput, chunkSize, overlap)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// ChunkSize returns the configured window size in bytes.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap width in bytes.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split scans the text left to right and returns the ordered windows.
// Whitespace-only slices are dropped without consuming an index. The
// start position always advances by at least one byte, so Split
// terminates for any input regardless of the overlap setting.
func (c *Chunker) Split(text string) []Window {
	n := len(text)
	if n == 0 {
		return nil
	}

	estimated := n/(c.chunkSize-c.overlap) + 1
	windows := make([]Window, 0, estimated)

	start := 0
	index := 0

	for start < n {
		end := start + c.chunkSize
		atEnd := end >= n
		if atEnd {
			end = n
		} else {
			// Not the last window: prefer ending just after the
			// nearest sentence terminator or line break.
			from := end - boundaryLookback
			if from < start {
				from = start
			}
			if rel := strings.LastIndexAny(text[from:end], ".\n"); rel >= 0 {
				if bp := from + rel; bp > start {
					end = bp + 1
				}
			}
		}

		if slice := strings.TrimSpace(text[start:end]); slice != "" {
			windows = append(windows, Window{
				Index: index,
				Text:  slice,
				Start: start,
				End:   end,
			})
			index++
		}

		// The window covering the tail of the text is the last one;
		// advancing past it would only re-emit a slice of the tail.
		if atEnd {
			break
		}

		// Guarantees forward progress even when the produced window
		// is narrower than the overlap.
		next := end - c.overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return windows
}
