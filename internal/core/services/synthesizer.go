package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driven"
	"github.com/listenloom/docquery/internal/logger"
)

// answerPrompt grounds the model in the retrieved chunk text before
// asking the question.
const answerPrompt = `Based on the following document context, please answer the question.

Context:
%s

Question: %s

Answer:`

// Synthesizer builds a grounded prompt from retrieved chunks and
// obtains a generated answer from the LLM provider.
type Synthesizer struct {
	llm driven.LLMProvider
}

// NewSynthesizer creates a synthesizer.
func NewSynthesizer(llm driven.LLMProvider) *Synthesizer {
	return &Synthesizer{llm: llm}
}

// Answer generates an answer to the query grounded in the chunks,
// which must be non-empty and are embedded in retrieval order. A
// provider failure degrades to a user-visible error message in the
// Answer field rather than an error return, so the caller still
// receives the retrieved chunks and sources for partial value.
func (s *Synthesizer) Answer(ctx context.Context, query string, chunks []domain.RetrievedChunk) *domain.SearchAnswer {
	logger.Section("Answer Synthesis")
	logger.Debug("Building prompt from %d chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.TextContent
	}
	prompt := fmt.Sprintf(answerPrompt, strings.Join(texts, "\n\n"), query)

	result := &domain.SearchAnswer{
		RetrievedChunks: chunks,
		SourceDocuments: domain.SourceNames(chunks),
	}

	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		logger.Warn("Answer generation failed: %v", err)
		result.Answer = fmt.Sprintf("An error occurred while generating the answer: %v", err)
		return result
	}

	result.Answer = strings.TrimSpace(answer)
	return result
}
