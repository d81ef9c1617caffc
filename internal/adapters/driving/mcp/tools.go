package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/listenloom/docquery/internal/core/domain"
)

// UploadInput is the input schema for the upload tool.
type UploadInput struct {
	FilePath     string `json:"file_path" jsonschema:"path to the document file to upload"`
	ChunkSize    int    `json:"chunk_size,omitempty" jsonschema:"target chunk size in characters (default 1000)"`
	ChunkOverlap int    `json:"chunk_overlap,omitempty" jsonschema:"overlap between consecutive chunks in characters (default 200)"`
}

// UploadOutput is the output schema for the upload tool.
type UploadOutput struct {
	DocumentID    string `json:"document_id"`
	DocumentName  string `json:"document_name"`
	ChunksCreated int    `json:"chunks_created"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"the question to answer from the documents"`
	DocumentID string `json:"document_id,omitempty" jsonschema:"restrict the search to one document"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of chunks to retrieve (default 5)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Answer  string              `json:"answer"`
	Sources []string            `json:"sources"`
	Chunks  []RetrievedChunkOut `json:"chunks"`
	Count   int                 `json:"count"`
}

// RetrievedChunkOut represents one retrieved chunk in a search result.
type RetrievedChunkOut struct {
	DocumentID   string  `json:"document_id"`
	DocumentName string  `json:"document_name"`
	ChunkIndex   int     `json:"chunk_index"`
	Text         string  `json:"text"`
	Score        float64 `json:"score"`
}

// ListOutput is the output schema for the list tool.
type ListOutput struct {
	Documents []DocumentInfoOut `json:"documents"`
	Count     int               `json:"count"`
}

// DocumentInfoOut represents one stored document.
type DocumentInfoOut struct {
	DocumentID   string `json:"document_id"`
	DocumentName string `json:"document_name"`
	DocumentType string `json:"document_type"`
	ChunkCount   int    `json:"chunk_count"`
	LastUpdated  string `json:"last_updated"`
}

// DeleteInput is the input schema for the delete tool.
type DeleteInput struct {
	DocumentID string `json:"document_id" jsonschema:"ID of the document to delete"`
}

// DeleteOutput is the output schema for the delete tool.
type DeleteOutput struct {
	DeletedChunks int64 `json:"deleted_chunks"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_and_process_document",
		Description: "Upload a document file, split it into chunks, embed them and store them in the library",
	}, s.handleUpload)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documents",
		Description: "Answer a question from the stored documents using semantic search",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List all documents stored in the library",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Delete a document and all its chunks from the library",
	}, s.handleDelete)
}

// handleUpload handles the upload tool invocation.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	receipt, err := s.ports.Library.Upload(ctx, input.FilePath, input.ChunkSize, input.ChunkOverlap)
	if err != nil {
		return nil, UploadOutput{}, err
	}

	return nil, UploadOutput{
		DocumentID:    receipt.DocumentID,
		DocumentName:  receipt.DocumentName,
		ChunksCreated: receipt.ChunksCreated,
	}, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	answer, err := s.ports.Library.Search(ctx, input.Query, input.DocumentID, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Answer:  answer.Answer,
		Sources: answer.SourceDocuments,
		Chunks:  make([]RetrievedChunkOut, len(answer.RetrievedChunks)),
		Count:   len(answer.RetrievedChunks),
	}

	for i, chunk := range answer.RetrievedChunks {
		output.Chunks[i] = RetrievedChunkOut{
			DocumentID:   chunk.DocumentID,
			DocumentName: chunk.DocumentName,
			ChunkIndex:   chunk.ChunkIndex,
			Text:         chunk.TextContent,
			Score:        chunk.Score,
		}
	}

	return nil, output, nil
}

// handleList handles the list tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListOutput, error) {
	docs, err := s.ports.Library.ListDocuments(ctx)
	if err != nil {
		return nil, ListOutput{}, err
	}

	output := ListOutput{
		Documents: make([]DocumentInfoOut, len(docs)),
		Count:     len(docs),
	}
	for i, doc := range docs {
		output.Documents[i] = DocumentInfoOut{
			DocumentID:   doc.DocumentID,
			DocumentName: doc.DocumentName,
			DocumentType: doc.DocumentType,
			ChunkCount:   doc.ChunkCount,
			LastUpdated:  doc.LastUpdated.UTC().Format(time.RFC3339),
		}
	}

	return nil, output, nil
}

// handleDelete handles the delete tool invocation.
func (s *Server) handleDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	deleted, err := s.ports.Library.DeleteDocument(ctx, input.DocumentID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}
	if deleted == 0 {
		return nil, DeleteOutput{}, fmt.Errorf("%w: document %s", domain.ErrNotFound, input.DocumentID)
	}

	return nil, DeleteOutput{DeletedChunks: deleted}, nil
}
