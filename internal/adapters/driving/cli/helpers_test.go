package cli

import (
	"context"

	"github.com/listenloom/docquery/internal/adapters/driven/config/file"
	"github.com/listenloom/docquery/internal/adapters/driven/storage/memory"
	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driving"
	"github.com/listenloom/docquery/internal/extractors"
	"github.com/listenloom/docquery/internal/extractors/plaintext"
)

// mockLibraryService records calls and returns canned results.
type mockLibraryService struct {
	receipt *domain.UploadReceipt
	answer  *domain.SearchAnswer
	docs    []domain.DocumentInfo
	deleted int64
	err     error

	lastPath      string
	lastChunkSize int
	lastOverlap   int
	lastQuery     string
	lastDocID     string
	lastLimit     int
}

var _ driving.LibraryService = (*mockLibraryService)(nil)

func (m *mockLibraryService) Upload(_ context.Context, path string, chunkSize, overlap int) (*domain.UploadReceipt, error) {
	m.lastPath = path
	m.lastChunkSize = chunkSize
	m.lastOverlap = overlap
	if m.err != nil {
		return nil, m.err
	}
	return m.receipt, nil
}

func (m *mockLibraryService) Search(_ context.Context, query, documentID string, limit int) (*domain.SearchAnswer, error) {
	m.lastQuery = query
	m.lastDocID = documentID
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockLibraryService) ListDocuments(context.Context) ([]domain.DocumentInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

func (m *mockLibraryService) DeleteDocument(context.Context, string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.deleted, nil
}

func defaultMockLibrary() *mockLibraryService {
	return &mockLibraryService{
		receipt: &domain.UploadReceipt{
			DocumentID:    "doc-1",
			DocumentName:  "notes.txt",
			ChunksCreated: 3,
		},
		answer: &domain.SearchAnswer{
			Answer:          "The answer is grounded in the sources below.",
			SourceDocuments: []string{"notes.txt"},
			RetrievedChunks: []domain.RetrievedChunk{
				{DocumentChunk: domain.DocumentChunk{DocumentID: "doc-1", DocumentName: "notes.txt", ChunkIndex: 0}, Score: 0.91},
			},
		},
		deleted: 3,
	}
}

// setupTestServices wires the package-level services with in-memory
// fakes so commands can execute without config files or API keys.
// The returned cleanup restores the previous wiring.
func setupTestServices() func() {
	oldCfg := cfg
	oldStore := chunkStore
	oldRegistry := extractorRegistry
	oldLibrary := libraryService

	cfg = file.Default()
	chunkStore = memory.NewChunkStore()
	extractorRegistry = extractors.NewRegistry(plaintext.New())
	libraryService = defaultMockLibrary()

	return func() {
		cfg = oldCfg
		chunkStore = oldStore
		extractorRegistry = oldRegistry
		libraryService = oldLibrary
	}
}

// testLibrary returns the mock installed by setupTestServices.
func testLibrary() *mockLibraryService {
	return libraryService.(*mockLibraryService)
}
