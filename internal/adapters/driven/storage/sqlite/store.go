package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/listenloom/docquery/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// Store is a SQLite-backed chunk store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store in the given data directory.
// If dataDir is empty, defaults to ~/.docquery/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docquery", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// WAL mode for better concurrency between readers and the writer.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// PutChunks stores a batch of chunks in one transaction.
func (s *Store) PutChunks(ctx context.Context, chunks []domain.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks
			(document_id, chunk_index, document_name, document_type,
			 text_content, char_start, char_end, embedding,
			 page_number, section_title, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_id, chunk_index) DO UPDATE SET
			document_name = excluded.document_name,
			document_type = excluded.document_type,
			text_content = excluded.text_content,
			char_start = excluded.char_start,
			char_end = excluded.char_end,
			embedding = excluded.embedding,
			page_number = excluded.page_number,
			section_title = excluded.section_title,
			created_at = excluded.created_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx,
			chunk.DocumentID, chunk.ChunkIndex, chunk.DocumentName, chunk.DocumentType,
			chunk.TextContent, chunk.CharStart, chunk.CharEnd, embeddingBlob,
			chunk.PageNumber, chunk.SectionTitle, chunk.Timestamp); err != nil {
			return fmt.Errorf("saving chunk %d of %s: %w", chunk.ChunkIndex, chunk.DocumentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// VectorSearch scans every embedded chunk and returns the limit
// nearest by cosine similarity, highest first. Chunks without an
// embedding never match. Infrastructure failures are reported as
// domain.ErrStoreSearch so the retriever can degrade to keywords.
func (s *Store) VectorSearch(ctx context.Context, query []float32, limit int, documentID string) ([]domain.RetrievedChunk, error) {
	q := `
		SELECT document_id, chunk_index, document_name, document_type,
		       text_content, char_start, char_end, embedding,
		       page_number, section_title, created_at
		FROM chunks WHERE embedding IS NOT NULL
	`
	args := []any{}
	if documentID != "" {
		q += " AND document_id = ?"
		args = append(args, documentID)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %w", domain.ErrStoreSearch, err)
	}
	defer rows.Close()

	var hits []domain.RetrievedChunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrStoreSearch, err)
		}
		if len(chunk.Embedding) == 0 {
			continue
		}
		hits = append(hits, domain.RetrievedChunk{
			DocumentChunk: *chunk,
			Score:         cosineSimilarity(query, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %w", domain.ErrStoreSearch, err)
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Find returns all chunks, optionally filtered to one document,
// ordered by document ID and chunk index.
func (s *Store) Find(ctx context.Context, documentID string) ([]domain.DocumentChunk, error) {
	q := `
		SELECT document_id, chunk_index, document_name, document_type,
		       text_content, char_start, char_end, embedding,
		       page_number, section_title, created_at
		FROM chunks
	`
	args := []any{}
	if documentID != "" {
		q += " WHERE document_id = ?"
		args = append(args, documentID)
	}
	q += " ORDER BY document_id, chunk_index"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.DocumentChunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// ListDocuments aggregates chunk rows into one entry per document.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.DocumentInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document_id, document_name, document_type,
		       COUNT(*), MAX(created_at)
		FROM chunks
		GROUP BY document_id
		ORDER BY document_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.DocumentInfo //nolint:prealloc // size unknown from query
	for rows.Next() {
		var info domain.DocumentInfo
		var lastUpdated sql.NullTime
		if err := rows.Scan(&info.DocumentID, &info.DocumentName, &info.DocumentType,
			&info.ChunkCount, &lastUpdated); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if lastUpdated.Valid {
			info.LastUpdated = lastUpdated.Time
		}
		docs = append(docs, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// DeleteDocument removes every chunk of the document and returns the
// number removed.
func (s *Store) DeleteDocument(ctx context.Context, documentID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID)
	if err != nil {
		return 0, fmt.Errorf("deleting document: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted chunks: %w", err)
	}
	return deleted, nil
}

// scanChunk scans a chunk from *sql.Rows.
func scanChunk(rows *sql.Rows) (*domain.DocumentChunk, error) {
	var chunk domain.DocumentChunk
	var embeddingBlob []byte
	var pageNumber sql.NullInt64
	var sectionTitle sql.NullString
	var createdAt sql.NullTime

	if err := rows.Scan(&chunk.DocumentID, &chunk.ChunkIndex, &chunk.DocumentName,
		&chunk.DocumentType, &chunk.TextContent, &chunk.CharStart, &chunk.CharEnd,
		&embeddingBlob, &pageNumber, &sectionTitle, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
	if pageNumber.Valid {
		page := int(pageNumber.Int64)
		chunk.PageNumber = &page
	}
	if sectionTitle.Valid {
		chunk.SectionTitle = &sectionTitle.String
	}
	if createdAt.Valid {
		chunk.Timestamp = createdAt.Time
	}

	return &chunk, nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineSimilarity returns 0 for mismatched or zero-magnitude vectors
// rather than failing; a chunk that cannot be compared simply ranks last.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		va, vb := float64(a[i]), float64(b[i])
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
