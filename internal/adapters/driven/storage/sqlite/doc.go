// Package sqlite provides a SQLite-backed chunk store. The database
// lives in a single file; embeddings are stored as little-endian
// float32 blobs and similarity search is a brute-force scan, which is
// adequate for personal document libraries.
package sqlite
