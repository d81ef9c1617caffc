// Package mcp provides an MCP (Model Context Protocol) server adapter
// for the document library. It enables AI assistants to upload, search
// and manage documents through tool calls.
package mcp

import "errors"

// ErrMissingLibraryService is returned when the library service is not provided.
var ErrMissingLibraryService = errors.New("mcp: library service is required")
