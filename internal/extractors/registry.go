package extractors

import (
	"fmt"
	"sort"

	"github.com/listenloom/docquery/internal/core/domain"
	"github.com/listenloom/docquery/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps file extensions to extractors. Registration happens at
// startup; lookups are read-only afterwards.
type Registry struct {
	byExtension map[string]driven.Extractor
}

// NewRegistry creates a registry holding the given extractors. A later
// registration for an extension wins over an earlier one.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byExtension: make(map[string]driven.Extractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor for every extension it supports.
func (r *Registry) Register(e driven.Extractor) {
	for _, ext := range e.SupportedExtensions() {
		r.byExtension[ext] = e
	}
}

// ForExtension returns the extractor for the normalized extension.
func (r *Registry) ForExtension(ext string) (driven.Extractor, error) {
	e, ok := r.byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: .%s", domain.ErrUnsupportedFormat, ext)
	}
	return e, nil
}

// Supported reports whether the extension has a registered extractor.
func (r *Registry) Supported(ext string) bool {
	_, ok := r.byExtension[ext]
	return ok
}

// Extensions returns every registered extension in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
