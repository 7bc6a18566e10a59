package providers

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oxhq/namelint/naming"
	"github.com/oxhq/namelint/providers/catalog"
)

// Provider interface for language-specific implementations
type Provider interface {
	// Metadata
	Language() string
	Extensions() []string

	// Core operations
	Lint(ctx context.Context, source []byte, rules *naming.RuleSet) (LintResult, error)
	Occurrences(ctx context.Context, source []byte) ([]Occurrence, error)

	// Observability
	Stats() Stats
}

// Occurrence is one named entity found in a file, classified for the rule
// engine.
type Occurrence struct {
	Selector   naming.Selector
	Modifiers  naming.Modifier
	Identifier naming.Identifier
}

// LintResult is what a provider found in one source file.
type LintResult struct {
	Diagnostics  []naming.Diagnostic `json:"diagnostics"`
	Occurrences  int                 `json:"occurrences"`
	SyntaxErrors []string            `json:"syntax_errors,omitempty"`
}

// Registry manages all providers
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider and publishes its extensions to the catalog.
func (r *Registry) Register(provider Provider) {
	r.providers[provider.Language()] = provider
	catalog.Register(catalog.LanguageInfo{
		ID:         provider.Language(),
		Extensions: provider.Extensions(),
	})
}

// Get retrieves provider by language
func (r *Registry) Get(language string) (Provider, bool) {
	p, exists := r.providers[language]
	return p, exists
}

// ForPath picks the provider responsible for a file, if any.
func (r *Registry) ForPath(path string) (Provider, bool) {
	info, ok := catalog.LookupByPath(filepath.Base(path))
	if !ok {
		return nil, false
	}
	return r.Get(info.ID)
}

// List returns all providers sorted by language.
func (r *Registry) List() []Provider {
	result := make([]Provider, 0, len(r.providers))
	for _, lang := range r.Languages() {
		result = append(result, r.providers[lang])
	}
	return result
}

// Languages returns all registered language identifiers, sorted.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.providers))
	for k := range r.providers {
		langs = append(langs, k)
	}
	sort.Strings(langs)
	return langs
}

// Extensions lists every extension claimed by a registered provider.
func (r *Registry) Extensions() []string {
	var exts []string
	for _, p := range r.List() {
		for _, ext := range p.Extensions() {
			exts = append(exts, strings.ToLower(ext))
		}
	}
	return exts
}

// Stats captures parser-pool and analysis-cache metrics exposed by providers.
type Stats struct {
	BorrowCount    int64 `json:"borrow_count"`
	ReturnCount    int64 `json:"return_count"`
	Active         int64 `json:"active"`
	AnalysisHits   int64 `json:"analysis_hits"`
	AnalysisMisses int64 `json:"analysis_misses"`
}
