package base

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/namelint/naming"
	"github.com/oxhq/namelint/providers"
)

// LanguageConfig defines language-specific behavior that must be implemented
type LanguageConfig interface {
	// Metadata
	Language() string
	Extensions() []string
	GetLanguage() *sitter.Language

	// Collect classifies every named entity of the run's tree, in document
	// order, and hands each one to emit.
	Collect(run *Run, emit func(providers.Occurrence))
}

// Run is one lint pass over one parsed file.
type Run struct {
	Tree   *sitter.Tree
	Root   *sitter.Node
	Source []byte

	cache *AnalysisCache
}

// NewRun wraps an already parsed tree. The caller owns the tree.
func NewRun(tree *sitter.Tree, source []byte, cache *AnalysisCache) *Run {
	if cache == nil {
		cache = NewAnalysisCache()
	}
	return &Run{Tree: tree, Root: tree.RootNode(), Source: source, cache: cache}
}

// Analysis returns the run-wide analysis, computing it on first use.
func (r *Run) Analysis(compute func() any) any {
	return r.cache.GetOrCompute(r.Tree, compute)
}

// Text returns the source text of node.
func (r *Run) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(r.Source)
}

// Span converts a node position to a 1-based span.
func Span(node *sitter.Node) naming.Span {
	return naming.Span{
		Line:      int(node.StartPoint().Row) + 1,
		Column:    int(node.StartPoint().Column) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
		EndColumn: int(node.EndPoint().Column) + 1,
	}
}

// Provider provides common functionality for all language providers
type Provider struct {
	config   LanguageConfig
	language *sitter.Language
	parsers  sync.Pool
	analyses *AnalysisCache

	borrowed atomic.Int64
	returned atomic.Int64
}

// New creates a base provider with language-specific config
func New(config LanguageConfig) *Provider {
	lang := config.GetLanguage()
	if lang == nil {
		panic(fmt.Sprintf("Failed to load %s language for tree-sitter", config.Language()))
	}

	p := &Provider{
		config:   config,
		language: lang,
		analyses: NewAnalysisCache(),
	}
	p.parsers.New = func() any {
		parser := sitter.NewParser()
		parser.SetLanguage(lang)
		return parser
	}
	return p
}

// Language returns language identifier
func (p *Provider) Language() string {
	return p.config.Language()
}

// Extensions returns supported file extensions
func (p *Provider) Extensions() []string {
	return p.config.Extensions()
}

// Parsers are not safe for concurrent use, so every parse borrows one.
func (p *Provider) borrow() *sitter.Parser {
	p.borrowed.Add(1)
	return p.parsers.Get().(*sitter.Parser)
}

func (p *Provider) release(parser *sitter.Parser) {
	p.returned.Add(1)
	parser.Reset()
	p.parsers.Put(parser)
}

func (p *Provider) parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	parser := p.borrow()
	defer p.release(parser)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source: %w", p.Language(), err)
	}
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source", p.Language())
	}
	return tree, nil
}

// Lint classifies every named entity in source and validates it against rules.
func (p *Provider) Lint(ctx context.Context, source []byte, rules *naming.RuleSet) (providers.LintResult, error) {
	if err := ctx.Err(); err != nil {
		return providers.LintResult{}, err
	}

	tree, err := p.parse(ctx, source)
	if err != nil {
		return providers.LintResult{}, err
	}
	defer tree.Close()
	defer p.analyses.Invalidate(tree)

	run := NewRun(tree, source, p.analyses)
	result := providers.LintResult{}
	findErrors(run.Root, &result.SyntaxErrors)

	p.config.Collect(run, func(o providers.Occurrence) {
		result.Occurrences++
		if diag := rules.Validate(o.Selector, o.Identifier, o.Modifiers); diag != nil {
			result.Diagnostics = append(result.Diagnostics, *diag)
		}
	})
	return result, nil
}

// Occurrences lists every classified entity without validating it.
func (p *Provider) Occurrences(ctx context.Context, source []byte) ([]providers.Occurrence, error) {
	tree, err := p.parse(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	defer p.analyses.Invalidate(tree)

	var out []providers.Occurrence
	p.config.Collect(NewRun(tree, source, p.analyses), func(o providers.Occurrence) {
		// the lazy type query dies with the tree
		o.Identifier.Type = nil
		out = append(out, o)
	})
	return out, nil
}

// Stats reports parser pool usage and analysis cache efficiency.
func (p *Provider) Stats() providers.Stats {
	borrowed, returned := p.borrowed.Load(), p.returned.Load()
	cache := p.analyses.Stats()
	return providers.Stats{
		BorrowCount:    borrowed,
		ReturnCount:    returned,
		Active:         borrowed - returned,
		AnalysisHits:   cache["hits"],
		AnalysisMisses: cache["misses"],
	}
}

// findErrors looks for syntax errors in AST
func findErrors(node *sitter.Node, errors *[]string) {
	if node.Type() == "ERROR" || node.IsMissing() {
		*errors = append(*errors, fmt.Sprintf(
			"Syntax error at line %d, column %d",
			node.StartPoint().Row+1,
			node.StartPoint().Column+1,
		))
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		findErrors(node.Child(i), errors)
	}
}
