package javascript

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/oxhq/namelint/providers"
	"github.com/oxhq/namelint/providers/base"
	"github.com/oxhq/namelint/providers/typescript"
)

// Config implements LanguageConfig for JavaScript
type Config struct{}

// Language identifier
func (c *Config) Language() string {
	return "javascript"
}

// Extensions supported
func (c *Config) Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs"}
}

// GetLanguage returns tree-sitter language for JavaScript
func (c *Config) GetLanguage() *sitter.Language {
	return javascript.GetLanguage()
}

// Collect reuses the TypeScript collector. JavaScript trees are a subset of
// TypeScript ones apart from field_definition and bare parameter patterns,
// which the collector handles.
func (c *Config) Collect(run *base.Run, emit func(providers.Occurrence)) {
	typescript.Collect(run, emit)
}
