package typescript

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/oxhq/namelint/providers"
	"github.com/oxhq/namelint/providers/base"
)

// Config implements LanguageConfig for TypeScript
type Config struct{}

// Language identifier
func (c *Config) Language() string {
	return "typescript"
}

// Extensions supported
func (c *Config) Extensions() []string {
	return []string{".ts", ".mts", ".cts", ".d.ts"}
}

// GetLanguage returns tree-sitter language for TypeScript
func (c *Config) GetLanguage() *sitter.Language {
	return typescript.GetLanguage()
}

// Collect classifies the named entities of a TypeScript tree
func (c *Config) Collect(run *base.Run, emit func(providers.Occurrence)) {
	Collect(run, emit)
}

// TSXConfig is TypeScript with JSX. The grammars differ on `<T>expr`
// assertions, so .tsx files get their own parser.
type TSXConfig struct{}

func (c *TSXConfig) Language() string {
	return "tsx"
}

func (c *TSXConfig) Extensions() []string {
	return []string{".tsx"}
}

func (c *TSXConfig) GetLanguage() *sitter.Language {
	return tsx.GetLanguage()
}

func (c *TSXConfig) Collect(run *base.Run, emit func(providers.Occurrence)) {
	Collect(run, emit)
}
