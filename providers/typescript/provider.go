package typescript

import "github.com/oxhq/namelint/providers/base"

// New creates the TypeScript provider. Scope and type analysis live in this
// package; parsing and rule dispatch are done by the base provider.
func New() *base.Provider {
	return base.New(&Config{})
}

// NewTSX creates the provider for .tsx files.
func NewTSX() *base.Provider {
	return base.New(&TSXConfig{})
}
