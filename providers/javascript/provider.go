package javascript

import "github.com/oxhq/namelint/providers/base"

// New creates a JavaScript provider using base functionality with the
// JavaScript grammar.
func New() *base.Provider {
	return base.New(&Config{})
}
