package main

import (
	"github.com/oxhq/namelint/providers"
	"github.com/oxhq/namelint/providers/javascript"
	"github.com/oxhq/namelint/providers/typescript"
)

// newRegistry registers the built-in language providers.
func newRegistry() *providers.Registry {
	registry := providers.NewRegistry()
	for _, p := range []providers.Provider{
		typescript.New(),
		typescript.NewTSX(),
		javascript.New(),
	} {
		registry.Register(p)
	}
	return registry
}
