package providers

import (
	"context"
	"testing"

	"github.com/oxhq/namelint/naming"
)

// MockProvider for testing
type MockProvider struct {
	language   string
	extensions []string
}

func (m *MockProvider) Language() string {
	return m.language
}

func (m *MockProvider) Extensions() []string {
	return m.extensions
}

func (m *MockProvider) Lint(ctx context.Context, source []byte, rules *naming.RuleSet) (LintResult, error) {
	return LintResult{}, nil
}

func (m *MockProvider) Occurrences(ctx context.Context, source []byte) ([]Occurrence, error) {
	return nil, nil
}

func (m *MockProvider) Stats() Stats {
	return Stats{}
}

func TestNewRegistry(t *testing.T) {
	registry := NewRegistry()

	if registry == nil {
		t.Error("NewRegistry should return non-nil registry")
	}

	if registry.providers == nil {
		t.Error("Registry providers map should be initialized")
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&MockProvider{language: "mocklang", extensions: []string{".mock"}})

	p, ok := registry.Get("mocklang")
	if !ok || p.Language() != "mocklang" {
		t.Fatalf("Get(mocklang) = %v, %v", p, ok)
	}
	if _, ok := registry.Get("missing"); ok {
		t.Error("Get should fail for unregistered languages")
	}
}

func TestRegistryForPath(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&MockProvider{language: "mockdecl", extensions: []string{".d.mk"}})
	registry.Register(&MockProvider{language: "mockplain", extensions: []string{".mk"}})

	tests := []struct {
		path string
		want string
	}{
		{"src/api.d.mk", "mockdecl"},
		{"src/API.MK", "mockplain"},
		{"/abs/dir.mk/file.mk", "mockplain"},
		{"README.md", ""},
	}
	for _, tt := range tests {
		p, ok := registry.ForPath(tt.path)
		if tt.want == "" {
			if ok {
				t.Errorf("ForPath(%q) should not match, got %s", tt.path, p.Language())
			}
			continue
		}
		if !ok || p.Language() != tt.want {
			t.Errorf("ForPath(%q) = %v, want %s", tt.path, p, tt.want)
		}
	}
}

func TestRegistryListSorted(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&MockProvider{language: "zeta", extensions: []string{".zz"}})
	registry.Register(&MockProvider{language: "alpha", extensions: []string{".AA"}})

	langs := registry.Languages()
	if len(langs) != 2 || langs[0] != "alpha" || langs[1] != "zeta" {
		t.Errorf("Languages() = %v", langs)
	}
	list := registry.List()
	if list[0].Language() != "alpha" {
		t.Errorf("List() not sorted: %s first", list[0].Language())
	}
	exts := registry.Extensions()
	if len(exts) != 2 || exts[0] != ".aa" || exts[1] != ".zz" {
		t.Errorf("Extensions() = %v", exts)
	}
}
