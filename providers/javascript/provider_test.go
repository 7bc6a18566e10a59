package javascript

import (
	"context"
	"slices"
	"testing"

	"github.com/oxhq/namelint/naming"
	"github.com/oxhq/namelint/providers"
)

func TestJavaScriptProvider_New(t *testing.T) {
	provider := New()
	if provider == nil {
		t.Fatal("New returned nil")
	}
	if provider.Language() != "javascript" {
		t.Errorf("Expected language 'javascript', got '%s'", provider.Language())
	}
}

func TestJavaScriptProvider_Extensions(t *testing.T) {
	extensions := New().Extensions()
	for _, ext := range []string{".js", ".jsx", ".mjs", ".cjs"} {
		if !slices.Contains(extensions, ext) {
			t.Errorf("Expected extension '%s' not found", ext)
		}
	}
}

func find(occs []providers.Occurrence, sel naming.Selector, name string) *providers.Occurrence {
	for i := range occs {
		if occs[i].Selector == sel && occs[i].Identifier.Name == name {
			return &occs[i]
		}
	}
	return nil
}

func TestJavaScriptProvider_Collect(t *testing.T) {
	source := `
function greet(name, { loud = false }) {
	return "Hello, " + name;
}

class Greeter {
	static count = 0;
	#token = 1;
	hello() {}
}

const config = { retries: 3 };
export default greet;
`
	occs, err := New().Occurrences(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("Occurrences failed: %v", err)
	}

	tests := []struct {
		sel  naming.Selector
		name string
		want naming.Modifier
	}{
		{naming.SelectorFunction, "greet", naming.ModifierGlobal | naming.ModifierExported},
		{naming.SelectorParameter, "name", 0},
		{naming.SelectorParameter, "loud", naming.ModifierDestructured | naming.ModifierUnused},
		{naming.SelectorClass, "Greeter", naming.ModifierUnused},
		{naming.SelectorClassProperty, "count", naming.ModifierPublic | naming.ModifierStatic},
		{naming.SelectorClassProperty, "token", naming.ModifierHashPrivate},
		{naming.SelectorClassMethod, "hello", naming.ModifierPublic},
		{naming.SelectorVariable, "config", naming.ModifierConst | naming.ModifierGlobal | naming.ModifierUnused},
		{naming.SelectorObjectLiteralProperty, "retries", naming.ModifierPublic},
	}
	for _, tt := range tests {
		o := find(occs, tt.sel, tt.name)
		if o == nil {
			t.Errorf("no %s occurrence named %q", tt.sel, tt.name)
			continue
		}
		if !o.Modifiers.Has(tt.want) {
			t.Errorf("%s %q: modifiers %s, want %s", tt.sel, tt.name, o.Modifiers, tt.want)
		}
	}

	if o := find(occs, naming.SelectorParameter, "name"); o != nil && o.Modifiers.Has(naming.ModifierUnused) {
		t.Error("a read parameter is not unused")
	}
}

func TestJavaScriptProvider_Lint(t *testing.T) {
	source := "const Bad_Name = 1;\nexport { Bad_Name };\n"
	result, err := New().Lint(context.Background(), []byte(source), naming.DefaultRuleSet())
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(result.Diagnostics))
	}
	want := "Variable name `Bad_Name` must match one of the following formats: camelCase, UPPER_CASE"
	if got := result.Diagnostics[0].Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}
