package typescript

import (
	"context"
	"slices"
	"testing"

	"github.com/oxhq/namelint/naming"
	"github.com/oxhq/namelint/providers"
)

func collect(t *testing.T, source string) []providers.Occurrence {
	t.Helper()
	occs, err := New().Occurrences(context.Background(), []byte(source))
	if err != nil {
		t.Fatalf("Occurrences failed: %v", err)
	}
	return occs
}

func find(occs []providers.Occurrence, sel naming.Selector, name string) *providers.Occurrence {
	for i := range occs {
		if occs[i].Selector == sel && occs[i].Identifier.Name == name {
			return &occs[i]
		}
	}
	return nil
}

func mustFind(t *testing.T, occs []providers.Occurrence, sel naming.Selector, name string) providers.Occurrence {
	t.Helper()
	o := find(occs, sel, name)
	if o == nil {
		t.Fatalf("no %s occurrence named %q", sel, name)
	}
	return *o
}

func TestTypeScriptProvider_Metadata(t *testing.T) {
	provider := New()
	if provider.Language() != "typescript" {
		t.Errorf("Expected language 'typescript', got '%s'", provider.Language())
	}
	for _, ext := range []string{".ts", ".mts", ".cts", ".d.ts"} {
		if !slices.Contains(provider.Extensions(), ext) {
			t.Errorf("Expected extension '%s' not found", ext)
		}
	}

	tsx := NewTSX()
	if tsx.Language() != "tsx" {
		t.Errorf("Expected language 'tsx', got '%s'", tsx.Language())
	}
}

const classified = `
import Def, { named } from "./m";
import * as ns from "./ns";

export const API_URL = "x";
let counter = 0;
counter++;

function compute(input: number, { verbose }: Opts): number {
	return input;
}

class Widget<TItem> implements Renderer {
	private readonly size: number = 1;
	#secret = 2;
	static create() {}
	render() {}
	get width(): number { return 1; }
	constructor(public readonly owner: string) {}
}

interface Renderer { render(): void; }
interface Opts { readonly verbose: boolean; callback: () => void; }
type Alias = string;
enum Color { Red, "needs-quote" }
const Status = { Ok: 200 } as const;
const obj = { key: 1, method() {}, arrow: () => 1 };
`

func TestCollectClassifiesEntities(t *testing.T) {
	occs := collect(t, classified)

	tests := []struct {
		sel     naming.Selector
		name    string
		want    naming.Modifier
		without naming.Modifier
	}{
		{naming.SelectorImport, "Def", naming.ModifierDefault, 0},
		{naming.SelectorImport, "ns", naming.ModifierNamespace, 0},
		{naming.SelectorVariable, "API_URL", naming.ModifierConst | naming.ModifierGlobal | naming.ModifierExported, naming.ModifierUnused},
		{naming.SelectorVariable, "counter", naming.ModifierGlobal | naming.ModifierUnused, naming.ModifierConst},
		{naming.SelectorFunction, "compute", naming.ModifierGlobal | naming.ModifierUnused, naming.ModifierExported},
		{naming.SelectorParameter, "input", 0, naming.ModifierUnused | naming.ModifierDestructured},
		{naming.SelectorParameter, "verbose", naming.ModifierDestructured | naming.ModifierUnused, 0},
		{naming.SelectorClass, "Widget", naming.ModifierUnused, naming.ModifierExported},
		{naming.SelectorTypeParameter, "TItem", naming.ModifierUnused, 0},
		{naming.SelectorClassProperty, "size", naming.ModifierPrivate | naming.ModifierReadonly, naming.ModifierPublic},
		{naming.SelectorClassProperty, "secret", naming.ModifierHashPrivate, naming.ModifierPublic},
		{naming.SelectorClassMethod, "create", naming.ModifierPublic | naming.ModifierStatic, 0},
		{naming.SelectorClassicAccessor, "width", naming.ModifierPublic, 0},
		{naming.SelectorParameterProperty, "owner", naming.ModifierPublic | naming.ModifierReadonly, 0},
		{naming.SelectorInterface, "Renderer", 0, naming.ModifierUnused},
		{naming.SelectorInterface, "Opts", 0, naming.ModifierUnused},
		{naming.SelectorTypeMethod, "render", naming.ModifierPublic, 0},
		{naming.SelectorTypeProperty, "verbose", naming.ModifierPublic | naming.ModifierReadonly, 0},
		{naming.SelectorTypeMethod, "callback", naming.ModifierPublic, 0},
		{naming.SelectorTypeAlias, "Alias", naming.ModifierUnused, 0},
		{naming.SelectorEnum, "Color", naming.ModifierUnused, 0},
		{naming.SelectorEnumMember, "Red", 0, naming.ModifierRequiresQuotes},
		{naming.SelectorEnumMember, "needs-quote", naming.ModifierRequiresQuotes, 0},
		{naming.SelectorObjectStyleEnum, "Status", naming.ModifierConst | naming.ModifierGlobal, 0},
		{naming.SelectorObjectLiteralProperty, "Ok", naming.ModifierPublic, 0},
		{naming.SelectorVariable, "obj", naming.ModifierConst, 0},
		{naming.SelectorObjectLiteralProperty, "key", naming.ModifierPublic, 0},
		{naming.SelectorObjectLiteralMethod, "method", naming.ModifierPublic, 0},
		{naming.SelectorObjectLiteralMethod, "arrow", naming.ModifierPublic, 0},
	}

	for _, tt := range tests {
		t.Run(tt.sel.String()+"/"+tt.name, func(t *testing.T) {
			o := mustFind(t, occs, tt.sel, tt.name)
			if !o.Modifiers.Has(tt.want) {
				t.Errorf("modifiers %s, want %s", o.Modifiers, tt.want)
			}
			if tt.without != 0 && o.Modifiers&tt.without != 0 {
				t.Errorf("modifiers %s must not include %s", o.Modifiers, tt.without)
			}
		})
	}
}

func TestCollectSkipsUnnamedEntities(t *testing.T) {
	occs := collect(t, classified)

	if o := find(occs, naming.SelectorImport, "named"); o != nil {
		t.Error("plain named imports are not checked")
	}
	if o := find(occs, naming.SelectorClassMethod, "constructor"); o != nil {
		t.Error("constructors are not checked")
	}
	if o := find(occs, naming.SelectorClassMethod, "render"); o != nil {
		t.Error("methods implementing a local interface are not checked")
	}
}

func TestCollectSpans(t *testing.T) {
	occs := collect(t, "let first = 1;\nconst second = 2;\n")

	o := mustFind(t, occs, naming.SelectorVariable, "second")
	want := naming.Span{Line: 2, Column: 7, EndLine: 2, EndColumn: 13}
	if o.Identifier.Span != want {
		t.Errorf("span %+v, want %+v", o.Identifier.Span, want)
	}
}

func TestUnusedAnalysis(t *testing.T) {
	source := `
function recurse(n: number): number { return recurse(n - 1); }
function used() {}
used();
let written = 1;
written = 2;
export { exportedLater };
const exportedLater = 1;
type Self = { next: Self };
for (const key in {}) { return key; }
function withSetter() {
	return { set value(v: number) {} };
}
withSetter();
`
	occs := collect(t, source)

	tests := []struct {
		sel    naming.Selector
		name   string
		unused bool
	}{
		{naming.SelectorFunction, "recurse", true},
		{naming.SelectorFunction, "used", false},
		{naming.SelectorVariable, "written", true},
		{naming.SelectorVariable, "exportedLater", false},
		{naming.SelectorTypeAlias, "Self", true},
		{naming.SelectorVariable, "key", false},
		{naming.SelectorParameter, "n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := mustFind(t, occs, tt.sel, tt.name)
			if got := o.Modifiers.Has(naming.ModifierUnused); got != tt.unused {
				t.Errorf("unused = %v, want %v", got, tt.unused)
			}
		})
	}

	exported := mustFind(t, occs, naming.SelectorVariable, "exportedLater")
	if !exported.Modifiers.Has(naming.ModifierExported) {
		t.Error("a binding named in an export list is exported")
	}
}

func TestScopeModifiers(t *testing.T) {
	source := `
async function outer() {
	const inner = async () => 1;
	return inner;
}
outer();
const named = function local() {};
named();
`
	occs := collect(t, source)

	outer := mustFind(t, occs, naming.SelectorFunction, "outer")
	if !outer.Modifiers.Has(naming.ModifierGlobal | naming.ModifierAsync) {
		t.Errorf("outer modifiers %s", outer.Modifiers)
	}

	inner := mustFind(t, occs, naming.SelectorVariable, "inner")
	if inner.Modifiers.Has(naming.ModifierGlobal) {
		t.Error("function-local variables are not global")
	}
	if !inner.Modifiers.Has(naming.ModifierAsync | naming.ModifierConst) {
		t.Errorf("inner modifiers %s", inner.Modifiers)
	}

	local := mustFind(t, occs, naming.SelectorFunction, "local")
	if local.Modifiers != 0 {
		t.Errorf("function expression names carry no scope modifiers, got %s", local.Modifiers)
	}
}

func TestLintWithDefaultRules(t *testing.T) {
	source := `
const bad_name = 1;
class lowerClass {}
const goodName = bad_name;
export { goodName, lowerClass };
`
	result, err := New().Lint(context.Background(), []byte(source), naming.DefaultRuleSet())
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}
	if len(result.SyntaxErrors) != 0 {
		t.Fatalf("unexpected syntax errors: %v", result.SyntaxErrors)
	}
	if len(result.Diagnostics) != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d: %+v", len(result.Diagnostics), result.Diagnostics)
	}

	got := []string{result.Diagnostics[0].Data.Name, result.Diagnostics[1].Data.Name}
	if !slices.Equal(got, []string{"bad_name", "lowerClass"}) {
		t.Errorf("diagnostics for %v", got)
	}
	for _, d := range result.Diagnostics {
		if d.MessageID != naming.MsgDoesNotMatchFormat {
			t.Errorf("message id %s", d.MessageID)
		}
	}
	if result.Occurrences != 3 {
		t.Errorf("Expected 3 occurrences, got %d", result.Occurrences)
	}
}

func TestLintTypesConstraint(t *testing.T) {
	configs, err := naming.Normalize([]naming.RawSelector{
		{
			Selector: naming.SelectorList{"variable"},
			Types:    []string{"boolean"},
			Format:   []string{"PascalCase"},
			Prefix:   []string{"is", "has"},
		},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	source := `
const isReady = true;
const loaded: boolean = false;
const total = 1;
`
	result, err := New().Lint(context.Background(), []byte(source), naming.NewRuleSet(configs))
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d: %+v", len(result.Diagnostics), result.Diagnostics)
	}
	d := result.Diagnostics[0]
	if d.Data.Name != "loaded" || d.MessageID != naming.MsgMissingAffix {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestLintReportsSyntaxErrors(t *testing.T) {
	result, err := New().Lint(context.Background(), []byte("const = ;"), naming.DefaultRuleSet())
	if err != nil {
		t.Fatalf("Lint failed: %v", err)
	}
	if len(result.SyntaxErrors) == 0 {
		t.Error("Expected syntax errors")
	}
}

func TestLintCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Lint(ctx, []byte("let a = 1;"), naming.DefaultRuleSet()); err == nil {
		t.Error("Expected context error")
	}
}

func TestAnalysisCacheReleased(t *testing.T) {
	provider := New()
	for i := 0; i < 3; i++ {
		if _, err := provider.Lint(context.Background(), []byte("let a = 1;"), naming.DefaultRuleSet()); err != nil {
			t.Fatalf("Lint failed: %v", err)
		}
	}
	stats := provider.Stats()
	if stats.Active != 0 {
		t.Errorf("Expected all parsers returned, %d active", stats.Active)
	}
	if stats.AnalysisMisses != 3 {
		t.Errorf("Expected one analysis per run, got %d", stats.AnalysisMisses)
	}
}
