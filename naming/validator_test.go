package naming

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNormalize(t *testing.T, raw ...RawSelector) []NormalizedSelector {
	t.Helper()
	configs, err := Normalize(raw)
	require.NoError(t, err)
	return configs
}

func run(configs []NormalizedSelector, sel Selector, name string, mods Modifier) *Diagnostic {
	return CreateValidator(sel, configs)(Identifier{Name: name}, mods)
}

func typed(name string, t Type) Identifier {
	return Identifier{Name: name, Type: func() Type { return t }}
}

func TestVariableCamelCase(t *testing.T) {
	configs := mustNormalize(t, RawSelector{Selector: SelectorList{"variable"}, Format: []string{"camelCase"}})

	assert.Nil(t, run(configs, SelectorVariable, "myVar", ModifierConst))

	diag := run(configs, SelectorVariable, "my_var", ModifierConst)
	require.NotNil(t, diag)
	assert.Equal(t, MsgDoesNotMatchFormat, diag.MessageID)
	assert.Equal(t, "camelCase", diag.Data.Formats)
	assert.Equal(t, "Variable name `my_var` must match one of the following formats: camelCase", diag.Message())
}

func TestModifierScopedRuleOutranksBroadRule(t *testing.T) {
	configs := mustNormalize(t,
		RawSelector{
			Selector:          SelectorList{"classProperty"},
			Modifiers:         []string{"private"},
			Format:            []string{"camelCase"},
			LeadingUnderscore: "require",
		},
		RawSelector{Selector: SelectorList{"classProperty"}, Format: []string{"camelCase"}},
	)

	assert.Nil(t, run(configs, SelectorClassProperty, "name", ModifierPublic))
	assert.Nil(t, run(configs, SelectorClassProperty, "_cache", ModifierPrivate))

	diag := run(configs, SelectorClassProperty, "cache", ModifierPrivate|ModifierReadonly)
	require.NotNil(t, diag)
	assert.Equal(t, MsgMissingUnderscore, diag.MessageID)
	assert.Equal(t, "one", diag.Data.Count)
	assert.Equal(t, "leading", diag.Data.Position)
	assert.Equal(t, 0, diag.RuleIndex)
	assert.Equal(t, "Class Property name `cache` must have one leading underscore(s).", diag.Message())
}

func TestEnumMemberUpperCase(t *testing.T) {
	configs := mustNormalize(t, RawSelector{Selector: SelectorList{"enumMember"}, Format: []string{"UPPER_CASE"}})

	assert.Nil(t, run(configs, SelectorEnumMember, "RED", 0))
	diag := run(configs, SelectorEnumMember, "Red", 0)
	require.NotNil(t, diag)
	assert.Equal(t, MsgDoesNotMatchFormat, diag.MessageID)
}

func TestInterfacePrefix(t *testing.T) {
	configs := mustNormalize(t, RawSelector{
		Selector: SelectorList{"interface"},
		Format:   []string{"PascalCase"},
		Prefix:   []string{"I"},
	})

	assert.Nil(t, run(configs, SelectorInterface, "IUser", ModifierExported))

	diag := run(configs, SelectorInterface, "User", 0)
	require.NotNil(t, diag)
	assert.Equal(t, MsgMissingAffix, diag.MessageID)
	assert.Equal(t, "Interface name `User` must have one of the following prefixes: I", diag.Message())
}

func TestQuotedNamesSkipFormat(t *testing.T) {
	configs := mustNormalize(t, RawSelector{Selector: SelectorList{"objectLiteralProperty"}, Format: []string{"camelCase"}})

	assert.Nil(t, run(configs, SelectorObjectLiteralProperty, "Foo-bar", ModifierPublic|ModifierRequiresQuotes))
	assert.Nil(t, run(configs, SelectorObjectLiteralProperty, "foo_bar", ModifierPublic|ModifierRequiresQuotes))

	diag := run(configs, SelectorObjectLiteralProperty, "foo_bar", ModifierPublic)
	require.NotNil(t, diag)
	assert.Equal(t, MsgDoesNotMatchFormat, diag.MessageID)
}

func TestQuotedNamesStillCheckAffixes(t *testing.T) {
	configs := mustNormalize(t, RawSelector{
		Selector: SelectorList{"objectLiteralProperty"},
		Format:   []string{"camelCase"},
		Prefix:   []string{"x-"},
	})

	diag := run(configs, SelectorObjectLiteralProperty, "content-type", ModifierRequiresQuotes)
	require.NotNil(t, diag)
	assert.Equal(t, MsgMissingAffix, diag.MessageID)
}

func TestFirstMatchingRuleIsAuthoritative(t *testing.T) {
	configs := mustNormalize(t,
		RawSelector{Selector: SelectorList{"variable"}, Format: []string{"camelCase"}},
		RawSelector{Selector: SelectorList{"variable"}, Modifiers: []string{"const"}, Format: []string{"UPPER_CASE"}},
	)

	// the broad rule would pass, the const rule still wins
	diag := run(configs, SelectorVariable, "myVar", ModifierConst)
	require.NotNil(t, diag)
	assert.Equal(t, "UPPER_CASE", diag.Data.Formats)
	assert.Equal(t, 1, diag.RuleIndex)

	assert.Nil(t, run(configs, SelectorVariable, "myVar", 0))
}

func TestNoApplicableRulePasses(t *testing.T) {
	configs := mustNormalize(t, RawSelector{Selector: SelectorList{"enum"}, Format: []string{"PascalCase"}})
	assert.Nil(t, run(configs, SelectorVariable, "ANY_thing", 0))
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		rules []RawSelector
		sel   Selector
		input string
		fails bool
	}{
		{
			name: "individual selector beats default",
			rules: []RawSelector{
				{Selector: SelectorList{"default"}, Format: []string{"UPPER_CASE"}},
				{Selector: SelectorList{"variable"}, Format: []string{"camelCase"}},
			},
			sel:   SelectorVariable,
			input: "myVar",
		},
		{
			name: "property beats memberLike",
			rules: []RawSelector{
				{Selector: SelectorList{"memberLike"}, Format: []string{"UPPER_CASE"}},
				{Selector: SelectorList{"property"}, Format: []string{"camelCase"}},
			},
			sel:   SelectorClassProperty,
			input: "fooBar",
		},
		{
			name: "method beats memberLike",
			rules: []RawSelector{
				{Selector: SelectorList{"memberLike"}, Format: []string{"camelCase"}},
				{Selector: SelectorList{"method"}, Format: []string{"UPPER_CASE"}},
			},
			sel:   SelectorClassMethod,
			input: "fooBar",
			fails: true,
		},
		{
			name: "higher meta value beats default",
			rules: []RawSelector{
				{Selector: SelectorList{"default"}, Format: []string{"UPPER_CASE"}},
				{Selector: SelectorList{"memberLike"}, Format: []string{"camelCase"}},
			},
			sel:   SelectorClassMethod,
			input: "fooBar",
		},
		{
			name: "individual selector beats method",
			rules: []RawSelector{
				{Selector: SelectorList{"method"}, Format: []string{"camelCase"}},
				{Selector: SelectorList{"typeMethod"}, Format: []string{"PascalCase"}},
			},
			sel:   SelectorTypeMethod,
			input: "fooBar",
			fails: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configs := mustNormalize(t, tt.rules...)
			diag := run(configs, tt.sel, tt.input, 0)
			if tt.fails {
				assert.NotNil(t, diag)
			} else {
				assert.Nil(t, diag)
			}
		})
	}
}

func TestSortCandidatesOrder(t *testing.T) {
	configs := mustNormalize(t,
		RawSelector{Selector: SelectorList{"default"}},
		RawSelector{Selector: SelectorList{"variable"}, Modifiers: []string{"const"}},
		RawSelector{Selector: SelectorList{"variableLike"}},
		RawSelector{Selector: SelectorList{"variable"}},
		RawSelector{Selector: SelectorList{"variable"}, Filter: &Filter{Match: true, Regex: "^x"}},
		RawSelector{Selector: SelectorList{"function"}},
	)

	got := SortCandidates(SelectorVariable, configs)
	var order []int
	for _, c := range got {
		order = append(order, c.Index)
	}
	if diff := cmp.Diff([]int{4, 1, 3, 2, 0}, order); diff != "" {
		t.Errorf("candidate order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortCandidatesIgnoresInputOrder(t *testing.T) {
	narrow := RawSelector{Selector: SelectorList{"classProperty"}, Modifiers: []string{"static", "readonly"}}
	broad := RawSelector{Selector: SelectorList{"classProperty"}, Modifiers: []string{"static"}}

	a := SortCandidates(SelectorClassProperty, mustNormalize(t, narrow, broad))
	b := SortCandidates(SelectorClassProperty, mustNormalize(t, broad, narrow))

	assert.Equal(t, a[0].ModifierWeight, b[0].ModifierWeight)
	assert.Equal(t, int(ModifierStatic|ModifierReadonly), a[0].ModifierWeight)
}

func TestFilter(t *testing.T) {
	configs := mustNormalize(t,
		RawSelector{
			Selector: SelectorList{"variable"},
			Filter:   &Filter{Match: true, Regex: "^foo$"},
			Format:   []string{"UPPER_CASE"},
		},
		RawSelector{
			Selector: SelectorList{"variable"},
			Filter:   &Filter{Match: false, Regex: "^ignored"},
			Format:   []string{"PascalCase"},
		},
		RawSelector{Selector: SelectorList{"variable"}, Format: []string{"camelCase"}},
	)

	assert.NotNil(t, run(configs, SelectorVariable, "foo", 0))
	assert.Equal(t, 1, run(configs, SelectorVariable, "bar", 0).RuleIndex)
	assert.Nil(t, run(configs, SelectorVariable, "Bar", 0))
	// both filters skip it, so the camelCase rule applies
	assert.Nil(t, run(configs, SelectorVariable, "ignoredValue", 0))
}

func TestUnderscoreOptions(t *testing.T) {
	tests := []struct {
		name     string
		leading  string
		trailing string
		input    string
		want     MessageID
		count    string
	}{
		{name: "allow with", leading: "allow", input: "_foo"},
		{name: "allow without", leading: "allow", input: "foo"},
		{name: "allow only strips one", leading: "allow", input: "__foo", want: MsgDoesNotMatchFormatTrimmed},
		{name: "allowDouble strips two", leading: "allowDouble", input: "__foo"},
		{name: "allowDouble keeps single", leading: "allowDouble", input: "_foo", want: MsgDoesNotMatchFormat},
		{name: "allowSingleOrDouble double", leading: "allowSingleOrDouble", input: "__foo"},
		{name: "allowSingleOrDouble single", leading: "allowSingleOrDouble", input: "_foo"},
		{name: "forbid", leading: "forbid", input: "_foo", want: MsgUnexpectedUnderscore, count: "one"},
		{name: "forbid clean", leading: "forbid", input: "foo"},
		{name: "require missing", leading: "require", input: "foo", want: MsgMissingUnderscore, count: "one"},
		{name: "require present", leading: "require", input: "_foo"},
		{name: "requireDouble single", leading: "requireDouble", input: "_foo", want: MsgMissingUnderscore, count: "two"},
		{name: "requireDouble present", leading: "requireDouble", input: "__foo"},
		{name: "trailing allow", trailing: "allow", input: "foo_"},
		{name: "trailing forbid", trailing: "forbid", input: "foo_", want: MsgUnexpectedUnderscore, count: "one"},
		{name: "trailing requireDouble", trailing: "requireDouble", input: "foo__"},
		{name: "both sides", leading: "require", trailing: "require", input: "_foo_"},
		{name: "leading failure stops trailing", leading: "require", trailing: "forbid", input: "foo_", want: MsgMissingUnderscore, count: "one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configs := mustNormalize(t, RawSelector{
				Selector:           SelectorList{"variable"},
				Format:             []string{"camelCase"},
				LeadingUnderscore:  tt.leading,
				TrailingUnderscore: tt.trailing,
			})
			diag := run(configs, SelectorVariable, tt.input, 0)
			if tt.want == "" {
				assert.Nil(t, diag)
				return
			}
			require.NotNil(t, diag)
			assert.Equal(t, tt.want, diag.MessageID)
			assert.Equal(t, tt.count, diag.Data.Count)
		})
	}
}

func TestNoOpUnderscoreStagesKeepCompliantNames(t *testing.T) {
	names := []string{"foo", "fooBar", "x", "httpServer", "a1b2"}
	options := []string{"allow", "allowDouble", "allowSingleOrDouble"}

	for _, option := range options {
		configs := mustNormalize(t, RawSelector{
			Selector:           SelectorList{"variable"},
			Format:             []string{"camelCase"},
			LeadingUnderscore:  option,
			TrailingUnderscore: option,
		})
		for _, name := range names {
			t.Run(option+"/"+name, func(t *testing.T) {
				require.True(t, IsCamelCase(name))
				assert.Nil(t, run(configs, SelectorVariable, name, 0))
			})
		}
	}
}

func TestTrimmedFormatMessage(t *testing.T) {
	configs := mustNormalize(t, RawSelector{
		Selector:          SelectorList{"variable"},
		Format:            []string{"PascalCase"},
		LeadingUnderscore: "allow",
	})

	diag := run(configs, SelectorVariable, "_foo", 0)
	require.NotNil(t, diag)
	assert.Equal(t, MsgDoesNotMatchFormatTrimmed, diag.MessageID)
	assert.Equal(t, "foo", diag.Data.ProcessedName)
	assert.Equal(t, "Variable name `_foo` trimmed as `foo` must match one of the following formats: PascalCase", diag.Message())
}

func TestAffixOrder(t *testing.T) {
	configs := mustNormalize(t, RawSelector{
		Selector: SelectorList{"variable"},
		Format:   []string{"PascalCase"},
		Prefix:   []string{"is", "should", "has"},
		Suffix:   []string{"Flag"},
	})

	assert.Nil(t, run(configs, SelectorVariable, "isReadyFlag", 0))
	assert.Nil(t, run(configs, SelectorVariable, "hasItemsFlag", 0))

	diag := run(configs, SelectorVariable, "readyFlag", 0)
	require.NotNil(t, diag)
	assert.Equal(t, "is, should, has", diag.Data.Affixes)
	assert.Equal(t, "prefix", diag.Data.Position)

	diag = run(configs, SelectorVariable, "isReady", 0)
	require.NotNil(t, diag)
	assert.Equal(t, "Variable name `isReady` must have one of the following suffixes: Flag", diag.Message())
}

func TestCustomRegex(t *testing.T) {
	configs := mustNormalize(t, RawSelector{
		Selector: SelectorList{"variable"},
		Custom:   &MatchRegex{Match: true, Regex: "^[a-z]+$"},
	})
	diag := run(configs, SelectorVariable, "abc1", 0)
	require.NotNil(t, diag)
	assert.Equal(t, MsgSatisfyCustom, diag.MessageID)
	assert.Equal(t, "Variable name `abc1` must match the RegExp: /^[a-z]+$/u", diag.Message())

	configs = mustNormalize(t, RawSelector{
		Selector: SelectorList{"interface"},
		Custom:   &MatchRegex{Match: false, Regex: "^I[A-Z]"},
	})
	diag = run(configs, SelectorInterface, "IUser", 0)
	require.NotNil(t, diag)
	assert.Equal(t, "not match", diag.Data.RegexMatch)
	assert.Nil(t, run(configs, SelectorInterface, "Icon", 0))
}

func TestCustomRunsOnTrimmedName(t *testing.T) {
	configs := mustNormalize(t, RawSelector{
		Selector:          SelectorList{"variable"},
		LeadingUnderscore: "allow",
		Prefix:            []string{"m"},
		Custom:            &MatchRegex{Match: true, Regex: "^[A-Z]"},
	})
	assert.Nil(t, run(configs, SelectorVariable, "_mValue", 0))
}

func TestTypesConstraint(t *testing.T) {
	configs := mustNormalize(t,
		RawSelector{
			Selector: SelectorList{"variable", "function"},
			Types:    []string{"boolean"},
			Format:   []string{"PascalCase"},
			Prefix:   []string{"is", "has"},
		},
		RawSelector{Selector: SelectorList{"default"}, Format: []string{"camelCase"}},
	)
	v := CreateValidator(SelectorVariable, configs)

	assert.Nil(t, v(typed("isReady", Type{Kind: TypeBoolean}), 0))

	diag := v(typed("ready", Type{Kind: TypeBoolean}), 0)
	require.NotNil(t, diag)
	assert.Equal(t, MsgMissingAffix, diag.MessageID)

	// not a boolean: falls through to the default rule
	assert.Nil(t, v(typed("ready", Type{Kind: TypeString}), 0))
	assert.Nil(t, v(Identifier{Name: "ready"}, 0))

	// function does not support types, so the constraint is ignored
	fn := CreateValidator(SelectorFunction, configs)
	assert.NotNil(t, fn(Identifier{Name: "ready"}, 0))
}

func TestEmptyTypesMatchesNothing(t *testing.T) {
	configs := mustNormalize(t,
		RawSelector{Selector: SelectorList{"variable"}, Types: []string{}, Format: []string{"UPPER_CASE"}},
	)
	assert.Nil(t, CreateValidator(SelectorVariable, configs)(typed("myVar", Type{Kind: TypeString}), 0))
}

func TestRuleSet(t *testing.T) {
	rs := NewRuleSet(mustNormalize(t,
		RawSelector{Selector: SelectorList{"typeLike"}, Format: []string{"PascalCase"}},
		RawSelector{Selector: SelectorList{"typeParameter"}, Format: []string{"PascalCase"}, Prefix: []string{"T"}},
	))

	assert.Nil(t, rs.Validate(SelectorClass, Identifier{Name: "Widget"}, 0))
	assert.NotNil(t, rs.Validate(SelectorTypeParameter, Identifier{Name: "Key"}, 0))
	assert.Nil(t, rs.Validate(SelectorTypeParameter, Identifier{Name: "TKey"}, 0))
	assert.Nil(t, rs.Validate(MetaTypeLike, Identifier{Name: "x"}, 0))

	candidates := rs.Candidates(SelectorTypeParameter)
	require.Len(t, candidates, 2)
	assert.Equal(t, SelectorTypeParameter, candidates[0].Selector)
	assert.Len(t, rs.Rules(), 2)
}

func TestDeterministic(t *testing.T) {
	rs := DefaultRuleSet()
	first := rs.Validate(SelectorVariable, Identifier{Name: "Bad_Name"}, ModifierConst)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, rs.Validate(SelectorVariable, Identifier{Name: "Bad_Name"}, ModifierConst))
	}
}

func TestDefaultRuleSet(t *testing.T) {
	rs := DefaultRuleSet()

	tests := []struct {
		sel   Selector
		name  string
		fails bool
	}{
		{SelectorVariable, "MAX_SIZE", false},
		{SelectorVariable, "_privateThing", false},
		{SelectorVariable, "FooBar", true},
		{SelectorImport, "React", false},
		{SelectorImport, "lodash", false},
		{SelectorClass, "fooBar", true},
		{SelectorTypeParameter, "T", false},
		{SelectorParameter, "_unused", false},
		{SelectorClassMethod, "DoThing", true},
		{SelectorEnumMember, "Red", true},
	}
	for _, tt := range tests {
		t.Run(tt.sel.String()+"/"+tt.name, func(t *testing.T) {
			diag := rs.Validate(tt.sel, Identifier{Name: tt.name}, 0)
			if tt.fails {
				require.NotNil(t, diag)
				assert.Equal(t, -1, diag.RuleIndex)
			} else {
				assert.Nil(t, diag)
			}
		})
	}

	diag := rs.Validate(SelectorVariable, Identifier{Name: "FooBar"}, 0)
	require.NotNil(t, diag)
	assert.Equal(t, "camelCase, UPPER_CASE", diag.Data.Formats)
}
