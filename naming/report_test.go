package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageTemplates(t *testing.T) {
	data := ReportData{
		Name:          "_x",
		Type:          "Class Method",
		Affixes:       "get, set",
		Position:      "trailing",
		Count:         "two",
		Formats:       "camelCase, PascalCase",
		ProcessedName: "x",
		Regex:         "/^a/u",
		RegexMatch:    "not match",
	}

	tests := []struct {
		id   MessageID
		want string
	}{
		{MsgDoesNotMatchFormat, "Class Method name `_x` must match one of the following formats: camelCase, PascalCase"},
		{MsgDoesNotMatchFormatTrimmed, "Class Method name `_x` trimmed as `x` must match one of the following formats: camelCase, PascalCase"},
		{MsgMissingAffix, "Class Method name `_x` must have one of the following trailinges: get, set"},
		{MsgMissingUnderscore, "Class Method name `_x` must have two trailing underscore(s)."},
		{MsgSatisfyCustom, "Class Method name `_x` must not match the RegExp: /^a/u"},
		{MsgUnexpectedUnderscore, "Class Method name `_x` must not have a trailing underscore."},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			d := &Diagnostic{MessageID: tt.id, Data: data}
			assert.Equal(t, tt.want, d.Message())
		})
	}
	assert.Len(t, MessageIDs, len(tests))
}

func TestFailureMessageOverride(t *testing.T) {
	d := &Diagnostic{
		MessageID:      MsgDoesNotMatchFormat,
		Data:           ReportData{Name: "foo", Type: "Variable"},
		FailureMessage: "{{ name }} is not allowed ({{type}}), see {{docs}}",
	}
	assert.Equal(t, "foo is not allowed (Variable), see {{docs}}", d.Message())
}

func TestFailureMessageFromRule(t *testing.T) {
	configs, err := Normalize([]RawSelector{{
		Selector:       SelectorList{"function"},
		Format:         []string{"camelCase"},
		FailureMessage: "functions are camelCase: {{name}}",
	}})
	assert.NoError(t, err)
	diag := CreateValidator(SelectorFunction, configs)(Identifier{Name: "DoIt", Span: Span{Line: 3, Column: 10}}, 0)
	if assert.NotNil(t, diag) {
		assert.Equal(t, "functions are camelCase: DoIt", diag.Message())
		assert.Equal(t, "3:10", diag.Span.String())
	}
}

func TestRegexLiteral(t *testing.T) {
	assert.Equal(t, "/(?:)/u", regexLiteral(""))
	assert.Equal(t, `/a\/b/u`, regexLiteral("a/b"))
	assert.Equal(t, `/a\/b/u`, regexLiteral(`a\/b`))
	assert.Equal(t, "/[/]/u", regexLiteral("[/]"))
}
