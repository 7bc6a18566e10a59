package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// MessageID identifies the kind of naming violation.
type MessageID string

const (
	MsgDoesNotMatchFormat        MessageID = "doesNotMatchFormat"
	MsgDoesNotMatchFormatTrimmed MessageID = "doesNotMatchFormatTrimmed"
	MsgMissingAffix              MessageID = "missingAffix"
	MsgMissingUnderscore         MessageID = "missingUnderscore"
	MsgSatisfyCustom             MessageID = "satisfyCustom"
	MsgUnexpectedUnderscore      MessageID = "unexpectedUnderscore"
)

// MessageIDs lists every message kind.
var MessageIDs = []MessageID{
	MsgDoesNotMatchFormat,
	MsgDoesNotMatchFormatTrimmed,
	MsgMissingAffix,
	MsgMissingUnderscore,
	MsgSatisfyCustom,
	MsgUnexpectedUnderscore,
}

var messageTemplates = map[MessageID]string{
	MsgDoesNotMatchFormat:        "{{type}} name `{{name}}` must match one of the following formats: {{formats}}",
	MsgDoesNotMatchFormatTrimmed: "{{type}} name `{{name}}` trimmed as `{{processedName}}` must match one of the following formats: {{formats}}",
	MsgMissingAffix:              "{{type}} name `{{name}}` must have one of the following {{position}}es: {{affixes}}",
	MsgMissingUnderscore:         "{{type}} name `{{name}}` must have {{count}} {{position}} underscore(s).",
	MsgSatisfyCustom:             "{{type}} name `{{name}}` must {{regexMatch}} the RegExp: {{regex}}",
	MsgUnexpectedUnderscore:      "{{type}} name `{{name}}` must not have a {{position}} underscore.",
}

// Template returns the message template for id.
func (id MessageID) Template() string {
	return messageTemplates[id]
}

// Span locates an identifier in a source file. Lines and columns are 1-based.
type Span struct {
	Line      int `json:"line"`
	Column    int `json:"column"`
	EndLine   int `json:"endLine"`
	EndColumn int `json:"endColumn"`
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// ReportData is the interpolation data of a diagnostic. Fields that do not
// apply to a message kind are empty.
type ReportData struct {
	Affixes       string `json:"affixes,omitempty"`
	Count         string `json:"count,omitempty"`
	Formats       string `json:"formats,omitempty"`
	Name          string `json:"name"`
	Position      string `json:"position,omitempty"`
	ProcessedName string `json:"processedName,omitempty"`
	Regex         string `json:"regex,omitempty"`
	RegexMatch    string `json:"regexMatch,omitempty"`
	Type          string `json:"type"`
}

func (d ReportData) lookup(key string) (string, bool) {
	switch key {
	case "affixes":
		return d.Affixes, true
	case "count":
		return d.Count, true
	case "formats":
		return d.Formats, true
	case "name":
		return d.Name, true
	case "position":
		return d.Position, true
	case "processedName":
		return d.ProcessedName, true
	case "regex":
		return d.Regex, true
	case "regexMatch":
		return d.RegexMatch, true
	case "type":
		return d.Type, true
	}
	return "", false
}

// Diagnostic is a single naming violation.
type Diagnostic struct {
	MessageID MessageID  `json:"messageId"`
	Selector  Selector   `json:"-"`
	Data      ReportData `json:"data"`
	Span      Span       `json:"span"`
	// FailureMessage replaces the built-in template when set.
	FailureMessage string `json:"-"`
	// RuleIndex is the index of the raw rule that produced the diagnostic,
	// -1 for built-in defaults.
	RuleIndex int `json:"rule"`
}

var placeholder = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// Message renders the diagnostic text.
func (d *Diagnostic) Message() string {
	tmpl := d.MessageID.Template()
	if d.FailureMessage != "" {
		tmpl = d.FailureMessage
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if v, ok := d.Data.lookup(key); ok {
			return v
		}
		return m
	})
}

// joinFormats lists formats the way the messages print them.
func joinFormats(formats []PredefinedFormat) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

// regexLiteral renders a pattern the way a JavaScript RegExp with the u flag
// prints itself.
func regexLiteral(source string) string {
	if source == "" {
		return "/(?:)/u"
	}
	var b strings.Builder
	b.WriteByte('/')
	escaped, inClass := false, false
	for _, r := range source {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '[':
			inClass = true
		case r == ']':
			inClass = false
		case r == '/' && !inClass:
			b.WriteByte('\\')
		case r == '\n':
			b.WriteString(`\n`)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteString("/u")
	return b.String()
}
