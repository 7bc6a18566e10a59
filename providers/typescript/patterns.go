package typescript

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

type patternIdent struct {
	node *sitter.Node
	// destructured marks shorthand object pattern entries: `{ x }` and
	// `{ x = 2 }`, but not `{ x: y }`.
	destructured bool
}

// patternIdents lists the identifiers a binding pattern declares, in source
// order.
func patternIdents(p *sitter.Node) []patternIdent {
	var out []patternIdent
	collectPattern(p, &out)
	return out
}

func collectPattern(p *sitter.Node, out *[]patternIdent) {
	if p == nil {
		return
	}
	switch p.Type() {
	case "identifier":
		*out = append(*out, patternIdent{node: p})
	case "shorthand_property_identifier_pattern":
		*out = append(*out, patternIdent{node: p, destructured: true})
	case "object_assignment_pattern":
		left := p.ChildByFieldName("left")
		if left != nil && left.Type() == "shorthand_property_identifier_pattern" {
			*out = append(*out, patternIdent{node: left, destructured: true})
			return
		}
		collectPattern(left, out)
	case "pair_pattern":
		collectPattern(p.ChildByFieldName("value"), out)
	case "assignment_pattern":
		collectPattern(p.ChildByFieldName("left"), out)
	case "object_pattern", "array_pattern", "rest_pattern":
		for _, c := range namedChildren(p) {
			collectPattern(c, out)
		}
	}
}

type param struct {
	node    *sitter.Node
	pattern *sitter.Node
	// property marks constructor parameter properties such as
	// `private readonly x`.
	property bool
}

// parameters lists the formal parameters of a function-like node. `this`
// parameters are skipped.
func parameters(fn *sitter.Node) []param {
	list := fn.ChildByFieldName("parameters")
	if list == nil {
		return nil
	}
	var out []param
	for _, c := range namedChildren(list) {
		switch c.Type() {
		case "required_parameter", "optional_parameter":
			pattern := c.ChildByFieldName("pattern")
			if pattern == nil || pattern.Type() == "this" {
				continue
			}
			property := childOfType(c, "accessibility_modifier", "override_modifier") != nil ||
				hasToken(c, "readonly")
			out = append(out, param{node: c, pattern: pattern, property: property})
		case "identifier", "assignment_pattern", "object_pattern", "array_pattern", "rest_pattern":
			out = append(out, param{node: c, pattern: c})
		}
	}
	return out
}

// keyName returns the property name a key node spells. Computed keys have
// no static name.
func keyName(key *sitter.Node, src []byte) (name string, private, ok bool) {
	if key == nil {
		return "", false, false
	}
	text := key.Content(src)
	switch key.Type() {
	case "property_identifier", "identifier", "type_identifier",
		"shorthand_property_identifier", "statement_identifier":
		return text, false, true
	case "private_property_identifier":
		return strings.TrimPrefix(text, "#"), true, true
	case "string":
		return unquote(text), false, true
	case "number":
		return numberKey(text), false, true
	}
	return "", false, false
}
