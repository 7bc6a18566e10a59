package typescript

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// nodeKey identifies a node independently of the *sitter.Node wrapper that
// happened to reach it.
type nodeKey struct {
	start, end uint32
	kind       string
}

func keyOf(n *sitter.Node) nodeKey {
	return nodeKey{start: n.StartByte(), end: n.EndByte(), kind: n.Type()}
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return keyOf(a) == keyOf(b)
}

func contains(outer, inner *sitter.Node) bool {
	return inner.StartByte() >= outer.StartByte() && inner.EndByte() <= outer.EndByte()
}

func children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.ChildCount())
	for i := 0; i < int(n.ChildCount()); i++ {
		out = append(out, n.Child(i))
	}
	return out
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// hasToken reports whether n has a direct child of the given type, usually an
// anonymous keyword such as "static" or "async".
func hasToken(n *sitter.Node, token string) bool {
	for _, c := range children(n) {
		if c.Type() == token {
			return true
		}
	}
	return false
}

func childOfType(n *sitter.Node, types ...string) *sitter.Node {
	for _, c := range children(n) {
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

// unwrap strips parentheses around an expression or type.
func unwrap(n *sitter.Node) *sitter.Node {
	for n != nil && (n.Type() == "parenthesized_expression" || n.Type() == "parenthesized_type") {
		inner := n.NamedChild(0)
		if inner == nil {
			break
		}
		n = inner
	}
	return n
}

// annotated returns the type inside a type_annotation field.
func annotated(n *sitter.Node, fieldName string) *sitter.Node {
	ann := n.ChildByFieldName(fieldName)
	if ann == nil {
		return nil
	}
	if ann.Type() == "type_annotation" || ann.Type() == "opting_type_annotation" {
		return ann.NamedChild(0)
	}
	return ann
}

func isFunctionExpression(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "function_expression", "function", "arrow_function", "generator_function":
		return true
	}
	return false
}

func isClassNode(n *sitter.Node) bool {
	switch n.Type() {
	case "class_declaration", "abstract_class_declaration", "class":
		return true
	}
	return false
}

// statementParent skips wrappers that sit between a declaration and the
// statement list, such as "declare".
func statementParent(n *sitter.Node) *sitter.Node {
	p := n.Parent()
	for p != nil && p.Type() == "ambient_declaration" {
		p = p.Parent()
	}
	return p
}

func isExportStatement(n *sitter.Node) bool {
	return n != nil && n.Type() == "export_statement"
}

// declarationKind returns "var", "let" or "const" for a variable statement.
func declarationKind(decl *sitter.Node, src []byte) string {
	if kind := decl.ChildByFieldName("kind"); kind != nil {
		return kind.Content(src)
	}
	if decl.ChildCount() > 0 {
		return decl.Child(0).Type()
	}
	return ""
}
