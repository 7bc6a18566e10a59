package typescript

import (
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

type scopeKind int

const (
	scopeProgram scopeKind = iota
	scopeFunction
	scopeBlock
	scopeClass
	scopeType
)

type scope struct {
	kind     scopeKind
	node     *sitter.Node
	parent   *scope
	bindings map[string]*binding
}

func (s *scope) lookup(name string) *binding {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b
		}
	}
	return nil
}

// functionScope is where var declarations land.
func (s *scope) functionScope() *scope {
	cur := s
	for cur.kind != scopeFunction && cur.kind != scopeProgram && cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

type declSite struct {
	id   *sitter.Node
	decl *sitter.Node
}

type binding struct {
	name  string
	scope *scope
	sites []declSite
	// references made inside an owner node are self references and do not
	// count as uses
	owners []*sitter.Node

	used          bool
	exported      bool
	exportedByRef bool
	// exempt bindings are never reported as unused, e.g. the name of a
	// function expression
	exempt bool
}

func (b *binding) unused() bool {
	return !b.used && !b.exported && !b.exempt
}

// analysis is the file-wide scope, usage and export information.
type analysis struct {
	src      []byte
	root     *sitter.Node
	module   bool
	scopes   map[nodeKey]*scope
	declared map[nodeKey]*binding
	// typeDecls indexes interfaces and type aliases by name.
	typeDecls map[string][]*sitter.Node
}

func analyze(root *sitter.Node, src []byte) *analysis {
	a := &analysis{
		src:       src,
		root:      root,
		scopes:    make(map[nodeKey]*scope),
		declared:  make(map[nodeKey]*binding),
		typeDecls: make(map[string][]*sitter.Node),
	}
	program := a.newScope(root, scopeProgram, nil)
	for _, c := range children(root) {
		if c.Type() == "import_statement" || c.Type() == "export_statement" {
			a.module = true
		}
	}
	a.declareIn(root, program)
	a.resolveIn(root, program)
	return a
}

func (a *analysis) text(n *sitter.Node) string {
	return n.Content(a.src)
}

func (a *analysis) newScope(n *sitter.Node, kind scopeKind, parent *scope) *scope {
	s := &scope{kind: kind, node: n, parent: parent, bindings: make(map[string]*binding)}
	a.scopes[keyOf(n)] = s
	return s
}

func (a *analysis) declare(sc *scope, id, decl, owner *sitter.Node) *binding {
	name := a.text(id)
	b, ok := sc.bindings[name]
	if !ok {
		b = &binding{name: name, scope: sc}
		sc.bindings[name] = b
	}
	b.sites = append(b.sites, declSite{id: id, decl: decl})
	if owner != nil {
		b.owners = append(b.owners, owner)
	}
	if exportedDeclaration(decl) {
		b.exported = true
	}
	a.declared[keyOf(id)] = b
	return b
}

// exportedDeclaration reports whether decl sits directly in an export
// statement.
func exportedDeclaration(decl *sitter.Node) bool {
	switch decl.Type() {
	case "variable_declarator":
		if p := decl.Parent(); p != nil {
			return isExportStatement(statementParent(p))
		}
		return false
	case "required_parameter", "optional_parameter", "identifier", "object_pattern",
		"array_pattern", "assignment_pattern", "rest_pattern", "type_parameter",
		"import_clause", "namespace_import", "import_specifier", "for_in_statement", "catch_clause":
		return false
	}
	return isExportStatement(statementParent(decl))
}

func (a *analysis) declareChildren(n *sitter.Node, sc *scope) {
	for _, c := range children(n) {
		a.declareIn(c, sc)
	}
}

func (a *analysis) declareIn(n *sitter.Node, sc *scope) {
	switch n.Type() {
	case "function_declaration", "generator_function_declaration", "function_signature":
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(sc, name, n, n)
		}
		inner := a.newScope(n, scopeFunction, sc)
		a.declareParams(n, inner, n.Type() == "function_signature")
		a.declareChildren(n, inner)
		return

	case "function_expression", "function", "generator_function":
		inner := a.newScope(n, scopeFunction, sc)
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(inner, name, n, n).exempt = true
		}
		a.declareParams(n, inner, false)
		a.declareChildren(n, inner)
		return

	case "arrow_function":
		inner := a.newScope(n, scopeFunction, sc)
		if p := n.ChildByFieldName("parameter"); p != nil {
			a.declare(inner, p, p, nil)
		}
		a.declareParams(n, inner, false)
		a.declareChildren(n, inner)
		return

	case "method_definition":
		inner := a.newScope(n, scopeFunction, sc)
		a.declareParams(n, inner, hasToken(n, "set"))
		a.declareChildren(n, inner)
		return

	case "method_signature", "abstract_method_signature", "function_type",
		"call_signature", "construct_signature", "constructor_type":
		inner := a.newScope(n, scopeFunction, sc)
		a.declareParams(n, inner, true)
		a.declareChildren(n, inner)
		return

	case "class_declaration", "abstract_class_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(sc, name, n, n)
		}
		a.declareChildren(n, a.newScope(n, scopeClass, sc))
		return

	case "class":
		inner := a.newScope(n, scopeClass, sc)
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(inner, name, n, n).used = true
		}
		a.declareChildren(n, inner)
		return

	case "interface_declaration", "type_alias_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(sc, name, n, n)
			a.typeDecls[a.text(name)] = append(a.typeDecls[a.text(name)], n)
		}
		a.declareChildren(n, a.newScope(n, scopeType, sc))
		return

	case "enum_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(sc, name, n, n)
		}

	case "internal_module", "module":
		if name := n.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
			a.declare(sc, name, n, n)
		}

	case "lexical_declaration", "variable_declaration":
		target := sc
		if n.Type() == "variable_declaration" {
			target = sc.functionScope()
		}
		for _, d := range namedChildren(n) {
			if d.Type() != "variable_declarator" {
				continue
			}
			var owner *sitter.Node
			if v := unwrap(d.ChildByFieldName("value")); v != nil && (isFunctionExpression(v) || v.Type() == "class") {
				owner = v
			}
			for _, pi := range patternIdents(d.ChildByFieldName("name")) {
				a.declare(target, pi.node, d, owner)
			}
		}

	case "for_statement":
		a.declareChildren(n, a.newScope(n, scopeBlock, sc))
		return

	case "for_in_statement":
		inner := a.newScope(n, scopeBlock, sc)
		if kind := n.ChildByFieldName("kind"); kind != nil {
			target := inner
			if a.text(kind) == "var" {
				target = sc.functionScope()
			}
			singleReturn := isSingleReturn(n.ChildByFieldName("body"))
			for _, pi := range patternIdents(n.ChildByFieldName("left")) {
				b := a.declare(target, pi.node, n, nil)
				if singleReturn {
					b.used = true
				}
			}
		}
		a.declareChildren(n, inner)
		return

	case "statement_block", "class_static_block", "switch_body":
		a.declareChildren(n, a.newScope(n, scopeBlock, sc))
		return

	case "catch_clause":
		inner := a.newScope(n, scopeBlock, sc)
		for _, pi := range patternIdents(n.ChildByFieldName("parameter")) {
			a.declare(inner, pi.node, n, nil)
		}
		a.declareChildren(n, inner)
		return

	case "import_clause":
		for _, c := range namedChildren(n) {
			switch c.Type() {
			case "identifier":
				a.declare(sc, c, n, nil)
			case "namespace_import":
				if id := childOfType(c, "identifier"); id != nil {
					a.declare(sc, id, c, nil)
				}
			case "named_imports":
				for _, spec := range namedChildren(c) {
					if spec.Type() != "import_specifier" {
						continue
					}
					local := spec.ChildByFieldName("alias")
					if local == nil {
						local = spec.ChildByFieldName("name")
					}
					if local != nil && local.Type() == "identifier" {
						a.declare(sc, local, spec, nil)
					}
				}
			}
		}
		return

	case "type_parameter":
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(sc, name, n, nil)
		}

	case "mapped_type_clause":
		if name := n.ChildByFieldName("name"); name != nil {
			a.declare(sc, name, n, nil).used = true
		}
	}

	a.declareChildren(n, sc)
}

// declareParams binds the parameters of a function-like node. Parameters of
// bodiless signatures and setters are syntactically required, so they count
// as used.
func (a *analysis) declareParams(fn *sitter.Node, sc *scope, alwaysUsed bool) {
	for _, param := range parameters(fn) {
		used := alwaysUsed || param.property
		for _, pi := range patternIdents(param.pattern) {
			b := a.declare(sc, pi.node, param.node, nil)
			if used {
				b.used = true
			}
		}
	}
}

func isSingleReturn(body *sitter.Node) bool {
	if body == nil {
		return false
	}
	if body.Type() == "statement_block" {
		stmts := namedChildren(body)
		if len(stmts) != 1 {
			return false
		}
		body = stmts[0]
	}
	return body.Type() == "return_statement"
}

func (a *analysis) resolveChildren(n *sitter.Node, sc *scope) {
	for _, c := range children(n) {
		a.resolveIn(c, sc)
	}
}

func (a *analysis) resolveIn(n *sitter.Node, sc *scope) {
	if s, ok := a.scopes[keyOf(n)]; ok {
		sc = s
	}

	switch n.Type() {
	case "identifier", "type_identifier", "shorthand_property_identifier":
		if _, isDecl := a.declared[keyOf(n)]; isDecl || !a.isReference(n) {
			return
		}
		if b := sc.lookup(a.text(n)); b != nil {
			a.reference(b, n)
		}
		return

	case "export_specifier":
		stmt := n.Parent()
		for stmt != nil && stmt.Type() != "export_statement" {
			stmt = stmt.Parent()
		}
		if stmt != nil && stmt.ChildByFieldName("source") != nil {
			// re-export from another module
			return
		}
		if name := n.ChildByFieldName("name"); name != nil {
			if b := sc.lookup(a.text(name)); b != nil {
				b.used = true
				b.exportedByRef = true
			}
		}
		return

	case "export_statement":
		if v := unwrap(n.ChildByFieldName("value")); v != nil && v.Type() == "identifier" {
			if b := sc.lookup(a.text(v)); b != nil {
				b.used = true
				b.exportedByRef = true
			}
		}
	}

	a.resolveChildren(n, sc)
}

// isReference reports whether an identifier reads a binding.
func (a *analysis) isReference(n *sitter.Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	switch p.Type() {
	case "import_specifier", "export_specifier", "namespace_import", "import_clause", "namespace_export":
		return false
	case "nested_type_identifier":
		return !sameNode(p.ChildByFieldName("name"), n)
	case "jsx_opening_element", "jsx_closing_element", "jsx_self_closing_element":
		r, _ := utf8.DecodeRuneInString(a.text(n))
		return !unicode.IsLower(r)
	}
	return !a.isWriteOnly(n)
}

// isWriteOnly reports whether n is only assigned to, as in `x = 1` or a
// statement-level `x++`.
func (a *analysis) isWriteOnly(n *sitter.Node) bool {
	child := n
	for p := n.Parent(); p != nil; child, p = p, p.Parent() {
		switch p.Type() {
		case "assignment_expression", "augmented_assignment_expression":
			return sameNode(p.ChildByFieldName("left"), child)
		case "update_expression":
			gp := p.Parent()
			return gp != nil && gp.Type() == "expression_statement"
		case "for_in_statement":
			return p.ChildByFieldName("kind") == nil && sameNode(p.ChildByFieldName("left"), child)
		case "object_pattern", "array_pattern", "pair_pattern", "rest_pattern",
			"object_assignment_pattern", "assignment_pattern", "parenthesized_expression":
			if (p.Type() == "object_assignment_pattern" || p.Type() == "assignment_pattern") &&
				sameNode(p.ChildByFieldName("right"), child) {
				return false
			}
			if p.Type() == "pair_pattern" && sameNode(p.ChildByFieldName("key"), child) {
				return false
			}
			continue
		}
		return false
	}
	return false
}

func (a *analysis) reference(b *binding, ref *sitter.Node) {
	for _, owner := range b.owners {
		if contains(owner, ref) {
			return
		}
	}
	b.used = true
}

// scopeOf returns the scope n creates, or the innermost scope containing it.
func (a *analysis) scopeOf(n *sitter.Node) *scope {
	for cur := n; cur != nil; cur = cur.Parent() {
		if s, ok := a.scopes[keyOf(cur)]; ok {
			return s
		}
	}
	return a.scopes[keyOf(a.root)]
}

// enclosingScope returns the scope n is declared in, ignoring any scope n
// creates itself.
func (a *analysis) enclosingScope(n *sitter.Node) *scope {
	if p := n.Parent(); p != nil {
		return a.scopeOf(p)
	}
	return a.scopes[keyOf(a.root)]
}

func (a *analysis) isUnused(name string, sc *scope) bool {
	b := sc.lookup(name)
	return b != nil && b.unused()
}

func (a *analysis) isExported(decl *sitter.Node, name string, sc *scope) bool {
	if decl != nil && isExportStatement(statementParent(decl)) {
		return true
	}
	if b, ok := sc.bindings[name]; ok {
		return b.exportedByRef
	}
	return false
}

func isGlobal(sc *scope) bool {
	return sc != nil && sc.kind == scopeProgram
}

// bindingOf returns the binding an identifier declares or refers to.
func (a *analysis) bindingOf(id *sitter.Node) *binding {
	if b, ok := a.declared[keyOf(id)]; ok {
		return b
	}
	return a.scopeOf(id).lookup(a.text(id))
}
