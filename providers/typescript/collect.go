package typescript

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/namelint/naming"
	"github.com/oxhq/namelint/providers"
	"github.com/oxhq/namelint/providers/base"
)

type collector struct {
	run  *base.Run
	a    *analysis
	emit func(providers.Occurrence)
}

// Collect classifies every named entity of a TypeScript or JavaScript tree in
// document order. Scope analysis runs once per tree and is shared through the
// run's analysis cache.
func Collect(run *base.Run, emit func(providers.Occurrence)) {
	a := run.Analysis(func() any {
		return analyze(run.Root, run.Source)
	}).(*analysis)

	c := &collector{run: run, a: a, emit: emit}
	c.walk(run.Root)
}

func (c *collector) walk(n *sitter.Node) {
	c.visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		c.walk(n.Child(i))
	}
}

func (c *collector) text(n *sitter.Node) string {
	return c.run.Text(n)
}

func (c *collector) report(sel naming.Selector, node *sitter.Node, name string, mods naming.Modifier, typ func() naming.Type) {
	id := naming.Identifier{Name: name, Span: base.Span(node)}
	if naming.SupportsTypes(sel) {
		id.Type = typ
	}
	c.emit(providers.Occurrence{Selector: sel, Modifiers: mods, Identifier: id})
}

// member reports a property-like name, adding requiresQuotes when the key
// could not be written bare.
func (c *collector) member(sel naming.Selector, key *sitter.Node, mods naming.Modifier, typ func() naming.Type) {
	name, _, ok := keyName(key, c.run.Source)
	if !ok {
		return
	}
	if RequiresQuoting(name) {
		mods |= naming.ModifierRequiresQuotes
	}
	c.report(sel, key, name, mods, typ)
}

func (c *collector) declaredType(id *sitter.Node) func() naming.Type {
	return func() naming.Type { return c.a.typeOfDeclared(id) }
}

func (c *collector) annotationType(n *sitter.Node, field string, fallback *sitter.Node) func() naming.Type {
	return func() naming.Type {
		if t := annotated(n, field); t != nil {
			return c.a.typeOfAnnotation(t, 0)
		}
		return c.a.typeOfExpr(fallback, 0)
	}
}

func (c *collector) visit(n *sitter.Node) {
	switch n.Type() {
	case "function_declaration", "generator_function_declaration", "function_signature",
		"function_expression", "function", "generator_function":
		c.functionName(n)
		c.params(n)
	case "arrow_function":
		c.params(n)
	case "method_definition":
		c.methodDefinition(n)
		c.params(n)
	case "method_signature":
		if parent := n.Parent(); parent != nil && parent.Type() == "class_body" {
			c.classMethod(n)
			c.params(n)
			return
		}
		c.member(naming.SelectorTypeMethod, n.ChildByFieldName("name"), naming.ModifierPublic, nil)
	case "abstract_method_signature":
		c.classMethod(n)
		c.params(n)
	case "public_field_definition", "field_definition":
		c.classField(n)
	case "pair":
		c.objectPair(n)
	case "shorthand_property_identifier":
		if parent := n.Parent(); parent != nil && parent.Type() == "object" {
			c.member(naming.SelectorObjectLiteralProperty, n, naming.ModifierPublic, func() naming.Type {
				if b := c.a.scopeOf(n).lookup(c.text(n)); b != nil {
					return c.a.typeOfBinding(b, 0)
				}
				return unknownType
			})
		}
	case "property_signature":
		c.propertySignature(n)
	case "required_parameter", "optional_parameter":
		c.parameterProperty(n)
	case "class_declaration", "abstract_class_declaration", "class":
		c.className(n)
	case "interface_declaration":
		c.typeName(naming.SelectorInterface, n)
	case "type_alias_declaration":
		c.typeName(naming.SelectorTypeAlias, n)
	case "enum_declaration":
		c.enum(n)
	case "type_parameter":
		c.typeParameter(n)
	case "import_clause":
		c.imports(n)
	case "variable_declarator":
		c.variable(n)
	case "for_in_statement":
		c.loopVariable(n)
	}
}

func (c *collector) functionName(n *sitter.Node) {
	id := n.ChildByFieldName("name")
	if id == nil {
		return
	}
	name := c.text(id)

	var mods naming.Modifier
	// a function expression binds its name in its own scope, where it is
	// neither global, exported nor unused
	if !isFunctionExpression(n) || isExportStatement(n.Parent()) {
		sc := c.a.enclosingScope(n)
		if isGlobal(sc) {
			mods |= naming.ModifierGlobal
		}
		if c.a.isExported(n, name, sc) {
			mods |= naming.ModifierExported
		}
		if c.a.isUnused(name, sc) {
			mods |= naming.ModifierUnused
		}
	}
	if hasToken(n, "async") {
		mods |= naming.ModifierAsync
	}
	c.report(naming.SelectorFunction, id, name, mods, nil)
}

func (c *collector) params(fn *sitter.Node) {
	if single := fn.ChildByFieldName("parameter"); single != nil && single.Type() == "identifier" {
		c.param(single, false)
	}
	for _, p := range parameters(fn) {
		if p.property {
			continue
		}
		for _, pi := range patternIdents(p.pattern) {
			c.param(pi.node, pi.destructured)
		}
	}
}

func (c *collector) param(id *sitter.Node, destructured bool) {
	name := c.text(id)
	var mods naming.Modifier
	if destructured {
		mods |= naming.ModifierDestructured
	}
	if c.a.isUnused(name, c.a.scopeOf(id)) {
		mods |= naming.ModifierUnused
	}
	c.report(naming.SelectorParameter, id, name, mods, c.declaredType(id))
}

func (c *collector) parameterProperty(p *sitter.Node) {
	parent := p.Parent()
	if parent == nil || parent.Type() != "formal_parameters" {
		return
	}
	for _, candidate := range parameters(parent.Parent()) {
		if !sameNode(candidate.node, p) || !candidate.property {
			continue
		}
		mods := memberModifiers(p, nil, c.run.Source)
		for _, pi := range patternIdents(candidate.pattern) {
			c.report(naming.SelectorParameterProperty, pi.node, c.text(pi.node), mods, c.declaredType(pi.node))
		}
	}
}

// accessorType is the property type an accessor exposes: the getter's
// return type or the setter's parameter type.
func (c *collector) accessorType(n *sitter.Node) func() naming.Type {
	return func() naming.Type {
		if ret := annotated(n, "return_type"); ret != nil {
			return c.a.typeOfAnnotation(ret, 0)
		}
		if params := parameters(n); len(params) > 0 {
			if t := annotated(params[0].node, "type"); t != nil {
				return c.a.typeOfAnnotation(t, 0)
			}
		}
		return unknownType
	}
}

func (c *collector) methodDefinition(n *sitter.Node) {
	key := n.ChildByFieldName("name")
	if parent := n.Parent(); parent == nil || parent.Type() != "class_body" {
		// object literal shorthand method or accessor
		if isAccessor(n) {
			c.member(naming.SelectorClassicAccessor, key, naming.ModifierPublic, c.accessorType(n))
			return
		}
		mods := naming.ModifierPublic
		if hasToken(n, "async") {
			mods |= naming.ModifierAsync
		}
		c.member(naming.SelectorObjectLiteralMethod, key, mods, nil)
		return
	}
	if name, private, ok := keyName(key, c.run.Source); ok && !private && name == "constructor" {
		return
	}
	c.classMethod(n)
}

// classMethod handles class methods, overload signatures, abstract methods
// and class accessors.
func (c *collector) classMethod(n *sitter.Node) {
	key := n.ChildByFieldName("name")
	mods := memberModifiers(n, key, c.run.Source)
	if isAccessor(n) {
		c.member(naming.SelectorClassicAccessor, key, mods, c.accessorType(n))
		return
	}
	if name, _, ok := keyName(key, c.run.Source); ok && c.a.implementsMember(n, name) {
		return
	}
	if hasToken(n, "async") {
		mods |= naming.ModifierAsync
	}
	c.member(naming.SelectorClassMethod, key, mods, nil)
}

func (c *collector) classField(n *sitter.Node) {
	key := n.ChildByFieldName("name")
	if key == nil {
		key = n.ChildByFieldName("property")
	}
	value := unwrap(n.ChildByFieldName("value"))
	mods := memberModifiers(n, key, c.run.Source)

	switch {
	case hasToken(n, "accessor"):
		c.member(naming.SelectorAutoAccessor, key, mods, nil)
	case isFunctionExpression(value):
		if name, _, ok := keyName(key, c.run.Source); ok && c.a.implementsMember(n, name) {
			return
		}
		if hasToken(value, "async") {
			mods |= naming.ModifierAsync
		}
		c.member(naming.SelectorClassMethod, key, mods, nil)
	default:
		c.member(naming.SelectorClassProperty, key, mods, c.annotationType(n, "type", value))
	}
}

func (c *collector) objectPair(n *sitter.Node) {
	if parent := n.Parent(); parent == nil || parent.Type() != "object" {
		return
	}
	key := n.ChildByFieldName("key")
	value := unwrap(n.ChildByFieldName("value"))
	mods := naming.ModifierPublic

	if isFunctionExpression(value) {
		if hasToken(value, "async") {
			mods |= naming.ModifierAsync
		}
		c.member(naming.SelectorObjectLiteralMethod, key, mods, nil)
		return
	}
	c.member(naming.SelectorObjectLiteralProperty, key, mods, func() naming.Type {
		return c.a.typeOfExpr(value, 0)
	})
}

func (c *collector) propertySignature(n *sitter.Node) {
	key := n.ChildByFieldName("name")
	t := unwrap(annotated(n, "type"))
	if t != nil && t.Type() == "function_type" {
		c.member(naming.SelectorTypeMethod, key, naming.ModifierPublic, nil)
		return
	}
	mods := naming.ModifierPublic
	if hasToken(n, "readonly") {
		mods |= naming.ModifierReadonly
	}
	c.member(naming.SelectorTypeProperty, key, mods, func() naming.Type {
		return c.a.typeOfAnnotation(t, 0)
	})
}

func (c *collector) className(n *sitter.Node) {
	id := n.ChildByFieldName("name")
	if id == nil {
		return
	}
	name := c.text(id)
	var mods naming.Modifier
	if n.Type() == "abstract_class_declaration" {
		mods |= naming.ModifierAbstract
	}
	sc := c.a.enclosingScope(n)
	if c.a.isExported(n, name, sc) {
		mods |= naming.ModifierExported
	}
	if c.a.isUnused(name, sc) {
		mods |= naming.ModifierUnused
	}
	c.report(naming.SelectorClass, id, name, mods, nil)
}

// typeName handles interfaces, type aliases and enums, which may be
// exported or unused.
func (c *collector) typeName(sel naming.Selector, n *sitter.Node) {
	id := n.ChildByFieldName("name")
	if id == nil {
		return
	}
	name := c.text(id)
	var mods naming.Modifier
	sc := c.a.enclosingScope(n)
	if c.a.isExported(n, name, sc) {
		mods |= naming.ModifierExported
	}
	if c.a.isUnused(name, sc) {
		mods |= naming.ModifierUnused
	}
	c.report(sel, id, name, mods, nil)
}

func (c *collector) enum(n *sitter.Node) {
	c.typeName(naming.SelectorEnum, n)
	for _, m := range namedChildren(n.ChildByFieldName("body")) {
		key := m
		if m.Type() == "enum_assignment" {
			key = m.ChildByFieldName("name")
		}
		c.member(naming.SelectorEnumMember, key, 0, nil)
	}
}

func (c *collector) typeParameter(n *sitter.Node) {
	if parent := n.Parent(); parent == nil || parent.Type() != "type_parameters" {
		return
	}
	id := n.ChildByFieldName("name")
	if id == nil {
		return
	}
	name := c.text(id)
	var mods naming.Modifier
	if c.a.isUnused(name, c.a.scopeOf(n)) {
		mods |= naming.ModifierUnused
	}
	c.report(naming.SelectorTypeParameter, id, name, mods, nil)
}

func (c *collector) imports(n *sitter.Node) {
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "identifier":
			c.report(naming.SelectorImport, child, c.text(child), naming.ModifierDefault, nil)
		case "namespace_import":
			if id := childOfType(child, "identifier"); id != nil {
				c.report(naming.SelectorImport, id, c.text(id), naming.ModifierNamespace, nil)
			}
		case "named_imports":
			for _, spec := range namedChildren(child) {
				if spec.Type() != "import_specifier" {
					continue
				}
				// only `{ default as X }` renames a default export
				imported := spec.ChildByFieldName("name")
				local := spec.ChildByFieldName("alias")
				if imported == nil || local == nil || c.text(imported) != "default" {
					continue
				}
				c.report(naming.SelectorImport, local, c.text(local), naming.ModifierDefault, nil)
			}
		}
	}
}

// isObjectStyleEnum matches `const X = {...} as const` and
// `const X = <const>{...}`.
func (c *collector) isObjectStyleEnum(declarator *sitter.Node) bool {
	value := unwrap(declarator.ChildByFieldName("value"))
	if value == nil {
		return false
	}
	switch value.Type() {
	case "as_expression":
		obj := unwrap(value.NamedChild(0))
		return hasToken(value, "const") && obj != nil && obj.Type() == "object"
	case "type_assertion":
		args := childOfType(value, "type_arguments")
		obj := unwrap(value.NamedChild(int(value.NamedChildCount()) - 1))
		return args != nil && c.text(args) == "<const>" && obj != nil && obj.Type() == "object"
	}
	return false
}

func (c *collector) variable(n *sitter.Node) {
	decl := n.Parent()
	if decl == nil {
		return
	}
	var common naming.Modifier
	isConst := false
	if declarationKind(decl, c.run.Source) == "const" {
		isConst = true
		common |= naming.ModifierConst
	}
	if isGlobal(c.a.scopeOf(n)) {
		common |= naming.ModifierGlobal
	}
	sel := naming.SelectorVariable
	if isConst && c.isObjectStyleEnum(n) {
		sel = naming.SelectorObjectStyleEnum
	}

	nameNode := n.ChildByFieldName("name")
	value := unwrap(n.ChildByFieldName("value"))
	for _, pi := range patternIdents(nameNode) {
		name := c.text(pi.node)
		mods := common
		if pi.destructured {
			mods |= naming.ModifierDestructured
		}
		sc := c.a.scopeOf(pi.node)
		if c.a.isExported(decl, name, sc) {
			mods |= naming.ModifierExported
		}
		if c.a.isUnused(name, sc) {
			mods |= naming.ModifierUnused
		}
		if sameNode(nameNode, pi.node) && value != nil && hasToken(value, "async") {
			mods |= naming.ModifierAsync
		}
		c.report(sel, pi.node, name, mods, c.declaredType(pi.node))
	}
}

// loopVariable handles `for (const x of xs)`, whose declaration has no
// declarator node.
func (c *collector) loopVariable(n *sitter.Node) {
	kind := n.ChildByFieldName("kind")
	if kind == nil {
		return
	}
	var common naming.Modifier
	if c.text(kind) == "const" {
		common |= naming.ModifierConst
	}
	declScope := c.a.scopeOf(n)
	if c.text(kind) == "var" {
		declScope = c.a.enclosingScope(n)
	}
	if isGlobal(declScope) {
		common |= naming.ModifierGlobal
	}

	for _, pi := range patternIdents(n.ChildByFieldName("left")) {
		name := c.text(pi.node)
		mods := common
		if pi.destructured {
			mods |= naming.ModifierDestructured
		}
		if c.a.isUnused(name, c.a.scopeOf(pi.node)) {
			mods |= naming.ModifierUnused
		}
		c.report(naming.SelectorVariable, pi.node, name, mods, nil)
	}
}
