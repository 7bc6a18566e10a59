package typescript

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/namelint/naming"
)

// maxInferDepth bounds alias and binding chains such as `type A = B`.
const maxInferDepth = 8

var (
	unknownType  = naming.Type{Kind: naming.TypeUnknown}
	functionType = naming.Type{Kind: naming.TypeFunction, CallSignatures: 1}
)

func primitive(kind naming.TypeKind, literal bool) naming.Type {
	return naming.Type{Kind: kind, Literal: literal}
}

var predefinedTypes = map[string]naming.Type{
	"any":       {Kind: naming.TypeAny},
	"unknown":   {Kind: naming.TypeUnknown},
	"boolean":   {Kind: naming.TypeBoolean},
	"string":    {Kind: naming.TypeString},
	"number":    {Kind: naming.TypeNumber},
	"bigint":    {Kind: naming.TypeBigInt},
	"symbol":    {Kind: naming.TypeSymbol},
	"void":      {Kind: naming.TypeVoid},
	"never":     {Kind: naming.TypeNever},
	"object":    {Kind: naming.TypeObject},
	"undefined": {Kind: naming.TypeUndefined},
	"null":      {Kind: naming.TypeNull},
}

// typeOfAnnotation maps a written type to its category.
func (a *analysis) typeOfAnnotation(t *sitter.Node, depth int) naming.Type {
	t = unwrap(t)
	if t == nil || depth > maxInferDepth {
		return unknownType
	}

	switch t.Type() {
	case "predefined_type":
		if pt, ok := predefinedTypes[a.text(t)]; ok {
			return pt
		}
	case "literal_type":
		if inner := t.NamedChild(0); inner != nil {
			switch inner.Type() {
			case "string":
				return primitive(naming.TypeString, true)
			case "number", "unary_expression":
				return primitive(naming.TypeNumber, true)
			case "true", "false":
				return primitive(naming.TypeBoolean, true)
			case "null":
				return primitive(naming.TypeNull, false)
			case "undefined":
				return primitive(naming.TypeUndefined, false)
			}
		}
	case "template_literal_type":
		return primitive(naming.TypeString, false)
	case "array_type":
		return naming.Type{Kind: naming.TypeArray}
	case "tuple_type":
		return naming.Type{Kind: naming.TypeTuple}
	case "readonly_type":
		return a.typeOfAnnotation(t.NamedChild(0), depth+1)
	case "function_type":
		return functionType
	case "constructor_type":
		return naming.Type{Kind: naming.TypeObject}
	case "union_type":
		var members []naming.Type
		for _, c := range namedChildren(t) {
			members = append(members, a.typeOfAnnotation(c, depth+1))
		}
		return naming.Union(members...)
	case "object_type":
		return a.objectType(t)
	case "generic_type":
		name := t.ChildByFieldName("name")
		if name == nil {
			break
		}
		switch a.text(name) {
		case "Array", "ReadonlyArray":
			return naming.Type{Kind: naming.TypeArray}
		}
		return a.typeOfName(a.text(name), depth+1)
	case "type_identifier":
		return a.typeOfName(a.text(t), depth+1)
	case "type_query":
		if id := t.NamedChild(0); id != nil && id.Type() == "identifier" {
			if b := a.bindingOf(id); b != nil {
				return a.typeOfBinding(b, depth+1)
			}
		}
	}
	return unknownType
}

func (a *analysis) objectType(body *sitter.Node) naming.Type {
	calls := 0
	for _, c := range namedChildren(body) {
		if c.Type() == "call_signature" {
			calls++
		}
	}
	return naming.Type{Kind: naming.TypeObject, CallSignatures: calls}
}

// typeOfName resolves an interface or type alias declared in the file.
func (a *analysis) typeOfName(name string, depth int) naming.Type {
	decls := a.typeDecls[name]
	if len(decls) == 0 {
		return unknownType
	}
	decl := decls[0]
	switch decl.Type() {
	case "interface_declaration":
		calls := 0
		for _, d := range decls {
			if d.Type() == "interface_declaration" {
				calls += a.objectType(d.ChildByFieldName("body")).CallSignatures
			}
		}
		return naming.Type{Kind: naming.TypeObject, CallSignatures: calls}
	case "type_alias_declaration":
		return a.typeOfAnnotation(decl.ChildByFieldName("value"), depth+1)
	}
	return unknownType
}

// typeOfExpr infers the type of an expression from its syntax.
func (a *analysis) typeOfExpr(e *sitter.Node, depth int) naming.Type {
	e = unwrap(e)
	if e == nil || depth > maxInferDepth {
		return unknownType
	}

	switch e.Type() {
	case "string":
		return primitive(naming.TypeString, true)
	case "template_string":
		return primitive(naming.TypeString, false)
	case "number":
		return primitive(naming.TypeNumber, true)
	case "true", "false":
		return primitive(naming.TypeBoolean, true)
	case "null":
		return primitive(naming.TypeNull, false)
	case "undefined":
		return primitive(naming.TypeUndefined, false)
	case "array":
		return naming.Type{Kind: naming.TypeArray}
	case "object", "regex", "class":
		return naming.Type{Kind: naming.TypeObject}
	case "function_expression", "function", "arrow_function", "generator_function":
		return functionType
	case "new_expression":
		if ctor := e.ChildByFieldName("constructor"); ctor != nil && a.text(ctor) == "Array" {
			return naming.Type{Kind: naming.TypeArray}
		}
		return naming.Type{Kind: naming.TypeObject}
	case "as_expression", "satisfies_expression":
		if e.Type() == "as_expression" && !hasToken(e, "const") && e.NamedChildCount() > 1 {
			return a.typeOfAnnotation(e.NamedChild(1), depth+1)
		}
		return a.typeOfExpr(e.NamedChild(0), depth+1)
	case "type_assertion":
		args := childOfType(e, "type_arguments")
		expr := e.NamedChild(int(e.NamedChildCount()) - 1)
		if args != nil && a.text(args) != "<const>" && args.NamedChild(0) != nil {
			return a.typeOfAnnotation(args.NamedChild(0), depth+1)
		}
		return a.typeOfExpr(expr, depth+1)
	case "non_null_expression":
		return a.typeOfExpr(e.NamedChild(0), depth+1).NonNullable()
	case "unary_expression":
		switch op := e.ChildByFieldName("operator"); {
		case op == nil:
		case a.text(op) == "!" || a.text(op) == "delete":
			return primitive(naming.TypeBoolean, false)
		case a.text(op) == "typeof":
			return primitive(naming.TypeString, false)
		case a.text(op) == "void":
			return primitive(naming.TypeUndefined, false)
		default:
			return primitive(naming.TypeNumber, false)
		}
	case "update_expression":
		return primitive(naming.TypeNumber, false)
	case "binary_expression":
		return a.typeOfBinary(e, depth)
	case "ternary_expression":
		return naming.Union(
			a.typeOfExpr(e.ChildByFieldName("consequence"), depth+1),
			a.typeOfExpr(e.ChildByFieldName("alternative"), depth+1),
		)
	case "assignment_expression":
		return a.typeOfExpr(e.ChildByFieldName("right"), depth+1)
	case "call_expression":
		return a.typeOfCall(e, depth)
	case "member_expression":
		if prop := e.ChildByFieldName("property"); prop != nil && a.text(prop) == "length" {
			return primitive(naming.TypeNumber, false)
		}
	case "identifier":
		if b := a.bindingOf(e); b != nil {
			return a.typeOfBinding(b, depth+1)
		}
	}
	return unknownType
}

func (a *analysis) typeOfBinary(e *sitter.Node, depth int) naming.Type {
	op := e.ChildByFieldName("operator")
	if op == nil {
		return unknownType
	}
	left := a.typeOfExpr(e.ChildByFieldName("left"), depth+1)
	right := a.typeOfExpr(e.ChildByFieldName("right"), depth+1)

	switch a.text(op) {
	case "+":
		if left.Kind == naming.TypeString || right.Kind == naming.TypeString {
			return primitive(naming.TypeString, false)
		}
		if left.Kind == naming.TypeNumber && right.Kind == naming.TypeNumber {
			return primitive(naming.TypeNumber, false)
		}
	case "-", "*", "/", "%", "**", "<<", ">>", ">>>", "&", "|", "^":
		return primitive(naming.TypeNumber, false)
	case "==", "!=", "===", "!==", "<", "<=", ">", ">=", "in", "instanceof":
		return primitive(naming.TypeBoolean, false)
	case "&&", "||":
		return naming.Union(left, right)
	case "??":
		return naming.Union(left.NonNullable(), right)
	}
	return unknownType
}

func (a *analysis) typeOfCall(e *sitter.Node, depth int) naming.Type {
	fn := e.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" {
		return unknownType
	}
	switch a.text(fn) {
	case "String":
		return primitive(naming.TypeString, false)
	case "Number":
		return primitive(naming.TypeNumber, false)
	case "Boolean":
		return primitive(naming.TypeBoolean, false)
	}

	b := a.bindingOf(fn)
	if b == nil || len(b.sites) == 0 {
		return unknownType
	}
	decl := b.sites[0].decl
	if decl.Type() == "variable_declarator" {
		decl = unwrap(decl.ChildByFieldName("value"))
	}
	if decl == nil || !(isFunctionExpression(decl) || decl.Type() == "function_declaration" || decl.Type() == "function_signature") {
		return unknownType
	}
	if ret := annotated(decl, "return_type"); ret != nil {
		return a.typeOfAnnotation(ret, depth+1)
	}
	if decl.Type() == "arrow_function" {
		if body := decl.ChildByFieldName("body"); body != nil && body.Type() != "statement_block" {
			return a.typeOfExpr(body, depth+1)
		}
	}
	return unknownType
}

// typeOfBinding infers the declared type of a binding from its first
// declaration.
func (a *analysis) typeOfBinding(b *binding, depth int) naming.Type {
	if len(b.sites) == 0 {
		return unknownType
	}
	return a.typeOfSite(b.sites[0], depth)
}

// typeOfDeclared infers the type of the entity a declaring identifier names.
func (a *analysis) typeOfDeclared(id *sitter.Node) naming.Type {
	b, ok := a.declared[keyOf(id)]
	if !ok {
		return unknownType
	}
	for _, site := range b.sites {
		if sameNode(site.id, id) {
			return a.typeOfSite(site, 0)
		}
	}
	return a.typeOfBinding(b, 0)
}

func (a *analysis) typeOfSite(site declSite, depth int) naming.Type {
	if depth > maxInferDepth {
		return unknownType
	}
	decl := site.decl

	switch decl.Type() {
	case "variable_declarator":
		if !sameNode(decl.ChildByFieldName("name"), site.id) {
			return unknownType
		}
		if t := annotated(decl, "type"); t != nil {
			return a.typeOfAnnotation(t, depth+1)
		}
		return a.typeOfExpr(decl.ChildByFieldName("value"), depth+1)
	case "required_parameter", "optional_parameter":
		return a.typeOfParam(decl, site.id, depth)
	case "function_declaration", "generator_function_declaration", "function_signature",
		"function_expression", "function", "generator_function":
		return functionType
	case "class_declaration", "abstract_class_declaration", "class", "enum_declaration", "internal_module", "module":
		return naming.Type{Kind: naming.TypeObject}
	case "assignment_pattern":
		if sameNode(decl.ChildByFieldName("left"), site.id) {
			return a.typeOfExpr(decl.ChildByFieldName("right"), depth+1)
		}
	}
	return unknownType
}

func (a *analysis) typeOfParam(p, id *sitter.Node, depth int) naming.Type {
	pattern := p.ChildByFieldName("pattern")
	if pattern == nil {
		return unknownType
	}
	if pattern.Type() == "rest_pattern" && sameNode(pattern.NamedChild(0), id) {
		if t := annotated(p, "type"); t != nil {
			return a.typeOfAnnotation(t, depth+1)
		}
		return naming.Type{Kind: naming.TypeArray}
	}
	if !sameNode(pattern, id) {
		return unknownType
	}
	if t := annotated(p, "type"); t != nil {
		return a.typeOfAnnotation(t, depth+1)
	}
	return a.typeOfExpr(p.ChildByFieldName("value"), depth+1)
}
