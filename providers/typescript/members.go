package typescript

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/namelint/naming"
)

var accessibility = map[string]naming.Modifier{
	"public":    naming.ModifierPublic,
	"protected": naming.ModifierProtected,
	"private":   naming.ModifierPrivate,
}

// memberModifiers derives the modifiers of a class member or parameter
// property. A member without written accessibility is public, unless its
// name is #private.
func memberModifiers(n, key *sitter.Node, src []byte) naming.Modifier {
	var mods naming.Modifier
	switch acc := childOfType(n, "accessibility_modifier"); {
	case key != nil && key.Type() == "private_property_identifier":
		mods |= naming.ModifierHashPrivate
	case acc != nil:
		mods |= accessibility[acc.Content(src)]
	default:
		mods |= naming.ModifierPublic
	}

	if hasToken(n, "static") {
		mods |= naming.ModifierStatic
	}
	if hasToken(n, "readonly") {
		mods |= naming.ModifierReadonly
	}
	if childOfType(n, "override_modifier") != nil {
		mods |= naming.ModifierOverride
	}
	if n.Type() == "abstract_method_signature" || hasToken(n, "abstract") {
		mods |= naming.ModifierAbstract
	}
	return mods
}

func isAccessor(n *sitter.Node) bool {
	return hasToken(n, "get") || hasToken(n, "set")
}

// enclosingClass returns the class a member belongs to.
func enclosingClass(member *sitter.Node) *sitter.Node {
	for cur := member.Parent(); cur != nil; cur = cur.Parent() {
		if isClassNode(cur) {
			return cur
		}
	}
	return nil
}

// implementsMember reports whether the class of member implements an
// interface, declared in this file, that has a member called name.
func (a *analysis) implementsMember(member *sitter.Node, name string) bool {
	class := enclosingClass(member)
	if class == nil {
		return false
	}
	heritage := childOfType(class, "class_heritage")
	if heritage == nil {
		return false
	}
	clause := childOfType(heritage, "implements_clause")
	if clause == nil {
		return false
	}

	visited := make(map[string]bool)
	for _, t := range namedChildren(clause) {
		if a.typeHasMember(typeName(t, a.src), name, visited) {
			return true
		}
	}
	return false
}

func typeName(t *sitter.Node, src []byte) string {
	switch t.Type() {
	case "type_identifier":
		return t.Content(src)
	case "generic_type":
		if name := t.ChildByFieldName("name"); name != nil {
			return typeName(name, src)
		}
	}
	return ""
}

func (a *analysis) typeHasMember(name, member string, visited map[string]bool) bool {
	if name == "" || visited[name] {
		return false
	}
	visited[name] = true

	for _, decl := range a.typeDecls[name] {
		switch decl.Type() {
		case "interface_declaration":
			if a.bodyHasMember(decl.ChildByFieldName("body"), member, visited) {
				return true
			}
			if ext := childOfType(decl, "extends_type_clause"); ext != nil {
				for _, t := range namedChildren(ext) {
					if a.typeHasMember(typeName(t, a.src), member, visited) {
						return true
					}
				}
			}
		case "type_alias_declaration":
			if a.bodyHasMember(unwrap(decl.ChildByFieldName("value")), member, visited) {
				return true
			}
		}
	}
	return false
}

func (a *analysis) bodyHasMember(body *sitter.Node, member string, visited map[string]bool) bool {
	if body == nil {
		return false
	}
	switch body.Type() {
	case "intersection_type":
		for _, c := range namedChildren(body) {
			if a.bodyHasMember(unwrap(c), member, visited) {
				return true
			}
		}
		return false
	case "type_identifier", "generic_type":
		return a.typeHasMember(typeName(body, a.src), member, visited)
	}
	for _, c := range namedChildren(body) {
		switch c.Type() {
		case "property_signature", "method_signature":
			if key, _, ok := keyName(c.ChildByFieldName("name"), a.src); ok && key == member {
				return true
			}
		}
	}
	return false
}
