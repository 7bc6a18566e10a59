package naming

// TypeKind is the coarse category of an inferred type.
type TypeKind int

const (
	TypeUnknown TypeKind = iota
	TypeAny
	TypeBoolean
	TypeString
	TypeNumber
	TypeBigInt
	TypeSymbol
	TypeNull
	TypeUndefined
	TypeVoid
	TypeNever
	TypeArray
	TypeTuple
	TypeFunction
	TypeObject
	TypeUnion
)

var typeKindNames = map[TypeKind]string{
	TypeUnknown:   "unknown",
	TypeAny:       "any",
	TypeBoolean:   "boolean",
	TypeString:    "string",
	TypeNumber:    "number",
	TypeBigInt:    "bigint",
	TypeSymbol:    "symbol",
	TypeNull:      "null",
	TypeUndefined: "undefined",
	TypeVoid:      "void",
	TypeNever:     "never",
	TypeArray:     "array",
	TypeTuple:     "tuple",
	TypeFunction:  "function",
	TypeObject:    "object",
	TypeUnion:     "union",
}

func (k TypeKind) String() string {
	return typeKindNames[k]
}

// Type describes what the type checker knows about an entity.
type Type struct {
	Kind TypeKind
	// Literal marks literal types such as "a", 1 or true.
	Literal bool
	// Members holds the constituents of a union.
	Members []Type
	// CallSignatures counts the call signatures of the type. Function types
	// have at least one; object types may declare some.
	CallSignatures int
}

// Union builds a union, flattening nested unions. A single member collapses
// to that member.
func Union(members ...Type) Type {
	var flat []Type
	for _, m := range members {
		if m.Kind == TypeUnion {
			flat = append(flat, m.Members...)
			continue
		}
		flat = append(flat, m)
	}
	switch len(flat) {
	case 0:
		return Type{Kind: TypeNever}
	case 1:
		return flat[0]
	}
	return Type{Kind: TypeUnion, Members: flat}
}

func (t Type) nullish() bool {
	return t.Kind == TypeNull || t.Kind == TypeUndefined
}

// NonNullable strips null and undefined.
func (t Type) NonNullable() Type {
	if t.nullish() {
		return Type{Kind: TypeNever}
	}
	if t.Kind != TypeUnion {
		return t
	}
	var kept []Type
	for _, m := range t.Members {
		if !m.nullish() {
			kept = append(kept, m)
		}
	}
	return Union(kept...)
}

// each reports whether fn holds for every union member, or for t itself.
func (t Type) each(fn func(Type) bool) bool {
	if t.Kind != TypeUnion {
		return fn(t)
	}
	for _, m := range t.Members {
		if !fn(m) {
			return false
		}
	}
	return true
}

// BaseString renders the widened type with literals replaced by their
// primitive, e.g. "a" | "b" becomes "string" and true | false "boolean".
func (t Type) BaseString() string {
	if t.Kind != TypeUnion {
		return t.Kind.String()
	}
	var names []string
	seen := map[string]bool{}
	for _, m := range t.Members {
		name := m.Kind.String()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if len(names) == 1 {
		return names[0]
	}
	out := names[0]
	for _, n := range names[1:] {
		out += " | " + n
	}
	return out
}

// typedSelectors may carry a types constraint; on every other selector it
// is ignored.
const typedSelectors = SelectorVariable | SelectorParameter | SelectorClassProperty |
	SelectorObjectLiteralProperty | SelectorTypeProperty | SelectorParameterProperty |
	SelectorClassicAccessor

// SupportsTypes reports whether a types constraint applies to sel.
func SupportsTypes(sel Selector) bool {
	return sel&typedSelectors != 0
}

// MatchesAnyType reports whether t satisfies at least one of the wanted type
// categories. A union satisfies a category only if all its members do.
func MatchesAnyType(t Type, wanted []TypeModifier) bool {
	t = t.NonNullable()
	for _, w := range wanted {
		switch w {
		case TypeModifierArray:
			if t.each(func(m Type) bool { return m.Kind == TypeArray || m.Kind == TypeTuple }) {
				return true
			}
		case TypeModifierFunction:
			if t.each(func(m Type) bool { return m.CallSignatures > 0 }) {
				return true
			}
		case TypeModifierBoolean, TypeModifierString, TypeModifierNumber:
			if t.BaseString() == w.String() {
				return true
			}
		}
	}
	return false
}

func isCorrectType(id Identifier, cfg NormalizedSelector, sel Selector) bool {
	if cfg.Types == nil || !SupportsTypes(sel) {
		return true
	}
	t := Type{Kind: TypeUnknown}
	if id.Type != nil {
		t = id.Type()
	}
	return MatchesAnyType(t, cfg.Types)
}
