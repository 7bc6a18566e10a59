package naming

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Selector identifies the syntactic kind of a named entity. Individual
// selectors are single bits; meta selectors are the OR of a group of them.
type Selector int

// Individual selectors
const (
	// variableLike
	SelectorVariable        Selector = 1 << 0
	SelectorFunction        Selector = 1 << 1
	SelectorParameter       Selector = 1 << 2
	SelectorObjectStyleEnum Selector = 1 << 3

	// memberLike
	SelectorParameterProperty     Selector = 1 << 4
	SelectorClassicAccessor       Selector = 1 << 5
	SelectorEnumMember            Selector = 1 << 6
	SelectorClassMethod           Selector = 1 << 7
	SelectorObjectLiteralMethod   Selector = 1 << 8
	SelectorTypeMethod            Selector = 1 << 9
	SelectorClassProperty         Selector = 1 << 10
	SelectorObjectLiteralProperty Selector = 1 << 11
	SelectorTypeProperty          Selector = 1 << 12
	SelectorAutoAccessor          Selector = 1 << 13

	// typeLike
	SelectorClass         Selector = 1 << 14
	SelectorInterface     Selector = 1 << 15
	SelectorTypeAlias     Selector = 1 << 16
	SelectorEnum          Selector = 1 << 17
	SelectorTypeParameter Selector = 1 << 18

	// other
	SelectorImport Selector = 1 << 19
)

// Meta selectors
const (
	MetaDefault      Selector = -1
	MetaVariableLike          = SelectorVariable | SelectorFunction | SelectorParameter | SelectorObjectStyleEnum
	MetaMemberLike            = SelectorParameterProperty | SelectorClassicAccessor | SelectorEnumMember |
		SelectorClassMethod | SelectorObjectLiteralMethod | SelectorTypeMethod | SelectorClassProperty |
		SelectorObjectLiteralProperty | SelectorTypeProperty | SelectorAutoAccessor
	MetaTypeLike = SelectorClass | SelectorInterface | SelectorTypeAlias | SelectorEnum | SelectorTypeParameter
	MetaMethod   = SelectorClassMethod | SelectorObjectLiteralMethod | SelectorTypeMethod
	MetaProperty = SelectorClassProperty | SelectorObjectLiteralProperty | SelectorTypeProperty
	MetaAccessor = SelectorClassicAccessor | SelectorAutoAccessor
)

var selectorNames = []struct {
	name  string
	value Selector
}{
	{"variable", SelectorVariable},
	{"function", SelectorFunction},
	{"parameter", SelectorParameter},
	{"objectStyleEnum", SelectorObjectStyleEnum},
	{"parameterProperty", SelectorParameterProperty},
	{"classicAccessor", SelectorClassicAccessor},
	{"enumMember", SelectorEnumMember},
	{"classMethod", SelectorClassMethod},
	{"objectLiteralMethod", SelectorObjectLiteralMethod},
	{"typeMethod", SelectorTypeMethod},
	{"classProperty", SelectorClassProperty},
	{"objectLiteralProperty", SelectorObjectLiteralProperty},
	{"typeProperty", SelectorTypeProperty},
	{"autoAccessor", SelectorAutoAccessor},
	{"class", SelectorClass},
	{"interface", SelectorInterface},
	{"typeAlias", SelectorTypeAlias},
	{"enum", SelectorEnum},
	{"typeParameter", SelectorTypeParameter},
	{"import", SelectorImport},
}

var metaSelectorNames = []struct {
	name  string
	value Selector
}{
	{"default", MetaDefault},
	{"variableLike", MetaVariableLike},
	{"memberLike", MetaMemberLike},
	{"typeLike", MetaTypeLike},
	{"method", MetaMethod},
	{"property", MetaProperty},
	{"accessor", MetaAccessor},
}

// Selectors returns every individual selector in declaration order.
func Selectors() []Selector {
	out := make([]Selector, len(selectorNames))
	for i, s := range selectorNames {
		out[i] = s.value
	}
	return out
}

// ParseSelector resolves an individual or meta selector name.
func ParseSelector(name string) (Selector, error) {
	for _, s := range selectorNames {
		if s.name == name {
			return s.value, nil
		}
	}
	for _, s := range metaSelectorNames {
		if s.name == name {
			return s.value, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSelector, name)
}

// IsMeta reports whether s is one of the meta selectors.
func (s Selector) IsMeta() bool {
	for _, m := range metaSelectorNames {
		if m.value == s {
			return true
		}
	}
	return false
}

// IsMethodOrProperty reports whether s is the method or property meta selector.
// Those two outrank the other meta selectors.
func (s Selector) IsMethodOrProperty() bool {
	return s == MetaMethod || s == MetaProperty
}

// Matches reports whether a rule targeting s applies to the individual selector target.
func (s Selector) Matches(target Selector) bool {
	return s&target != 0 || s == MetaDefault
}

func (s Selector) String() string {
	for _, n := range selectorNames {
		if n.value == s {
			return n.name
		}
	}
	for _, n := range metaSelectorNames {
		if n.value == s {
			return n.name
		}
	}
	return fmt.Sprintf("Selector(%d)", int(s))
}

// MessageString renders the selector for diagnostics, e.g. "Class Property".
func (s Selector) MessageString() string {
	name := s.String()
	var b strings.Builder
	for i, r := range name {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Modifier is a trait observed on an occurrence. A Modifier value also serves
// as a set: the OR of every trait present.
type Modifier uint32

const (
	ModifierConst          Modifier = 1 << 0
	ModifierReadonly       Modifier = 1 << 1
	ModifierStatic         Modifier = 1 << 2
	ModifierPublic         Modifier = 1 << 3
	ModifierProtected      Modifier = 1 << 4
	ModifierPrivate        Modifier = 1 << 5
	ModifierHashPrivate    Modifier = 1 << 6
	ModifierAbstract       Modifier = 1 << 7
	ModifierDestructured   Modifier = 1 << 8
	ModifierGlobal         Modifier = 1 << 9
	ModifierExported       Modifier = 1 << 10
	ModifierUnused         Modifier = 1 << 11
	ModifierRequiresQuotes Modifier = 1 << 12
	ModifierOverride       Modifier = 1 << 13
	ModifierAsync          Modifier = 1 << 14
	ModifierDefault        Modifier = 1 << 15
	ModifierNamespace      Modifier = 1 << 16
)

var modifierNames = []struct {
	name  string
	value Modifier
}{
	{"const", ModifierConst},
	{"readonly", ModifierReadonly},
	{"static", ModifierStatic},
	{"public", ModifierPublic},
	{"protected", ModifierProtected},
	{"private", ModifierPrivate},
	{"#private", ModifierHashPrivate},
	{"abstract", ModifierAbstract},
	{"destructured", ModifierDestructured},
	{"global", ModifierGlobal},
	{"exported", ModifierExported},
	{"unused", ModifierUnused},
	{"requiresQuotes", ModifierRequiresQuotes},
	{"override", ModifierOverride},
	{"async", ModifierAsync},
	{"default", ModifierDefault},
	{"namespace", ModifierNamespace},
}

// ParseModifier resolves a modifier name.
func ParseModifier(name string) (Modifier, error) {
	for _, m := range modifierNames {
		if m.name == name {
			return m.value, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModifier, name)
}

// Has reports whether every modifier in want is present in m.
func (m Modifier) Has(want Modifier) bool {
	return m&want == want
}

// Names lists the modifiers present in m.
func (m Modifier) Names() []string {
	var out []string
	for _, n := range modifierNames {
		if m&n.value != 0 {
			out = append(out, n.name)
		}
	}
	return out
}

func (m Modifier) String() string {
	return strings.Join(m.Names(), "|")
}

// TypeModifier is an inferred type category usable in a types constraint.
type TypeModifier uint32

// TypeModifiers start above the last Modifier bit so that weights never
// collide.
const (
	TypeModifierBoolean  TypeModifier = 1 << 17
	TypeModifierString   TypeModifier = 1 << 18
	TypeModifierNumber   TypeModifier = 1 << 19
	TypeModifierFunction TypeModifier = 1 << 20
	TypeModifierArray    TypeModifier = 1 << 21
)

var typeModifierNames = map[string]TypeModifier{
	"boolean":  TypeModifierBoolean,
	"string":   TypeModifierString,
	"number":   TypeModifierNumber,
	"function": TypeModifierFunction,
	"array":    TypeModifierArray,
}

// ParseTypeModifier resolves a type modifier name.
func ParseTypeModifier(name string) (TypeModifier, error) {
	if t, ok := typeModifierNames[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

func (t TypeModifier) String() string {
	for name, v := range typeModifierNames {
		if v == t {
			return name
		}
	}
	return fmt.Sprintf("TypeModifier(%d)", uint32(t))
}

// UnderscoreOption is the policy for a leading or trailing underscore.
// The zero value means the rule does not care.
type UnderscoreOption int

const (
	UnderscoreForbid UnderscoreOption = iota + 1
	UnderscoreAllow
	UnderscoreRequire
	UnderscoreRequireDouble
	UnderscoreAllowDouble
	UnderscoreAllowSingleOrDouble
)

var underscoreNames = map[string]UnderscoreOption{
	"forbid":              UnderscoreForbid,
	"allow":               UnderscoreAllow,
	"require":             UnderscoreRequire,
	"requireDouble":       UnderscoreRequireDouble,
	"allowDouble":         UnderscoreAllowDouble,
	"allowSingleOrDouble": UnderscoreAllowSingleOrDouble,
}

// ParseUnderscoreOption resolves an underscore policy name.
func ParseUnderscoreOption(name string) (UnderscoreOption, error) {
	if u, ok := underscoreNames[name]; ok {
		return u, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnderscore, name)
}

func (u UnderscoreOption) String() string {
	for name, v := range underscoreNames {
		if v == u {
			return name
		}
	}
	return ""
}

// PredefinedFormat is a case style.
type PredefinedFormat int

const (
	FormatCamelCase PredefinedFormat = iota + 1
	FormatStrictCamelCase
	FormatPascalCase
	FormatStrictPascalCase
	FormatSnakeCase
	FormatUpperCase
)

var formatNames = map[string]PredefinedFormat{
	"camelCase":        FormatCamelCase,
	"strictCamelCase":  FormatStrictCamelCase,
	"PascalCase":       FormatPascalCase,
	"StrictPascalCase": FormatStrictPascalCase,
	"snake_case":       FormatSnakeCase,
	"UPPER_CASE":       FormatUpperCase,
}

// ParseFormat resolves a predefined format name.
func ParseFormat(name string) (PredefinedFormat, error) {
	if f, ok := formatNames[name]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

func (f PredefinedFormat) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return fmt.Sprintf("PredefinedFormat(%d)", int(f))
}

// SchemaNames lists every accepted name per enumeration, sorted. Used by the
// config loader for error messages.
func SchemaNames() map[string][]string {
	out := map[string][]string{}
	for _, s := range selectorNames {
		out["selector"] = append(out["selector"], s.name)
	}
	for _, s := range metaSelectorNames {
		out["selector"] = append(out["selector"], s.name)
	}
	for _, m := range modifierNames {
		out["modifier"] = append(out["modifier"], m.name)
	}
	for name := range typeModifierNames {
		out["type"] = append(out["type"], name)
	}
	for name := range underscoreNames {
		out["underscore"] = append(out["underscore"], name)
	}
	for name := range formatNames {
		out["format"] = append(out["format"], name)
	}
	for _, v := range out {
		sort.Strings(v)
	}
	return out
}
