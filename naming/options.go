package naming

import (
	"encoding/json"
	"fmt"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"
)

// filterWeight is OR'd into the weight of any rule carrying a filter so that
// filtered rules outrank every unfiltered rule of the same selector.
const filterWeight = 1 << 30

// SelectorList is one selector name or a list of them.
type SelectorList []string

// UnmarshalYAML accepts either a scalar or a sequence.
func (l *SelectorList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*l = SelectorList{value.Value}
		return nil
	}
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	*l = names
	return nil
}

// UnmarshalJSON accepts either a string or an array of strings.
func (l *SelectorList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = SelectorList{one}
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*l = names
	return nil
}

// MatchRegex is a regular expression with a polarity.
type MatchRegex struct {
	Match bool   `yaml:"match" json:"match"`
	Regex string `yaml:"regex" json:"regex"`
}

// Filter is a MatchRegex that may also be written as a bare pattern string,
// meaning {match: true, regex: pattern}.
type Filter MatchRegex

// UnmarshalYAML accepts a pattern string or a {match, regex} mapping.
func (f *Filter) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*f = Filter{Match: true, Regex: value.Value}
		return nil
	}
	var m MatchRegex
	if err := value.Decode(&m); err != nil {
		return err
	}
	*f = Filter(m)
	return nil
}

// UnmarshalJSON accepts a pattern string or a {match, regex} object.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var pattern string
	if err := json.Unmarshal(data, &pattern); err == nil {
		*f = Filter{Match: true, Regex: pattern}
		return nil
	}
	var m MatchRegex
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*f = Filter(m)
	return nil
}

// RawSelector is one rule as written by the user.
type RawSelector struct {
	Selector           SelectorList `yaml:"selector" json:"selector"`
	Modifiers          []string     `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Types              []string     `yaml:"types,omitempty" json:"types,omitempty"`
	Format             []string     `yaml:"format" json:"format"`
	LeadingUnderscore  string       `yaml:"leadingUnderscore,omitempty" json:"leadingUnderscore,omitempty"`
	TrailingUnderscore string       `yaml:"trailingUnderscore,omitempty" json:"trailingUnderscore,omitempty"`
	Prefix             []string     `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix             []string     `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	Custom             *MatchRegex  `yaml:"custom,omitempty" json:"custom,omitempty"`
	Filter             *Filter      `yaml:"filter,omitempty" json:"filter,omitempty"`
	FailureMessage     string       `yaml:"failureMessage,omitempty" json:"failureMessage,omitempty"`
}

// CompiledRegex is a MatchRegex with its pattern compiled.
type CompiledRegex struct {
	Match  bool
	Source string
	Regex  *regexp2.Regexp
}

// Test reports whether the pattern matches somewhere in s. A match that
// errors out (timeout) counts as no match.
func (c *CompiledRegex) Test(s string) bool {
	ok, err := c.Regex.MatchString(s)
	return err == nil && ok
}

// Satisfied reports whether s agrees with the configured polarity.
func (c *CompiledRegex) Satisfied(s string) bool {
	return c.Test(s) == c.Match
}

// String renders the pattern as a regular expression literal, e.g. /^I/u.
func (c *CompiledRegex) String() string {
	return regexLiteral(c.Source)
}

// NormalizedSelector is a rule resolved against exactly one selector value.
type NormalizedSelector struct {
	Selector Selector
	// Modifiers are required to all be present. Nil means no requirement.
	Modifiers []Modifier
	// Types nil means unconstrained; an empty non-nil slice matches nothing.
	Types              []TypeModifier
	Format             []PredefinedFormat
	LeadingUnderscore  UnderscoreOption
	TrailingUnderscore UnderscoreOption
	Prefix             []string
	Suffix             []string
	Custom             *CompiledRegex
	Filter             *CompiledRegex
	FailureMessage     string
	ModifierWeight     int
	// Index is the position of the source rule in the raw list.
	Index int
}

// RequiredModifiers returns the union of the required modifiers.
func (n NormalizedSelector) RequiredModifiers() Modifier {
	var m Modifier
	for _, mod := range n.Modifiers {
		m |= mod
	}
	return m
}

func compileRegex(pattern string, match bool) (*CompiledRegex, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidRegex, pattern, err)
	}
	return &CompiledRegex{Match: match, Source: pattern, Regex: re}, nil
}

// Normalize expands every raw rule into one NormalizedSelector per listed
// selector, preserving input order.
func Normalize(raw []RawSelector) ([]NormalizedSelector, error) {
	var out []NormalizedSelector
	for i, r := range raw {
		expanded, err := normalizeOne(r, i)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func normalizeOne(r RawSelector, index int) ([]NormalizedSelector, error) {
	base := NormalizedSelector{
		FailureMessage: r.FailureMessage,
		Index:          index,
	}
	weight := 0

	if r.Modifiers != nil {
		base.Modifiers = make([]Modifier, 0, len(r.Modifiers))
		for _, name := range r.Modifiers {
			m, err := ParseModifier(name)
			if err != nil {
				return nil, err
			}
			base.Modifiers = append(base.Modifiers, m)
			weight |= int(m)
		}
	}

	if r.Types != nil {
		base.Types = make([]TypeModifier, 0, len(r.Types))
		for _, name := range r.Types {
			t, err := ParseTypeModifier(name)
			if err != nil {
				return nil, err
			}
			base.Types = append(base.Types, t)
			weight |= int(t)
		}
	}

	if r.Filter != nil {
		weight |= filterWeight
		f, err := compileRegex(r.Filter.Regex, r.Filter.Match)
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		base.Filter = f
	}

	if r.Custom != nil {
		c, err := compileRegex(r.Custom.Regex, r.Custom.Match)
		if err != nil {
			return nil, fmt.Errorf("custom: %w", err)
		}
		base.Custom = c
	}

	for _, name := range r.Format {
		f, err := ParseFormat(name)
		if err != nil {
			return nil, err
		}
		base.Format = append(base.Format, f)
	}

	var err error
	if r.LeadingUnderscore != "" {
		if base.LeadingUnderscore, err = ParseUnderscoreOption(r.LeadingUnderscore); err != nil {
			return nil, fmt.Errorf("leadingUnderscore: %w", err)
		}
	}
	if r.TrailingUnderscore != "" {
		if base.TrailingUnderscore, err = ParseUnderscoreOption(r.TrailingUnderscore); err != nil {
			return nil, fmt.Errorf("trailingUnderscore: %w", err)
		}
	}

	if len(r.Prefix) > 0 {
		base.Prefix = r.Prefix
	}
	if len(r.Suffix) > 0 {
		base.Suffix = r.Suffix
	}
	base.ModifierWeight = weight

	out := make([]NormalizedSelector, 0, len(r.Selector))
	for _, name := range r.Selector {
		sel, err := ParseSelector(name)
		if err != nil {
			return nil, err
		}
		n := base
		n.Selector = sel
		out = append(out, n)
	}
	return out, nil
}
