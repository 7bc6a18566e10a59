package naming

import (
	"sort"
	"strings"
)

// Identifier is one occurrence of a name handed to a validator.
type Identifier struct {
	Name string
	Span Span
	// Type lazily queries the inferred type. Nil means no type information
	// is available; a types constraint then never matches.
	Type func() Type
}

// ValidatorFunc checks one occurrence and returns at most one diagnostic.
type ValidatorFunc func(id Identifier, modifiers Modifier) *Diagnostic

// SortCandidates returns the rules that apply to sel, most specific first.
func SortCandidates(sel Selector, configs []NormalizedSelector) []NormalizedSelector {
	var out []NormalizedSelector
	for _, c := range configs {
		if c.Selector.Matches(sel) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return compareRules(out[i], out[j]) < 0
	})
	return out
}

func compareRules(a, b NormalizedSelector) int {
	if a.Selector == b.Selector {
		return b.ModifierWeight - a.ModifierWeight
	}

	aMeta, bMeta := a.Selector.IsMeta(), b.Selector.IsMeta()
	if aMeta && !bMeta {
		return 1
	}
	if !aMeta && bMeta {
		return -1
	}

	aMP, bMP := a.Selector.IsMethodOrProperty(), b.Selector.IsMethodOrProperty()
	if aMP && !bMP {
		return -1
	}
	if !aMP && bMP {
		return 1
	}

	return int(b.Selector) - int(a.Selector)
}

// CreateValidator builds the validator for one individual selector.
func CreateValidator(sel Selector, configs []NormalizedSelector) ValidatorFunc {
	candidates := SortCandidates(sel, configs)

	return func(id Identifier, modifiers Modifier) *Diagnostic {
		for i := range candidates {
			cfg := &candidates[i]
			if cfg.Filter != nil && !cfg.Filter.Satisfied(id.Name) {
				continue
			}
			if !modifiers.Has(cfg.RequiredModifiers()) {
				continue
			}
			if !isCorrectType(id, *cfg, sel) {
				continue
			}
			// the first applicable rule decides, pass or fail
			return check(sel, cfg, id, modifiers)
		}
		return nil
	}
}

type pipeline struct {
	sel      Selector
	cfg      *NormalizedSelector
	id       Identifier
	original string
}

func (p *pipeline) report(msg MessageID, data ReportData) *Diagnostic {
	data.Name = p.original
	data.Type = p.sel.MessageString()
	return &Diagnostic{
		MessageID:      msg,
		Selector:       p.sel,
		Data:           data,
		Span:           p.id.Span,
		FailureMessage: p.cfg.FailureMessage,
		RuleIndex:      p.cfg.Index,
	}
}

func check(sel Selector, cfg *NormalizedSelector, id Identifier, modifiers Modifier) *Diagnostic {
	p := &pipeline{sel: sel, cfg: cfg, id: id, original: id.Name}
	name := id.Name

	var diag *Diagnostic
	if name, diag = p.underscore("leading", cfg.LeadingUnderscore, name); diag != nil {
		return diag
	}
	if name, diag = p.underscore("trailing", cfg.TrailingUnderscore, name); diag != nil {
		return diag
	}
	if name, diag = p.affix("prefix", cfg.Prefix, name); diag != nil {
		return diag
	}
	if name, diag = p.affix("suffix", cfg.Suffix, name); diag != nil {
		return diag
	}
	if diag = p.custom(name); diag != nil {
		return diag
	}
	return p.format(name, modifiers)
}

func (p *pipeline) underscore(position string, option UnderscoreOption, name string) (string, *Diagnostic) {
	leading := position == "leading"
	has := func(u string) bool {
		if leading {
			return strings.HasPrefix(name, u)
		}
		return strings.HasSuffix(name, u)
	}
	trim := func(n int) string {
		if leading {
			return name[n:]
		}
		return name[:len(name)-n]
	}

	switch option {
	case UnderscoreAllow:
		if has("_") {
			return trim(1), nil
		}
	case UnderscoreAllowDouble:
		if has("__") {
			return trim(2), nil
		}
	case UnderscoreAllowSingleOrDouble:
		if has("__") {
			return trim(2), nil
		}
		if has("_") {
			return trim(1), nil
		}
	case UnderscoreForbid:
		if has("_") {
			return "", p.report(MsgUnexpectedUnderscore, ReportData{Count: "one", Position: position})
		}
	case UnderscoreRequire:
		if !has("_") {
			return "", p.report(MsgMissingUnderscore, ReportData{Count: "one", Position: position})
		}
		return trim(1), nil
	case UnderscoreRequireDouble:
		if !has("__") {
			return "", p.report(MsgMissingUnderscore, ReportData{Count: "two", Position: position})
		}
		return trim(2), nil
	}
	return name, nil
}

func (p *pipeline) affix(position string, affixes []string, name string) (string, *Diagnostic) {
	if len(affixes) == 0 {
		return name, nil
	}
	for _, a := range affixes {
		if position == "prefix" && strings.HasPrefix(name, a) {
			return name[len(a):], nil
		}
		if position == "suffix" && strings.HasSuffix(name, a) {
			return name[:len(name)-len(a)], nil
		}
	}
	return "", p.report(MsgMissingAffix, ReportData{
		Affixes:  strings.Join(affixes, ", "),
		Position: position,
	})
}

func (p *pipeline) custom(name string) *Diagnostic {
	c := p.cfg.Custom
	if c == nil || c.Satisfied(name) {
		return nil
	}
	match := "match"
	if !c.Match {
		match = "not match"
	}
	return p.report(MsgSatisfyCustom, ReportData{Regex: c.String(), RegexMatch: match})
}

func (p *pipeline) format(name string, modifiers Modifier) *Diagnostic {
	formats := p.cfg.Format
	if len(formats) == 0 || modifiers.Has(ModifierRequiresQuotes) {
		return nil
	}
	for _, f := range formats {
		if FormatCheckers[f](name) {
			return nil
		}
	}
	msg := MsgDoesNotMatchFormat
	if name != p.original {
		msg = MsgDoesNotMatchFormatTrimmed
	}
	return p.report(msg, ReportData{Formats: joinFormats(formats), ProcessedName: name})
}

// RuleSet holds one validator per individual selector.
type RuleSet struct {
	configs    []NormalizedSelector
	validators map[Selector]ValidatorFunc
}

// NewRuleSet builds the validators for every individual selector.
func NewRuleSet(configs []NormalizedSelector) *RuleSet {
	rs := &RuleSet{
		configs:    configs,
		validators: make(map[Selector]ValidatorFunc, len(selectorNames)),
	}
	for _, sel := range Selectors() {
		rs.validators[sel] = CreateValidator(sel, configs)
	}
	return rs
}

// Validate checks one occurrence classified as sel.
func (rs *RuleSet) Validate(sel Selector, id Identifier, modifiers Modifier) *Diagnostic {
	v, ok := rs.validators[sel]
	if !ok {
		return nil
	}
	return v(id, modifiers)
}

// Candidates returns the rules applicable to sel in resolution order.
func (rs *RuleSet) Candidates(sel Selector) []NormalizedSelector {
	return SortCandidates(sel, rs.configs)
}

// Rules returns the normalized rules backing the set.
func (rs *RuleSet) Rules() []NormalizedSelector {
	return rs.configs
}
