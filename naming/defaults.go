package naming

// DefaultConfig is the rule set used when no rules are configured.
func DefaultConfig() []RawSelector {
	return []RawSelector{
		{
			Selector:           SelectorList{"default"},
			Format:             []string{"camelCase"},
			LeadingUnderscore:  "allow",
			TrailingUnderscore: "allow",
		},
		{
			Selector: SelectorList{"import"},
			Format:   []string{"camelCase", "PascalCase"},
		},
		{
			Selector:           SelectorList{"variable"},
			Format:             []string{"camelCase", "UPPER_CASE"},
			LeadingUnderscore:  "allow",
			TrailingUnderscore: "allow",
		},
		{
			Selector: SelectorList{"typeLike"},
			Format:   []string{"PascalCase"},
		},
	}
}

// DefaultRuleSet builds the rule set of DefaultConfig. Its diagnostics carry
// rule index -1.
func DefaultRuleSet() *RuleSet {
	configs, err := Normalize(DefaultConfig())
	if err != nil {
		panic("naming: invalid default config: " + err.Error())
	}
	for i := range configs {
		configs[i].Index = -1
	}
	return NewRuleSet(configs)
}
