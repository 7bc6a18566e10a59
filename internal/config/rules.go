package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oxhq/namelint/naming"
)

// ErrConfig marks every rule file problem.
var ErrConfig = errors.New("invalid configuration")

// ruleFile is the object form of a rule file. A file may also be a bare
// list of rules.
type ruleFile struct {
	Rules   []naming.RawSelector `yaml:"rules"`
	Include []string             `yaml:"include"`
	Exclude []string             `yaml:"exclude"`
}

// Rules is a validated rule configuration.
type Rules struct {
	Path    string
	Raw     []naming.RawSelector
	Include []string
	Exclude []string
	// Default is set when no rules were configured and the built-in set is
	// in effect.
	Default bool

	RuleSet *naming.RuleSet
}

// DefaultRules returns the built-in rule configuration.
func DefaultRules() *Rules {
	return &Rules{
		Raw:     naming.DefaultConfig(),
		Default: true,
		RuleSet: naming.DefaultRuleSet(),
	}
}

// LoadRules reads and validates a rule file. An empty path selects the
// built-in rules.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read rule file: %v", ErrConfig, err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rules.Path = path
	return rules, nil
}

// ParseRules decodes a YAML or JSON rule document.
func ParseRules(data []byte) (*Rules, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return DefaultRules(), nil
	}

	var file ruleFile
	switch doc := root.Content[0]; doc.Kind {
	case yaml.SequenceNode:
		if err := decodeStrict(data, &file.Rules); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		if err := decodeStrict(data, &file); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: expected a list of rules or an object with a rules key", ErrConfig)
	}

	if len(file.Rules) == 0 {
		rules := DefaultRules()
		rules.Include = file.Include
		rules.Exclude = file.Exclude
		return rules, nil
	}

	for i, r := range file.Rules {
		if err := validateRule(r); err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrConfig, i, err)
		}
	}
	configs, err := naming.Normalize(file.Rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %v%s", ErrConfig, err, expectedNames(err))
	}

	return &Rules{
		Raw:     file.Rules,
		Include: file.Include,
		Exclude: file.Exclude,
		RuleSet: naming.NewRuleSet(configs),
	}, nil
}

var schemaErrors = []struct {
	err  error
	enum string
}{
	{naming.ErrUnknownSelector, "selector"},
	{naming.ErrUnknownModifier, "modifier"},
	{naming.ErrUnknownType, "type"},
	{naming.ErrUnknownFormat, "format"},
	{naming.ErrUnknownUnderscore, "underscore"},
}

// expectedNames lists the accepted names for an unknown-name error.
func expectedNames(err error) string {
	for _, s := range schemaErrors {
		if errors.Is(err, s.err) {
			return " (expected one of: " + strings.Join(naming.SchemaNames()[s.enum], ", ") + ")"
		}
	}
	return ""
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}

// validateRule checks what the schema requires beyond known names, which
// naming.Normalize resolves.
func validateRule(r naming.RawSelector) error {
	if len(r.Selector) == 0 {
		return errors.New("selector is required")
	}
	seen := make(map[string]bool, len(r.Modifiers))
	for _, m := range r.Modifiers {
		if seen[m] {
			return fmt.Errorf("duplicate modifier %q", m)
		}
		seen[m] = true
	}
	for _, affix := range append(append([]string{}, r.Prefix...), r.Suffix...) {
		if affix == "" {
			return errors.New("prefix and suffix entries must not be empty")
		}
	}
	return nil
}
