package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxhq/namelint/internal/config"
	"github.com/oxhq/namelint/naming"
)

func newRulesCmd(a *app) *cobra.Command {
	var configPath, selector string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show which rules apply to each selector, in resolution order",
		Long: `Show which rules apply to each selector, in resolution order.

For every selector the first listed rule whose modifiers, types and filter
match an identifier is the one that validates it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("config") {
				configPath = a.env.RulesPath
			}
			rules, err := config.LoadRules(configPath)
			if err != nil {
				return &exitCodeError{code: exitError, err: err}
			}

			selectors := naming.Selectors()
			if selector != "" {
				sel, err := naming.ParseSelector(selector)
				if err != nil {
					return &exitCodeError{code: exitError, err: err}
				}
				selectors = selectors[:0]
				for _, s := range naming.Selectors() {
					if sel.Matches(s) {
						selectors = append(selectors, s)
					}
				}
			}

			printRules(cmd.OutOrStdout(), rules, selectors)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Rule file (YAML or JSON)")
	cmd.Flags().StringVarP(&selector, "selector", "s", "", "Only show this selector (meta selectors expand)")
	return cmd
}

func printRules(w io.Writer, rules *config.Rules, selectors []naming.Selector) {
	if rules.Default {
		fmt.Fprintln(w, "# built-in rules")
	} else {
		fmt.Fprintf(w, "# rules from %s\n", rules.Path)
	}

	for _, sel := range selectors {
		fmt.Fprintf(w, "\n%s\n", sel)
		candidates := rules.RuleSet.Candidates(sel)
		if len(candidates) == 0 {
			fmt.Fprintln(w, "  (no rule, not checked)")
			continue
		}
		for i, c := range candidates {
			fmt.Fprintf(w, "  %d. %s\n", i+1, describeRule(c))
		}
	}
}

func describeRule(c naming.NormalizedSelector) string {
	var parts []string
	if c.Index < 0 {
		parts = append(parts, "default")
	} else {
		parts = append(parts, fmt.Sprintf("rule %d", c.Index))
	}
	parts = append(parts, "selector="+c.Selector.String())

	if len(c.Modifiers) > 0 {
		names := make([]string, len(c.Modifiers))
		for i, m := range c.Modifiers {
			names[i] = m.String()
		}
		parts = append(parts, "modifiers="+strings.Join(names, ","))
	}
	if c.Types != nil {
		names := make([]string, len(c.Types))
		for i, t := range c.Types {
			names[i] = t.String()
		}
		parts = append(parts, "types="+strings.Join(names, ","))
	}
	if c.Filter != nil {
		parts = append(parts, "filter="+regexDescription(c.Filter))
	}

	if c.Format == nil {
		parts = append(parts, "format=none")
	} else {
		names := make([]string, len(c.Format))
		for i, f := range c.Format {
			names[i] = f.String()
		}
		parts = append(parts, "format="+strings.Join(names, ","))
	}
	if c.LeadingUnderscore != 0 {
		parts = append(parts, "leading="+c.LeadingUnderscore.String())
	}
	if c.TrailingUnderscore != 0 {
		parts = append(parts, "trailing="+c.TrailingUnderscore.String())
	}
	if len(c.Prefix) > 0 {
		parts = append(parts, "prefix="+strings.Join(c.Prefix, ","))
	}
	if len(c.Suffix) > 0 {
		parts = append(parts, "suffix="+strings.Join(c.Suffix, ","))
	}
	if c.Custom != nil {
		parts = append(parts, "custom="+regexDescription(c.Custom))
	}
	return strings.Join(parts, " ")
}

// regexDescription marks patterns that must not match with a leading "!".
func regexDescription(re *naming.CompiledRegex) string {
	if re.Match {
		return re.String()
	}
	return "!" + re.String()
}
