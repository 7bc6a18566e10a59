package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <file>",
		Short: "List every named entity in a file with its selector and modifiers",
		Long: `List every named entity in a file with its selector and modifiers.

This is the classification the rules are matched against; use "namelint rules"
to see which rule wins for a selector.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			registry := newRegistry()
			provider, ok := registry.ForPath(path)
			if !ok {
				return &exitCodeError{code: exitError, err: fmt.Errorf("no provider for %s, supported extensions: %s",
					path, strings.Join(registry.Extensions(), " "))}
			}

			source, err := os.ReadFile(path)
			if err != nil {
				return &exitCodeError{code: exitError, err: fmt.Errorf("failed to read file: %w", err)}
			}
			occurrences, err := provider.Occurrences(cmd.Context(), source)
			if err != nil {
				return &exitCodeError{code: exitError, err: err}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LOCATION\tSELECTOR\tNAME\tMODIFIERS")
			for _, o := range occurrences {
				mods := strings.Join(o.Modifiers.Names(), ",")
				if mods == "" {
					mods = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", o.Identifier.Span, o.Selector, o.Identifier.Name, mods)
			}
			return tw.Flush()
		},
	}
}
