package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/oxhq/namelint/db"
)

const defaultHistoryDB = ".namelint/history.db"

func newHistoryCmd(a *app) *cobra.Command {
	var dbURL string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded lint runs",
	}
	cmd.PersistentFlags().StringVar(&dbURL, "db", "", "History database (default $NAMELINT_DB or "+defaultHistoryDB+")")

	open := func() (*gorm.DB, error) {
		dsn := dbURL
		if dsn == "" {
			dsn = a.env.DatabaseURL
		}
		if dsn == "" {
			dsn = defaultHistoryDB
		}
		conn, err := db.Connect(dsn, a.env.LibSQLToken, a.debug || a.env.Debug)
		if err != nil {
			return nil, fmt.Errorf("history database: %w", err)
		}
		return conn, nil
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := open()
			if err != nil {
				return err
			}
			defer db.Close(conn)

			runs, err := db.ListRuns(cmd.Context(), conn, limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tSTARTED\tFILES\tPROBLEMS\tDURATION\tPATHS")
			for _, r := range runs {
				var paths []string
				_ = json.Unmarshal(r.Paths, &paths)
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%dms\t%s\n",
					r.ID,
					r.StartedAt.Local().Format("2006-01-02 15:04:05"),
					r.FilesScanned,
					r.Diagnostics,
					r.DurationMS,
					strings.Join(paths, " "),
				)
			}
			return tw.Flush()
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs, 0 lists all")

	diffCmd := &cobra.Command{
		Use:   "diff <from-run> <to-run>",
		Short: "Show naming problems added and fixed between two runs",
		Long: `Show naming problems added and fixed between two runs.

Run ids may be abbreviated to any unique prefix.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := open()
			if err != nil {
				return err
			}
			defer db.Close(conn)

			from, err := db.GetRun(cmd.Context(), conn, args[0])
			if err != nil {
				return err
			}
			to, err := db.GetRun(cmd.Context(), conn, args[1])
			if err != nil {
				return err
			}

			diff, err := db.DiffRuns(from, to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if diff.Empty() {
				fmt.Fprintf(out, "no changes between %s and %s\n", from.ID, to.ID)
				return nil
			}
			fmt.Fprint(out, diff.Unified)
			fmt.Fprintf(out, "\n%d added, %d fixed\n", len(diff.Added), len(diff.Fixed))
			return nil
		},
	}

	cmd.AddCommand(listCmd, diffCmd)
	return cmd
}
