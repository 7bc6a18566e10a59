package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oxhq/namelint/core"
	"github.com/oxhq/namelint/db"
	"github.com/oxhq/namelint/internal/config"
)

// Directories nobody wants linted.
var defaultExcludes = []string{"node_modules", ".git", "dist", "build", "coverage"}

type lintOptions struct {
	configPath  string
	format      string
	include     []string
	exclude     []string
	workers     int
	maxBytes    int64
	dbURL       string
	keepRuns    int
	metricsFile string
	output      string
	noColor     bool
}

func newLintCmd(a *app) *cobra.Command {
	opts := &lintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check identifier names against the configured rules",
		Long: `Check identifier names against the configured rules.

Paths may be files or directories and default to the current directory.
The exit status is 1 when naming problems are found and 2 when the
configuration is invalid or a file could not be linted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLint(cmd, opts, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.configPath, "config", "c", "", "Rule file (YAML or JSON); defaults to $NAMELINT_CONFIG or the built-in rules")
	fs.StringVarP(&opts.format, "format", "f", "text", "Output format: text or json")
	fs.StringSliceVar(&opts.include, "include", nil, "Only lint files matching these globs")
	fs.StringSliceVar(&opts.exclude, "exclude", nil, "Skip files and directories matching these globs")
	fs.IntVarP(&opts.workers, "workers", "w", 0, "Files linted in parallel, 0 means one per CPU")
	fs.Int64Var(&opts.maxBytes, "max-bytes", 0, "Skip files larger than this, 0 means $NAMELINT_MAX_BYTES or 1MiB")
	fs.StringVar(&opts.dbURL, "db", "", "Record the run in this history database (file path or libsql:// URL)")
	fs.IntVar(&opts.keepRuns, "keep-runs", 50, "Runs kept in the history database, 0 keeps all")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	fs.StringVarP(&opts.output, "output", "o", "", "Also write the JSON report to this file")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	return cmd
}

// resolve fills unset options from the environment.
func (o *lintOptions) resolve(cmd *cobra.Command, env *config.Config) {
	if !cmd.Flags().Changed("config") {
		o.configPath = env.RulesPath
	}
	if !cmd.Flags().Changed("workers") {
		o.workers = env.Workers
	}
	if !cmd.Flags().Changed("max-bytes") {
		o.maxBytes = env.MaxBytes
	}
	if !cmd.Flags().Changed("db") {
		o.dbURL = env.DatabaseURL
	}
	if !cmd.Flags().Changed("metrics-file") {
		o.metricsFile = env.MetricsFile
	}
}

func (a *app) runLint(cmd *cobra.Command, opts *lintOptions, args []string) error {
	opts.resolve(cmd, a.env)
	if opts.format != "text" && opts.format != "json" {
		return &exitCodeError{code: exitError, err: fmt.Errorf("unknown format %q, want text or json", opts.format)}
	}

	rules, err := config.LoadRules(opts.configPath)
	if err != nil {
		return &exitCodeError{code: exitError, err: err}
	}
	a.logger.Debug("rules loaded",
		zap.String("path", rules.Path),
		zap.Bool("default", rules.Default),
		zap.Int("rules", len(rules.Raw)),
	)

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}
	include := opts.include
	if len(include) == 0 {
		include = rules.Include
	}
	exclude := append(append(append([]string{}, defaultExcludes...), rules.Exclude...), opts.exclude...)

	scopes := make([]core.FileScope, len(paths))
	for i, p := range paths {
		scopes[i] = core.FileScope{Path: p, Include: include, Exclude: exclude}
	}

	var metrics *core.Metrics
	if opts.metricsFile != "" {
		metrics = core.NewMetrics()
	}

	registry := newRegistry()
	linter := core.NewLinter(registry, rules.RuleSet, core.LinterOptions{
		Workers:  opts.workers,
		MaxBytes: opts.maxBytes,
		Logger:   a.logger,
		Metrics:  metrics,
	})

	started := time.Now()
	result, err := linter.Lint(cmd.Context(), scopes...)
	if err != nil {
		return &exitCodeError{code: exitError, err: err}
	}
	for _, p := range registry.List() {
		stats := p.Stats()
		a.logger.Debug("provider stats",
			zap.String("language", p.Language()),
			zap.Int64("parses", stats.BorrowCount),
			zap.Int64("analysis_hits", stats.AnalysisHits),
			zap.Int64("analysis_misses", stats.AnalysisMisses),
		)
	}

	reporter := newReporter(cmd.OutOrStdout(), opts.format, opts.noColor)
	if err := reporter.Report(result); err != nil {
		return &exitCodeError{code: exitError, err: err}
	}

	if opts.output != "" {
		w := core.NewReportWriter(core.DefaultWriteOptions())
		if err := w.WriteJSON(opts.output, newJSONReport(result)); err != nil {
			return &exitCodeError{code: exitError, err: err}
		}
	}

	if metrics != nil {
		if err := metrics.WriteToTextfile(opts.metricsFile); err != nil {
			return &exitCodeError{code: exitError, err: err}
		}
	}

	if opts.dbURL != "" {
		if err := a.recordRun(cmd, opts, db.RunInput{
			Result:     result,
			Paths:      paths,
			ConfigPath: rules.Path,
			Rules:      rules.Raw,
			StartedAt:  started,
		}); err != nil {
			return &exitCodeError{code: exitError, err: err}
		}
	}

	switch {
	case result.FilesFailed > 0:
		return &exitCodeError{code: exitError}
	case result.HasDiagnostics():
		return &exitCodeError{code: exitProblems}
	}
	return nil
}

func (a *app) recordRun(cmd *cobra.Command, opts *lintOptions, in db.RunInput) error {
	conn, err := db.Connect(opts.dbURL, a.env.LibSQLToken, a.debug || a.env.Debug)
	if err != nil {
		return fmt.Errorf("history database: %w", err)
	}
	defer db.Close(conn)

	run, err := db.NewRun(in)
	if err != nil {
		return err
	}
	if err := db.SaveRun(cmd.Context(), conn, run); err != nil {
		return err
	}
	pruned, err := db.PruneRuns(cmd.Context(), conn, opts.keepRuns)
	if err != nil {
		return err
	}

	a.logger.Debug("run recorded", zap.String("run", run.ID), zap.Int64("pruned", pruned))
	if opts.format == "text" {
		fmt.Fprintf(cmd.ErrOrStderr(), "recorded run %s\n", run.ID)
	}
	return nil
}
