package core

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oxhq/namelint/naming"
	"github.com/oxhq/namelint/providers"
)

// ProviderRegistry interface for provider lookup
type ProviderRegistry interface {
	Get(language string) (providers.Provider, bool)
	ForPath(path string) (providers.Provider, bool)
}

// LinterOptions tunes a Linter. Zero values pick defaults.
type LinterOptions struct {
	Workers  int         // Files linted in parallel (default: NumCPU)
	MaxBytes int64       // Larger files are skipped (0 = unlimited)
	Logger   *zap.Logger // Defaults to a no-op logger
	Metrics  *Metrics    // Optional
}

// Linter lints files with the providers of a registry against one rule set.
type Linter struct {
	walker    *FileWalker
	providers ProviderRegistry
	rules     *naming.RuleSet
	workers   int
	maxBytes  int64
	logger    *zap.Logger
	metrics   *Metrics
}

// NewLinter creates a linter. The rule set is shared read-only by all
// workers.
func NewLinter(registry ProviderRegistry, rules *naming.RuleSet, opts LinterOptions) *Linter {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Linter{
		walker:    NewFileWalker(),
		providers: registry,
		rules:     rules,
		workers:   workers,
		maxBytes:  opts.MaxBytes,
		logger:    logger,
		metrics:   opts.Metrics,
	}
}

// Lint discovers the files of every scope and lints them in parallel.
// Per-file failures are recorded in the file's report; only discovery
// errors and cancellation fail the run.
func (l *Linter) Lint(ctx context.Context, scopes ...FileScope) (*LintResult, error) {
	start := time.Now()

	files, err := l.discover(ctx, scopes)
	if err != nil {
		return nil, err
	}

	reports := make([]FileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, wr := range files {
		g.Go(func() error {
			fileStart := time.Now()
			reports[i] = l.lintFile(gctx, wr)
			if reports[i].Skipped == "" {
				l.metrics.RecordFile(reports[i], time.Since(fileStart))
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := summarize(reports)
	result.Duration = time.Since(start)
	l.metrics.RecordRun(result.Duration)

	l.logger.Info("lint run finished",
		zap.Int("files", result.FilesScanned),
		zap.Int("skipped", result.FilesSkipped),
		zap.Int("failed", result.FilesFailed),
		zap.Int("diagnostics", result.TotalDiagnostics),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

func (l *Linter) discover(ctx context.Context, scopes []FileScope) ([]WalkResult, error) {
	seen := make(map[string]bool)
	var files []WalkResult
	for _, scope := range scopes {
		results, err := l.walker.Walk(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("failed to walk files: %w", err)
		}
		for r := range results {
			if seen[r.Path] {
				continue
			}
			// Directory scans only pick up files some language claims.
			if r.Error == nil && r.Language == "" && r.Path != scope.Path {
				continue
			}
			seen[r.Path] = true
			files = append(files, r)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (l *Linter) providerFor(wr WalkResult) (providers.Provider, bool) {
	if wr.Language != "" {
		if p, ok := l.providers.Get(wr.Language); ok {
			return p, true
		}
	}
	return l.providers.ForPath(wr.Path)
}

func (l *Linter) lintFile(ctx context.Context, wr WalkResult) FileReport {
	report := FileReport{Path: wr.Path, Language: wr.Language}
	if wr.Error != nil {
		report.Error = wr.Error.Error()
		l.logger.Warn("cannot stat file", zap.String("path", wr.Path), zap.Error(wr.Error))
		return report
	}
	report.Size = wr.Info.Size()

	provider, ok := l.providerFor(wr)
	if !ok {
		report.Skipped = "no provider for file"
		return report
	}
	report.Language = provider.Language()

	if l.maxBytes > 0 && report.Size > l.maxBytes {
		report.Skipped = fmt.Sprintf("file exceeds %d bytes", l.maxBytes)
		l.logger.Debug("skipping large file", zap.String("path", wr.Path), zap.Int64("size", report.Size))
		return report
	}

	source, err := os.ReadFile(wr.Path)
	if err != nil {
		report.Error = fmt.Sprintf("failed to read file: %v", err)
		l.logger.Warn("cannot read file", zap.String("path", wr.Path), zap.Error(err))
		return report
	}

	return l.lintSource(ctx, provider, report, source)
}

// LintSource lints in-memory source as if it were the file at path.
func (l *Linter) LintSource(ctx context.Context, path string, source []byte) (FileReport, error) {
	provider, ok := l.providers.ForPath(path)
	if !ok {
		return FileReport{}, fmt.Errorf("no provider for %s", path)
	}
	report := FileReport{Path: path, Language: provider.Language(), Size: int64(len(source))}
	report = l.lintSource(ctx, provider, report, source)
	if report.Error != "" {
		return report, fmt.Errorf("%s: %s", path, report.Error)
	}
	return report, nil
}

func (l *Linter) lintSource(ctx context.Context, provider providers.Provider, report FileReport, source []byte) FileReport {
	result, err := provider.Lint(ctx, source, l.rules)
	if err != nil {
		report.Error = err.Error()
		l.logger.Warn("cannot lint file", zap.String("path", report.Path), zap.Error(err))
		return report
	}

	report.Diagnostics = result.Diagnostics
	report.Occurrences = result.Occurrences
	report.SyntaxErrors = result.SyntaxErrors
	if len(result.SyntaxErrors) > 0 {
		l.logger.Debug("file has syntax errors",
			zap.String("path", report.Path),
			zap.Strings("errors", result.SyntaxErrors),
		)
	}
	return report
}

func summarize(reports []FileReport) *LintResult {
	result := &LintResult{Files: reports}
	for _, r := range reports {
		switch {
		case r.Skipped != "":
			result.FilesSkipped++
		case r.Error != "":
			result.FilesFailed++
		default:
			result.FilesScanned++
		}
		result.TotalDiagnostics += len(r.Diagnostics)
		result.TotalOccurrences += r.Occurrences
	}
	return result
}
