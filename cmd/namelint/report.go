package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/oxhq/namelint/core"
)

type reporter interface {
	Report(result *core.LintResult) error
}

func newReporter(w io.Writer, format string, noColor bool) reporter {
	if format == "json" {
		return &jsonReporter{w: w}
	}
	return newTextReporter(w, noColor)
}

type textReporter struct {
	w                             io.Writer
	bold, dim, red, yellow, green *color.Color
}

func newTextReporter(w io.Writer, noColor bool) *textReporter {
	r := &textReporter{
		w:      w,
		bold:   color.New(color.Bold, color.Underline),
		dim:    color.New(color.Faint),
		red:    color.New(color.FgRed, color.Bold),
		yellow: color.New(color.FgYellow),
		green:  color.New(color.FgGreen, color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{r.bold, r.dim, r.red, r.yellow, r.green} {
			c.DisableColor()
		}
	}
	return r
}

// Report prints one block per file with problems, then a summary line.
func (r *textReporter) Report(result *core.LintResult) error {
	for _, f := range result.Files {
		if len(f.Diagnostics) == 0 && len(f.SyntaxErrors) == 0 && f.Error == "" {
			continue
		}

		fmt.Fprintln(r.w, r.bold.Sprint(f.Path))
		if f.Error != "" {
			fmt.Fprintf(r.w, "  %s %s\n", r.red.Sprint("error"), f.Error)
		}
		for _, msg := range f.SyntaxErrors {
			fmt.Fprintf(r.w, "  %s %s\n", r.yellow.Sprint("syntax"), msg)
		}

		width := 0
		for _, d := range f.Diagnostics {
			width = max(width, len(d.Span.String()))
		}
		for i := range f.Diagnostics {
			d := &f.Diagnostics[i]
			loc := d.Span.String()
			fmt.Fprintf(r.w, "  %s%s  %s  %s\n",
				r.dim.Sprint(loc), strings.Repeat(" ", width-len(loc)),
				d.Message(),
				r.dim.Sprint(d.Selector.String()),
			)
		}
		fmt.Fprintln(r.w)
	}

	checked := result.FilesScanned + result.FilesFailed
	switch {
	case result.TotalDiagnostics > 0:
		fmt.Fprintln(r.w, r.red.Sprintf("✖ %d %s in %d %s checked",
			result.TotalDiagnostics, plural(result.TotalDiagnostics, "naming problem", "naming problems"),
			checked, plural(checked, "file", "files")))
	case result.FilesFailed > 0:
		fmt.Fprintln(r.w, r.red.Sprintf("✖ %d %s could not be linted",
			result.FilesFailed, plural(result.FilesFailed, "file", "files")))
	default:
		fmt.Fprintln(r.w, r.green.Sprintf("✓ %d %s checked, no naming problems",
			checked, plural(checked, "file", "files")))
	}
	if result.FilesSkipped > 0 {
		fmt.Fprintln(r.w, r.dim.Sprintf("  %d %s skipped", result.FilesSkipped, plural(result.FilesSkipped, "file", "files")))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

type jsonDiagnostic struct {
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine"`
	EndColumn int    `json:"endColumn"`
	Selector  string `json:"selector"`
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
	Name      string `json:"name"`
	Rule      int    `json:"rule"`
}

type jsonFile struct {
	Path         string           `json:"path"`
	Language     string           `json:"language,omitempty"`
	Diagnostics  []jsonDiagnostic `json:"diagnostics"`
	Occurrences  int              `json:"occurrences"`
	SyntaxErrors []string         `json:"syntaxErrors,omitempty"`
	Skipped      string           `json:"skipped,omitempty"`
	Error        string           `json:"error,omitempty"`
}

type jsonSummary struct {
	FilesScanned int            `json:"filesScanned"`
	FilesSkipped int            `json:"filesSkipped"`
	FilesFailed  int            `json:"filesFailed"`
	Diagnostics  int            `json:"diagnostics"`
	BySelector   map[string]int `json:"bySelector"`
	Occurrences  int            `json:"occurrences"`
	DurationMS   int64          `json:"durationMs"`
}

type jsonReport struct {
	Files   []jsonFile  `json:"files"`
	Summary jsonSummary `json:"summary"`
}

func newJSONReport(result *core.LintResult) jsonReport {
	report := jsonReport{
		Files: make([]jsonFile, 0, len(result.Files)),
		Summary: jsonSummary{
			FilesScanned: result.FilesScanned,
			FilesSkipped: result.FilesSkipped,
			FilesFailed:  result.FilesFailed,
			Diagnostics:  result.TotalDiagnostics,
			BySelector:   result.DiagnosticsBySelector(),
			Occurrences:  result.TotalOccurrences,
			DurationMS:   result.Duration.Milliseconds(),
		},
	}
	for _, f := range result.Files {
		jf := jsonFile{
			Path:         f.Path,
			Language:     f.Language,
			Diagnostics:  make([]jsonDiagnostic, 0, len(f.Diagnostics)),
			Occurrences:  f.Occurrences,
			SyntaxErrors: f.SyntaxErrors,
			Skipped:      f.Skipped,
			Error:        f.Error,
		}
		for i := range f.Diagnostics {
			d := &f.Diagnostics[i]
			jf.Diagnostics = append(jf.Diagnostics, jsonDiagnostic{
				Line:      d.Span.Line,
				Column:    d.Span.Column,
				EndLine:   d.Span.EndLine,
				EndColumn: d.Span.EndColumn,
				Selector:  d.Selector.String(),
				MessageID: string(d.MessageID),
				Message:   d.Message(),
				Name:      d.Data.Name,
				Rule:      d.RuleIndex,
			})
		}
		report.Files = append(report.Files, jf)
	}
	return report
}

type jsonReporter struct {
	w io.Writer
}

func (r *jsonReporter) Report(result *core.LintResult) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newJSONReport(result)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
