package core

import (
	"time"

	"github.com/oxhq/namelint/naming"
)

// FileScope selects the files of one lint path.
type FileScope struct {
	Path     string   `json:"path"`                // Directory to scan, or a single file
	Include  []string `json:"include,omitempty"`   // Globs a file must match (**/*.ts)
	Exclude  []string `json:"exclude,omitempty"`   // Globs that drop a file or a whole directory
	MaxDepth int      `json:"max_depth,omitempty"` // Directory levels below Path, 0 = unlimited
}

// FileReport is the lint outcome of one file.
type FileReport struct {
	Path         string              `json:"path"`
	Language     string              `json:"language"`
	Diagnostics  []naming.Diagnostic `json:"diagnostics"`
	Occurrences  int                 `json:"occurrences"`
	SyntaxErrors []string            `json:"syntax_errors,omitempty"`
	Size         int64               `json:"size"`
	Skipped      string              `json:"skipped,omitempty"` // Reason the file was not linted
	Error        string              `json:"error,omitempty"`
}

// LintResult aggregates a lint run over many files.
type LintResult struct {
	Files            []FileReport  `json:"files"`
	FilesScanned     int           `json:"files_scanned"`
	FilesSkipped     int           `json:"files_skipped"`
	FilesFailed      int           `json:"files_failed"`
	TotalDiagnostics int           `json:"total_diagnostics"`
	TotalOccurrences int           `json:"total_occurrences"`
	Duration         time.Duration `json:"duration_ns"`
}

// HasDiagnostics reports whether any file has a naming violation.
func (r *LintResult) HasDiagnostics() bool {
	return r.TotalDiagnostics > 0
}

// DiagnosticsBySelector counts diagnostics per selector name.
func (r *LintResult) DiagnosticsBySelector() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.Files {
		for _, d := range f.Diagnostics {
			counts[d.Selector.String()]++
		}
	}
	return counts
}
