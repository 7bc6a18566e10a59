package db

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/oxhq/namelint/core"
	"github.com/oxhq/namelint/models"
	"github.com/oxhq/namelint/naming"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrAmbiguousRun = errors.New("run id prefix is ambiguous")
)

// RunInput describes a finished lint run to record.
type RunInput struct {
	Result     *core.LintResult
	Paths      []string
	ConfigPath string
	Rules      []naming.RawSelector
	StartedAt  time.Time
}

// NewRun converts a lint result into a run record with its findings sorted
// by location.
func NewRun(in RunInput) (*models.Run, error) {
	paths, err := json.Marshal(in.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to encode paths: %w", err)
	}
	digest, err := rulesDigest(in.Rules)
	if err != nil {
		return nil, err
	}

	run := &models.Run{
		ID:           newRunID(),
		StartedAt:    in.StartedAt.UTC(),
		Paths:        datatypes.JSON(paths),
		ConfigPath:   in.ConfigPath,
		RulesDigest:  digest,
		FilesScanned: in.Result.FilesScanned,
		FilesSkipped: in.Result.FilesSkipped,
		FilesFailed:  in.Result.FilesFailed,
		Diagnostics:  in.Result.TotalDiagnostics,
		Occurrences:  in.Result.TotalOccurrences,
		DurationMS:   in.Result.Duration.Milliseconds(),
	}

	for _, file := range in.Result.Files {
		for i := range file.Diagnostics {
			d := &file.Diagnostics[i]
			data, err := json.Marshal(d.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to encode diagnostic data: %w", err)
			}
			run.Findings = append(run.Findings, models.Finding{
				RunID:     run.ID,
				Path:      file.Path,
				Line:      d.Span.Line,
				Column:    d.Span.Column,
				Selector:  d.Selector.String(),
				MessageID: string(d.MessageID),
				Name:      d.Data.Name,
				Message:   d.Message(),
				RuleIndex: d.RuleIndex,
				Data:      datatypes.JSON(data),
			})
		}
	}
	sortFindings(run.Findings)
	return run, nil
}

func rulesDigest(rules []naming.RawSelector) (string, error) {
	data, err := json.Marshal(rules)
	if err != nil {
		return "", fmt.Errorf("failed to encode rules: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func newRunID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("run_%x", time.Now().UTC().UnixNano())
	}
	return "run_" + hex.EncodeToString(buf)
}

func sortFindings(findings []models.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// SaveRun stores a run and its findings in one transaction.
func SaveRun(ctx context.Context, db *gorm.DB, run *models.Run) error {
	err := db.WithContext(ctx).Session(&gorm.Session{CreateBatchSize: 500}).Create(run).Error
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first, without findings.
func ListRuns(ctx context.Context, db *gorm.DB, limit int) ([]models.Run, error) {
	var runs []models.Run
	query := db.WithContext(ctx).Order("started_at DESC").Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun loads a run and its findings. id may be a unique prefix of a run
// id.
func GetRun(ctx context.Context, db *gorm.DB, id string) (*models.Run, error) {
	var runs []models.Run
	err := db.WithContext(ctx).
		Where("substr(id, 1, ?) = ?", len(id), id).
		Order("id").
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	if id == "" || len(runs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	run := runs[0]
	if len(runs) > 1 {
		i := slices.IndexFunc(runs, func(r models.Run) bool { return r.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, id)
		}
		run = runs[i]
	}
	if err := db.WithContext(ctx).Where("run_id = ?", run.ID).Order("id").Find(&run.Findings).Error; err != nil {
		return nil, fmt.Errorf("failed to load findings of %s: %w", run.ID, err)
	}
	return &run, nil
}

// PruneRuns deletes all but the keep most recent runs. keep <= 0 keeps
// everything.
func PruneRuns(ctx context.Context, db *gorm.DB, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	var ids []string
	err := db.WithContext(ctx).Model(&models.Run{}).
		Order("started_at DESC").Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("failed to find stale runs: %w", err)
	}
	if len(ids) <= keep {
		return 0, nil
	}
	stale := ids[keep:]

	var deleted int64
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id IN ?", stale).Delete(&models.Finding{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", stale).Delete(&models.Run{})
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return deleted, nil
}

// RunDiff compares the findings of two runs.
type RunDiff struct {
	From    string
	To      string
	Added   []models.Finding // only in To
	Fixed   []models.Finding // only in From
	Unified string
}

// Empty reports whether both runs have the same findings.
func (d *RunDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Fixed) == 0
}

// DiffRuns compares findings by location, selector, name and message.
func DiffRuns(from, to *models.Run) (*RunDiff, error) {
	diff := &RunDiff{From: from.ID, To: to.ID}

	remaining := make(map[string]int)
	for _, f := range from.Findings {
		remaining[f.Key()]++
	}
	for _, f := range to.Findings {
		if remaining[f.Key()] > 0 {
			remaining[f.Key()]--
			continue
		}
		diff.Added = append(diff.Added, f)
	}

	present := make(map[string]int)
	for _, f := range to.Findings {
		present[f.Key()]++
	}
	for _, f := range from.Findings {
		if present[f.Key()] > 0 {
			present[f.Key()]--
			continue
		}
		diff.Fixed = append(diff.Fixed, f)
	}

	if diff.Empty() {
		return diff, nil
	}

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(findingLines(from.Findings)),
		B:        difflib.SplitLines(findingLines(to.Findings)),
		FromFile: from.ID,
		ToFile:   to.ID,
		Context:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render diff: %w", err)
	}
	diff.Unified = unified
	return diff, nil
}

func findingLines(findings []models.Finding) string {
	var b strings.Builder
	for _, f := range findings {
		b.WriteString(f.Key())
		b.WriteByte('\n')
	}
	return b.String()
}
