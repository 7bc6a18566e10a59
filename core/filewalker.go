package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/namelint/providers/catalog"
)

// FileWalker finds the files of a scope. The tree is read by one goroutine;
// stat calls and language detection fan out to workers.
type FileWalker struct {
	workers    int
	bufferSize int
}

// NewFileWalker creates a new file walker
func NewFileWalker() *FileWalker {
	return &FileWalker{
		workers:    runtime.NumCPU() * 2, // stat calls are I/O bound
		bufferSize: 1000,
	}
}

// WalkResult is one discovered file. Language is empty when no registered
// language claims the file.
type WalkResult struct {
	Path     string
	Info     fs.FileInfo
	Language string
	Error    error
}

// Walk streams the files of scope. A scope whose path is a file yields that
// file alone. Symbolic links to directories are not followed.
func (fw *FileWalker) Walk(ctx context.Context, scope FileScope) (<-chan WalkResult, error) {
	root, err := validateScope(scope)
	if err != nil {
		return nil, err
	}

	paths := make(chan string, fw.bufferSize)
	results := make(chan WalkResult, fw.bufferSize)

	go func() {
		defer close(paths)
		if !root.IsDir() {
			select {
			case <-ctx.Done():
			case paths <- scope.Path:
			}
			return
		}
		m := scopeMatcher{root: scope.Path, include: scope.Include, exclude: scope.Exclude, maxDepth: scope.MaxDepth}
		_ = filepath.WalkDir(scope.Path, func(path string, d fs.DirEntry, err error) error {
			return m.visit(ctx, path, d, err, paths)
		})
	}()

	var wg sync.WaitGroup
	wg.Add(fw.workers)
	for i := 0; i < fw.workers; i++ {
		go func() {
			defer wg.Done()
			for path := range paths {
				select {
				case <-ctx.Done():
					return
				case results <- inspect(path):
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, nil
}

func inspect(path string) WalkResult {
	info, err := os.Stat(path)
	if err != nil {
		return WalkResult{Path: path, Error: err}
	}
	return WalkResult{Path: path, Info: info, Language: DetectLanguage(path)}
}

// DetectLanguage determines the language of a file from the extensions
// registered in the catalog. Unknown files yield "".
func DetectLanguage(path string) string {
	if info, ok := catalog.LookupByPath(filepath.Base(path)); ok {
		return info.ID
	}
	return ""
}

type scopeMatcher struct {
	root     string
	include  []string
	exclude  []string
	maxDepth int
}

// visit is the WalkDir callback. Unreadable directories are skipped.
func (m scopeMatcher) visit(ctx context.Context, path string, d fs.DirEntry, err error, paths chan<- string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if path == m.root {
		return err
	}
	if err != nil {
		if d != nil && d.IsDir() {
			return fs.SkipDir
		}
		return nil
	}

	if m.matchAny(path, m.exclude) {
		if d.IsDir() {
			return fs.SkipDir
		}
		return nil
	}
	if d.IsDir() {
		if m.maxDepth > 0 && m.depth(path) > m.maxDepth {
			return fs.SkipDir
		}
		return nil
	}
	if d.Type()&fs.ModeSymlink != 0 {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return nil
		}
	}
	if len(m.include) > 0 && !m.matchAny(path, m.include) {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case paths <- path:
		return nil
	}
}

// depth counts the directories between the root and path, path included.
func (m scopeMatcher) depth(path string) int {
	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

func (m scopeMatcher) matchAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if m.match(path, pattern) {
			return true
		}
	}
	return false
}

// match tries a glob against the path relative to the root, the full path,
// and for patterns without a separator the base name.
func (m scopeMatcher) match(path, pattern string) bool {
	candidates := []string{filepath.ToSlash(path)}
	if rel, err := filepath.Rel(m.root, path); err == nil {
		candidates = append(candidates, filepath.ToSlash(rel))
	}
	if !strings.Contains(pattern, "/") {
		candidates = append(candidates, filepath.Base(path))
	}
	for _, c := range candidates {
		if ok, err := doublestar.Match(pattern, c); err == nil && ok {
			return true
		}
	}
	return false
}

func validateScope(scope FileScope) (fs.FileInfo, error) {
	if scope.Path == "" {
		return nil, errors.New("path is required")
	}

	info, err := os.Stat(scope.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot access path %s: %w", scope.Path, err)
	}

	for _, pattern := range append(append([]string{}, scope.Include...), scope.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return info, nil
}

// Files collects the discovered paths in sorted order, skipping files that
// could not be stat'ed.
func (fw *FileWalker) Files(ctx context.Context, scope FileScope) ([]string, error) {
	results, err := fw.Walk(ctx, scope)
	if err != nil {
		return nil, err
	}

	var files []string
	for result := range results {
		if result.Error == nil {
			files = append(files, result.Path)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
