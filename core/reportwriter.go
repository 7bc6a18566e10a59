package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// WriteOptions controls how reports are written.
type WriteOptions struct {
	Sync        bool          // fsync before the rename
	LockTimeout time.Duration // Max time to wait for another writer
}

// DefaultWriteOptions provides sensible defaults
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		LockTimeout: 5 * time.Second,
	}
}

// ReportWriter writes report files atomically. Concurrent namelint
// processes writing the same report serialize on a pid lock file next to
// it.
type ReportWriter struct {
	opts WriteOptions
	mu   sync.Mutex
}

// NewReportWriter creates a report writer
func NewReportWriter(opts WriteOptions) *ReportWriter {
	return &ReportWriter{opts: opts}
}

// WriteJSON encodes v as indented JSON and writes it to path.
func (w *ReportWriter) WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return w.WriteFile(path, append(data, '\n'))
}

// WriteFile replaces path with data through a temp file and rename.
func (w *ReportWriter) WriteFile(path string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	unlock, err := w.lock(path)
	if err != nil {
		return fmt.Errorf("failed to acquire lock for %s: %w", path, err)
	}
	defer unlock()

	var mode os.FileMode = 0o644
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write report: %w", err)
	}
	if w.opts.Sync {
		if err := tmp.Sync(); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to sync: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename report into place: %w", err)
	}
	return nil
}

func (w *ReportWriter) lock(path string) (func(), error) {
	lockPath := path + ".lock"
	deadline := time.Now().Add(w.opts.LockTimeout)

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() { os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}
		if isLockStale(lockPath) {
			os.Remove(lockPath)
			continue
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("timeout waiting for lock on %s", path)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// isLockStale reports whether a lock file was left by a dead process.
func isLockStale(lockPath string) bool {
	content, err := os.ReadFile(lockPath)
	if err != nil {
		return true
	}

	var pid int
	if _, err := fmt.Sscanf(string(content), "%d", &pid); err != nil {
		return true
	}
	return !isProcessAlive(pid)
}
