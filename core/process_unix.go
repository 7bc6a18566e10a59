//go:build !windows

package core

import (
	"os"
	"syscall"
)

// isProcessAlive reports whether pid names a running process.
func isProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	return err == nil
}
