package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

const (
	// BackupExt replaces the storage file extension for the backup copy.
	BackupExt = ".bak"

	dirPerms  = 0o755
	filePerms = 0o644
)

// BackupPath returns the sibling backup path: same base name, ".bak" extension.
func BackupPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + BackupExt
}

// backupFile copies path over its backup if path exists.
// Each call overwrites the previous backup.
func backupFile(path string) error {
	src, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open for backup: %w", err)
	}
	defer src.Close()

	backup := BackupPath(path)
	if err := atomic.WriteFile(backup, src); err != nil {
		return fmt.Errorf("write backup %s: %w", backup, err)
	}
	return os.Chmod(backup, filePerms)
}

// writeWithBackup backs up the current file, then atomically replaces it.
func writeWithBackup(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerms); err != nil {
		return err
	}
	if err := backupFile(path); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, r); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	// atomic.WriteFile doesn't set permissions for new files
	return os.Chmod(path, filePerms)
}
