// pkg/store/backup.go
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Backup copies every target file that currently exists into a fresh
// timestamped directory under backupRoot. It must run exactly once per
// run, before the first mutation: everything after it is recoverable by
// restoring the directory. Failure here is fatal to the run.
func Backup(paths []string, backupRoot string, now time.Time, logger *zap.Logger) (string, error) {
	dir := filepath.Join(backupRoot, "backup-"+now.UTC().Format("20060102-150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory %s: %w", dir, err)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			// Nothing persisted yet for this target.
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to read %s for backup: %w", path, err)
		}

		dst := filepath.Join(dir, filepath.Base(path))
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup %s: %w", dst, err)
		}

		if logger != nil {
			logger.Info("backed up target file",
				zap.String("source", path),
				zap.String("backup", dst))
		}
	}

	return dir, nil
}
