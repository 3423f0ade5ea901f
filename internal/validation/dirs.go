// Package validation checks directories before the batch pipeline runs, so
// a bad invocation fails with a clear message instead of per-project noise.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// DirValidator validates the data and report directories of a run
type DirValidator struct {
	logger *slog.Logger
}

// NewDirValidator creates a directory validator
func NewDirValidator(logger *slog.Logger) *DirValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirValidator{logger: logger}
}

// ValidateDataDir checks that the analytics data directory exists and is a
// directory.
func (v *DirValidator) ValidateDataDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("data directory %s does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat data directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	v.logger.Debug("data directory validated", slog.String("directory", dir))
	return nil
}

// ValidateOutputDir ensures the reports directory exists (creating it if
// needed) and is writable.
func (v *DirValidator) ValidateOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	f, err := os.Create(testFile)
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	f.Close()
	os.Remove(testFile)

	v.logger.Debug("output directory validated", slog.String("directory", dir))
	return nil
}
