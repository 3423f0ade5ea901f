package files

import (
	"os"
	"path/filepath"
	"strings"

	"fbmetrics/internal/errors"
)

// Base filename patterns of the three export kinds, without the optional
// numeric suffix and extension Firebase appends.
const (
	OverviewPattern = "Firebase_overview"
	EventsPattern   = "Events_Event_name"
	ScreensPattern  = "Pages_and_screens_Page_title_and_screen_class"
)

// Locator resolves logical dataset names to CSV files on disk
type Locator struct {
	basePath string
}

// NewLocator creates a new locator rooted at the given data directory
func NewLocator(basePath string) *Locator {
	return &Locator{basePath: basePath}
}

// Locate resolves a base filename pattern inside a project folder.
// It tries an exact match on pattern+".csv" first, then falls back to a
// case-insensitive prefix scan over the folder's CSV entries.
func (l *Locator) Locate(folder, basePattern string) (string, error) {
	dir := folder
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(l.basePath, dir)
	}

	exact := filepath.Join(dir, basePattern+".csv")
	if info, err := os.Stat(exact); err == nil && !info.IsDir() {
		return exact, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.NewNotFoundError("dataset folder").
			WithContext("folder", dir)
	}

	prefix := strings.ToLower(basePattern)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".csv") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", errors.NewNotFoundError("dataset file").
		WithContext("folder", dir).
		WithContext("pattern", basePattern)
}

// LocateNumbered resolves a pattern preferring Firebase's first-export
// naming: pattern+"1" is tried before the bare pattern, so that
// "Events_Event_name1.csv" wins when both forms exist.
func (l *Locator) LocateNumbered(folder, basePattern string) (string, error) {
	if path, err := l.Locate(folder, basePattern+"1"); err == nil {
		return path, nil
	}
	return l.Locate(folder, basePattern)
}

// ValidDataset reports whether a folder holds all three export kinds
func (l *Locator) ValidDataset(folder string) bool {
	if _, err := l.Locate(folder, OverviewPattern); err != nil {
		return false
	}
	if _, err := l.LocateNumbered(folder, EventsPattern); err != nil {
		return false
	}
	if _, err := l.LocateNumbered(folder, ScreensPattern); err != nil {
		return false
	}
	return true
}

// ListDatasets returns the names of subfolders that hold a complete dataset
func (l *Locator) ListDatasets() ([]string, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, errors.NewStorageError("failed to read data directory", err)
	}

	var folders []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if l.ValidDataset(entry.Name()) {
			folders = append(folders, entry.Name())
		}
	}

	return folders, nil
}
