package fsutils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tubetag/internal/models"
	"tubetag/internal/utils/logging"
)

// RemoveFile deletes path and reports a failure as a cleanup warning rather than an error.
//
// A file that is already gone counts as removed.
func RemoveFile(path string) *models.CleanupWarning {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.E("Unable to delete %s: %v", path, err)
		return &models.CleanupWarning{Path: path, Err: err}
	}
	logging.D(2, "Deleted %s", path)
	return nil
}

// CleanDir removes every entry in dir and then dir itself.
//
// Entries that cannot be removed are returned as warnings and the directory is left in place.
func CleanDir(dir string) []models.CleanupWarning {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		logging.E("Unable to read directory %s: %v", dir, err)
		return []models.CleanupWarning{{Path: dir, Err: err}}
	}

	logging.I("Cleaning directory: %s", dir)

	var warnings []models.CleanupWarning
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			logging.E("Unable to delete %s: %v", p, err)
			warnings = append(warnings, models.CleanupWarning{Path: p, Err: err})
			continue
		}
		logging.D(2, "Deleted %s", p)
	}

	if len(warnings) > 0 {
		warnings = append(warnings, models.CleanupWarning{
			Path: dir,
			Err:  fmt.Errorf("directory not removed, %d entr(ies) remain", len(warnings)),
		})
		return warnings
	}

	if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.E("Unable to delete directory %s: %v", dir, err)
		return []models.CleanupWarning{{Path: dir, Err: err}}
	}
	logging.I("Deleted directory: %s", dir)
	return nil
}
