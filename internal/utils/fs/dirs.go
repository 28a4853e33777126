// Package fsutils creates and tears down the on-disk output layout.
package fsutils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tubetag/internal/domain/consts"
	"tubetag/internal/models"
	"tubetag/internal/utils/logging"
)

// EnsureDir creates path if it does not exist yet.
//
// Concurrent callers may race between the check and the create; losing that race is not an error.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("path %q exists and is not a directory", path)
		}
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if err := os.Mkdir(path, consts.PermsGenericDir); err != nil {
		if errors.Is(err, fs.ErrExist) {
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				return nil
			}
		}
		return fmt.Errorf("failed to create directory %q: %w", path, err)
	}
	logging.I("Created directory: %s", path)
	return nil
}

// BuildTree creates the root, album and scratch directories in order.
func BuildTree(tree models.DirectoryTree) error {
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(tree.Root)), consts.PermsGenericDir); err != nil {
		return fmt.Errorf("failed to create parent of %q: %w", tree.Root, err)
	}
	for _, dir := range []string{tree.Root, tree.AlbumDir, tree.VideoDir} {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// UniquePath returns dir/base+ext, or dir/base (suffix)+ext if taken reports the former as already claimed.
func UniquePath(dir, base, suffix, ext string, taken func(string) bool) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = suffix
	}
	p := filepath.Join(dir, base+ext)
	if taken == nil || !taken(p) {
		return p
	}
	return filepath.Join(dir, base+" ("+suffix+")"+ext)
}

// FileExists reports whether path exists as a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
