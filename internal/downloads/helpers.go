package downloads

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"tubetag/internal/domain/consts"
	"tubetag/internal/utils/logging"
)

// waitForFile waits until the file is ready in the file system.
func waitForFile(ctx context.Context, filePath string, timeout time.Duration) error {
	if filePath == "" {
		return fmt.Errorf("downloader reported no output path")
	}

	deadline := time.Now().Add(timeout)
	for {
		_, err := os.Stat(filePath)
		if err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("unexpected error while checking file: %w", err)
		}

		if !time.Now().Before(deadline) {
			return fmt.Errorf("file not present after %v: %s", timeout, filePath)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(consts.FileCheckInterval):
		}
	}
}

// verifyVideoDownload checks if the specified video file exists and is not empty.
func verifyVideoDownload(videoPath string) error {
	info, err := os.Stat(videoPath)
	if err != nil {
		return fmt.Errorf("video file verification failed: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("video path is a directory: %s", videoPath)
	}
	if info.Size() == 0 {
		return fmt.Errorf("video file is empty: %s", videoPath)
	}
	if ext := strings.ToLower(filepath.Ext(videoPath)); !slices.Contains(consts.AllVidExtensions[:], ext) {
		logging.W("Downloaded file %q has unexpected extension %q", filepath.Base(videoPath), ext)
	}
	return nil
}
