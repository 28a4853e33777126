// Package errconsts holds the error kinds shared across the pipeline.
package errconsts

import "errors"

// Fatal to the whole job.
var (
	ErrNotFound        = errors.New("playlist not found")
	ErrCatalogUnstable = errors.New("catalog metadata did not stabilize")
)

// Isolated to a single item.
var (
	ErrDownloadFailed  = errors.New("download failed")
	ErrConversion      = errors.New("conversion failed")
	ErrPartialTransfer = errors.New("partial transfer")
	ErrCancelled       = errors.New("cancelled before dispatch")
)

// Programs
const (
	YTDLPFailure  = "yt-dlp command failed: %w"
	FFmpegFailure = "ffmpeg command failed: %w"
)
