// Package downloads fetches video streams to local disk and verifies them.
package downloads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tubetag/internal/catalog"
	"tubetag/internal/domain/consts"
	"tubetag/internal/domain/errconsts"
	"tubetag/internal/utils/logging"
)

// Options configures a Fetcher.
type Options struct {
	// MaxRetries is how many fresh resolutions follow the first attempt.
	MaxRetries      int
	FileWaitTimeout time.Duration
}

// DefaultOptions are used when NewFetcher gets nil options.
var DefaultOptions = Options{
	MaxRetries:      consts.DefaultDownloadRetries,
	FileWaitTimeout: consts.FileWaitTimeout,
}

// Result is a verified local download.
type Result struct {
	Path  string
	Title string
}

// Fetcher downloads a single video with quality fallback and existence checks.
type Fetcher struct {
	src  catalog.Source
	opts Options
}

// NewFetcher creates a Fetcher reading streams from src.
func NewFetcher(src catalog.Source, opts *Options) *Fetcher {
	f := &Fetcher{
		src:  src,
		opts: DefaultOptions,
	}
	if opts != nil {
		f.opts = *opts
	}
	if f.opts.MaxRetries < 0 {
		f.opts.MaxRetries = 0
	}
	if f.opts.FileWaitTimeout <= 0 {
		f.opts.FileWaitTimeout = consts.FileWaitTimeout
	}
	return f
}

// Fetch downloads videoID into destDir.
//
// Each attempt resolves a fresh stream handle. A partial transfer at the
// highest quality falls back once to the lowest; a second partial transfer
// fails the item. A download that reports success but leaves no file behind
// is retried up to MaxRetries times before ErrDownloadFailed is returned.
func (f *Fetcher) Fetch(ctx context.Context, videoID, destDir string) (*Result, error) {
	attempts := f.opts.MaxRetries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logging.D(2, "Download attempt %d/%d for video %q", attempt, attempts, videoID)

		res, err := f.attempt(ctx, videoID, destDir)
		if err == nil {
			if attempt > 1 {
				logging.S("Video %q downloaded after %d attempts", videoID, attempt)
			}
			return res, nil
		}

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case errors.Is(err, errconsts.ErrPartialTransfer):
			return nil, fmt.Errorf("%w: %s: lowest quality also incomplete: %w", errconsts.ErrDownloadFailed, videoID, err)
		}

		lastErr = err
		logging.W("Download attempt %d/%d for video %q failed: %v", attempt, attempts, videoID, err)
	}

	return nil, fmt.Errorf("%w: %s after %d attempts: %w", errconsts.ErrDownloadFailed, videoID, attempts, lastErr)
}

// attempt runs one resolve-download-verify cycle.
func (f *Fetcher) attempt(ctx context.Context, videoID, destDir string) (*Result, error) {
	handle, err := f.src.ResolveStream(ctx, videoID, catalog.QualityHighest)
	if err != nil {
		return nil, fmt.Errorf("resolve %s stream: %w", catalog.QualityHighest, err)
	}

	path, err := handle.Download(ctx, destDir)
	if errors.Is(err, errconsts.ErrPartialTransfer) {
		logging.W("Partial transfer for %q at highest quality, falling back to lowest", videoID)

		handle, err = f.src.ResolveStream(ctx, videoID, catalog.QualityLowest)
		if err != nil {
			return nil, fmt.Errorf("resolve %s stream: %w", catalog.QualityLowest, err)
		}
		path, err = handle.Download(ctx, destDir)
	}
	if err != nil {
		return nil, err
	}

	if err := waitForFile(ctx, path, f.opts.FileWaitTimeout); err != nil {
		return nil, err
	}
	if err := verifyVideoDownload(path); err != nil {
		return nil, err
	}

	return &Result{
		Path:  path,
		Title: handle.Title(),
	}, nil
}
