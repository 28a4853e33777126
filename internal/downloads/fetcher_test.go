package downloads

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tubetag/internal/catalog/catalogtest"
	"tubetag/internal/domain/errconsts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quickOpts() *Options {
	return &Options{MaxRetries: 3, FileWaitTimeout: 10 * time.Millisecond}
}

func TestFetchFirstAttempt(t *testing.T) {
	src := catalogtest.NewSource("Artist", "Album", "a")
	dir := t.TempDir()

	res, err := NewFetcher(src, quickOpts()).Fetch(context.Background(), "a", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.mp4"), res.Path)
	assert.Equal(t, "Song a", res.Title)
	assert.FileExists(t, res.Path)
	assert.Equal(t, 1, src.StreamCalls("a"))
	assert.Equal(t, 1, src.Downloads("a"))
}

func TestFetchAbsentFileExhaustsRetries(t *testing.T) {
	src := catalogtest.NewSource("Artist", "Album", "a")
	src.Videos["a"].Absent = true

	_, err := NewFetcher(src, quickOpts()).Fetch(context.Background(), "a", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, errconsts.ErrDownloadFailed)
	assert.Equal(t, 4, src.StreamCalls("a"), "first attempt plus three fresh resolutions")
	assert.Equal(t, 4, src.Downloads("a"))
}

func TestFetchPartialFallsBackToLowest(t *testing.T) {
	src := catalogtest.NewSource("Artist", "Album", "a")
	src.Videos["a"].PartialHighest = true
	dir := t.TempDir()

	res, err := NewFetcher(src, quickOpts()).Fetch(context.Background(), "a", dir)
	require.NoError(t, err)
	assert.Equal(t, 2, src.StreamCalls("a"))

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "video:a:lowest", string(data))
}

func TestFetchDoublePartialFails(t *testing.T) {
	src := catalogtest.NewSource("Artist", "Album", "a")
	src.Videos["a"].PartialHighest = true
	src.Videos["a"].PartialLowest = true

	_, err := NewFetcher(src, quickOpts()).Fetch(context.Background(), "a", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, errconsts.ErrDownloadFailed)
	assert.ErrorIs(t, err, errconsts.ErrPartialTransfer)
	assert.Equal(t, 2, src.StreamCalls("a"), "fallback happens once, never loops")
}

func TestFetchResolveErrorRetries(t *testing.T) {
	src := catalogtest.NewSource("Artist", "Album", "a")
	src.Videos["a"].ResolveErr = errors.New("format unavailable")

	_, err := NewFetcher(src, &Options{MaxRetries: 1, FileWaitTimeout: time.Millisecond}).
		Fetch(context.Background(), "a", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, errconsts.ErrDownloadFailed)
	assert.Equal(t, 2, src.StreamCalls("a"))
}

func TestFetchCancelled(t *testing.T) {
	src := catalogtest.NewSource("Artist", "Album", "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(src, quickOpts()).Fetch(ctx, "a", t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, src.StreamCalls("a"))
}

func TestNewFetcherDefaults(t *testing.T) {
	f := NewFetcher(nil, nil)
	assert.Equal(t, 3, f.opts.MaxRetries)
	assert.Equal(t, 2*time.Second, f.opts.FileWaitTimeout)

	f = NewFetcher(nil, &Options{MaxRetries: -2})
	assert.Equal(t, 0, f.opts.MaxRetries)
	assert.Positive(t, f.opts.FileWaitTimeout)
}

func TestVerifyVideoDownload(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.mp4")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	assert.Error(t, verifyVideoDownload(empty))
	assert.Error(t, verifyVideoDownload(dir))
	assert.Error(t, verifyVideoDownload(filepath.Join(dir, "missing.mp4")))
}
