package process

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"tubetag/internal/convert"
	"tubetag/internal/domain/consts"
	"tubetag/internal/domain/errconsts"
	"tubetag/internal/models"
	"tubetag/internal/parsing"
	fsutils "tubetag/internal/utils/fs"
	"tubetag/internal/utils/logging"
)

// Job is one playlist conversion run.
type Job struct {
	id     string
	source string
	dest   string
	o      *Orchestrator

	started atomic.Bool
	total   atomic.Int64
	done    atomic.Int64

	mu        sync.Mutex
	state     models.JobState
	meta      *models.PlaylistMetadata
	succeeded []models.SucceededItem
	failed    []models.FailedItem
	warnings  []models.CleanupWarning
	taken     map[string]struct{} // reserved audio paths
}

// ID returns the job's unique identifier.
func (j *Job) ID() string { return j.id }

// Total returns the number of playlist items, or 0 before metadata is resolved.
func (j *Job) Total() int { return int(j.total.Load()) }

// Progress returns how many items have finished, successfully or not.
func (j *Job) Progress() int { return int(j.done.Load()) }

// State returns the current lifecycle state.
func (j *Job) State() models.JobState {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Succeeded returns the items converted so far.
func (j *Job) Succeeded() []models.SucceededItem {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.succeeded)
}

// Failed returns the items that failed so far.
func (j *Job) Failed() []models.FailedItem {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.failed)
}

// Warnings returns cleanup warnings collected so far.
func (j *Job) Warnings() []models.CleanupWarning {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.warnings)
}

func (j *Job) setState(s models.JobState) {
	j.mu.Lock()
	prev := j.state
	j.state = s
	j.mu.Unlock()
	logging.D(1, "Job %s: %s -> %s", j.id, prev, s)
}

// Run drives the job to completion and blocks until every dispatched worker returns.
//
// Only metadata resolution and directory creation are fatal. Item failures
// are recorded in the summary, which is returned even if every item failed.
func (j *Job) Run(ctx context.Context) (*models.Summary, error) {
	if !j.started.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("job %s has already been run", j.id)
	}

	meta, err := j.o.resolver.Resolve(ctx, j.source)
	if err != nil {
		j.setState(models.StateFailed)
		return nil, fmt.Errorf("resolving playlist %q: %w", j.source, err)
	}
	j.mu.Lock()
	j.meta = meta
	j.mu.Unlock()
	j.total.Store(int64(meta.Total()))
	j.setState(models.StateMetadataResolved)
	logging.I("Playlist %q by %q has %d item(s)", meta.Title, meta.Channel, meta.Total())

	tree := models.NewDirectoryTree(j.dest, meta)
	if err := fsutils.BuildTree(tree); err != nil {
		j.setState(models.StateFailed)
		return nil, fmt.Errorf("creating output directories: %w", err)
	}
	j.setState(models.StateDirectoriesReady)

	j.setState(models.StateRunning)
	j.runWorkers(ctx, meta, tree)

	j.setState(models.StateFinalizing)
	j.finalize(ctx, meta, tree)

	summary := j.summary(meta, tree)
	j.setState(models.StateDone)
	logging.S("%s", summary)
	return summary, nil
}

// runWorkers feeds items in playlist order to a bounded pool.
func (j *Job) runWorkers(ctx context.Context, meta *models.PlaylistMetadata, tree models.DirectoryTree) {
	var wg sync.WaitGroup

	total := meta.Total()
	sem := make(chan struct{}, j.o.cfg.Concurrency)

	tracker := newProgressTracker(j.id, total, j.o.cfg.ProgressInterval, j.Progress)
	tracker.Start(ctx)
	defer tracker.Stop()

dispatch:
	for i, entry := range meta.Entries {
		task := &models.VideoTask{
			Entry:       entry,
			TrackNumber: i + 1,
			TotalTracks: total,
			VideoDir:    tree.VideoDir,
			AudioDir:    tree.AlbumDir,
		}

		if i > 0 && j.o.cfg.Stagger > 0 {
			if err := sleepCtx(ctx, j.o.cfg.Stagger); err != nil {
				j.cancelFrom(meta, i, tracker)
				break dispatch
			}
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			j.cancelFrom(meta, i, tracker)
			break dispatch
		}
		// Cancellation may have raced the semaphore.
		if ctx.Err() != nil {
			<-sem
			j.cancelFrom(meta, i, tracker)
			break dispatch
		}

		wg.Add(1)
		go func(task *models.VideoTask) {
			defer func() {
				<-sem
				wg.Done()
			}()
			j.processTask(ctx, meta, task, tracker)
		}(task)
	}

	wg.Wait()
}

// processTask runs download then convert for one item and records the result.
func (j *Job) processTask(ctx context.Context, meta *models.PlaylistMetadata, task *models.VideoTask, tracker *progressTracker) {
	label := task.Label()
	logging.D(1, "Processing track %d/%d: %q", task.TrackNumber, task.TotalTracks, label)

	scratch := task.ScratchDir()
	if err := fsutils.EnsureDir(scratch); err != nil {
		j.recordFailure(task, fmt.Errorf("%w: %w", errconsts.ErrDownloadFailed, err), tracker)
		return
	}

	res, err := j.o.fetcher.Fetch(ctx, task.Entry.VideoID, scratch)
	if err != nil {
		j.recordFailure(task, err, tracker)
		return
	}

	title := task.Entry.Title
	if title == "" {
		title = res.Title
	}
	audioOut := j.reserveAudioPath(task, title)

	tags := models.Tags{
		Artist:      meta.Channel,
		Album:       meta.Title,
		Title:       title,
		TrackNumber: task.TrackNumber,
		TotalTracks: task.TotalTracks,
		ReleaseDate: meta.ReleaseDate,
	}

	out, err := j.o.converter.Convert(ctx, res.Path, audioOut, tags)
	if err != nil {
		j.recordFailure(task, err, tracker)
		return
	}
	j.recordSuccess(task, out, tracker)
}

// reserveAudioPath picks a unique output file for the task under the job lock.
func (j *Job) reserveAudioPath(task *models.VideoTask, title string) string {
	j.mu.Lock()
	defer j.mu.Unlock()

	p := fsutils.UniquePath(task.AudioDir, parsing.SanitizeTitle(title), task.Entry.VideoID, consts.AudioExt,
		func(p string) bool {
			_, reserved := j.taken[p]
			return reserved || fsutils.FileExists(p)
		})
	j.taken[p] = struct{}{}
	return p
}

func (j *Job) recordSuccess(task *models.VideoTask, out *convert.Outcome, tracker *progressTracker) {
	j.mu.Lock()
	j.succeeded = append(j.succeeded, models.SucceededItem{
		TrackNumber: task.TrackNumber,
		Label:       task.Label(),
		Path:        out.AudioPath,
	})
	if out.Warning != nil {
		j.warnings = append(j.warnings, *out.Warning)
	}
	j.mu.Unlock()

	n := int(j.done.Add(1))
	logging.S("Track %d/%d done: %q -> %s", task.TrackNumber, task.TotalTracks, task.Label(), filepath.Base(out.AudioPath))
	tracker.sendUpdate(models.StatusUpdate{
		TrackNumber: task.TrackNumber,
		Label:       task.Label(),
		Completed:   n,
		Total:       task.TotalTracks,
	})
}

func (j *Job) recordFailure(task *models.VideoTask, err error, tracker *progressTracker) {
	j.mu.Lock()
	j.failed = append(j.failed, models.FailedItem{
		TrackNumber: task.TrackNumber,
		Label:       task.Label(),
		Err:         err,
	})
	j.mu.Unlock()

	n := int(j.done.Add(1))
	if !errors.Is(err, errconsts.ErrCancelled) {
		logging.E("Track %d/%d failed: %q: %v", task.TrackNumber, task.TotalTracks, task.Label(), err)
	}
	tracker.sendUpdate(models.StatusUpdate{
		TrackNumber: task.TrackNumber,
		Label:       task.Label(),
		Completed:   n,
		Total:       task.TotalTracks,
		Err:         err,
	})
}

// cancelFrom records every item from index start onward as never dispatched.
func (j *Job) cancelFrom(meta *models.PlaylistMetadata, start int, tracker *progressTracker) {
	logging.W("Job %s cancelled, %d item(s) not dispatched", j.id, meta.Total()-start)
	for i := start; i < meta.Total(); i++ {
		task := &models.VideoTask{
			Entry:       meta.Entries[i],
			TrackNumber: i + 1,
			TotalTracks: meta.Total(),
		}
		j.recordFailure(task, errconsts.ErrCancelled, tracker)
	}
}

// finalize fetches cover art and removes the scratch directory.
func (j *Job) finalize(ctx context.Context, meta *models.PlaylistMetadata, tree models.DirectoryTree) {
	if !j.o.cfg.SkipCover && j.o.cover != nil && meta.CoverArtURL != "" && ctx.Err() == nil {
		if err := j.o.cover.DownloadCoverArt(ctx, meta.CoverArtURL, tree.CoverArtPath()); err != nil {
			logging.W("Could not save cover art: %v", err)
		}
	}

	if warns := fsutils.CleanDir(tree.VideoDir); len(warns) > 0 {
		j.mu.Lock()
		j.warnings = append(j.warnings, warns...)
		j.mu.Unlock()
	}
}

func (j *Job) summary(meta *models.PlaylistMetadata, tree models.DirectoryTree) *models.Summary {
	j.mu.Lock()
	defer j.mu.Unlock()

	succeeded := slices.Clone(j.succeeded)
	slices.SortFunc(succeeded, func(a, b models.SucceededItem) int {
		return a.TrackNumber - b.TrackNumber
	})
	failed := slices.Clone(j.failed)
	slices.SortFunc(failed, func(a, b models.FailedItem) int {
		return a.TrackNumber - b.TrackNumber
	})

	return &models.Summary{
		JobID:     j.id,
		Channel:   meta.Channel,
		Album:     meta.Title,
		OutputDir: tree.AlbumDir,
		Total:     meta.Total(),
		Succeeded: succeeded,
		Failed:    failed,
		Warnings:  slices.Clone(j.warnings),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

