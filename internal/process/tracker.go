package process

import (
	"context"
	"sync"
	"time"

	"tubetag/internal/models"
	"tubetag/internal/utils/logging"
)

// progressTracker logs worker updates and reports overall progress on an interval.
type progressTracker struct {
	jobID    string
	total    int
	interval time.Duration
	progress func() int

	updates  chan models.StatusUpdate
	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

func newProgressTracker(jobID string, total int, interval time.Duration, progress func() int) *progressTracker {
	return &progressTracker{
		jobID:    jobID,
		total:    total,
		interval: interval,
		progress: progress,
		updates:  make(chan models.StatusUpdate, 100),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start starts progress tracking.
func (t *progressTracker) Start(ctx context.Context) {
	go t.processUpdates(ctx)
}

// Stop stops tracking after draining queued updates.
func (t *progressTracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
		<-t.finished
	})
}

// sendUpdate queues an update. Updates sent after Stop are dropped.
func (t *progressTracker) sendUpdate(u models.StatusUpdate) {
	select {
	case <-t.done:
	case t.updates <- u:
	}
}

func (t *progressTracker) processUpdates(ctx context.Context) {
	defer close(t.finished)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case u := <-t.updates:
			t.log(u)

		case <-ticker.C:
			if n := t.progress(); n < t.total && ctx.Err() == nil {
				logging.P("Job %s progress: %d/%d", t.jobID, n, t.total)
			}

		case <-t.done:
			for {
				select {
				case u := <-t.updates:
					t.log(u)
				default:
					return
				}
			}
		}
	}
}

func (t *progressTracker) log(u models.StatusUpdate) {
	if u.Err != nil {
		logging.D(1, "[%d/%d] track %d %q failed: %v", u.Completed, u.Total, u.TrackNumber, u.Label, u.Err)
		return
	}
	logging.D(1, "[%d/%d] track %d %q complete", u.Completed, u.Total, u.TrackNumber, u.Label)
}
