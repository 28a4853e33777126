// Package process runs playlist jobs: metadata, directories, workers and cleanup.
package process

import (
	"context"
	"time"

	"tubetag/internal/convert"
	"tubetag/internal/domain/consts"
	"tubetag/internal/downloads"
	"tubetag/internal/models"

	"github.com/google/uuid"
)

// MetadataResolver turns a playlist source into stable metadata.
type MetadataResolver interface {
	Resolve(ctx context.Context, sourceID string) (*models.PlaylistMetadata, error)
}

// VideoFetcher downloads and verifies one video.
type VideoFetcher interface {
	Fetch(ctx context.Context, videoID, destDir string) (*downloads.Result, error)
}

// AudioConverter converts a downloaded video into a tagged audio file.
type AudioConverter interface {
	Convert(ctx context.Context, videoFile, audioOut string, tags models.Tags) (*convert.Outcome, error)
}

// CoverDownloader saves the playlist cover image.
type CoverDownloader interface {
	DownloadCoverArt(ctx context.Context, imageURL, destPath string) error
}

// Config holds orchestrator tunables.
type Config struct {
	Concurrency      int
	Stagger          time.Duration
	SkipCover        bool
	ProgressInterval time.Duration
}

// DefaultConfig returns the standard pool settings.
func DefaultConfig() Config {
	return Config{
		Concurrency:      consts.DefaultConcurrency,
		Stagger:          consts.DefaultDispatchStagger,
		ProgressInterval: consts.ProgressReportInterval,
	}
}

// Orchestrator creates jobs sharing one set of collaborators.
type Orchestrator struct {
	resolver  MetadataResolver
	fetcher   VideoFetcher
	converter AudioConverter
	cover     CoverDownloader
	cfg       Config
}

// NewOrchestrator returns an Orchestrator. cover may be nil.
func NewOrchestrator(r MetadataResolver, f VideoFetcher, c AudioConverter, cover CoverDownloader, cfg Config) *Orchestrator {
	cfg.Concurrency = max(cfg.Concurrency, 1)
	if cfg.Stagger < 0 {
		cfg.Stagger = 0
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = consts.ProgressReportInterval
	}

	return &Orchestrator{
		resolver:  r,
		fetcher:   f,
		converter: c,
		cover:     cover,
		cfg:       cfg,
	}
}

// Submit creates a job for source writing under dest. Nothing runs until Job.Run.
func (o *Orchestrator) Submit(source, dest string) *Job {
	return &Job{
		id:     uuid.NewString(),
		source: source,
		dest:   dest,
		o:      o,
		state:  models.StateCreated,
		taken:  make(map[string]struct{}),
	}
}
