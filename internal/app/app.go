// Package app wires configuration into a running playlist job.
package app

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"tubetag/internal/catalog"
	"tubetag/internal/cfg"
	"tubetag/internal/convert"
	"tubetag/internal/domain/command"
	"tubetag/internal/domain/keys"
	"tubetag/internal/downloads"
	"tubetag/internal/models"
	"tubetag/internal/process"
	"tubetag/internal/utils/browser"
	"tubetag/internal/utils/logging"
)

// Settings is the resolved configuration for one run.
type Settings struct {
	Source    string
	OutputDir string

	Concurrency     int
	Stagger         time.Duration
	DownloadRetries int
	CatalogRetries  int

	AudioBitrate string
	SkipCover    bool
	VerifyTags   bool

	YtDLPPath  string
	FFmpegPath string

	CookiesFromBrowser string
	CookieFile         string
}

// SettingsFromConfig reads Settings from the parsed command line and config file.
func SettingsFromConfig() Settings {
	return Settings{
		Source:             cfg.GetString(keys.PlaylistURL),
		OutputDir:          cfg.GetString(keys.OutputDir),
		Concurrency:        cfg.GetInt(keys.Concurrency),
		Stagger:            cfg.GetDuration(keys.DispatchStagger),
		DownloadRetries:    cfg.GetInt(keys.DownloadRetries),
		CatalogRetries:     cfg.GetInt(keys.CatalogRetries),
		AudioBitrate:       cfg.GetString(keys.AudioBitrate),
		SkipCover:          cfg.GetBool(keys.SkipCover),
		VerifyTags:         cfg.GetBool(keys.VerifyTags),
		YtDLPPath:          cfg.GetString(keys.YtDLPPath),
		FFmpegPath:         cfg.GetString(keys.FFmpegPath),
		CookiesFromBrowser: cfg.GetString(keys.CookiesFromBrowser),
		CookieFile:         cfg.GetString(keys.CookiePath),
	}
}

// NewOrchestrator builds the production pipeline: yt-dlp, ffmpeg, mp4 tags and colly for cover art.
func NewOrchestrator(s Settings) *process.Orchestrator {
	cookies := browser.NewCookieManager(s.CookiesFromBrowser, s.CookieFile)
	web := browser.NewBrowser(cookies)

	src := catalog.NewYtDLP(catalog.YtDLPConfig{
		Binary:             s.YtDLPPath,
		CookiesFromBrowser: s.CookiesFromBrowser,
		CookieFile:         s.CookieFile,
	})

	var adapterOpts []catalog.Option
	if !s.SkipCover {
		adapterOpts = append(adapterOpts, catalog.WithCoverScraper(web))
	}
	if s.CatalogRetries > 0 {
		adapterOpts = append(adapterOpts, catalog.WithMaxAttempts(s.CatalogRetries))
	}
	resolver := catalog.NewAdapter(src, adapterOpts...)

	fetchOpts := downloads.DefaultOptions
	fetchOpts.MaxRetries = s.DownloadRetries
	fetcher := downloads.NewFetcher(src, &fetchOpts)

	var convOpts []convert.Option
	if s.VerifyTags {
		convOpts = append(convOpts, convert.WithVerifier(convert.TagReader{}))
	}
	converter := convert.NewConverter(convert.NewFFmpeg(s.FFmpegPath, s.AudioBitrate), convert.MP4Tagger{}, convOpts...)

	pc := process.DefaultConfig()
	pc.Concurrency = s.Concurrency
	pc.Stagger = s.Stagger
	pc.SkipCover = s.SkipCover

	return process.NewOrchestrator(resolver, fetcher, converter, web, pc)
}

// Run checks the external programs are present, then runs one job to completion.
func Run(ctx context.Context, s Settings) (*models.Summary, error) {
	if err := checkPrograms(s); err != nil {
		return nil, err
	}

	job := NewOrchestrator(s).Submit(s.Source, s.OutputDir)
	logging.I("Starting job %s for %q", job.ID(), s.Source)
	return job.Run(ctx)
}

// checkPrograms fails early when yt-dlp or ffmpeg cannot be found.
func checkPrograms(s Settings) error {
	for _, p := range []struct{ configured, fallback string }{
		{s.YtDLPPath, command.YTDLP},
		{s.FFmpegPath, command.FFmpeg},
	} {
		name := p.configured
		if name == "" {
			name = p.fallback
		}
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("required program %q not found: %w", name, err)
		}
	}
	return nil
}
