package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tubetag/internal/domain/consts"
	"tubetag/internal/domain/errconsts"
	"tubetag/internal/models"
	"tubetag/internal/parsing"
	"tubetag/internal/utils/logging"
)

// Adapter turns raw catalog playlists into immutable job metadata.
type Adapter struct {
	src           Source
	scraper       CoverScraper
	maxAttempts   int
	retryInterval time.Duration
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithMaxAttempts caps how many times an unstable playlist is re-queried.
func WithMaxAttempts(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// WithRetryInterval sets the pause between stabilization attempts.
func WithRetryInterval(d time.Duration) Option {
	return func(a *Adapter) {
		if d >= 0 {
			a.retryInterval = d
		}
	}
}

// WithCoverScraper sets a fallback used when the catalog returns no thumbnails.
func WithCoverScraper(s CoverScraper) Option {
	return func(a *Adapter) {
		a.scraper = s
	}
}

// NewAdapter returns an Adapter over src.
func NewAdapter(src Source, opts ...Option) *Adapter {
	a := &Adapter{
		src:           src,
		maxAttempts:   consts.DefaultCatalogRetries,
		retryInterval: consts.CatalogRetryInterval,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Resolve fetches playlist metadata, re-querying until the catalog returns a numeric item count and a title.
//
// Fails with errconsts.ErrNotFound for unknown playlists and errconsts.ErrCatalogUnstable once the attempt ceiling is hit.
func (a *Adapter) Resolve(ctx context.Context, sourceID string) (*models.PlaylistMetadata, error) {
	if strings.TrimSpace(sourceID) == "" {
		return nil, fmt.Errorf("%w: empty playlist source", errconsts.ErrNotFound)
	}

	var (
		info   *PlaylistInfo
		count  int
		reason string
	)

	for attempt := 1; ; attempt++ {
		var err error
		info, count, reason, err = a.query(ctx, sourceID)
		if err != nil {
			return nil, err
		}
		if reason == "" {
			break
		}

		if attempt >= a.maxAttempts {
			return nil, fmt.Errorf("%w: playlist %q after %d attempts (%s)",
				errconsts.ErrCatalogUnstable, sourceID, attempt, reason)
		}
		logging.W("Playlist %q not ready (%s), retrying (attempt %d/%d)", sourceID, reason, attempt, a.maxAttempts)

		if err := sleepCtx(ctx, a.retryInterval); err != nil {
			return nil, err
		}
	}

	if count != len(info.Entries) {
		logging.W("Catalog reports %d item(s) for %q but listed %d, using the listed entries",
			count, sourceID, len(info.Entries))
	}

	meta := &models.PlaylistMetadata{
		SourceID: sourceID,
		Channel:  parsing.CleanChannelName(info.Owner),
		Title:    albumTitle(info),
		Entries:  append([]models.PlaylistEntry(nil), info.Entries...),
	}
	logging.I("Channel: %s", meta.Channel)
	logging.I("Playlist title: %s", meta.Title)
	logging.I("Total tracks: %d", meta.Total())

	if info.ModifiedDate != "" {
		if t, err := parsing.ParseReleaseDate(info.ModifiedDate); err != nil {
			logging.D(1, "Ignoring playlist date: %v", err)
		} else {
			meta.ReleaseDate = t
		}
	}

	meta.CoverArtURL = a.coverArtURL(ctx, info)
	return meta, nil
}

// albumTitle returns the sanitized playlist title, then the sanitized playlist ID, then a placeholder.
func albumTitle(info *PlaylistInfo) string {
	for _, raw := range []string{info.Title, info.ID} {
		if t := strings.TrimSpace(parsing.SanitizeTitle(raw)); t != "" {
			return t
		}
	}
	return consts.UntitledPlaylist
}

// query performs one catalog lookup and reports why the result is not yet usable, if it is not.
func (a *Adapter) query(ctx context.Context, sourceID string) (info *PlaylistInfo, count int, reason string, err error) {
	info, err = a.src.ResolvePlaylist(ctx, sourceID)
	switch {
	case errors.Is(err, errconsts.ErrNotFound):
		return nil, 0, "", err
	case ctx.Err() != nil:
		return nil, 0, "", ctx.Err()
	case err != nil:
		return nil, 0, err.Error(), nil
	case info == nil:
		return nil, 0, "", fmt.Errorf("%w: %q", errconsts.ErrNotFound, sourceID)
	}

	count, convErr := strconv.Atoi(strings.TrimSpace(info.RawCount))
	if convErr != nil {
		return info, 0, fmt.Sprintf("item count %q is not numeric", info.RawCount), nil
	}
	if strings.TrimSpace(info.Title) == "" {
		return info, count, "title missing", nil
	}
	return info, count, "", nil
}

// coverArtURL picks the first sidebar thumbnail, then the owner's, then a scraped page image.
func (a *Adapter) coverArtURL(ctx context.Context, info *PlaylistInfo) string {
	logging.I("Parsing cover art link...")

	urls := make([]string, 0, len(info.Thumbnails)+len(info.OwnerThumbnails))
	urls = append(urls, info.Thumbnails...)
	urls = append(urls, info.OwnerThumbnails...)
	for _, u := range urls {
		if u != "" {
			logging.I("Found %d cover art link(s)", len(urls))
			return u
		}
	}

	if a.scraper != nil && info.PageURL != "" {
		u, err := a.scraper.ScrapeCoverArt(ctx, info.PageURL)
		if err == nil && u != "" {
			logging.I("Found cover art link on playlist page")
			return u
		}
		if err != nil {
			logging.D(1, "Cover art scrape failed for %q: %v", info.PageURL, err)
		}
	}

	logging.W("No cover art link found.")
	return ""
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
