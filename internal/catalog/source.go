// Package catalog resolves playlists and video streams from the remote catalog service.
package catalog

import (
	"context"

	"tubetag/internal/models"
)

// Quality selects which stream to resolve for a video.
type Quality int

const (
	QualityHighest Quality = iota
	QualityLowest
)

func (q Quality) String() string {
	if q == QualityLowest {
		return "lowest"
	}
	return "highest"
}

// PlaylistInfo is a playlist as the catalog returns it, before any cleanup.
type PlaylistInfo struct {
	ID       string
	PageURL  string
	Owner    string
	Title    string
	RawCount string // may be a non-numeric placeholder while the catalog paginates
	Entries  []models.PlaylistEntry

	// Thumbnails are ordered best first.
	Thumbnails      []string
	OwnerThumbnails []string
	ModifiedDate    string
}

// StreamHandle is a resolved, downloadable media stream.
//
// Handles can go stale; resolve a fresh one for each retry.
type StreamHandle interface {
	VideoID() string
	Title() string
	Quality() Quality

	// Download writes the stream under destDir and returns the local path.
	// A transfer cut short returns an error wrapping errconsts.ErrPartialTransfer.
	Download(ctx context.Context, destDir string) (string, error)
}

// Source is the catalog service boundary.
type Source interface {
	ResolvePlaylist(ctx context.Context, sourceID string) (*PlaylistInfo, error)
	ResolveStream(ctx context.Context, videoID string, q Quality) (StreamHandle, error)
}

// CoverScraper finds a cover image on a playlist's web page.
type CoverScraper interface {
	ScrapeCoverArt(ctx context.Context, pageURL string) (string, error)
}
