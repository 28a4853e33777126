// Package models holds the data passed between the catalog, workers and orchestrator.
package models

import (
	"path/filepath"
	"time"

	"tubetag/internal/domain/consts"
)

// PlaylistEntry is one video reference in playlist order.
type PlaylistEntry struct {
	VideoID string
	URL     string
	Title   string
}

// PlaylistMetadata is resolved once per job and never mutated afterwards.
type PlaylistMetadata struct {
	SourceID    string
	Channel     string
	Title       string
	Entries     []PlaylistEntry
	CoverArtURL string
	ReleaseDate time.Time
}

// Total returns the number of resolved playlist items.
func (m *PlaylistMetadata) Total() int {
	return len(m.Entries)
}

// AlbumDirName returns "{channel} - {title}".
func (m *PlaylistMetadata) AlbumDirName() string {
	return m.Channel + consts.DirNameSep + m.Title
}

// DirectoryTree is the on-disk layout of a job's output.
type DirectoryTree struct {
	Root     string
	AlbumDir string
	VideoDir string
}

// NewDirectoryTree builds the output layout under root for the given metadata.
func NewDirectoryTree(root string, m *PlaylistMetadata) DirectoryTree {
	album := filepath.Join(root, m.AlbumDirName())
	return DirectoryTree{
		Root:     root,
		AlbumDir: album,
		VideoDir: filepath.Join(album, consts.VideoScratchDir),
	}
}

// CoverArtPath returns where the playlist cover image is written.
func (d DirectoryTree) CoverArtPath() string {
	return filepath.Join(d.AlbumDir, consts.CoverArtFile)
}
