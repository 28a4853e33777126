// Package catalogtest provides an in-memory catalog.Source for tests.
package catalogtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"tubetag/internal/catalog"
	"tubetag/internal/domain/errconsts"
	"tubetag/internal/models"
)

// Video configures how a fake video behaves when downloaded.
type Video struct {
	Title string

	// Absent makes Download succeed without writing anything.
	Absent bool

	// PartialHighest and PartialLowest make Download fail with a partial transfer at that quality.
	PartialHighest bool
	PartialLowest  bool

	// ResolveErr fails stream resolution.
	ResolveErr error
}

// Source is a scriptable catalog.Source.
type Source struct {
	Playlist    *catalog.PlaylistInfo
	PlaylistErr error

	// UnstableFor is how many initial playlist lookups return a placeholder count.
	// A negative value never stabilizes.
	UnstableFor int

	Videos map[string]*Video

	mu            sync.Mutex
	playlistCalls int
	streamCalls   map[string]int
	downloads     map[string]int
}

// NewSource builds a fake with one playlist whose entries are ids, titled "Song <id>".
func NewSource(owner, title string, ids ...string) *Source {
	entries := make([]models.PlaylistEntry, 0, len(ids))
	videos := make(map[string]*Video, len(ids))
	for _, id := range ids {
		t := "Song " + id
		entries = append(entries, models.PlaylistEntry{VideoID: id, URL: "https://example.com/watch?v=" + id, Title: t})
		videos[id] = &Video{Title: t}
	}

	return &Source{
		Playlist: &catalog.PlaylistInfo{
			ID:       "PL" + title,
			PageURL:  "https://example.com/playlist?list=PL" + title,
			Owner:    owner,
			Title:    title,
			RawCount: strconv.Itoa(len(ids)),
			Entries:  entries,
		},
		Videos: videos,
	}
}

// ResolvePlaylist implements catalog.Source.
func (s *Source) ResolvePlaylist(ctx context.Context, sourceID string) (*catalog.PlaylistInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.playlistCalls++
	if s.PlaylistErr != nil {
		return nil, s.PlaylistErr
	}
	if s.Playlist == nil {
		return nil, fmt.Errorf("%w: %s", errconsts.ErrNotFound, sourceID)
	}

	p := *s.Playlist
	if s.UnstableFor < 0 || s.playlistCalls <= s.UnstableFor {
		p.RawCount = "…"
	}
	return &p, nil
}

// ResolveStream implements catalog.Source.
func (s *Source) ResolveStream(ctx context.Context, videoID string, q catalog.Quality) (catalog.StreamHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamCalls == nil {
		s.streamCalls = make(map[string]int)
	}
	s.streamCalls[videoID]++

	v, ok := s.Videos[videoID]
	if !ok {
		return nil, fmt.Errorf("unknown video %q", videoID)
	}
	if v.ResolveErr != nil {
		return nil, v.ResolveErr
	}
	return &stream{src: s, id: videoID, video: *v, quality: q}, nil
}

// PlaylistCalls returns how many times ResolvePlaylist ran.
func (s *Source) PlaylistCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlistCalls
}

// StreamCalls returns how many streams were resolved for videoID.
func (s *Source) StreamCalls(videoID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streamCalls[videoID]
}

// Downloads returns how many downloads were attempted for videoID.
func (s *Source) Downloads(videoID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.downloads[videoID]
}

func (s *Source) countDownload(videoID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.downloads == nil {
		s.downloads = make(map[string]int)
	}
	s.downloads[videoID]++
}

type stream struct {
	src     *Source
	id      string
	video   Video
	quality catalog.Quality
}

func (st *stream) VideoID() string          { return st.id }
func (st *stream) Title() string            { return st.video.Title }
func (st *stream) Quality() catalog.Quality { return st.quality }

func (st *stream) Download(ctx context.Context, destDir string) (string, error) {
	st.src.countDownload(st.id)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if (st.quality == catalog.QualityHighest && st.video.PartialHighest) ||
		(st.quality == catalog.QualityLowest && st.video.PartialLowest) {
		return "", fmt.Errorf("%w: IncompleteRead", errconsts.ErrPartialTransfer)
	}

	path := filepath.Join(destDir, st.id+".mp4")
	if st.video.Absent {
		return path, nil
	}
	if err := os.WriteFile(path, []byte("video:"+st.id+":"+st.quality.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
