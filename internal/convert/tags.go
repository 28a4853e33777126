package convert

import (
	"fmt"
	"math"
	"os"
	"strings"

	"tubetag/internal/models"

	"github.com/dhowden/tag"
	mp4tag "github.com/zhaarey/go-mp4tag"
)

// MP4Tagger writes iTunes-style atoms into .m4a files.
type MP4Tagger struct{}

// WriteTags writes artist, album and track, plus title and year when known.
//
// Track number and total share the single trkn atom.
func (MP4Tagger) WriteTags(audioPath string, tags models.Tags) error {
	t := &mp4tag.MP4Tags{
		Artist:      tags.Artist,
		AlbumArtist: tags.Artist,
		Album:       tags.Album,
		Title:       tags.Title,
		TrackNumber: clampInt16(tags.TrackNumber),
		TrackTotal:  clampInt16(tags.TotalTracks),
		Date:        tags.Year(),
	}

	mp4, err := mp4tag.Open(audioPath)
	if err != nil {
		return err
	}
	defer mp4.Close()

	return mp4.Write(t, []string{})
}

func clampInt16(n int) int16 {
	switch {
	case n > math.MaxInt16:
		return math.MaxInt16
	case n < 0:
		return 0
	}
	return int16(n)
}

// TagReader reads tags back from written audio files.
type TagReader struct{}

// ReadTags returns the artist, album, title and track fields present in path.
func (TagReader) ReadTags(path string) (models.Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Tags{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return models.Tags{}, fmt.Errorf("failed to read metadata from file: %w", err)
	}

	track, total := m.Track()
	return models.Tags{
		Artist:      strings.TrimSpace(m.Artist()),
		Album:       strings.TrimSpace(m.Album()),
		Title:       strings.TrimSpace(m.Title()),
		TrackNumber: track,
		TotalTracks: total,
	}, nil
}

// VerifyTags implements TagVerifier.
func (r TagReader) VerifyTags(audioPath string, want models.Tags) error {
	got, err := r.ReadTags(audioPath)
	if err != nil {
		return err
	}
	return compareTags(want, got)
}

func compareTags(want, got models.Tags) error {
	var diffs []string
	if got.TrackField() != want.TrackField() {
		diffs = append(diffs, fmt.Sprintf("track %s != %s", got.TrackField(), want.TrackField()))
	}
	if got.Album != want.Album {
		diffs = append(diffs, fmt.Sprintf("album %q != %q", got.Album, want.Album))
	}
	if got.Artist != want.Artist {
		diffs = append(diffs, fmt.Sprintf("artist %q != %q", got.Artist, want.Artist))
	}
	if len(diffs) > 0 {
		return fmt.Errorf("tag mismatch: %s", strings.Join(diffs, "; "))
	}
	return nil
}
