package models

import (
	"path/filepath"
	"strconv"
	"time"
)

// VideoTask is one playlist entry being processed by a worker.
type VideoTask struct {
	Entry       PlaylistEntry
	TrackNumber int // 1-based, fixed at dispatch
	TotalTracks int
	VideoDir    string
	AudioDir    string
}

// Label names the task in reports as "#<track> <title>", falling back to the video ID.
//
// Track numbers are unique per job, so labels are too.
func (t *VideoTask) Label() string {
	name := t.Entry.Title
	if name == "" {
		name = t.Entry.VideoID
	}
	return "#" + strconv.Itoa(t.TrackNumber) + " " + name
}

// ScratchDir is the task's private download directory under VideoDir.
//
// A playlist may list the same video more than once.
func (t *VideoTask) ScratchDir() string {
	return filepath.Join(t.VideoDir, strconv.Itoa(t.TrackNumber))
}

// Tags are the fields stamped into each audio file.
type Tags struct {
	Artist      string
	Album       string
	Title       string
	TrackNumber int
	TotalTracks int
	ReleaseDate time.Time
}

// TrackField returns the "track/total" value written into the track tag.
func (t Tags) TrackField() string {
	return strconv.Itoa(t.TrackNumber) + "/" + strconv.Itoa(t.TotalTracks)
}

// Year returns the release year, or an empty string when unknown.
func (t Tags) Year() string {
	if t.ReleaseDate.IsZero() {
		return ""
	}
	return strconv.Itoa(t.ReleaseDate.Year())
}
