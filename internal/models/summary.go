package models

import (
	"fmt"
	"strings"
)

// CleanupWarning records a file or directory that could not be removed.
type CleanupWarning struct {
	Path string
	Err  error
}

func (w CleanupWarning) String() string {
	return fmt.Sprintf("%s: %v", w.Path, w.Err)
}

// SucceededItem is a playlist entry converted to an audio file.
type SucceededItem struct {
	TrackNumber int
	Label       string
	Path        string
}

// FailedItem is a playlist entry that never produced an audio file.
type FailedItem struct {
	TrackNumber int
	Label       string
	Err         error
}

// Summary is the end-of-job report.
type Summary struct {
	JobID     string
	Channel   string
	Album     string
	OutputDir string
	Total     int
	Succeeded []SucceededItem
	Failed    []FailedItem
	Warnings  []CleanupWarning
}

// SucceededLabels returns the labels of all converted items.
func (s *Summary) SucceededLabels() []string {
	labels := make([]string, 0, len(s.Succeeded))
	for _, it := range s.Succeeded {
		labels = append(labels, it.Label)
	}
	return labels
}

// SucceededPaths returns the written audio files.
func (s *Summary) SucceededPaths() []string {
	paths := make([]string, 0, len(s.Succeeded))
	for _, it := range s.Succeeded {
		paths = append(paths, it.Path)
	}
	return paths
}

// FailedLabels returns the labels of all failed items.
func (s *Summary) FailedLabels() []string {
	labels := make([]string, 0, len(s.Failed))
	for _, f := range s.Failed {
		labels = append(labels, f.Label)
	}
	return labels
}

func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d song(s) downloaded to %q", len(s.Succeeded), s.Total, s.OutputDir)
	if len(s.Failed) > 0 {
		fmt.Fprintf(&b, "\n%d failed:", len(s.Failed))
		for _, f := range s.Failed {
			fmt.Fprintf(&b, "\n  %s: %v", f.Label, f.Err)
		}
	}
	if len(s.Warnings) > 0 {
		fmt.Fprintf(&b, "\n%d cleanup warning(s):", len(s.Warnings))
		for _, w := range s.Warnings {
			fmt.Fprintf(&b, "\n  %s", w)
		}
	}
	return b.String()
}
