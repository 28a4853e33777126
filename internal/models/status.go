package models

// JobState is a step in the pipeline lifecycle.
type JobState int

const (
	StateCreated JobState = iota
	StateMetadataResolved
	StateDirectoriesReady
	StateRunning
	StateFinalizing
	StateDone
	StateFailed
)

func (s JobState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateMetadataResolved:
		return "metadata-resolved"
	case StateDirectoriesReady:
		return "directories-ready"
	case StateRunning:
		return "running"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StatusUpdate models a progress notification from a worker.
type StatusUpdate struct {
	TrackNumber int
	Label       string
	Completed   int
	Total       int
	Err         error
}
