// Package consts holds various global, unchanging values.
package consts

// Directory layout
const (
	VideoScratchDir = "videos"
	CoverArtFile    = "cover.jpg"
	DirNameSep      = " - "
)

// Catalog fallbacks
const (
	UnknownChannel   = "Unknown Channel"
	UntitledPlaylist = "Untitled Playlist"
	TopicSuffix      = "- Topic"
)

// SanitizeBlacklist holds every character stripped from titles before they become path segments.
const SanitizeBlacklist = "\\!@#$%^&*()[]{};:,./<>?|`~=_+\""

// Audio output
const (
	AudioExt            = ".m4a"
	DefaultAudioBitrate = "192k"
)

// AllVidExtensions is a list of video file extensions.
var AllVidExtensions = [...]string{".3gp", ".avi", ".f4v", ".flv", ".m4v", ".mkv",
	".mov", ".mp4", ".mpeg", ".mpg", ".ogm", ".ogv",
	".ts", ".vob", ".webm", ".wmv"}

// PartialTransferMarkers are yt-dlp output fragments signalling an incomplete read.
var PartialTransferMarkers = [...]string{
	"IncompleteRead",
	"bytes read",
	"Did not get any data blocks",
	"Connection broken",
}
