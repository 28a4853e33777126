// Package command holds flags and arguments for the external programs tubetag drives.
package command

// General
const (
	AfterMove          = "after_move:filepath"
	CookiesFromBrowser = "--cookies-from-browser"
	CookiePath         = "--cookies"
	Format             = "-f"
	NoPlaylist         = "--no-playlist"
	NoProgress         = "--no-progress"
	NoWarnings         = "--no-warnings"
	Output             = "-o"
	Print              = "--print"
	YTDLP              = "yt-dlp"
)

// ScratchFilenameSyntax names raw downloads after the video ID inside each task's own scratch directory.
const ScratchFilenameSyntax = "%(id)s.%(ext)s"

// Scrape
const (
	YtDLPFlatPlaylist = "--flat-playlist"
)

// JSON only
const (
	SkipVideo  = "--skip-download"
	OutputJSON = "-J"
)

// Format selectors
const (
	FormatBest  = "best"
	FormatWorst = "worst"
)

// URL templates
const (
	VideoURLTemplate    = "https://www.youtube.com/watch?v=%s"
	PlaylistURLTemplate = "https://www.youtube.com/playlist?list=%s"
	PlaylistParam       = "list"
)
