// Package keys holds the viper keys for user-facing settings.
package keys

// Terminal keys
const (
	OutputDir   string = "output-dir"
	ConfigFile  string = "config-file"
	PlaylistURL string = "playlist-url"
)

// Pipeline
const (
	Concurrency     string = "concurrency"
	DispatchStagger string = "stagger"
	DownloadRetries string = "download-retries"
	CatalogRetries  string = "catalog-retries"
)

// Audio and tagging
const (
	AudioBitrate string = "audio-bitrate"
	SkipCover    string = "skip-cover"
	VerifyTags   string = "verify-tags"
)

// External programs
const (
	YtDLPPath  string = "ytdlp-path"
	FFmpegPath string = "ffmpeg-path"
)

// Web related
const (
	CookiesFromBrowser string = "cookies-from-browser"
	CookiePath         string = "cookie-file"
)

// Logging
const (
	DebugLevel string = "debug-level"
)

// Primary program
const (
	Execute string = "execute"
)
