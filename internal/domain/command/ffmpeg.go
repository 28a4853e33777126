package command

// Program
const (
	FFmpeg = "ffmpeg"
)

// General
const (
	AudioBitrate = "-b:a"
	HideBanner   = "-hide_banner"
	Input        = "-i"
	Overwrite    = "-y"
)

var (
	LogErrorsOnly = []string{"-loglevel", "error"}
	NoVideo       = []string{"-vn"}
	AudioToAAC    = []string{"-c:a", "aac"}
	MuxerMP4Audio = []string{"-f", "mp4"}
)
