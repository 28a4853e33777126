package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"

	"tubetag/internal/domain/command"
	"tubetag/internal/domain/errconsts"
	"tubetag/internal/utils/logging"
)

// runFunc executes an external program and returns its stdout and stderr.
type runFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// YtDLPConfig holds the settings passed through to every yt-dlp invocation.
type YtDLPConfig struct {
	Binary             string
	CookiesFromBrowser string
	CookieFile         string
}

// YtDLP is a Source backed by the yt-dlp program.
type YtDLP struct {
	cfg YtDLPConfig
	run runFunc
}

// NewYtDLP returns a yt-dlp backed catalog source.
func NewYtDLP(cfg YtDLPConfig) *YtDLP {
	if cfg.Binary == "" {
		cfg.Binary = command.YTDLP
	}
	return &YtDLP{cfg: cfg, run: execRun}
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// ResolvePlaylist runs a flat playlist dump for sourceID.
func (y *YtDLP) ResolvePlaylist(ctx context.Context, sourceID string) (*PlaylistInfo, error) {
	target := PlaylistURL(sourceID)

	args := y.baseArgs()
	args = append(args, command.OutputJSON, command.YtDLPFlatPlaylist, target)

	logging.D(1, "Resolving playlist with: %s %s", y.cfg.Binary, strings.Join(args, " "))
	stdout, stderr, err := y.run(ctx, y.cfg.Binary, args...)
	if err != nil {
		if isNotFoundOutput(stderr) {
			return nil, fmt.Errorf("%w: %s", errconsts.ErrNotFound, firstErrorLine(stderr))
		}
		return nil, fmt.Errorf(errconsts.YTDLPFailure, fmt.Errorf("%v: %s", err, firstErrorLine(stderr)))
	}

	info, err := parsePlaylistJSON(stdout)
	if err != nil {
		return nil, err
	}
	if info.PageURL == "" {
		info.PageURL = target
	}
	return info, nil
}

// ResolveStream looks up the stream yt-dlp would pick for the requested quality.
func (y *YtDLP) ResolveStream(ctx context.Context, videoID string, q Quality) (StreamHandle, error) {
	target := VideoURL(videoID)
	format := command.FormatBest
	if q == QualityLowest {
		format = command.FormatWorst
	}

	args := y.baseArgs()
	args = append(args, command.OutputJSON, command.SkipVideo, command.NoPlaylist, command.Format, format, target)

	stdout, stderr, err := y.run(ctx, y.cfg.Binary, args...)
	if err != nil {
		return nil, fmt.Errorf(errconsts.YTDLPFailure, fmt.Errorf("%v: %s", err, firstErrorLine(stderr)))
	}

	v, err := parseVideoJSON(stdout)
	if err != nil {
		return nil, err
	}
	if v.ID == "" {
		v.ID = videoID
	}

	return &ytdlpStream{
		y:        y,
		url:      target,
		videoID:  v.ID,
		title:    v.Title,
		formatID: v.FormatID,
		quality:  q,
	}, nil
}

// baseArgs returns the flags shared by every call.
func (y *YtDLP) baseArgs() []string {
	args := make([]string, 0, 16)
	args = append(args, command.NoWarnings)
	if y.cfg.CookieFile != "" {
		args = append(args, command.CookiePath, y.cfg.CookieFile)
	} else if y.cfg.CookiesFromBrowser != "" {
		args = append(args, command.CookiesFromBrowser, y.cfg.CookiesFromBrowser)
	}
	return args
}

type ytdlpStream struct {
	y        *YtDLP
	url      string
	videoID  string
	title    string
	formatID string
	quality  Quality
}

func (s *ytdlpStream) VideoID() string  { return s.videoID }
func (s *ytdlpStream) Title() string    { return s.title }
func (s *ytdlpStream) Quality() Quality { return s.quality }

// Download fetches the resolved format into destDir, named after the video ID.
func (s *ytdlpStream) Download(ctx context.Context, destDir string) (string, error) {
	format := s.formatID
	if format == "" {
		format = command.FormatBest
		if s.quality == QualityLowest {
			format = command.FormatWorst
		}
	}

	args := s.y.baseArgs()
	args = append(args,
		command.NoPlaylist,
		command.NoProgress,
		command.Format, format,
		command.Output, filepath.Join(destDir, command.ScratchFilenameSyntax),
		command.Print, command.AfterMove,
		s.url, // URL must go last
	)

	logging.D(1, "Downloading %s (%s) with: %s %s", s.videoID, s.quality, s.y.cfg.Binary, strings.Join(args, " "))
	stdout, stderr, err := s.y.run(ctx, s.y.cfg.Binary, args...)
	if err != nil {
		if isPartialTransferOutput(stderr) || isPartialTransferOutput(stdout) {
			return "", fmt.Errorf("%w: %s", errconsts.ErrPartialTransfer, firstErrorLine(stderr))
		}
		return "", fmt.Errorf(errconsts.YTDLPFailure, fmt.Errorf("%v: %s", err, firstErrorLine(stderr)))
	}

	path := lastLine(stdout)
	if path == "" {
		return "", errors.New("yt-dlp did not report an output file")
	}
	return path, nil
}

// PlaylistURL expands a bare playlist ID into a playlist page URL.
func PlaylistURL(sourceID string) string {
	sourceID = strings.TrimSpace(sourceID)
	if strings.Contains(sourceID, "://") {
		return sourceID
	}
	return fmt.Sprintf(command.PlaylistURLTemplate, url.QueryEscape(sourceID))
}

// VideoURL expands a bare video ID into a watch URL.
func VideoURL(videoID string) string {
	if strings.Contains(videoID, "://") {
		return videoID
	}
	return fmt.Sprintf(command.VideoURLTemplate, url.QueryEscape(videoID))
}
