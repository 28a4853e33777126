package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"tubetag/internal/domain/command"
	"tubetag/internal/domain/consts"
	"tubetag/internal/domain/errconsts"
	"tubetag/internal/utils/logging"
)

// runFunc executes an external program and returns its combined output.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// FFmpeg is a Transcoder that re-encodes the audio track to AAC in an MP4 container.
type FFmpeg struct {
	binary  string
	bitrate string
	run     runFunc
}

// NewFFmpeg returns an ffmpeg transcoder. Empty arguments fall back to defaults.
func NewFFmpeg(binary, bitrate string) *FFmpeg {
	if binary == "" {
		binary = command.FFmpeg
	}
	if bitrate == "" {
		bitrate = consts.DefaultAudioBitrate
	}
	return &FFmpeg{
		binary:  binary,
		bitrate: bitrate,
		run:     execCombined,
	}
}

func execCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// ExtractAudio opens videoFile for reading and returns a handle that encodes its audio.
func (f *FFmpeg) ExtractAudio(ctx context.Context, videoFile string) (AudioHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.Open(videoFile)
	if err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}
	return &ffmpegAudio{ff: f, path: videoFile, src: src}, nil
}

// ffmpegAudio keeps the source video open until Close.
type ffmpegAudio struct {
	ff   *FFmpeg
	path string
	src  *os.File

	once     sync.Once
	closeErr error
}

func (a *ffmpegAudio) Write(ctx context.Context, outputPath string) error {
	if a.src == nil {
		return errors.New("audio handle is closed")
	}

	args := a.ff.buildArgs(a.path, outputPath)
	logging.D(2, "Running: %s %s", a.ff.binary, strings.Join(args, " "))

	out, err := a.ff.run(ctx, a.ff.binary, args...)
	if err != nil {
		return fmt.Errorf(errconsts.FFmpegFailure, fmt.Errorf("%v: %s", err, strings.TrimSpace(string(out))))
	}
	return nil
}

// Close is idempotent.
func (a *ffmpegAudio) Close() error {
	a.once.Do(func() {
		if a.src != nil {
			a.closeErr = a.src.Close()
			a.src = nil
		}
	})
	return a.closeErr
}

// buildArgs builds: ffmpeg -hide_banner -loglevel error -y -i <in> -vn -c:a aac -b:a <rate> -f mp4 <out>
func (f *FFmpeg) buildArgs(in, out string) []string {
	args := make([]string, 0, 16)
	args = append(args, command.HideBanner)
	args = append(args, command.LogErrorsOnly...)
	args = append(args, command.Overwrite, command.Input, in)
	args = append(args, command.NoVideo...)
	args = append(args, command.AudioToAAC...)
	args = append(args, command.AudioBitrate, f.bitrate)
	args = append(args, command.MuxerMP4Audio...)
	return append(args, out)
}
