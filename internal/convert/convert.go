// Package convert turns downloaded videos into tagged audio files.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tubetag/internal/domain/errconsts"
	"tubetag/internal/models"
	fsutils "tubetag/internal/utils/fs"
	"tubetag/internal/utils/logging"
)

// AudioHandle is an opened audio stream extracted from a video.
//
// Close must be called once the handle is no longer needed, whether or not Write succeeded.
type AudioHandle interface {
	Write(ctx context.Context, outputPath string) error
	Close() error
}

// Transcoder opens the audio stream of a video file.
type Transcoder interface {
	ExtractAudio(ctx context.Context, videoFile string) (AudioHandle, error)
}

// TagWriter stamps tags into an audio file.
type TagWriter interface {
	WriteTags(audioPath string, tags models.Tags) error
}

// TagVerifier checks the tags actually present in an audio file.
type TagVerifier interface {
	VerifyTags(audioPath string, want models.Tags) error
}

// Outcome is the result of a successful conversion.
type Outcome struct {
	AudioPath string

	// Warning is set when the source video could not be deleted.
	Warning *models.CleanupWarning
}

// Converter extracts, writes, tags and cleans up.
type Converter struct {
	transcoder Transcoder
	tagger     TagWriter
	verifier   TagVerifier
}

// Option configures a Converter.
type Option func(*Converter)

// WithVerifier reads tags back after writing and fails the conversion on mismatch.
func WithVerifier(v TagVerifier) Option {
	return func(c *Converter) {
		c.verifier = v
	}
}

// NewConverter creates a Converter from its boundaries.
func NewConverter(t Transcoder, w TagWriter, opts ...Option) *Converter {
	c := &Converter{
		transcoder: t,
		tagger:     w,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert writes the audio of videoFile to audioOut, tags it, and deletes videoFile.
//
// Failures before the video is deleted return an error wrapping errconsts.ErrConversion.
// A video that cannot be deleted is reported in the Outcome instead.
func (c *Converter) Convert(ctx context.Context, videoFile, audioOut string, tags models.Tags) (*Outcome, error) {
	if err := c.writeAudio(ctx, videoFile, audioOut); err != nil {
		c.discard(audioOut)
		return nil, fmt.Errorf("%w: %s: %w", errconsts.ErrConversion, videoFile, err)
	}

	if err := c.tagger.WriteTags(audioOut, tags); err != nil {
		c.discard(audioOut)
		return nil, fmt.Errorf("%w: tagging %s: %w", errconsts.ErrConversion, audioOut, err)
	}

	if c.verifier != nil {
		if err := c.verifier.VerifyTags(audioOut, tags); err != nil {
			c.discard(audioOut)
			return nil, fmt.Errorf("%w: verifying tags on %s: %w", errconsts.ErrConversion, audioOut, err)
		}
	}
	logging.D(1, "Tagged %q as track %s", audioOut, tags.TrackField())

	return &Outcome{
		AudioPath: audioOut,
		Warning:   fsutils.RemoveFile(videoFile),
	}, nil
}

// writeAudio opens the audio handle and always closes it.
func (c *Converter) writeAudio(ctx context.Context, videoFile, audioOut string) (err error) {
	h, err := c.transcoder.ExtractAudio(ctx, videoFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			logging.E("Failed to close audio handle for %q: %v", videoFile, cerr)
			if err == nil {
				err = cerr
			}
		}
	}()

	return h.Write(ctx, audioOut)
}

// discard removes a partial audio file left by a failed conversion.
func (c *Converter) discard(audioOut string) {
	if err := os.Remove(audioOut); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.W("Could not remove partial audio file %q: %v", audioOut, err)
	}
}
