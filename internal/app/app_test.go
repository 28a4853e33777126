package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tubetag/internal/cfg"
	"tubetag/internal/models"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFromConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	out := t.TempDir()
	require.NoError(t, cfg.Execute([]string{"-o", out, "-c", "2", "--stagger", "1s", "--verify-tags", "PLxyz"}))

	s := SettingsFromConfig()
	assert.Equal(t, "PLxyz", s.Source)
	assert.Equal(t, out, s.OutputDir)
	assert.Equal(t, 2, s.Concurrency)
	assert.Equal(t, time.Second, s.Stagger)
	assert.Equal(t, 3, s.DownloadRetries)
	assert.Equal(t, 10, s.CatalogRetries)
	assert.True(t, s.VerifyTags)
}

func TestNewOrchestratorSubmit(t *testing.T) {
	o := NewOrchestrator(Settings{Concurrency: 2, AudioBitrate: "128k"})
	job := o.Submit("PL1", t.TempDir())
	assert.Equal(t, models.StateCreated, job.State())
	assert.Zero(t, job.Total())
}

func TestRunMissingPrograms(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-binary")
	_, err := Run(context.Background(), Settings{YtDLPPath: missing, FFmpegPath: missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
