package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tubetag/internal/domain/keys"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	return Execute(args)
}

func TestExecuteDefaults(t *testing.T) {
	require.NoError(t, run(t, "PL123"))

	assert.True(t, GetBool(keys.Execute))
	assert.Equal(t, "PL123", GetString(keys.PlaylistURL))
	assert.Equal(t, ".", GetString(keys.OutputDir))
	assert.Equal(t, 4, GetInt(keys.Concurrency))
	assert.Equal(t, 1500*time.Millisecond, GetDuration(keys.DispatchStagger))
	assert.Equal(t, 3, GetInt(keys.DownloadRetries))
	assert.Equal(t, 10, GetInt(keys.CatalogRetries))
	assert.Equal(t, "192k", GetString(keys.AudioBitrate))
	assert.False(t, GetBool(keys.SkipCover))
}

func TestExecuteFlags(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, run(t,
		"-o", out, "-c", "8", "--stagger", "250ms", "--audio-bitrate", "256k",
		"--skip-cover", "--verify-tags",
		"https://www.youtube.com/playlist?list=PL123"))

	assert.Equal(t, out, GetString(keys.OutputDir))
	assert.Equal(t, 8, GetInt(keys.Concurrency))
	assert.Equal(t, 250*time.Millisecond, GetDuration(keys.DispatchStagger))
	assert.Equal(t, "256k", GetString(keys.AudioBitrate))
	assert.True(t, GetBool(keys.SkipCover))
	assert.True(t, GetBool(keys.VerifyTags))
	assert.Equal(t, "https://www.youtube.com/playlist?list=PL123", GetString(keys.PlaylistURL))
}

func TestExecuteRequiresPlaylist(t *testing.T) {
	assert.Error(t, run(t))
	assert.False(t, GetBool(keys.Execute))
}

func TestExecuteRejectsBadValues(t *testing.T) {
	assert.Error(t, run(t, "--audio-bitrate", "loud", "PL1"))
	assert.Error(t, run(t, "--catalog-retries", "0", "PL1"))
	assert.Error(t, run(t, "--download-retries", "-1", "PL1"))
	assert.Error(t, run(t, "https://www.youtube.com/watch?v=abc"))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Error(t, run(t, "-o", file, "PL1"))
}

func TestExecuteClampsConcurrency(t *testing.T) {
	require.NoError(t, run(t, "-c", "0", "PL1"))
	assert.Equal(t, 1, GetInt(keys.Concurrency))
}

func TestConfigFileFillsUnsetFlags(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "tubetag.toml")
	require.NoError(t, os.WriteFile(conf, []byte(`
concurrency = 2
audio-bitrate = "128k"
skip-cover = true
stagger = "3s"
`), 0o644))

	require.NoError(t, run(t, "--config-file", conf, "--audio-bitrate", "320k", "PL1"))

	assert.Equal(t, 2, GetInt(keys.Concurrency))
	assert.Equal(t, "320k", GetString(keys.AudioBitrate), "command line wins over config file")
	assert.True(t, GetBool(keys.SkipCover))
	assert.Equal(t, 3*time.Second, GetDuration(keys.DispatchStagger))
}

func TestConfigFileInvalid(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, run(t, "--config-file", dir, "PL1"))

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	assert.Error(t, run(t, "--config-file", empty, "PL1"))

	assert.Error(t, run(t, "--config-file", filepath.Join(dir, "missing.yaml"), "PL1"))
}

func TestValidatePlaylistSource(t *testing.T) {
	got, err := validatePlaylistSource("  PLabc ")
	require.NoError(t, err)
	assert.Equal(t, "PLabc", got)

	_, err = validatePlaylistSource("")
	assert.Error(t, err)

	got, err = validatePlaylistSource("https://music.youtube.com/playlist?list=OLAK5")
	require.NoError(t, err)
	assert.Equal(t, "https://music.youtube.com/playlist?list=OLAK5", got)
}
