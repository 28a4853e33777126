package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"regexp"
	"strings"

	"tubetag/internal/domain/command"
	"tubetag/internal/domain/keys"
	"tubetag/internal/utils/logging"

	"github.com/spf13/viper"
)

var bitrateRx = regexp.MustCompile(`^[1-9][0-9]*[kK]$`)

// validateSettings checks flag values, correcting harmless ones and rejecting the rest.
func validateSettings() error {
	if n := viper.GetInt(keys.Concurrency); n < 1 {
		logging.W("Concurrency %d is below 1, using 1", n)
		viper.Set(keys.Concurrency, 1)
	}

	if viper.GetDuration(keys.DispatchStagger) < 0 {
		return fmt.Errorf("invalid %s %v: must not be negative", keys.DispatchStagger, viper.GetDuration(keys.DispatchStagger))
	}
	if n := viper.GetInt(keys.DownloadRetries); n < 0 {
		return fmt.Errorf("invalid %s %d: must not be negative", keys.DownloadRetries, n)
	}
	if n := viper.GetInt(keys.CatalogRetries); n < 1 {
		return fmt.Errorf("invalid %s %d: must be at least 1", keys.CatalogRetries, n)
	}

	if b := viper.GetString(keys.AudioBitrate); !bitrateRx.MatchString(b) {
		return fmt.Errorf("invalid %s %q: expected a value like 192k", keys.AudioBitrate, b)
	}

	if err := validateOutputDir(viper.GetString(keys.OutputDir)); err != nil {
		return err
	}

	if viper.GetString(keys.CookiePath) != "" && viper.GetString(keys.CookiesFromBrowser) != "" {
		logging.W("Both %s and %s set, the cookie file takes precedence", keys.CookiePath, keys.CookiesFromBrowser)
	}
	return nil
}

// validateOutputDir rejects paths that exist but are not directories.
func validateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%s must not be empty", keys.OutputDir)
	}
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logging.D(1, "Output directory %q does not exist yet, it will be created", dir)
		return nil
	case err != nil:
		return fmt.Errorf("failed check for output directory: %w", err)
	case !info.IsDir():
		return fmt.Errorf("output directory %q is a file", dir)
	}
	return nil
}

// validatePlaylistSource accepts a playlist ID or a URL carrying one.
func validatePlaylistSource(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("no playlist given")
	}
	if !strings.Contains(raw, "://") {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid playlist URL %q: %w", raw, err)
	}
	if u.Query().Get(command.PlaylistParam) == "" {
		return "", fmt.Errorf("URL %q has no %q parameter", raw, command.PlaylistParam)
	}
	return raw, nil
}
