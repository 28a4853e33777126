// Package paths initializes tubetag's filepaths, directories, etc.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tubetag/internal/domain/consts"
)

const (
	tDir           = ".tubetag"
	tubetagLogFile = "tubetag.log"
)

// File and directory path strings.
var (
	HomeTubetagDir     string
	TubetagLogFilePath string
)

// InitProgFilesDirs initializes necessary program directories and filepaths.
func InitProgFilesDirs() error {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return errors.New("failed to get home directory")
	}

	// Home tubetag dir ~/.tubetag
	HomeTubetagDir = filepath.Join(userHomeDir, tDir)
	if _, err := os.Stat(HomeTubetagDir); os.IsNotExist(err) {
		if err := os.MkdirAll(HomeTubetagDir, consts.PermsHomeProgDir); err != nil {
			return fmt.Errorf("failed to make directories: %w", err)
		}
	}

	TubetagLogFilePath = filepath.Join(HomeTubetagDir, tubetagLogFile)
	return nil
}
