// Package cfg provides configuration and command-line interface setup for tubetag.
package cfg

import (
	"fmt"
	"strings"

	"tubetag/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the root command with every flag bound to viper.
//
// Running it loads any config file, validates settings, and marks the
// program for execution; the work itself is done by the caller.
func NewRootCmd() (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   "tubetag <playlist-url | playlist-id>",
		Short: "tubetag downloads a playlist as a tagged audio album.",
		Args:  cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if viper.IsSet(keys.ConfigFile) {
				if configFile := viper.GetString(keys.ConfigFile); configFile != "" {
					if err := loadDefaultsFromConfig(cmd, configFile); err != nil {
						return fmt.Errorf("failed loading config file: %w", err)
					}
				}
			}
			return validateSettings()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := validatePlaylistSource(args[0])
			if err != nil {
				return err
			}
			viper.Set(keys.PlaylistURL, source)
			viper.Set(keys.Execute, true)
			return nil
		},
		SilenceUsage: true,
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TUBETAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_")) // "output-dir" reads TUBETAG_OUTPUT_DIR

	if err := initProgramFlags(rootCmd); err != nil {
		return nil, err
	}
	if err := initPipelineFlags(rootCmd); err != nil {
		return nil, err
	}
	if err := initAudioFlags(rootCmd); err != nil {
		return nil, err
	}
	if err := initWebFlags(rootCmd); err != nil {
		return nil, err
	}
	return rootCmd, nil
}

// Execute parses args and populates viper.
func Execute(args []string) error {
	rootCmd, err := NewRootCmd()
	if err != nil {
		return err
	}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
