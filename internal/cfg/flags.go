package cfg

import (
	"tubetag/internal/domain/consts"
	"tubetag/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initProgramFlags initializes output, config and logging flags.
func initProgramFlags(rootCmd *cobra.Command) error {
	rootCmd.Flags().StringP(keys.OutputDir, "o", ".", "Root directory the album folder is created under")
	if err := viper.BindPFlag(keys.OutputDir, rootCmd.Flags().Lookup(keys.OutputDir)); err != nil {
		return err
	}

	rootCmd.Flags().String(keys.ConfigFile, "", "Config file (TOML, YAML or JSON) providing defaults for unset flags")
	if err := viper.BindPFlag(keys.ConfigFile, rootCmd.Flags().Lookup(keys.ConfigFile)); err != nil {
		return err
	}

	rootCmd.Flags().Int(keys.DebugLevel, 0, "Debug level (0-5)")
	if err := viper.BindPFlag(keys.DebugLevel, rootCmd.Flags().Lookup(keys.DebugLevel)); err != nil {
		return err
	}

	rootCmd.Flags().String(keys.YtDLPPath, "", "Path to the yt-dlp binary (default: yt-dlp on $PATH)")
	if err := viper.BindPFlag(keys.YtDLPPath, rootCmd.Flags().Lookup(keys.YtDLPPath)); err != nil {
		return err
	}

	rootCmd.Flags().String(keys.FFmpegPath, "", "Path to the ffmpeg binary (default: ffmpeg on $PATH)")
	if err := viper.BindPFlag(keys.FFmpegPath, rootCmd.Flags().Lookup(keys.FFmpegPath)); err != nil {
		return err
	}
	return nil
}

// initPipelineFlags initializes worker pool and retry flags.
func initPipelineFlags(rootCmd *cobra.Command) error {
	rootCmd.Flags().IntP(keys.Concurrency, "c", consts.DefaultConcurrency, "Maximum number of videos processed at once")
	if err := viper.BindPFlag(keys.Concurrency, rootCmd.Flags().Lookup(keys.Concurrency)); err != nil {
		return err
	}

	rootCmd.Flags().Duration(keys.DispatchStagger, consts.DefaultDispatchStagger, "Delay between starting each video")
	if err := viper.BindPFlag(keys.DispatchStagger, rootCmd.Flags().Lookup(keys.DispatchStagger)); err != nil {
		return err
	}

	rootCmd.Flags().Int(keys.DownloadRetries, consts.DefaultDownloadRetries, "Fresh download attempts after the first when a file never appears")
	if err := viper.BindPFlag(keys.DownloadRetries, rootCmd.Flags().Lookup(keys.DownloadRetries)); err != nil {
		return err
	}

	rootCmd.Flags().Int(keys.CatalogRetries, consts.DefaultCatalogRetries, "Maximum playlist lookups while waiting for stable metadata")
	if err := viper.BindPFlag(keys.CatalogRetries, rootCmd.Flags().Lookup(keys.CatalogRetries)); err != nil {
		return err
	}
	return nil
}

// initAudioFlags initializes encoding and tagging flags.
func initAudioFlags(rootCmd *cobra.Command) error {
	rootCmd.Flags().String(keys.AudioBitrate, consts.DefaultAudioBitrate, "AAC bitrate passed to ffmpeg (e.g. 128k, 256k)")
	if err := viper.BindPFlag(keys.AudioBitrate, rootCmd.Flags().Lookup(keys.AudioBitrate)); err != nil {
		return err
	}

	rootCmd.Flags().Bool(keys.SkipCover, false, "Do not download playlist cover art")
	if err := viper.BindPFlag(keys.SkipCover, rootCmd.Flags().Lookup(keys.SkipCover)); err != nil {
		return err
	}

	rootCmd.Flags().Bool(keys.VerifyTags, false, "Read tags back after writing and fail the track on mismatch")
	if err := viper.BindPFlag(keys.VerifyTags, rootCmd.Flags().Lookup(keys.VerifyTags)); err != nil {
		return err
	}
	return nil
}

// initWebFlags initializes cookie flags.
func initWebFlags(rootCmd *cobra.Command) error {
	rootCmd.Flags().String(keys.CookiesFromBrowser, "", "Browser to read cookies from (e.g. firefox, chrome, or 'all')")
	if err := viper.BindPFlag(keys.CookiesFromBrowser, rootCmd.Flags().Lookup(keys.CookiesFromBrowser)); err != nil {
		return err
	}

	rootCmd.Flags().String(keys.CookiePath, "", "Browser cookie database to read cookies from")
	if err := viper.BindPFlag(keys.CookiePath, rootCmd.Flags().Lookup(keys.CookiePath)); err != nil {
		return err
	}
	return nil
}
