package cfg

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	flagTypeString   = "string"
	flagTypeInt      = "int"
	flagTypeBool     = "bool"
	flagTypeDuration = "duration"
)

// loadDefaultsFromConfig reads configFile and applies its values to flags the user did not set.
func loadDefaultsFromConfig(cmd *cobra.Command, configFile string) error {
	if err := validateConfigFile(configFile); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var errOrNil error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}

		var val string
		switch f.Value.Type() {
		case flagTypeString:
			val = v.GetString(f.Name)
		case flagTypeInt:
			val = strconv.Itoa(v.GetInt(f.Name))
		case flagTypeBool:
			val = strconv.FormatBool(v.GetBool(f.Name))
		case flagTypeDuration:
			val = v.GetDuration(f.Name).String()
		default:
			return
		}

		if err := f.Value.Set(val); err != nil {
			errOrNil = fmt.Errorf("config key %q: %w", f.Name, err)
			return
		}
		f.Changed = true
	})
	return errOrNil
}

// validateConfigFile checks the config path is a readable regular file.
func validateConfigFile(path string) error {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return fmt.Errorf("failed check for config file path: %w", err)
	case info.IsDir():
		return fmt.Errorf("config file %q is a directory, should be a file", path)
	case !info.Mode().IsRegular():
		return fmt.Errorf("%q is not a regular file", path)
	case info.Size() == 0:
		return fmt.Errorf("config file %q is empty", path)
	}
	return nil
}
