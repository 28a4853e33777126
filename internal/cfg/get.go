package cfg

import (
	"time"

	"github.com/spf13/viper"
)

// GetString returns a string setting.
func GetString(key string) string { return viper.GetString(key) }

// GetInt returns an int setting.
func GetInt(key string) int { return viper.GetInt(key) }

// GetBool returns a bool setting.
func GetBool(key string) bool { return viper.GetBool(key) }

// GetDuration returns a duration setting.
func GetDuration(key string) time.Duration { return viper.GetDuration(key) }

// IsSet reports whether key has a value.
func IsSet(key string) bool { return viper.IsSet(key) }
