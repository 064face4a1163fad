package config

import (
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyUserID               = "user.id"
	keyUserName             = "user.name"
	keyDefaultMinutes       = "sprint.default_minutes"
	keyPresets              = "sprint.presets"
	keyNotificationsEnabled = "notifications.enabled"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.24hr_clock"
)

// WithViperConfig returns an Option that loads configuration from Viper.
// A missing config file is written out with defaults and a freshly
// generated user id so that the same identity is reused on every run.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v)

		err := v.ReadInConfig()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		dirty := err != nil

		if v.GetString(keyUserID) == "" {
			v.Set(keyUserID, uuid.NewString())
			dirty = true
		}

		if dirty {
			if writeErr := v.WriteConfig(); writeErr != nil {
				return errWriteConfig.Wrap(writeErr)
			}
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults.
func setupViper(v *viper.Viper) {
	v.SetDefault(keyUserID, "")
	v.SetDefault(keyUserName, defaultUserName())
	v.SetDefault(keyDefaultMinutes, 25)
	v.SetDefault(keyPresets, []int{25, 50, 90})
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	id, err := uuid.Parse(v.GetString(keyUserID))
	if err != nil {
		return errInvalidUserID.Fmt(v.GetString(keyUserID)).Wrap(err)
	}

	c.User.ID = id
	c.User.Name = v.GetString(keyUserName)
	c.Sprint.DefaultMinutes = v.GetInt(keyDefaultMinutes)
	c.Sprint.Presets = v.GetIntSlice(keyPresets)
	c.Notifications.Enabled = v.GetBool(keyNotificationsEnabled)
	c.Display.DarkTheme = v.GetBool(keyDarkTheme)
	c.Display.TwentyFourHour = v.GetBool(keyTwentyFourHour)
	c.System.ConfigPath = configPathOf(v)
	c.System.DBPath = dbFilePath

	return nil
}

func configPathOf(v *viper.Viper) string {
	if f := v.ConfigFileUsed(); f != "" {
		return f
	}

	return configFilePath
}

func defaultUserName() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if name := os.Getenv(env); name != "" {
			return name
		}
	}

	return "anonymous"
}
