package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

type (
	// Config holds all configuration settings
	Config struct {
		User          UserConfig
		Sprint        SprintConfig
		Notifications NotificationConfig
		Display       DisplayConfig
		System        SystemConfig
	}

	// UserConfig identifies this installation to other participants
	UserConfig struct {
		ID   uuid.UUID
		Name string
	}

	// SprintConfig holds sprint-related settings
	SprintConfig struct {
		DefaultMinutes int
		Presets        []int
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme      bool
		TwentyFourHour bool
	}

	// SystemConfig holds system-related settings
	SystemConfig struct {
		ConfigPath string
		DBPath     string
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.1.0"

var (
	configDir      = "sprint"
	configFileName = "config.yml"
	dbFileName     = "sprint.db"
	logFileName    = "sprint.log"
	dbFilePath     string
	configFilePath string
	logFilePath    string
)

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

func InitializePaths() {
	sprintEnv := strings.TrimSpace(os.Getenv("SPRINT_ENV"))
	if sprintEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", sprintEnv)
		dbFileName = fmt.Sprintf("sprint_%s.db", sprintEnv)
		logFileName = fmt.Sprintf("sprint_%s.log", sprintEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// New creates a new Config with default values and applies options
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.User.ID == uuid.Nil {
		return errMissingUserID
	}

	if c.Sprint.DefaultMinutes <= 0 {
		return errInvalidDefaultMinutes.Fmt(c.Sprint.DefaultMinutes)
	}

	for _, p := range c.Sprint.Presets {
		if p <= 0 {
			return errInvalidPreset.Fmt(p)
		}
	}

	return nil
}
