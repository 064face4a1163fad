package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogunleye/sprint/internal/apperr"
)

func TestViperConfigFirstRun(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, cfg.User.ID)
	assert.Equal(t, 25, cfg.Sprint.DefaultMinutes)
	assert.Equal(t, []int{25, 50, 90}, cfg.Sprint.Presets)
	assert.True(t, cfg.Notifications.Enabled)
	assert.True(t, cfg.Display.DarkTheme)

	_, err = os.Stat(configPath)
	require.NoError(t, err, "first run must write the config file")
}

func TestViperConfigIdentityIsStable(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	first, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	second, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestViperConfigOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	contents := `user:
  id: 7cf7a2d4-3f6f-4f6e-9b35-0d8f8aa0a2bd
  name: dami
sprint:
  default_minutes: 50
  presets:
    - 15
    - 50
notifications:
  enabled: false
display:
  dark_theme: false
`

	err := os.WriteFile(configPath, []byte(contents), 0o644)
	require.NoError(t, err)

	cfg, err := New(WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, "7cf7a2d4-3f6f-4f6e-9b35-0d8f8aa0a2bd", cfg.User.ID.String())
	assert.Equal(t, "dami", cfg.User.Name)
	assert.Equal(t, 50, cfg.Sprint.DefaultMinutes)
	assert.Equal(t, []int{15, 50}, cfg.Sprint.Presets)
	assert.False(t, cfg.Notifications.Enabled)
	assert.False(t, cfg.Display.DarkTheme)
}

func TestViperConfigRejectsBadUserID(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	contents := `user:
  id: not-a-uuid
`

	err := os.WriteFile(configPath, []byte(contents), 0o644)
	require.NoError(t, err)

	_, err = New(WithViperConfig(configPath))
	require.Error(t, err)
	assert.Equal(t, apperr.Config, apperr.KindOf(err))
}

func TestValidateRejectsBadDurations(t *testing.T) {
	cfg := &Config{}
	cfg.User.ID = uuid.New()
	cfg.Sprint.DefaultMinutes = 0

	err := cfg.validate()
	require.Error(t, err)
	assert.Equal(t, apperr.Config, apperr.KindOf(err))
}
