package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.NotEmpty(t, cfg.DBPath)
	assert.True(t, cfg.NotificationsEnabled())
	assert.False(t, cfg.SyncEnabled())
	assert.False(t, cfg.Calendar.IsEnabled())
	assert.Equal(t, "TodoMaster", cfg.Calendar.CalendarName)
}

func TestMergeOverlaysNonZeroFields(t *testing.T) {
	cfg := DefaultConfig()
	defaultDB := cfg.DBPath

	cfg.Merge(&Config{
		Remote: RemoteConfig{Endpoint: "https://sync.example.com", Token: "tok"},
	})

	assert.Equal(t, defaultDB, cfg.DBPath, "unset fields keep defaults")
	assert.True(t, cfg.SyncEnabled())
	assert.Equal(t, "tok", cfg.Remote.Token)
	assert.True(t, cfg.NotificationsEnabled(), "unset bools keep defaults")
	assert.False(t, cfg.Calendar.IsEnabled())

	// An explicit false still wins over the default
	off := false
	cfg.Merge(&Config{Notifications: &off})
	assert.False(t, cfg.NotificationsEnabled())
}

func TestMergeSyncOnlyFileKeepsNotificationDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
remote:
  endpoint: https://sync.example.com
`), 0644))

	user, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Nil(t, user.Notifications, "absent key decodes as unset, not false")

	cfg := DefaultConfig()
	cfg.Merge(user)

	assert.True(t, cfg.SyncEnabled())
	assert.True(t, cfg.NotificationsEnabled())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Remote.Token = "orphan"
	assert.Error(t, cfg.Validate(), "token without endpoint")

	cfg = DefaultConfig()
	cfg.DBPath = ""
	assert.Error(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /tmp/td
db_path: /tmp/td/td.db
notifications: true
remote:
  endpoint: https://sync.example.com
  token: secret
calendar:
  enabled: true
  calendar_name: Chores
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/td/td.db", cfg.DBPath)
	assert.Equal(t, "https://sync.example.com", cfg.Remote.Endpoint)
	assert.True(t, cfg.Calendar.IsEnabled())
	require.NotNil(t, cfg.Notifications)
	assert.True(t, *cfg.Notifications)
	assert.Equal(t, "Chores", cfg.Calendar.CalendarName)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{not yaml"), 0644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}
