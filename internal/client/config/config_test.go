package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"client"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadConfig_Defaults(t *testing.T) {
	setArgs(t)

	cfg := LoadConfig()
	assert.Equal(t, "http://127.0.0.1:8080/api", cfg.ServerEndpointAddr)
	assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "noteeasy.db", cfg.DatabasePath)
	assert.Equal(t, "notes_media", cfg.MediaDir)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadConfig_Flags(t *testing.T) {
	setArgs(t, "-a", "https://notes.example.com/api", "-i", "60", "-d", "/tmp/notes.db", "-m", "/tmp/media", "-l", "/tmp/client.log")

	cfg := LoadConfig()
	assert.Equal(t, "https://notes.example.com/api", cfg.ServerEndpointAddr)
	assert.Equal(t, 60*time.Second, cfg.SyncInterval)
	assert.Equal(t, "/tmp/notes.db", cfg.DatabasePath)
	assert.Equal(t, "/tmp/media", cfg.MediaDir)
	assert.Equal(t, "/tmp/client.log", cfg.LogFile)
}

func TestLoadConfig_JsonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"server_endpoint_addr": "https://json.example.com/api",
		"sync_interval": "45s",
		"request_timeout": "3s",
		"database_path": "from-json.db"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o660))

	setArgs(t, "-c", path)

	cfg := LoadConfig()
	assert.Equal(t, "https://json.example.com/api", cfg.ServerEndpointAddr)
	assert.Equal(t, 45*time.Second, cfg.SyncInterval)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "from-json.db", cfg.DatabasePath)

	// fields absent from the file keep their defaults
	assert.Equal(t, "notes_media", cfg.MediaDir)
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_endpoint_addr": "https://json.example.com/api"}`), 0o660))

	setArgs(t, "-c", path, "-a", "https://flag.example.com/api")

	cfg := LoadConfig()
	assert.Equal(t, "https://flag.example.com/api", cfg.ServerEndpointAddr)
}
