package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Values from file", func(t *testing.T) {
		// Given: a config file with every section set
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
shutdown-timeout: 3s
redis:
  host: redis
  port: "6380"
game:
  ttl: 30m
  player-ttl: 2h
  move-cache-ttl: 24h
  random-seed: 42
`)

		// When: the config is loaded
		conf, err := Load(path)

		// Then: every value is read from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, 3*time.Second, conf.ShutdownTimeout)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 30*time.Minute, conf.Game.TTL)
		assert.Equal(t, 2*time.Hour, conf.Game.PlayerTTL)
		assert.Equal(t, 24*time.Hour, conf.Game.MoveCacheTTL)
		assert.Equal(t, int64(42), conf.Game.RandomSeed)
	})

	t.Run("Defaults", func(t *testing.T) {
		// Given: an almost empty config file
		path := writeConfig(t, "log-level: info\n")

		// When: the config is loaded
		conf, err := Load(path)

		// Then: defaults fill the gaps
		require.NoError(t, err)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Game.TTL)
		assert.Equal(t, 24*time.Hour, conf.Game.PlayerTTL)
		assert.Equal(t, time.Duration(0), conf.Game.MoveCacheTTL)
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "http-port: \"8080\"\n")
		t.Setenv("HTTP_PORT", "7070")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

		require.Error(t, err)
	})
}
