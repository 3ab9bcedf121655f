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

func TestMustLoad(t *testing.T) {
	t.Run("Missing values fall back to defaults", func(t *testing.T) {
		// Given: a config file that only sets the matchmaking timeout
		path := writeConfig(t, "game:\n  matchmaking-timeout: 5s\n")

		// When
		conf := MustLoad(path)

		// Then
		assert.Equal(t, 5*time.Second, conf.Game.MatchmakingTimeout)
		assert.Equal(t, 30*time.Second, conf.Game.ReconnectTimeout)
		assert.Equal(t, 500*time.Millisecond, conf.Game.GameEndDelay)
		assert.Equal(t, 10, conf.Game.LeaderboardSize)
		assert.Equal(t, "3000", conf.HTTPPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 256, conf.Persistence.QueueSize)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "game:\n  reconnect-timeout: 30s\n")
		t.Setenv("RECONNECT_TIMEOUT", "2s")

		conf := MustLoad(path)

		assert.Equal(t, 2*time.Second, conf.Game.ReconnectTimeout)
	})

	t.Run("Missing file panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}

func TestPostgres_GetDSN(t *testing.T) {
	conf := Postgres{Host: "db", Port: "5432", User: "u", Password: "p", Name: "games", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=games sslmode=disable", conf.GetDSN())
}
