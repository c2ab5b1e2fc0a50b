package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, ":9871", c.Addr())
	assert.Equal(t, "mysql", c.Database.Driver)
	assert.Equal(t, 24*time.Hour, c.CacheTTL())
	assert.Equal(t, time.Hour, c.SweepInterval())
	assert.Equal(t, 15*time.Second, c.AITimeout())
	assert.Equal(t, 7*24*time.Hour, c.TokenTTL())
	assert.Empty(t, c.AI.Provider)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
server:
  port: 8080
database:
  driver: sqlite
  path: /tmp/x.db
ai:
  provider: gemini
  timeout_sec: 5
cache:
  ttl_hours: 12
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))
	t.Setenv("PORT", "9000")
	t.Setenv("AI_API_KEY", "k")
	t.Setenv("DB_PORT", "not-a-number")

	c := Load(path)

	assert.Equal(t, ":9000", c.Addr())
	assert.Equal(t, "sqlite", c.Database.Driver)
	assert.Equal(t, "/tmp/x.db", c.Database.Path)
	assert.Equal(t, 3306, c.Database.Port)
	assert.Equal(t, "gemini", c.AI.Provider)
	assert.Equal(t, "k", c.AI.APIKey)
	assert.Equal(t, 5*time.Second, c.AITimeout())
	assert.Equal(t, 12*time.Hour, c.CacheTTL())
	assert.Equal(t, "info", c.Log.Level)
}

func TestOpenGormDBSqlite(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	c.Database.Driver = "sqlite"
	c.Database.Path = filepath.Join(t.TempDir(), "test.db")

	db, err := c.OpenGormDB()
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	sqlDB.Close()
}

func TestOpenGormDBUnknownDriver(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	c.Database.Driver = "oracle"

	_, err := c.OpenGormDB()
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSweepIntervalNonPositive(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	for _, m := range []int{0, -5} {
		c.Cache.SweepIntervalMin = m
		assert.Equal(t, time.Hour, c.SweepInterval(), m)
	}
	c.Cache.SweepIntervalMin = 5
	assert.Equal(t, 5*time.Minute, c.SweepInterval())
}

func TestAdminUserIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  admin_user_ids: [1, 2]\n"), 0644))
	assert.Equal(t, []int{1, 2}, Load(path).Auth.AdminUserIDs)

	t.Setenv("ADMIN_USER_IDS", " 7, 9")
	assert.Equal(t, []int{7, 9}, Load(path).Auth.AdminUserIDs)

	t.Setenv("ADMIN_USER_IDS", "7,x")
	assert.Equal(t, []int{1, 2}, Load(path).Auth.AdminUserIDs)
}
