package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	f := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(f, []byte(content), 0644))
	return f
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	f := writeConfig(t, dir, "server:\n  run-mode: debug\n")

	cfg, realpath, err := LoadConfig(f)
	require.NoError(t, err)
	assert.Equal(t, f, realpath)
	assert.Equal(t, realpath, cfg.File)

	assert.Equal(t, "debug", cfg.Server.RunMode)
	assert.Equal(t, ":3333", cfg.Server.HttpPort)
	assert.Equal(t, "127.0.0.1:3334", cfg.Server.PrivateHttpListen)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.User.RegisterIsEnable)
	assert.True(t, cfg.Tracer.Enabled)
	assert.Equal(t, "X-Trace-ID", cfg.Tracer.Header)
	assert.Equal(t, 15*time.Minute, cfg.GetTokenExpiry())
	assert.Equal(t, 60*time.Second, cfg.GetContextTimeout())
	assert.Equal(t, 12*time.Hour, cfg.GetCorsMaxAge())
}

func TestLoadConfig_FalseOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	f := writeConfig(t, dir, `
user:
  register-is-enable: false
tracer:
  enabled: false
database:
  auto-migrate: false
app:
  default-context-timeout: 0
`)

	cfg, _, err := LoadConfig(f)
	require.NoError(t, err)
	assert.False(t, cfg.User.RegisterIsEnable)
	assert.False(t, cfg.Tracer.Enabled)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, time.Duration(0), cfg.GetContextTimeout())
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("BOOKMARK_TEST_SECRET=from-dotenv\nBOOKMARK_TEST_EXPIRY=2h\n"), 0644))
	t.Cleanup(func() {
		_ = os.Unsetenv("BOOKMARK_TEST_SECRET")
		_ = os.Unsetenv("BOOKMARK_TEST_EXPIRY")
	})
	t.Setenv("BOOKMARK_TEST_DB_PATH", filepath.Join(dir, "db.sqlite3"))

	f := writeConfig(t, dir, `
security:
  auth-token-key: ${BOOKMARK_TEST_SECRET}
  token-expiry: ${BOOKMARK_TEST_EXPIRY}
database:
  path: ${BOOKMARK_TEST_DB_PATH}
`)

	cfg, _, err := LoadConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Security.AuthTokenKey)
	assert.Equal(t, 2*time.Hour, cfg.GetTokenExpiry())
	assert.Equal(t, filepath.Join(dir, "db.sqlite3"), cfg.Database.Path)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	f := writeConfig(t, dir, "server: [\n")
	_, _, err = LoadConfig(f)
	assert.Error(t, err)

	f = writeConfig(t, dir, "security:\n  token-expiry: soon\n")
	_, _, err = LoadConfig(f)
	assert.ErrorContains(t, err, "token-expiry")
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	f := writeConfig(t, dir, "security:\n  auth-token-key: k1\n")

	cfg, _, err := LoadConfig(f)
	require.NoError(t, err)
	cfg.Security.AuthTokenKey = "k2"
	cfg.User.RegisterIsEnable = false
	require.NoError(t, cfg.Save())

	again, _, err := LoadConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "k2", again.Security.AuthTokenKey)
	assert.False(t, again.User.RegisterIsEnable)
}

func TestGetDatabaseConfig(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Server.RunMode = "debug"
	cfg.Database.Type = "postgres"
	cfg.Database.Host = "db:5432"
	cfg.Database.Replicas = []string{"replica:5432"}
	cfg.Database.TablePrefix = "bm_"

	dc := cfg.GetDatabaseConfig()
	assert.Equal(t, "postgres", dc.Type)
	assert.Equal(t, "db:5432", dc.Host)
	assert.Equal(t, []string{"replica:5432"}, dc.Replicas)
	assert.Equal(t, "bm_", dc.TablePrefix)
	assert.Equal(t, "debug", dc.RunMode)
}
