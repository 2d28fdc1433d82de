package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikbrunner/bark/internal/config"
	"gotest.tools/v3/assert"
)

func TestLoadConfig_CreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg, err := config.LoadConfig(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.DatabasePath, filepath.Join(dir, "bookmarks.db"))
	assert.Equal(t, cfg.LogLevel, "info")
	assert.Assert(t, cfg.PreserveTimestamps)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadConfig_FillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"logLevel": "debug", "preserveTimestamps": false}`
	assert.NilError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := config.LoadConfig(path)
	assert.NilError(t, err)

	assert.Equal(t, cfg.LogLevel, "debug")
	assert.Equal(t, cfg.PreserveTimestamps, false)
	assert.Equal(t, cfg.GitHubAPIURL, "https://api.github.com")
	assert.Equal(t, cfg.LogFile, filepath.Join(dir, "bark.log"))
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := config.LoadConfig(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := config.DefaultConfig("/data")
	cfg.LogLevel = "warn"
	cfg.GitHubToken = "secret"

	assert.NilError(t, config.SaveConfig(path, &cfg))

	raw, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, !strings.Contains(string(raw), "secret"), "token must not be written to disk")

	loaded, err := config.LoadConfig(path)
	assert.NilError(t, err)
	assert.Equal(t, loaded.LogLevel, "warn")
	assert.Equal(t, loaded.DatabasePath, "/data/bookmarks.db")
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	assert.NilError(t, os.WriteFile(envFile, []byte("BARK_LOG_LEVEL=error\n"), 0644))

	t.Setenv("BARK_DB", "/tmp/other.db")
	t.Setenv("GITHUB_TOKEN", "tok")

	// godotenv never overrides variables that are already set
	os.Unsetenv("BARK_LOG_LEVEL")
	t.Cleanup(func() { os.Unsetenv("BARK_LOG_LEVEL") })

	cfg := config.DefaultConfig(dir)
	assert.NilError(t, cfg.ApplyEnv(envFile))

	assert.Equal(t, cfg.DatabasePath, "/tmp/other.db")
	assert.Equal(t, cfg.LogLevel, "error")
	assert.Equal(t, cfg.GitHubToken, "tok")
}

func TestApplyEnv_MissingFileIsFine(t *testing.T) {
	cfg := config.DefaultConfig(t.TempDir())
	assert.NilError(t, cfg.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")))
}
