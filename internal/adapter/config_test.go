package adapter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"MOVIEDB_OMDB_API_KEY", "OMDB_API_KEY", "API_KEY", "MOVIEDB_STORAGE_FORMAT"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearKeyEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "json", cfg.Storage.Format)
	require.True(t, cfg.OMDb.Enabled)
	require.Equal(t, defaultOMDbURL, cfg.OMDb.BaseURL)
	require.Equal(t, 10*time.Second, cfg.OMDb.Timeout)
	require.Equal(t, "index.html", cfg.Site.Output)
	require.False(t, cfg.HasAPIKey())
}

func TestLoadConfig_File(t *testing.T) {
	clearKeyEnv(t)
	dir := t.TempDir()
	content := `
storage:
  format: csv
  path: /tmp/movies.csv
omdb:
  enabled: false
  timeout: 3s
site:
  title: Film Night
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, "csv", cfg.Storage.Format)
	require.Equal(t, "/tmp/movies.csv", cfg.Storage.Path)
	require.False(t, cfg.OMDb.Enabled)
	require.Equal(t, 3*time.Second, cfg.OMDb.Timeout)
	require.Equal(t, "Film Night", cfg.Site.Title)
	require.Equal(t, "index.html", cfg.Site.Output, "unset keys keep defaults")
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("MOVIEDB_STORAGE_FORMAT", "yaml")
	t.Setenv("OMDB_API_KEY", "secret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "yaml", cfg.Storage.Format)
	require.Equal(t, "secret", cfg.OMDb.APIKey)
	require.True(t, cfg.HasAPIKey())
}

func TestLoadConfig_BareAPIKey(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("API_KEY", "from-dotenv")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.OMDb.APIKey)
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("MOVIEDB_STORAGE_FORMAT", "xml")

	_, err := LoadConfig(t.TempDir())
	require.ErrorContains(t, err, "storage.format")
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	clearKeyEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage: [oops"), 0644))

	_, err := LoadConfig(dir)
	require.ErrorContains(t, err, "error reading config file")
}

func TestSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "moviedb.log")

	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)
	logger.Debug("hello", "k", "v")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"hello"`)
}

func TestSetupLogger_Disabled(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	for _, file := range []string{"", "  ", "off", "NONE"} {
		logger, err := SetupLogger(&LoggingConfig{File: file, Level: "debug"})
		require.NoError(t, err, file)
		require.False(t, logger.Enabled(context.Background(), slog.LevelError), file)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "disabled logging creates no files")
}

func TestSetupLogger_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	logger, err := SetupLogger(&LoggingConfig{File: "~/logs/moviedb.log"})
	require.NoError(t, err)
	logger.Info("started")
	require.FileExists(t, filepath.Join(home, "logs", "moviedb.log"))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" warn ", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"INFO+2", slog.LevelInfo + 2},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestLauncher_MissingBrowser(t *testing.T) {
	l := NewLauncher("no-such-browser-binary-xyz", nil, NullLogger())
	err := l.Open("index.html")
	require.ErrorContains(t, err, "not found")
}

func TestIsURL(t *testing.T) {
	require.True(t, isURL("https://example.com"))
	require.True(t, isURL("file:///tmp/index.html"))
	require.False(t, isURL("index.html"))
}
