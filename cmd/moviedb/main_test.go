package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/moviedb/internal/adapter"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *adapter.Config {
	t.Helper()
	cfg := adapter.DefaultConfig()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "data.json")
	cfg.Site.Output = filepath.Join(t.TempDir(), "index.html")
	return cfg
}

func runWired(t *testing.T, cfg *adapter.Config, input string) string {
	t.Helper()
	var out bytes.Buffer
	app, err := newApp(cfg, strings.NewReader(input), &out, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func TestNewApp_EnrichmentDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.OMDb.Enabled = false

	out := runWired(t, cfg, "0\n")
	require.Contains(t, out, "Enter choice (0-8): ")
	require.FileExists(t, cfg.Storage.Path)
}

func TestNewApp_EnrichmentEnabled(t *testing.T) {
	out := runWired(t, testConfig(t), "0\n")
	require.Contains(t, out, "9. Generate website")
	require.Contains(t, out, "Enter choice (0-9): ")
}

func TestNewApp_EachFormat(t *testing.T) {
	for _, format := range []string{"json", "csv", "yaml", "bolt"} {
		t.Run(format, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.OMDb.Enabled = false
			cfg.Storage.Format = format
			cfg.Storage.Path = filepath.Join(t.TempDir(), "movies."+format)

			out := runWired(t, cfg, "2\nHeat\n1995\n8.3\n1\n0\n")
			require.Contains(t, out, "Heat (1995): 8.3")
		})
	}
}

func TestNewApp_InvalidFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Format = "xml"

	_, err := newApp(cfg, strings.NewReader(""), io.Discard, slog.Default())
	require.Error(t, err)
}

func TestIsTerminal_Buffer(t *testing.T) {
	require.False(t, isTerminal(&bytes.Buffer{}))
}
