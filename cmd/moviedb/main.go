package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/mmcdole/moviedb/internal/adapter"
	"github.com/mmcdole/moviedb/internal/adapter/source/omdb"
	"github.com/mmcdole/moviedb/internal/cli"
	"github.com/mmcdole/moviedb/internal/site"
	"github.com/mmcdole/moviedb/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// A missing .env file is fine, the environment may already hold the key
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting moviedb", "version", Version, "storage", cfg.Storage.Format)

	app, err := newApp(cfg, in, out, logger)
	if err != nil {
		return err
	}
	app.SetInteractive(isTerminal(out))

	if err := app.Run(ctx); err != nil {
		logger.Error("menu error", "error", err)
		return err
	}

	logger.Info("shutting down")
	return nil
}

// newApp wires storage and, when enabled, the metadata service and site
// generator into the menu loop
func newApp(cfg *adapter.Config, in io.Reader, out io.Writer, logger *slog.Logger) (*cli.App, error) {
	format, err := store.ParseFormat(cfg.Storage.Format)
	if err != nil {
		return nil, err
	}
	storage, err := store.New(format, cfg.Storage.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	app := cli.NewApp(storage, in, out, logger)
	if !cfg.OMDb.Enabled {
		return app, nil
	}

	if !cfg.HasAPIKey() {
		logger.Warn("no OMDb API key configured, lookups will fail")
	}
	client := omdb.NewClient(cfg.OMDb.BaseURL, cfg.OMDb.APIKey, cfg.OMDb.Timeout, logger)
	generator := site.NewGenerator(site.Options{
		Title:         cfg.Site.Title,
		Output:        cfg.Site.Output,
		PageTemplate:  cfg.Site.PageTemplate,
		MovieTemplate: cfg.Site.MovieTemplate,
	}, logger)
	launcher := adapter.NewLauncher(cfg.Site.Browser, cfg.Site.BrowserArgs, logger)

	app.EnableEnrichment(client, generator, launcher)
	return app, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
