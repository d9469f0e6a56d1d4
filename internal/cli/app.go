package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/moviedb/internal/cli/styles"
	"github.com/mmcdole/moviedb/internal/domain"
	"github.com/mmcdole/moviedb/internal/service"
)

const menuTitle = "********** My Movies Database **********"

// errInterrupted is returned by prompt when the context is canceled
var errInterrupted = errors.New("interrupted")

// SiteBuilder renders the catalog to a static page
type SiteBuilder interface {
	Generate(movies []domain.Movie) (string, error)
}

// Opener opens a generated page for the user
type Opener interface {
	Open(target string) error
}

// menuItem is one numbered menu entry. A nil run exits the loop.
type menuItem struct {
	key   string
	label string
	run   func(ctx context.Context) error
}

// inputLine is one line read from the user
type inputLine struct {
	text string
	err  error
}

// App is the interactive menu loop
type App struct {
	storage domain.Storage
	catalog *service.CatalogService
	fetcher domain.MovieFetcher // nil disables enrichment
	site    SiteBuilder
	opener  Opener

	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	interactive bool
	lines       chan inputLine
	done        chan struct{}
}

// NewApp creates a menu loop over storage reading from in and writing to out
func NewApp(storage domain.Storage, in io.Reader, out io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		storage: storage,
		catalog: service.NewCatalogService(storage, logger),
		in:      in,
		out:     out,
		logger:  logger,
	}
}

// EnableEnrichment switches "add" to metadata lookups and adds the
// website command. opener may be nil to skip the browser prompt.
func (a *App) EnableEnrichment(fetcher domain.MovieFetcher, site SiteBuilder, opener Opener) {
	a.fetcher = fetcher
	a.site = site
	a.opener = opener
}

// SetInteractive enables colors and the network spinner
func (a *App) SetInteractive(interactive bool) {
	a.interactive = interactive
}

// Catalog returns the service used for read-only commands
func (a *App) Catalog() *service.CatalogService {
	return a.catalog
}

func (a *App) menu() []menuItem {
	items := []menuItem{
		{key: "0", label: "Exit"},
		{key: "1", label: "List movies", run: a.listMovies},
		{key: "2", label: "Add movie", run: a.addMovie},
		{key: "3", label: "Delete movie", run: a.deleteMovie},
		{key: "4", label: "Update movie", run: a.updateMovie},
		{key: "5", label: "Stats", run: a.movieStats},
		{key: "6", label: "Random movie", run: a.randomMovie},
		{key: "7", label: "Search movie", run: a.searchMovies},
		{key: "8", label: "Movies sorted by rating", run: a.moviesByRating},
	}
	if a.site != nil {
		items = append(items, menuItem{key: "9", label: "Generate website", run: a.generateWebsite})
	}
	return items
}

// Run shows the menu until the user exits, input ends or ctx is canceled.
// Only input failures are returned; command errors are reported inline.
func (a *App) Run(ctx context.Context) error {
	a.startReader()
	defer close(a.done)

	items := a.menu()
	a.logger.Info("menu started", "enrichment", a.fetcher != nil, "commands", len(items))

	for {
		a.printMenu(items)

		choice, err := a.prompt(ctx, fmt.Sprintf("Enter choice (0-%d): ", len(items)-1))
		if err != nil {
			return a.finish(err)
		}

		item, ok := findMenuItem(items, strings.TrimSpace(choice))
		if !ok {
			a.println()
			a.fail("Invalid choice. Please try again.")
			continue
		}
		if item.run == nil {
			a.println("Bye!")
			return nil
		}

		a.logger.Debug("command", "key", item.key, "label", item.label)
		if err := item.run(ctx); err != nil {
			return a.finish(err)
		}
	}
}

// finish turns end of input and interrupts into a clean exit
func (a *App) finish(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, errInterrupted) {
		a.logger.Info("menu stopped", "reason", err)
		a.println()
		a.println("Bye!")
		return nil
	}
	return err
}

func findMenuItem(items []menuItem, key string) (menuItem, bool) {
	for _, item := range items {
		if item.key == key {
			return item, true
		}
	}
	return menuItem{}, false
}

func (a *App) printMenu(items []menuItem) {
	a.println(a.paint(styles.TitleStyle, menuTitle))
	a.println()
	a.println(a.paint(styles.HeadingStyle, "Menu:"))
	for _, item := range items {
		a.println(a.paint(styles.MenuKeyStyle, item.key+".") + " " + a.paint(styles.MenuLabelStyle, item.label))
	}
	a.println()
}

// startReader feeds input lines to prompt so a blocked read can still
// observe cancellation
func (a *App) startReader() {
	a.lines = make(chan inputLine)
	a.done = make(chan struct{})

	go func() {
		defer close(a.lines)
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			select {
			case a.lines <- inputLine{text: scanner.Text()}:
			case <-a.done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case a.lines <- inputLine{err: err}:
			case <-a.done:
			}
		}
	}()
}

// prompt prints label and waits for one line
func (a *App) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(a.out, label)

	select {
	case <-ctx.Done():
		return "", errInterrupted
	case line, ok := <-a.lines:
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", fmt.Errorf("failed to read input: %w", line.err)
		}
		return line.text, nil
	}
}

// === Output helpers ===

func (a *App) paint(style lipgloss.Style, s string) string {
	if !a.interactive {
		return s
	}
	return style.Render(s)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) fail(format string, args ...any) {
	a.println(a.paint(styles.ErrorStyle, fmt.Sprintf(format, args...)))
}

func (a *App) succeed(format string, args ...any) {
	a.println(a.paint(styles.SuccessStyle, fmt.Sprintf(format, args...)))
}

func (a *App) hint(format string, args ...any) {
	a.println(a.paint(styles.DimStyle, fmt.Sprintf(format, args...)))
}
