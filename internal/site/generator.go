// Package site renders the catalog into a static HTML page by plain token
// substitution over two templates: a page and a per-movie fragment.
package site

import (
	"embed"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/moviedb/internal/domain"
)

// Page template tokens
const (
	TokenPageTitle   = "__TEMPLATE_TITLE__"
	TokenMovieGrid   = "__TEMPLATE_MOVIE_GRID__"
	TokenCurrentYear = "__CURRENT_YEAR__"
)

// Movie fragment tokens
const (
	TokenMovieTitle  = "__MOVIE_TITLE__"
	TokenMovieYear   = "__MOVIE_YEAR__"
	TokenMovieRating = "__MOVIE_RATING__"
	TokenMoviePoster = "__MOVIE_POSTER__"
)

const posterPlaceholder = `<div class="poster-placeholder">No poster</div>`

//go:embed templates/*.html
var builtinTemplates embed.FS

// Options configures a Generator
type Options struct {
	Title         string // Page title
	Output        string // Output HTML path
	PageTemplate  string // Page template path, empty for built-in
	MovieTemplate string // Movie fragment path, empty for built-in
}

// Generator writes the catalog as a static HTML page
type Generator struct {
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// NewGenerator creates a new site generator
func NewGenerator(opts Options, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Output == "" {
		opts.Output = "index.html"
	}
	return &Generator{opts: opts, logger: logger, now: time.Now}
}

// Generate renders movies and writes the page, returning its path
func (g *Generator) Generate(movies []domain.Movie) (string, error) {
	if len(movies) == 0 {
		return "", domain.ErrEmptyCatalog
	}

	page, err := g.Render(movies)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(g.opts.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(g.opts.Output, []byte(page), 0644); err != nil {
		return "", fmt.Errorf("failed to write website: %w", err)
	}

	g.logger.Info("website generated", "path", g.opts.Output, "movies", len(movies))
	return g.opts.Output, nil
}

// Render composes the page without writing it
func (g *Generator) Render(movies []domain.Movie) (string, error) {
	pageTmpl, err := loadTemplate(g.opts.PageTemplate, "templates/page.html")
	if err != nil {
		return "", err
	}
	movieTmpl, err := loadTemplate(g.opts.MovieTemplate, "templates/movie.html")
	if err != nil {
		return "", err
	}

	var grid strings.Builder
	for _, m := range movies {
		grid.WriteString(RenderMovie(movieTmpl, m))
		grid.WriteByte('\n')
	}

	r := strings.NewReplacer(
		TokenPageTitle, html.EscapeString(g.opts.Title),
		TokenMovieGrid, strings.TrimRight(grid.String(), "\n"),
		TokenCurrentYear, strconv.Itoa(g.now().Year()),
	)
	return r.Replace(pageTmpl), nil
}

// RenderMovie fills one movie fragment
func RenderMovie(tmpl string, m domain.Movie) string {
	r := strings.NewReplacer(
		TokenMovieTitle, html.EscapeString(m.Title),
		TokenMovieYear, strconv.Itoa(m.Year),
		TokenMovieRating, strconv.FormatFloat(m.Rating, 'f', 1, 64),
		TokenMoviePoster, posterBlock(m),
	)
	return strings.TrimRight(r.Replace(tmpl), "\n")
}

func posterBlock(m domain.Movie) string {
	if !m.HasPoster() {
		return posterPlaceholder
	}
	return fmt.Sprintf(`<img class="movie-poster" src="%s" alt="%s">`,
		html.EscapeString(m.Poster), html.EscapeString(m.Title))
}

// loadTemplate reads path, or the built-in template when path is empty
func loadTemplate(path, builtin string) (string, error) {
	if path == "" {
		data, err := builtinTemplates.ReadFile(builtin)
		if err != nil {
			return "", fmt.Errorf("failed to read built-in template: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	return string(data), nil
}
