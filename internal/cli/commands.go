package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mmcdole/moviedb/internal/cli/styles"
	"github.com/mmcdole/moviedb/internal/domain"
)

// maxSuggestions caps "did you mean" lists after an empty search
const maxSuggestions = 3

func (a *App) listMovies(ctx context.Context) error {
	catalog := a.storage.List()
	if catalog.IsEmpty() {
		a.println("No movies in the database.")
		return nil
	}

	a.println()
	a.println(a.paint(styles.HeadingStyle, fmt.Sprintf("%d movies in total:", catalog.Len())))
	a.println()
	for _, m := range catalog.Movies() {
		a.println(formatMovie(m))
	}
	a.println()
	return nil
}

func (a *App) addMovie(ctx context.Context) error {
	title, ok, err := a.readTitle(ctx, "Enter new movie name: ")
	if err != nil || !ok {
		return err
	}
	if a.storage.List().Has(title) {
		a.fail("Movie '%s' already exists!", title)
		return nil
	}

	if a.fetcher != nil {
		return a.addFromService(ctx, title)
	}

	input, err := a.prompt(ctx, "Enter release year: ")
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		a.fail("Error: Invalid input for year.")
		return nil
	}

	rating, ok, err := a.readRating(ctx, "Enter rating (0-10): ")
	if err != nil || !ok {
		return err
	}

	a.save(title, func() error { return a.storage.Add(title, year, rating, "") },
		"Movie '%s' successfully added", title)
	return nil
}

// addFromService takes year, rating and poster from the metadata service
func (a *App) addFromService(ctx context.Context, title string) error {
	var movie domain.Movie
	err := a.spin(fmt.Sprintf("Looking up '%s'", title), func() error {
		var err error
		movie, err = a.fetcher.Fetch(ctx, title)
		return err
	})
	if err != nil {
		a.logger.Warn("metadata lookup failed", "title", title, "error", err)
		a.fail("%s", lookupErrorMessage(title, err))
		return nil
	}

	if movie.Title != title && a.storage.List().Has(movie.Title) {
		a.fail("Movie '%s' already exists!", movie.Title)
		return nil
	}

	a.save(movie.Title, func() error {
		return a.storage.Add(movie.Title, movie.Year, domain.ClampRating(movie.Rating), movie.Poster)
	}, "Movie '%s' successfully added", movie.Title)
	return nil
}

// lookupErrorMessage maps metadata failures to what the user sees
func lookupErrorMessage(title string, err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingAPIKey):
		return "Error: No API key configured. Set OMDB_API_KEY in your environment or .env file."
	case errors.Is(err, domain.ErrMovieNotFound):
		return fmt.Sprintf("Movie '%s' not found.", title)
	case errors.Is(err, domain.ErrTimeout):
		return "Error: The movie service took too long to respond. Please try again later."
	case errors.Is(err, domain.ErrConnection):
		return "Error: Could not connect to the movie service. Please check your internet connection."
	case errors.Is(err, domain.ErrUpstream):
		return fmt.Sprintf("Error: The movie service returned an error: %v", err)
	case errors.Is(err, domain.ErrBadResponse):
		return "Error: The movie service sent an unexpected response."
	case errors.Is(err, context.Canceled):
		return "Lookup cancelled."
	default:
		return fmt.Sprintf("Error: Could not fetch movie data: %v", err)
	}
}

func (a *App) deleteMovie(ctx context.Context) error {
	title, ok, err := a.readTitle(ctx, "Enter movie name to delete: ")
	if err != nil || !ok {
		return err
	}
	if !a.storage.List().Has(title) {
		a.notFound(title)
		return nil
	}

	a.save(title, func() error { return a.storage.Delete(title) }, "Movie '%s' deleted!", title)
	return nil
}

func (a *App) updateMovie(ctx context.Context) error {
	title, ok, err := a.readTitle(ctx, "Enter movie name to update: ")
	if err != nil || !ok {
		return err
	}
	if !a.storage.List().Has(title) {
		a.notFound(title)
		return nil
	}

	rating, ok, err := a.readRating(ctx, "Enter new rating (0-10): ")
	if err != nil || !ok {
		return err
	}

	a.save(title, func() error { return a.storage.Update(title, rating) },
		"Movie '%s' updated successfully!", title)
	return nil
}

func (a *App) movieStats(ctx context.Context) error {
	stats, err := a.catalog.Stats()
	if errors.Is(err, domain.ErrEmptyCatalog) {
		a.println("No movies in the database.")
		return nil
	}
	if err != nil {
		return err
	}

	a.println()
	a.printf("Average rating: %.2f\n", stats.Average)
	a.printf("Median rating: %.2f\n", stats.Median)
	a.printf("Best movie: %s (%s)\n", stats.Best.Title, formatRating(stats.Best.Rating))
	a.printf("Worst movie: %s (%s)\n", stats.Worst.Title, formatRating(stats.Worst.Rating))
	a.println()
	return nil
}

func (a *App) randomMovie(ctx context.Context) error {
	m, err := a.catalog.Random()
	if errors.Is(err, domain.ErrEmptyCatalog) {
		a.println("No movies in the database.")
		return nil
	}
	if err != nil {
		return err
	}

	a.println()
	a.printf("Tonight you will watch: %s (%d) - Rating: %s\n", m.Title, m.Year, formatRating(m.Rating))
	a.println()
	return nil
}

func (a *App) searchMovies(ctx context.Context) error {
	query, err := a.prompt(ctx, "Enter search term: ")
	if err != nil {
		return err
	}

	results := a.catalog.Search(query)
	if len(results) == 0 {
		a.println()
		a.println("No movies found.")
		if suggestions := a.catalog.Suggest(query, maxSuggestions); len(suggestions) > 0 {
			a.hint("Did you mean: %s?", strings.Join(suggestions, ", "))
		}
		a.println()
		return nil
	}

	a.println()
	a.println(a.paint(styles.HeadingStyle, "Found movies:"))
	for _, m := range results {
		a.println(formatMovie(m))
	}
	a.println()
	return nil
}

func (a *App) moviesByRating(ctx context.Context) error {
	movies := a.catalog.SortedByRating()
	if len(movies) == 0 {
		a.println("No movies in the database.")
		return nil
	}

	a.println()
	a.println(a.paint(styles.HeadingStyle, "Movies sorted by rating (descending):"))
	for _, m := range movies {
		a.printf("%s: %s\n", m.Title, formatRating(m.Rating))
	}
	a.println()
	return nil
}

func (a *App) generateWebsite(ctx context.Context) error {
	movies := a.storage.List().Movies()
	if len(movies) == 0 {
		a.println("No movies in the database.")
		return nil
	}

	path, err := a.site.Generate(movies)
	if err != nil {
		a.logger.Error("website generation failed", "error", err)
		a.fail("Error: Could not generate website: %v", err)
		return nil
	}
	a.succeed("Website was generated successfully: %s", path)

	if a.opener == nil {
		return nil
	}
	answer, err := a.prompt(ctx, "Open in browser? (y/n): ")
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		if err := a.opener.Open(path); err != nil {
			a.logger.Error("browser launch failed", "path", path, "error", err)
			a.fail("Error: Could not open browser: %v", err)
		}
	}
	return nil
}

// === Input helpers ===

// readTitle prompts for a non-blank title. ok is false after a
// validation message was printed.
func (a *App) readTitle(ctx context.Context, label string) (title string, ok bool, err error) {
	input, err := a.prompt(ctx, label)
	if err != nil {
		return "", false, err
	}
	title = strings.TrimSpace(input)
	if title == "" {
		a.fail("Error: Movie title cannot be empty.")
		return "", false, nil
	}
	return title, true, nil
}

// readRating prompts for a rating in [0, 10]
func (a *App) readRating(ctx context.Context, label string) (rating float64, ok bool, err error) {
	input, err := a.prompt(ctx, label)
	if err != nil {
		return 0, false, err
	}
	rating, err = strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		a.fail("Error: Invalid input for rating.")
		return 0, false, nil
	}
	if !domain.ValidRating(rating) {
		a.fail("Error: Rating must be between %g and %g.", domain.MinRating, domain.MaxRating)
		return 0, false, nil
	}
	return rating, true, nil
}

// notFound reports a missing title with a fuzzy hint when one exists
func (a *App) notFound(title string) {
	a.fail("Movie '%s' does not exist.", title)
	if closest, ok := a.catalog.Closest(title); ok {
		a.hint("Did you mean '%s'?", closest)
	}
}

// save runs a storage write, reporting success or the write error
func (a *App) save(title string, write func() error, format string, args ...any) {
	if err := write(); err != nil {
		a.logger.Error("catalog write failed", "title", title, "error", err)
		a.fail("Error: Could not save movie '%s': %v", title, err)
		return
	}
	a.succeed(format, args...)
}

// === Formatting ===

func formatMovie(m domain.Movie) string {
	return fmt.Sprintf("%s (%d): %s", m.Title, m.Year, formatRating(m.Rating))
}

// formatRating prints whole ratings with one decimal ("8.0") and
// others with their shortest exact form ("7.25")
func formatRating(r float64) string {
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 1, 64)
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
