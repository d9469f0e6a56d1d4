package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/moviedb/internal/domain"
)

const (
	// DefaultBaseURL is the public OMDb endpoint
	DefaultBaseURL = "https://www.omdbapi.com/"

	defaultTimeout = 10 * time.Second
	userAgent      = "moviedb/1.0"
)

// Client implements domain.MovieFetcher for the OMDb API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new OMDb client. An empty apiKey is accepted here and
// reported as domain.ErrMissingAPIKey on each Fetch, so only enrichment fails.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch looks up a movie by title
func (c *Client) Fetch(ctx context.Context, title string) (domain.Movie, error) {
	if c.apiKey == "" {
		return domain.Movie{}, domain.ErrMissingAPIKey
	}

	query := url.Values{}
	query.Set("apikey", c.apiKey)
	query.Set("t", title)

	body, err := c.doRequest(ctx, query)
	if err != nil {
		return domain.Movie{}, err
	}

	var resp TitleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("omdb JSON parse error", "error", err, "bodyLen", len(body))
		return domain.Movie{}, fmt.Errorf("%w: %v", domain.ErrBadResponse, err)
	}

	if !resp.OK() {
		if strings.Contains(strings.ToLower(resp.Error), "not found") {
			return domain.Movie{}, domain.ErrMovieNotFound
		}
		return domain.Movie{}, fmt.Errorf("%w: %s", domain.ErrUpstream, resp.Error)
	}

	movie := MapMovie(resp)
	if movie.Title == "" {
		return domain.Movie{}, fmt.Errorf("%w: response has no title", domain.ErrBadResponse)
	}

	c.logger.Info("omdb lookup", "query", title, "title", movie.Title, "year", movie.Year)
	return movie, nil
}

// doRequest performs the GET and maps transport failures to domain errors
func (c *Client) doRequest(ctx context.Context, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("omdb request", "url", c.baseURL, "title", query.Get("t"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("omdb request failed", "error", err)
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("omdb request error", "status", resp.StatusCode, "body", string(body))
		if msg := errorMessage(body); msg != "" {
			return nil, fmt.Errorf("%w: %s (status %d)", domain.ErrUpstream, msg, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	return body, nil
}

// classifyTransportError separates timeouts from other connection failures.
// Cancellation by the caller is passed through untouched.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrConnection, err)
}

// errorMessage extracts the "Error" field of an error body, if any
func errorMessage(body []byte) string {
	var resp TitleResponse
	if json.Unmarshal(body, &resp) != nil {
		return ""
	}
	return resp.Error
}
