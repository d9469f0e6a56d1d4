package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// SetupLogger returns a JSON logger appending to cfg.File. An empty file,
// "off" or "none" disables logging. Records never go to the console, which
// belongs to the menu.
func SetupLogger(cfg *LoggingConfig) (*slog.Logger, error) {
	path := strings.TrimSpace(cfg.File)
	switch strings.ToLower(path) {
	case "", "off", "none":
		return NullLogger(), nil
	}

	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)})
	return slog.New(handler).With("pid", os.Getpid()), nil
}

// expandHome resolves a leading "~/" against the user's home directory
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// parseLogLevel accepts slog level names ("debug", "WARN", "INFO+2") plus
// "warning". Anything else logs at info.
func parseLogLevel(level string) slog.Level {
	level = strings.TrimSpace(level)
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NullLogger returns a logger that discards all output
func NullLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
