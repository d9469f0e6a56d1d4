package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Launcher opens files or URLs in a browser: the configured command if set,
// otherwise the system default handler.
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments for the browser
	logger  *slog.Logger
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		logger:  logger,
	}
}

// Open opens target, which may be a local file path or a URL.
// Local paths are made absolute so browsers resolve them.
func (l *Launcher) Open(target string) error {
	if abs, err := filepath.Abs(target); err == nil && !isURL(target) {
		target = abs
	}

	if l.command != "" {
		return l.launchConfigured(target)
	}
	return l.launchDefault(target)
}

// launchConfigured opens the target with the configured browser
func (l *Launcher) launchConfigured(target string) error {
	if _, err := exec.LookPath(l.command); err != nil {
		return fmt.Errorf("browser %q not found: %w", l.command, err)
	}

	args := append(append([]string{}, l.args...), target)
	l.logger.Info("launching browser", "command", l.command, "args", args)

	return exec.Command(l.command, args...).Start()
}

// launchDefault opens the target using the system default handler
func (l *Launcher) launchDefault(target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", target)
	default:
		// Linux and other Unix-like systems
		cmd = exec.Command("xdg-open", target)
	}

	l.logger.Info("launching with system default", "os", runtime.GOOS, "target", target)

	return cmd.Start()
}

func isURL(s string) bool {
	for _, prefix := range []string{"http://", "https://", "file://"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
