package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/moviedb/internal/cli/styles"
)

// spin runs fn while animating a spinner on interactive terminals
func (a *App) spin(label string, fn func() error) error {
	if !a.interactive {
		return fn()
	}

	frames := styles.SpinnerFrames
	clearLine := "\r" + strings.Repeat(" ", len(label)+8) + "\r"
	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		frame := 0
		fmt.Fprintf(a.out, "\r%s %s...", a.paint(styles.AccentStyle, frames[frame]), label)

		ticker := time.NewTicker(styles.SpinnerInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				fmt.Fprint(a.out, clearLine)
				return
			case <-ticker.C:
				frame++
				fmt.Fprintf(a.out, "\r%s %s...", a.paint(styles.AccentStyle, frames[frame%len(frames)]), label)
			}
		}
	}()

	err := fn()
	close(done)
	<-stopped
	return err
}
