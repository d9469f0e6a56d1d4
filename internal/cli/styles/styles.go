package styles

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Gold      = lipgloss.Color("#E5A00D")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
	Green     = lipgloss.Color("#10B981")
	Red       = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)

	HeadingStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Gold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	MenuKeyStyle = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)

	MenuLabelStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// Spinner shown while waiting on the network
var (
	SpinnerFrames   = spinner.Dot.Frames
	SpinnerInterval = spinner.Dot.FPS
)
