package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tildaslashalef/diffscope/internal/detect"
)

// Theme represents the color theme for the TUI
type Theme struct {
	Primary lipgloss.AdaptiveColor
	Accent  lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
	Subtle  lipgloss.AdaptiveColor
	Border  lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	TextDim lipgloss.AdaptiveColor
	Surface lipgloss.AdaptiveColor
}

// GruvboxTheme creates a new Gruvbox-inspired theme
func GruvboxTheme() Theme {
	return Theme{
		Primary: lipgloss.AdaptiveColor{Light: "#98971a", Dark: "#b8bb26"},
		Accent:  lipgloss.AdaptiveColor{Light: "#d3869b", Dark: "#d3869b"},
		Success: lipgloss.AdaptiveColor{Light: "#98971a", Dark: "#b8bb26"},
		Warning: lipgloss.AdaptiveColor{Light: "#d79921", Dark: "#fabd2f"},
		Error:   lipgloss.AdaptiveColor{Light: "#cc241d", Dark: "#fb4934"},
		Info:    lipgloss.AdaptiveColor{Light: "#458588", Dark: "#83a598"},
		Subtle:  lipgloss.AdaptiveColor{Light: "#928374", Dark: "#7c6f64"},
		Border:  lipgloss.AdaptiveColor{Light: "#bdae93", Dark: "#504945"},
		Text:    lipgloss.AdaptiveColor{Light: "#3c3836", Dark: "#ebdbb2"},
		TextDim: lipgloss.AdaptiveColor{Light: "#7c6f64", Dark: "#a89984"},
		Surface: lipgloss.AdaptiveColor{Light: "#d5c4a1", Dark: "#3c3836"},
	}
}

// Styles holds the rendered lipgloss styles used by the views
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Badge     lipgloss.Style
	Critical  lipgloss.Style
	Major     lipgloss.Style
	Minor     lipgloss.Style
	Info      lipgloss.Style
	Subtle    lipgloss.Style
	Viewport  lipgloss.Style
}

// DefaultStyles builds the styles from the Gruvbox theme
func DefaultStyles() Styles {
	theme := GruvboxTheme()

	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Foreground(theme.Text).
			Background(theme.Surface).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Padding(0, 1),
		Badge:    badge,
		Critical: badge.Foreground(lipgloss.Color("#1d2021")).Background(theme.Error),
		Major:    badge.Foreground(lipgloss.Color("#1d2021")).Background(theme.Warning),
		Minor:    badge.Foreground(lipgloss.Color("#1d2021")).Background(theme.Info),
		Info:     badge.Foreground(lipgloss.Color("#1d2021")).Background(theme.Subtle),
		Subtle:   lipgloss.NewStyle().Foreground(theme.Subtle),
		Viewport: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}

// SeverityBadge renders a colored severity badge
func (s Styles) SeverityBadge(severity detect.Severity) string {
	switch severity {
	case detect.SeverityCritical:
		return s.Critical.Render("CRITICAL")
	case detect.SeverityMajor:
		return s.Major.Render("MAJOR")
	case detect.SeverityMinor:
		return s.Minor.Render("MINOR")
	default:
		return s.Info.Render("INFO")
	}
}
