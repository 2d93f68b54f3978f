// Package display renders boards, standings and analysis reports for the
// terminal.
package display

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/camelup/internal/race"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	TileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))
)

var camelStyles = map[string]lipgloss.Style{
	race.Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	race.Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4D96FF")).Bold(true),
	race.Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
	race.Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true),
	race.Purple: lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true),
	race.Black:  lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Bold(true),
	race.White:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
}

// DetectProfile configures lipgloss for the current terminal's color
// support.
func DetectProfile() {
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

// CamelName returns the camel's name in its racing color.
func CamelName(name string) string {
	if style, ok := camelStyles[name]; ok {
		return style.Render(name)
	}
	return name
}
