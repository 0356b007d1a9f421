package tui

import "github.com/charmbracelet/lipgloss"

// Skin colors. InitializeSkin may override these from a yaml skin file
// before the program starts.
var (
	ColorNavy   = lipgloss.Color("17")
	ColorWhite  = lipgloss.Color("15")
	ColorGray   = lipgloss.Color("245")
	ColorAccent = lipgloss.Color("39")
	ColorGain   = lipgloss.Color("10")
	ColorLoss   = lipgloss.Color("9")
	ColorWarn   = lipgloss.Color("208")
)

var (
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray)

	activeSectionStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent)

	deckTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorLoss)

	badgeStyle = lipgloss.NewStyle().
			Foreground(ColorWarn)

	gainStyle = lipgloss.NewStyle().Foreground(ColorGain)
	lossStyle = lipgloss.NewStyle().Foreground(ColorLoss)

	statusBarStyle = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite)
)

// applySkinColors rebuilds the derived styles after a skin override.
func applySkinColors() {
	sectionStyle = sectionStyle.BorderForeground(ColorGray)
	activeSectionStyle = activeSectionStyle.BorderForeground(ColorAccent)
	deckTitleStyle = deckTitleStyle.Foreground(ColorWhite)
	helpStyle = helpStyle.Foreground(ColorGray)
	errorStyle = errorStyle.Foreground(ColorLoss)
	badgeStyle = badgeStyle.Foreground(ColorWarn)
	gainStyle = gainStyle.Foreground(ColorGain)
	lossStyle = lossStyle.Foreground(ColorLoss)
	statusBarStyle = statusBarStyle.Background(ColorNavy).Foreground(ColorWhite)
}
