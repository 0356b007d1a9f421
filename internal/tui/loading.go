package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// renderLoadingPlaceholder fills an empty deck while its first fetch is in
// flight. The frame is derived from the wall clock so the spinner advances
// on every re-render.
func renderLoadingPlaceholder(width, height int) string {
	frame := spinnerFrames[time.Now().UnixMilli()/int64(spinnerInterval/time.Millisecond)%int64(len(spinnerFrames))]

	text := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true).
		Render(frame + " Fetching market data...")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// SpinnerTickMsg triggers a re-render while a fetch is outstanding.
type SpinnerTickMsg struct{}

func (m *DashboardModel) handleSpinnerTick() (tea.Model, tea.Cmd) {
	return m, m.startSpinnerIfNeeded()
}

// anyDeckLoading reports whether any deck's loader has a fetch in flight.
func (m *DashboardModel) anyDeckLoading() bool {
	for _, d := range m.decks {
		if td, ok := d.(TickableDeck); ok && td.Loading() {
			return true
		}
	}
	return false
}

// startSpinnerIfNeeded keeps spinner ticks flowing only while something is
// actually loading; once every loader settles the chain stops.
func (m *DashboardModel) startSpinnerIfNeeded() tea.Cmd {
	if !m.anyDeckLoading() {
		return nil
	}
	return tea.Tick(spinnerInterval, func(_ time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}
