package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the dashboard: a two-up chart row, the movers deck, the
// screener, the filter bar when active, and the status line.
func (m *DashboardModel) View() string {
	if m.width < 40 || m.height < 15 {
		return "Terminal too small"
	}

	var sections []string

	chartRow := m.renderChartRow()
	sections = append(sections, chartRow)

	usedHeight := lipgloss.Height(chartRow)

	if deck := m.deckAt(2); deck != nil {
		h := deck.ContentLines(m.deckViewContext(deck)) + 3
		moversRow := deck.Render(m.deckViewContext(deck), m.width-2, h, m.activeDeckIdx == 2)
		sections = append(sections, moversRow)
		usedHeight += lipgloss.Height(moversRow)
	}

	reserved := 1 // status line
	if m.filterActive {
		reserved++
	}

	if deck := m.deckAt(3); deck != nil {
		remaining := m.height - usedHeight - reserved - 2
		if remaining < 6 {
			remaining = 6
		}
		sections = append(sections, deck.Render(m.deckViewContext(deck), m.width-2, remaining, m.activeDeckIdx == 3))
	}

	if m.filterActive {
		sections = append(sections, m.renderFilterBar())
	}
	sections = append(sections, m.renderStatusLine())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// deckAt returns the deck at idx, or nil.
func (m *DashboardModel) deckAt(idx int) Deck {
	if idx < 0 || idx >= len(m.decks) {
		return nil
	}
	return m.decks[idx]
}

// renderChartRow renders the vol index and pulse decks side by side.
func (m *DashboardModel) renderChartRow() string {
	left := m.deckAt(0)
	right := m.deckAt(1)
	if left == nil {
		return ""
	}

	colWidth := (m.width - 4) / 2
	rowHeight := left.ContentLines(m.deckViewContext(left)) + 3
	if right != nil {
		if h := right.ContentLines(m.deckViewContext(right)) + 3; h > rowHeight {
			rowHeight = h
		}
	}

	leftView := left.Render(m.deckViewContext(left), colWidth, rowHeight, m.activeDeckIdx == 0)
	if right == nil {
		return leftView
	}
	rightView := right.Render(m.deckViewContext(right), colWidth, rowHeight, m.activeDeckIdx == 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, leftView, rightView)
}

// renderFilterBar renders the screener filter input line.
func (m *DashboardModel) renderFilterBar() string {
	label := deckTitleStyle.Render("Filter: ")
	return label + m.filterInput.View()
}

// renderStatusLine renders the status/help line at the bottom of the screen.
func (m *DashboardModel) renderStatusLine() string {
	var deckName string
	if deck := m.activeDeck(); deck != nil {
		deckName = deck.Title()
	}

	left := " " + deckName
	right := m.client.BaseURL() + " "

	help := "tab: switch · r: refresh · /: filter · s: sort · ←/→: page · q: quit"
	if m.width < 100 {
		help = "tab · r · / · s · ←/→ · q"
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - lipgloss.Width(help) - 2
	if gap < 2 {
		gap = 2
	}
	line := fmt.Sprintf("%s%s%s%s%s", left, strings.Repeat(" ", gap/2), help, strings.Repeat(" ", gap-gap/2), right)

	return statusBarStyle.Width(m.width).Render(line)
}
