package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case DeckTickMsg:
		return m.handleDeckTick(msg)

	case DeckDataMsg:
		return m.handleDeckData(msg)

	case SpinnerTickMsg:
		return m.handleSpinnerTick()
	}

	return m, nil
}

// handleDeckTick starts a fetch for one deck type. Only scheduled ticks
// continue the tick chain; a refresh-injected tick is a one-shot, otherwise
// every refresh would spawn another parallel chain. Paused decks never
// fetch; an in-flight fetch defers scheduled ticks but is superseded by a
// refresh (Begin cancels it).
func (m *DashboardModel) handleDeckTick(msg DeckTickMsg) (tea.Model, tea.Cmd) {
	state, ok := m.deckStates[msg.DeckTypeID]
	if !ok {
		return m, nil
	}
	deck := m.deckByTypeID(msg.DeckTypeID)
	if deck == nil {
		return m, nil
	}

	var next tea.Cmd
	if !msg.Immediate {
		next = m.scheduleDeckTick(state)
	}

	if state.Paused || (deck.Loading() && !msg.Immediate) {
		return m, next
	}

	return m, tea.Batch(
		deck.FetchCmd(m.client),
		next,
		m.startSpinnerIfNeeded(),
	)
}

// handleDeckData commits one fetch result. Superseded or cancelled results
// are discarded by the deck's loader and leave state untouched.
func (m *DashboardModel) handleDeckData(msg DeckDataMsg) (tea.Model, tea.Cmd) {
	state, ok := m.deckStates[msg.DeckTypeID]
	if !ok {
		return m, nil
	}
	deck := m.deckByTypeID(msg.DeckTypeID)
	if deck == nil {
		return m, nil
	}

	if !deck.ApplyData(msg) {
		return m, nil
	}

	if msg.Err != nil {
		state.LastError = userFacingError(msg.Err)
		state.LastErrorAt = time.Now()
		state.LastTickOK = false
		state.ConsecutiveErrs++
	} else {
		state.LastError = ""
		state.LastTickOK = true
		state.LastTickAt = time.Now()
		state.ConsecutiveErrs = 0
	}
	return m, nil
}

// refreshDeckCmd triggers an immediate out-of-cycle tick for one deck type.
func refreshDeckCmd(typeID string) tea.Cmd {
	return func() tea.Msg {
		return DeckTickMsg{DeckTypeID: typeID, At: time.Now(), Immediate: true}
	}
}

func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := DefaultKeyMap()

	// Filter input swallows everything except its own terminators.
	if m.filterActive {
		return m.handleFilterInput(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit), key.Matches(msg, keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, keys.NextDeck):
		if len(m.decks) > 0 {
			m.activeDeckIdx = (m.activeDeckIdx + 1) % len(m.decks)
		}
		return m, nil

	case key.Matches(msg, keys.PrevDeck):
		if len(m.decks) > 0 {
			m.activeDeckIdx = (m.activeDeckIdx - 1 + len(m.decks)) % len(m.decks)
		}
		return m, nil

	case key.Matches(msg, keys.Refresh):
		// A manual refresh forces a new request identity but leaves the
		// deck's filter/sort/page state alone.
		if td, ok := m.activeDeck().(TickableDeck); ok {
			td.Refresh()
			return m, refreshDeckCmd(td.TypeID())
		}
		return m, nil

	case key.Matches(msg, keys.Pause):
		if td, ok := m.activeDeck().(TickableDeck); ok {
			if state, ok := m.deckStates[td.TypeID()]; ok {
				state.Paused = !state.Paused
			}
		}
		return m, nil

	case key.Matches(msg, keys.Filter):
		if _, ok := m.activeDeck().(ScreenerControls); ok {
			m.filterActive = true
			m.activeSection = SectionFilter
			m.filterInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	// Keys below act on the focused deck's screener state.
	sc, ok := m.activeDeck().(ScreenerControls)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.PrevPage):
		sc.PrevPage()
	case key.Matches(msg, keys.NextPage):
		sc.NextPage()
	case key.Matches(msg, keys.PageSize):
		sc.CyclePageSize()
	case key.Matches(msg, keys.SortFlip):
		sc.FlipSort()
	case key.Matches(msg, keys.MinVolume):
		sc.CycleMinVolume()
	case key.Matches(msg, keys.Reset):
		sc.ResetView()
		m.filterInput.SetValue("")
	default:
		// Digits 1..9 toggle sort on the Nth column.
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			sc.ToggleSortColumn(int(s[0] - '1'))
		}
	}
	return m, nil
}

// handleFilterInput routes key presses into the screener filter text input.
func (m *DashboardModel) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sc, _ := m.activeDeck().(ScreenerControls)

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "escape", "esc":
		m.filterActive = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.activeSection = SectionDecks
		if sc != nil {
			sc.SetQuery("")
		}
		return m, nil
	case "enter":
		m.filterActive = false
		m.filterInput.Blur()
		m.activeSection = SectionDecks
		return m, nil
	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		if sc != nil {
			sc.SetQuery(m.filterInput.Value())
		}
		return m, cmd
	}
}
