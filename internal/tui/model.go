package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quantdeck/quantdeck/internal/apiclient"
	"github.com/quantdeck/quantdeck/internal/model"
)

// Section represents different dashboard sections.
type Section int

const (
	SectionDecks  Section = iota // a deck is focused
	SectionFilter                // screener filter input
)

// FilterState holds the screener filter input state.
type FilterState struct {
	filterInput  textinput.Model
	filterActive bool
}

// NavigationState holds deck navigation state.
type NavigationState struct {
	activeSection Section
	activeDeckIdx int
	decks         []Deck
}

// DashboardModel represents the main TUI model.
type DashboardModel struct {
	FilterState
	NavigationState

	// Window dimensions
	width  int
	height int

	// Read primitives for the analytics API.
	client *apiclient.Client

	// Configuration
	updateInterval time.Duration

	// Per-deck-type tick/pause/error tracking.
	deckStates map[string]*DeckTypeState
}

// NewDashboardModel creates a new dashboard model with the default decks.
func NewDashboardModel(client *apiclient.Client, updateInterval time.Duration, pageSize int) *DashboardModel {
	if updateInterval <= 0 {
		updateInterval = model.DefaultUpdateInterval
	}

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter by ticker..."
	filterInput.CharLimit = 120

	m := &DashboardModel{
		FilterState: FilterState{
			filterInput: filterInput,
		},
		NavigationState: NavigationState{
			activeSection: SectionDecks,
		},
		client:         client,
		updateInterval: updateInterval,
		deckStates:     make(map[string]*DeckTypeState),
	}

	m.SetDecks([]Deck{
		NewVolIndexDeck(),
		NewPulseDeck(),
		NewMoversDeck(),
		NewScreenerDeck(pageSize),
	})

	return m
}

// SetDecks replaces decks and resets deck selection and tick state.
func (m *DashboardModel) SetDecks(decks []Deck) {
	m.decks = append([]Deck(nil), decks...)
	if m.activeDeckIdx >= len(m.decks) {
		m.activeDeckIdx = 0
	}

	m.deckStates = make(map[string]*DeckTypeState)
	for _, d := range m.decks {
		td, ok := d.(TickableDeck)
		if !ok {
			continue
		}
		interval := td.DefaultInterval()
		if interval <= 0 {
			interval = m.updateInterval
		}
		m.deckStates[td.TypeID()] = &DeckTypeState{
			TypeID:     td.TypeID(),
			Interval:   interval,
			LastTickOK: true,
		}
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	var cmds []tea.Cmd

	// Immediate first fetch for every tickable deck, then steady ticks.
	for _, d := range m.decks {
		if td, ok := d.(TickableDeck); ok {
			typeID := td.TypeID()
			cmds = append(cmds, func() tea.Msg {
				return DeckTickMsg{DeckTypeID: typeID, At: time.Now()}
			})
		}
	}

	return tea.Batch(cmds...)
}

// activeDeck returns the focused deck, or nil when there is none.
func (m *DashboardModel) activeDeck() Deck {
	if m.activeDeckIdx < 0 || m.activeDeckIdx >= len(m.decks) {
		return nil
	}
	return m.decks[m.activeDeckIdx]
}

// deckByTypeID finds a tickable deck by its type ID.
func (m *DashboardModel) deckByTypeID(typeID string) TickableDeck {
	for _, d := range m.decks {
		if td, ok := d.(TickableDeck); ok && td.TypeID() == typeID {
			return td
		}
	}
	return nil
}

// scheduleDeckTick returns the steady-state tick command for one deck type.
func (m *DashboardModel) scheduleDeckTick(state *DeckTypeState) tea.Cmd {
	typeID := state.TypeID
	return tea.Tick(state.Interval, func(t time.Time) tea.Msg {
		return DeckTickMsg{DeckTypeID: typeID, At: t}
	})
}

// viewContext builds a ViewContext snapshot for deck rendering.
func (m *DashboardModel) viewContext() ViewContext {
	return ViewContext{
		ContentWidth:  m.width,
		ContentHeight: m.height,
	}
}

// deckViewContext augments the base context with one deck's tick state.
func (m *DashboardModel) deckViewContext(d Deck) ViewContext {
	ctx := m.viewContext()
	td, ok := d.(TickableDeck)
	if !ok {
		return ctx
	}
	if state, ok := m.deckStates[td.TypeID()]; ok {
		ctx.DeckPaused = state.Paused
		ctx.DeckLastError = state.LastError
	}
	ctx.DeckLoading = td.Loading()
	return ctx
}
