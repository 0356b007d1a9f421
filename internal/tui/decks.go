package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quantdeck/quantdeck/internal/apiclient"
	"github.com/quantdeck/quantdeck/internal/model"
)

// Deck is a pluggable dashboard deck.
type Deck interface {
	ID() string
	Title() string
	Render(ctx ViewContext, width, height int, active bool) string
	ContentLines(ctx ViewContext) int
}

// TickableDeck extends Deck with an independent fetch lifecycle. Each
// tickable deck owns a resource loader; the dashboard drives its tick cycle,
// pause, and error state.
type TickableDeck interface {
	Deck
	TypeID() string                            // dedup key (e.g. "screener")
	DefaultInterval() time.Duration            // deck's preferred tick interval
	FetchCmd(client *apiclient.Client) tea.Cmd // begins a generation, returns DeckDataMsg
	ApplyData(msg DeckDataMsg) bool            // commit; false when superseded/cancelled
	Refresh()                                  // bump the refresh nonce (new request identity)
	Loading() bool
}

// ScreenerControls is implemented by decks with filter/sort/paginate state.
// The dashboard routes the relevant key presses to the active deck when it
// implements this.
type ScreenerControls interface {
	NextPage()
	PrevPage()
	CyclePageSize()
	FlipSort()
	ToggleSortColumn(idx int)
	CycleMinVolume()
	SetQuery(q string)
	ResetView()
}

// DeckTickMsg fires independently for each deck type. Immediate marks a
// one-shot tick injected by a manual refresh: it supersedes any in-flight
// fetch and does not continue the scheduled tick chain.
type DeckTickMsg struct {
	DeckTypeID string
	At         time.Time
	Immediate  bool
}

// DeckDataMsg carries one fetch result back to a deck, tagged with the
// loader generation that produced it.
type DeckDataMsg struct {
	DeckTypeID string
	Gen        uint64
	Rows       []model.Row
	Err        error
}
