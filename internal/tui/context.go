package tui

// ViewContext provides read-only context to decks for rendering, replacing
// direct access to *DashboardModel.
type ViewContext struct {
	ContentWidth  int
	ContentHeight int
	DeckPaused    bool   // per-deck pause state (set per render)
	DeckLastError string // per-deck last user-facing failure (set per render)
	DeckLoading   bool   // true when the deck's fetch is in flight
}
