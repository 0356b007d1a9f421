package tui

import (
	"testing"
	"time"

	"github.com/quantdeck/quantdeck/internal/apiclient"
	"github.com/quantdeck/quantdeck/internal/model"
	"github.com/quantdeck/quantdeck/internal/screener"
)

func newTestModel() *DashboardModel {
	client := apiclient.New("http://127.0.0.1:1")
	return NewDashboardModel(client, time.Second, model.DefaultPageSize)
}

func TestNewDashboardModel_RegistersDefaultDecks(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	if got := len(m.decks); got != 4 {
		t.Fatalf("deck count = %d, want 4", got)
	}

	for _, typeID := range []string{"volindex", "pulse", "movers", "screener"} {
		state, ok := m.deckStates[typeID]
		if !ok {
			t.Fatalf("no deck state registered for %q", typeID)
		}
		if state.Interval <= 0 {
			t.Fatalf("deck %q interval = %v, want > 0", typeID, state.Interval)
		}
	}
}

func TestDeckTick_SkipsWhenFetchInFlight(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	deck := m.deckByTypeID("volindex").(*VolIndexDeck)

	_, cmd := m.handleDeckTick(DeckTickMsg{DeckTypeID: "volindex", At: time.Now()})
	if !deck.Loading() {
		t.Fatal("tick should start a fetch")
	}
	if cmd == nil {
		t.Fatal("tick should produce a fetch command")
	}
	if got := deck.loader.Generation(); got != 1 {
		t.Fatalf("generation = %d, want 1", got)
	}

	// A second scheduled tick while the fetch is outstanding only
	// reschedules; it must not supersede the running fetch.
	_, _ = m.handleDeckTick(DeckTickMsg{DeckTypeID: "volindex", At: time.Now()})
	if got := deck.loader.Generation(); got != 1 {
		t.Fatalf("generation after skipped tick = %d, want still 1", got)
	}
}

func TestDeckTick_PausedDeckDoesNotFetch(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	m.deckStates["movers"].Paused = true
	deck := m.deckByTypeID("movers").(*MoversDeck)

	_, _ = m.handleDeckTick(DeckTickMsg{DeckTypeID: "movers", At: time.Now()})
	if deck.Loading() {
		t.Fatal("paused deck should not start a fetch")
	}
}

func TestRefreshTick_SupersedesInFlightFetch(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	deck := m.deckByTypeID("screener").(*ScreenerDeck)

	_, _ = m.handleDeckTick(DeckTickMsg{DeckTypeID: "screener", At: time.Now()})
	if got := deck.loader.Generation(); got != 1 {
		t.Fatalf("generation = %d, want 1", got)
	}

	// A refresh while the fetch is outstanding must start the forced
	// re-request immediately, not wait out the interval.
	deck.Refresh()
	_, cmd := m.handleDeckTick(DeckTickMsg{DeckTypeID: "screener", At: time.Now(), Immediate: true})
	if got := deck.loader.Generation(); got != 2 {
		t.Fatalf("generation after refresh tick = %d, want 2", got)
	}
	if cmd == nil {
		t.Fatal("refresh tick should produce a fetch command")
	}
}

func TestRefreshTick_DoesNotScheduleSuccessor(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	state := m.deckStates["movers"]
	state.Paused = true

	// On a paused deck a refresh tick does nothing at all: no fetch and, as
	// for every refresh tick, no follow-up in the tick chain.
	_, cmd := m.handleDeckTick(DeckTickMsg{DeckTypeID: "movers", At: time.Now(), Immediate: true})
	if cmd != nil {
		t.Fatal("refresh tick must not extend the scheduled tick chain")
	}

	// A scheduled tick on the same paused deck still reschedules itself.
	_, cmd = m.handleDeckTick(DeckTickMsg{DeckTypeID: "movers", At: time.Now()})
	if cmd == nil {
		t.Fatal("scheduled tick should reschedule")
	}
}

func TestDeckData_SupersededResultIsIgnored(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	deck := m.deckByTypeID("volindex").(*VolIndexDeck)
	state := m.deckStates["volindex"]

	// Start two fetch generations; the first is now stale.
	deck.FetchCmd(m.client)
	deck.FetchCmd(m.client)

	staleRows := []model.Row{{"ts": "x", "value": 1.0}}
	_, _ = m.handleDeckData(DeckDataMsg{DeckTypeID: "volindex", Gen: 1, Rows: staleRows})

	if deck.loader.State().HasData {
		t.Fatal("stale generation data should not be committed")
	}
	if state.LastError != "" {
		t.Fatalf("LastError = %q, want empty after discarded result", state.LastError)
	}

	freshRows := []model.Row{{"ts": "y", "value": 2.0}}
	_, _ = m.handleDeckData(DeckDataMsg{DeckTypeID: "volindex", Gen: 2, Rows: freshRows})

	st := deck.loader.State()
	if !st.HasData || len(st.Data) != 1 {
		t.Fatalf("fresh data not committed: %+v", st)
	}
	if deck.Loading() {
		t.Fatal("loader should settle after commit")
	}
	if !state.LastTickOK {
		t.Fatal("LastTickOK should be set after a successful commit")
	}
}

func TestDeckData_ErrorBookkeeping(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	deck := m.deckByTypeID("pulse").(*PulseDeck)
	state := m.deckStates["pulse"]

	deck.FetchCmd(m.client)

	_, _ = m.handleDeckData(DeckDataMsg{
		DeckTypeID: "pulse",
		Gen:        1,
		Err:        &apiclient.StatusError{Status: 500},
	})

	if state.LastError == "" {
		t.Fatal("LastError should be set for a committed failure")
	}
	if state.ConsecutiveErrs != 1 {
		t.Fatalf("ConsecutiveErrs = %d, want 1", state.ConsecutiveErrs)
	}
}

func TestRefreshKeepsScreenerStateAndChangesIdentity(t *testing.T) {
	t.Parallel()

	deck := NewScreenerDeck(25)
	deck.engine.Filters.SetMin(model.FieldVolume, 500)
	deck.engine.Page.Page = 2
	deck.engine.Sort = screener.SortSpec{Field: "ticker", Dir: screener.Asc}

	client := apiclient.New("http://127.0.0.1:1")
	deck.FetchCmd(client)

	deck.Refresh()
	deck.FetchCmd(client)

	if deck.nonce != 1 {
		t.Fatalf("nonce = %d, want 1 after refresh", deck.nonce)
	}
	if got := deck.engine.Filters.Min[model.FieldVolume]; got != 500 {
		t.Fatalf("min volume filter = %v, want preserved 500", got)
	}
	if deck.engine.Page.Page != 2 {
		t.Fatalf("page = %d, want preserved 2", deck.engine.Page.Page)
	}
	if deck.engine.Sort.Field != "ticker" {
		t.Fatalf("sort field = %q, want preserved ticker", deck.engine.Sort.Field)
	}
}
