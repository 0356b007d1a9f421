package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/quantdeck/quantdeck/internal/model"
	"github.com/quantdeck/quantdeck/internal/screener"
)

func screenerWithRows(n int) *ScreenerDeck {
	deck := NewScreenerDeck(25)
	rows := make([]model.Row, n)
	for i := range rows {
		rows[i] = model.Row{
			model.FieldTicker:      fmt.Sprintf("TK%03d", i),
			model.FieldQuestion:    fmt.Sprintf("Question %d?", i),
			model.FieldVolume:      float64(100 * (i + 1)),
			model.FieldLiquidity:   float64(50 * (i + 1)),
			model.FieldMidPrice:    0.5,
			model.FieldTradability: float64(i),
			model.FieldChurnRate:   0.1,
		}
	}
	deck.loader.Begin(context.Background())
	deck.ApplyData(DeckDataMsg{DeckTypeID: "screener", Gen: 1, Rows: rows})
	return deck
}

func TestScreenerDeck_PageClampingAfterFilter(t *testing.T) {
	t.Parallel()

	deck := screenerWithRows(47)
	deck.engine.Page.Page = 5
	deck.rebuildTable()

	if deck.lastResult.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2", deck.lastResult.TotalPages)
	}
	if deck.lastResult.Page != 2 {
		t.Fatalf("Page = %d, want clamped to 2", deck.lastResult.Page)
	}

	// A threshold filter that shrinks the set re-clamps automatically.
	deck.engine.Filters.SetMin(model.FieldVolume, 4000)
	deck.rebuildTable()
	if deck.lastResult.Page != 1 {
		t.Fatalf("Page after shrink = %d, want 1", deck.lastResult.Page)
	}
}

func TestScreenerDeck_QueryFiltersTickers(t *testing.T) {
	t.Parallel()

	deck := screenerWithRows(30)
	deck.SetQuery("tk00")

	if got := deck.lastResult.Total; got != 10 {
		t.Fatalf("filtered total = %d, want 10 (TK000..TK009)", got)
	}

	deck.SetQuery("")
	if got := deck.lastResult.Total; got != 30 {
		t.Fatalf("total after clearing query = %d, want 30", got)
	}
}

func TestScreenerDeck_SortColumnToggle(t *testing.T) {
	t.Parallel()

	deck := screenerWithRows(10)

	// Column 0 is the ticker label column: selecting it sorts ascending.
	deck.ToggleSortColumn(0)
	if got := deck.engine.Sort; got != (screener.SortSpec{Field: model.FieldTicker, Dir: screener.Asc}) {
		t.Fatalf("sort = %+v, want ticker asc", got)
	}
	first := deck.lastResult.Rows[0].Str(model.FieldTicker)
	if first != "TK000" {
		t.Fatalf("first ticker = %q, want TK000", first)
	}

	// Selecting it again flips direction.
	deck.ToggleSortColumn(0)
	first = deck.lastResult.Rows[0].Str(model.FieldTicker)
	if first != "TK009" {
		t.Fatalf("first ticker desc = %q, want TK009", first)
	}
}

func TestScreenerDeck_ResetRestoresDefaults(t *testing.T) {
	t.Parallel()

	deck := screenerWithRows(20)
	deck.SetQuery("tk001")
	deck.CycleMinVolume()
	deck.ToggleSortColumn(0)
	deck.engine.Page.Page = 2

	deck.ResetView()

	if deck.lastResult.Total != 20 {
		t.Fatalf("total after reset = %d, want 20", deck.lastResult.Total)
	}
	if deck.lastResult.Page != 1 {
		t.Fatalf("page after reset = %d, want 1", deck.lastResult.Page)
	}
	if got := deck.engine.Sort; got != (screener.SortSpec{Field: model.FieldVolume, Dir: screener.Desc}) {
		t.Fatalf("sort after reset = %+v, want volume desc", got)
	}
}

func TestDashboardView_RendersAllDecks(t *testing.T) {
	t.Parallel()

	m := newTestModel()
	m.width = 140
	m.height = 50

	view := m.View()
	for _, want := range []string{"Vol Index", "Market Pulse", "Top Movers", "Screener"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing deck title %q", want)
		}
	}
}
