package screener

import "testing"

func testColumns() []Column {
	return []Column{
		{Field: "ticker", Title: "Ticker", Kind: KindLabel},
		{Field: "volume", Title: "Volume", Kind: KindMagnitude},
		{Field: "tradability", Title: "Tradability", Kind: KindMagnitude},
	}
}

func TestToggle_SameColumnFlipsDirection(t *testing.T) {
	t.Parallel()

	c := NewSortController(testColumns(), SortSpec{Field: "volume", Dir: Desc})

	spec := c.Toggle(1)
	if spec != (SortSpec{Field: "volume", Dir: Asc}) {
		t.Fatalf("spec = %+v, want volume asc", spec)
	}
	spec = c.Toggle(1)
	if spec != (SortSpec{Field: "volume", Dir: Desc}) {
		t.Fatalf("spec = %+v, want volume desc", spec)
	}
}

func TestToggle_NewColumnUsesPerColumnDefault(t *testing.T) {
	t.Parallel()

	c := NewSortController(testColumns(), SortSpec{Field: "volume", Dir: Desc})

	if spec := c.Toggle(0); spec != (SortSpec{Field: "ticker", Dir: Asc}) {
		t.Fatalf("label column spec = %+v, want ticker asc", spec)
	}
	if spec := c.Toggle(2); spec != (SortSpec{Field: "tradability", Dir: Desc}) {
		t.Fatalf("magnitude column spec = %+v, want tradability desc", spec)
	}
}

func TestToggle_OutOfRangeIsNoop(t *testing.T) {
	t.Parallel()

	initial := SortSpec{Field: "ticker", Dir: Asc}
	c := NewSortController(testColumns(), initial)
	if spec := c.Toggle(9); spec != initial {
		t.Fatalf("spec = %+v, want unchanged %+v", spec, initial)
	}
}
