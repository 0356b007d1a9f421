package screener

// ColumnKind selects the default direction when a column first becomes the
// sort key: label-like columns start ascending, magnitude-like columns start
// descending.
type ColumnKind int

const (
	KindLabel ColumnKind = iota
	KindMagnitude
)

// Column describes one sortable table column.
type Column struct {
	Field string
	Title string
	Kind  ColumnKind
}

// SortController toggles column sort state for a table view: selecting the
// current column flips direction, selecting a different column makes it the
// sort field at its per-column default.
type SortController struct {
	columns []Column
	spec    SortSpec
}

// NewSortController creates a controller over the given columns with an
// initial sort.
func NewSortController(columns []Column, initial SortSpec) *SortController {
	return &SortController{
		columns: append([]Column(nil), columns...),
		spec:    initial,
	}
}

// Columns returns the configured columns.
func (c *SortController) Columns() []Column { return c.columns }

// Spec returns the current sort.
func (c *SortController) Spec() SortSpec { return c.spec }

// SetSpec overrides the current sort. Used by Reset.
func (c *SortController) SetSpec(spec SortSpec) { c.spec = spec }

// Toggle handles a selection of the column at idx and returns the new sort.
// Out-of-range indexes leave the sort unchanged.
func (c *SortController) Toggle(idx int) SortSpec {
	if idx < 0 || idx >= len(c.columns) {
		return c.spec
	}
	col := c.columns[idx]
	if c.spec.Field == col.Field {
		if c.spec.Dir == Asc {
			c.spec.Dir = Desc
		} else {
			c.spec.Dir = Asc
		}
		return c.spec
	}
	c.spec = SortSpec{Field: col.Field, Dir: defaultDirection(col.Kind)}
	return c.spec
}

func defaultDirection(kind ColumnKind) Direction {
	if kind == KindMagnitude {
		return Desc
	}
	return Asc
}
