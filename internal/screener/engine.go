// Package screener is the in-memory filter/sort/paginate pipeline shared by
// every bulk-row dashboard view. It never mutates the fetched row set; all
// transformations work on derived copies.
package screener

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/quantdeck/quantdeck/internal/model"
)

// Direction orders a sort.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// FilterSpec holds per-field constraints. An absent or empty entry always
// passes.
type FilterSpec struct {
	// Min maps field name to a minimum threshold. A row passes when the
	// coerced field value is >= the threshold; values that fail numeric
	// coercion fail the filter.
	Min map[string]float64

	// Contains maps field name to a substring matched case-insensitively
	// against the stringified field value.
	Contains map[string]string
}

// SetMin adds or replaces a threshold filter.
func (f *FilterSpec) SetMin(field string, min float64) {
	if f.Min == nil {
		f.Min = make(map[string]float64)
	}
	f.Min[field] = min
}

// SetContains adds, replaces, or (with an empty query) clears a substring
// filter.
func (f *FilterSpec) SetContains(field, query string) {
	if f.Contains == nil {
		f.Contains = make(map[string]string)
	}
	if query == "" {
		delete(f.Contains, field)
		return
	}
	f.Contains[field] = query
}

// SortSpec orders rows by one field.
type SortSpec struct {
	Field string
	Dir   Direction
}

// PageWindow selects one page of the filtered row set.
type PageWindow struct {
	Page int // 1-based
	Size int
}

// Result is the outcome of one pipeline application.
type Result struct {
	Rows       []model.Row // current page, post filter and sort
	Total      int         // filtered row count
	TotalPages int
	Page       int // page actually shown, after clamping
}

// Engine applies a mutable FilterSpec, SortSpec, and PageWindow to a fixed
// row set.
type Engine struct {
	rows []model.Row

	Filters FilterSpec
	Sort    SortSpec
	Page    PageWindow

	defaultSort SortSpec
	defaultSize int
}

// New creates an engine with the given default sort and page size. Reset
// returns to exactly this state.
func New(defaultSort SortSpec, pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}
	return &Engine{
		Sort:        defaultSort,
		Page:        PageWindow{Page: 1, Size: pageSize},
		defaultSort: defaultSort,
		defaultSize: pageSize,
	}
}

// SetRows replaces the underlying row set, keeping filter/sort/page state.
// The current page is re-clamped on the next Apply.
func (e *Engine) SetRows(rows []model.Row) {
	e.rows = rows
}

// Reset restores the default filter and sort state and returns to page 1.
// The underlying row set is untouched.
func (e *Engine) Reset() {
	e.Filters = FilterSpec{}
	e.Sort = e.defaultSort
	e.Page = PageWindow{Page: 1, Size: e.defaultSize}
}

// Apply runs the filter → sort → paginate pipeline and returns the current
// page. When filtering shrank the set below the requested page, the page is
// clamped automatically and the clamped value stored back.
func (e *Engine) Apply() Result {
	filtered := applyFilters(e.rows, e.Filters)
	sortRows(filtered, e.Sort)

	size := e.Page.Size
	if size <= 0 {
		size = e.defaultSize
	}
	totalPages := (len(filtered) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	page := e.Page.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	e.Page.Page = page

	start := (page - 1) * size
	end := start + size
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{
		Rows:       filtered[start:end],
		Total:      len(filtered),
		TotalPages: totalPages,
		Page:       page,
	}
}

// applyFilters returns the rows passing every configured constraint. The
// returned slice is freshly allocated; the input is never reordered or
// truncated.
func applyFilters(rows []model.Row, spec FilterSpec) []model.Row {
	out := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		if rowPasses(row, spec) {
			out = append(out, row)
		}
	}
	return out
}

func rowPasses(row model.Row, spec FilterSpec) bool {
	for field, min := range spec.Min {
		raw, present := row[field]
		if !present || raw == nil {
			return false
		}
		v, err := cast.ToFloat64E(raw)
		if err != nil || v < min {
			return false
		}
	}
	for field, query := range spec.Contains {
		if query == "" {
			continue
		}
		haystack := strings.ToLower(fmt.Sprint(row[field]))
		if !strings.Contains(haystack, strings.ToLower(query)) {
			return false
		}
	}
	return true
}

// sortRows orders rows in place by the spec. String pairs compare
// lexically; everything else compares numerically, with missing or
// unparseable values treated as negative infinity so they land at the low
// end regardless of direction. No stability guarantee for equal keys.
func sortRows(rows []model.Row, spec SortSpec) {
	if spec.Field == "" {
		return
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i][spec.Field], rows[j][spec.Field]

		as, aIsStr := a.(string)
		bs, bIsStr := b.(string)
		if aIsStr && bIsStr {
			if spec.Dir == Desc {
				return as > bs
			}
			return as < bs
		}

		af := numericOrLowest(a)
		bf := numericOrLowest(b)
		if spec.Dir == Desc {
			return af > bf
		}
		return af < bf
	})
}

func numericOrLowest(v any) float64 {
	// An absent field coerces to 0, which would sort between negative and
	// positive values. Absent means lowest, same as unparseable.
	if v == nil {
		return math.Inf(-1)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.Inf(-1)
	}
	return f
}
