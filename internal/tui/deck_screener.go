package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quantdeck/quantdeck/internal/apiclient"
	"github.com/quantdeck/quantdeck/internal/model"
	"github.com/quantdeck/quantdeck/internal/resource"
	"github.com/quantdeck/quantdeck/internal/screener"
)

const screenerFetchLimit = 500

// minVolumePresets are the cyclable minimum-volume thresholds. Zero clears
// the filter.
var minVolumePresets = []float64{0, 1000, 10000, 100000}

// screenerColumns declares the table columns and their sort behavior.
func screenerColumns() []screener.Column {
	return []screener.Column{
		{Field: model.FieldTicker, Title: "Ticker", Kind: screener.KindLabel},
		{Field: model.FieldQuestion, Title: "Question", Kind: screener.KindLabel},
		{Field: model.FieldVolume, Title: "Volume", Kind: screener.KindMagnitude},
		{Field: model.FieldLiquidity, Title: "Liquidity", Kind: screener.KindMagnitude},
		{Field: model.FieldMidPrice, Title: "Mid", Kind: screener.KindMagnitude},
		{Field: model.FieldTradability, Title: "Tradability", Kind: screener.KindMagnitude},
		{Field: model.FieldChurnRate, Title: "Churn", Kind: screener.KindMagnitude},
	}
}

// ScreenerDeck is the bulk market screener: a sortable, filterable,
// paginated table over the full market row set.
type ScreenerDeck struct {
	loader resource.Loader[[]model.Row]
	nonce  int

	engine  *screener.Engine
	sortCtl *screener.SortController
	table   table.Model

	minVolumeIdx int
	pageSizeIdx  int
	lastResult   screener.Result
}

// NewScreenerDeck creates a screener deck with the given page size.
func NewScreenerDeck(pageSize int) *ScreenerDeck {
	defaultSort := screener.SortSpec{Field: model.FieldVolume, Dir: screener.Desc}

	pageSizeIdx := 0
	for i, size := range model.PageSizeOptions {
		if size == pageSize {
			pageSizeIdx = i
		}
	}

	t := table.New(table.WithFocused(false))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(ColorWhite).BorderForeground(ColorGray)
	styles.Selected = lipgloss.NewStyle()
	t.SetStyles(styles)

	d := &ScreenerDeck{
		engine:      screener.New(defaultSort, model.PageSizeOptions[pageSizeIdx]),
		sortCtl:     screener.NewSortController(screenerColumns(), defaultSort),
		table:       t,
		pageSizeIdx: pageSizeIdx,
	}
	d.rebuildTable()
	return d
}

func (p *ScreenerDeck) ID() string    { return "screener" }
func (p *ScreenerDeck) Title() string { return "Screener" }

func (p *ScreenerDeck) TypeID() string                 { return "screener" }
func (p *ScreenerDeck) DefaultInterval() time.Duration { return 60 * time.Second }
func (p *ScreenerDeck) Loading() bool                  { return p.loader.Loading() }

// Refresh bumps the request nonce: a new fetch identity without touching
// filter, sort, or page state.
func (p *ScreenerDeck) Refresh() { p.nonce++ }

func (p *ScreenerDeck) FetchCmd(client *apiclient.Client) tea.Cmd {
	gen, ctx := p.loader.Begin(context.Background())
	req := apiclient.NewRequest(model.EndpointMarkets,
		apiclient.Param{Key: model.ParamLimit, Value: strconv.Itoa(screenerFetchLimit)})
	if p.nonce > 0 {
		req = req.WithRefresh(p.nonce)
	}
	return func() tea.Msg {
		rows, err := client.GetRows(ctx, req)
		return DeckDataMsg{DeckTypeID: "screener", Gen: gen, Rows: rows, Err: err}
	}
}

func (p *ScreenerDeck) ApplyData(msg DeckDataMsg) bool {
	applied := p.loader.Commit(msg.Gen, msg.Rows, msg.Err)
	if applied && msg.Err == nil {
		p.engine.SetRows(p.loader.State().Data)
		p.rebuildTable()
	}
	return applied
}

// Screener controls, routed from the dashboard's key handling.

func (p *ScreenerDeck) NextPage() {
	p.engine.Page.Page++
	p.rebuildTable()
}

func (p *ScreenerDeck) PrevPage() {
	if p.engine.Page.Page > 1 {
		p.engine.Page.Page--
	}
	p.rebuildTable()
}

func (p *ScreenerDeck) CyclePageSize() {
	p.pageSizeIdx = (p.pageSizeIdx + 1) % len(model.PageSizeOptions)
	p.engine.Page.Size = model.PageSizeOptions[p.pageSizeIdx]
	p.rebuildTable()
}

// FlipSort reverses the direction of the current sort column.
func (p *ScreenerDeck) FlipSort() {
	for i, col := range p.sortCtl.Columns() {
		if col.Field == p.sortCtl.Spec().Field {
			p.ToggleSortColumn(i)
			return
		}
	}
}

func (p *ScreenerDeck) ToggleSortColumn(idx int) {
	p.engine.Sort = p.sortCtl.Toggle(idx)
	p.rebuildTable()
}

func (p *ScreenerDeck) CycleMinVolume() {
	p.minVolumeIdx = (p.minVolumeIdx + 1) % len(minVolumePresets)
	p.applyMinVolume()
	p.rebuildTable()
}

func (p *ScreenerDeck) applyMinVolume() {
	min := minVolumePresets[p.minVolumeIdx]
	if min == 0 {
		delete(p.engine.Filters.Min, model.FieldVolume)
		return
	}
	p.engine.Filters.SetMin(model.FieldVolume, min)
}

func (p *ScreenerDeck) SetQuery(q string) {
	p.engine.Filters.SetContains(model.FieldTicker, q)
	p.rebuildTable()
}

// ResetView restores default filter/sort state and returns to page 1. The
// fetched row set is untouched.
func (p *ScreenerDeck) ResetView() {
	p.engine.Reset()
	p.minVolumeIdx = 0
	p.sortCtl.SetSpec(p.engine.Sort)
	p.rebuildTable()
}

// rebuildTable re-applies the pipeline and refreshes the table widget.
func (p *ScreenerDeck) rebuildTable() {
	p.lastResult = p.engine.Apply()

	spec := p.sortCtl.Spec()
	cols := make([]table.Column, 0, len(p.sortCtl.Columns()))
	for _, col := range p.sortCtl.Columns() {
		title := col.Title
		if col.Field == spec.Field {
			if spec.Dir == screener.Asc {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		width := 12
		if col.Field == model.FieldQuestion {
			width = 42
		}
		cols = append(cols, table.Column{Title: title, Width: width})
	}

	rows := make([]table.Row, 0, len(p.lastResult.Rows))
	for _, row := range p.lastResult.Rows {
		rows = append(rows, table.Row{
			row.Str(model.FieldTicker),
			row.Str(model.FieldQuestion),
			formatFloat(row, model.FieldVolume, 0),
			formatFloat(row, model.FieldLiquidity, 0),
			formatFloat(row, model.FieldMidPrice, 3),
			formatFloat(row, model.FieldTradability, 1),
			formatFloat(row, model.FieldChurnRate, 3),
		})
	}

	p.table.SetColumns(cols)
	p.table.SetRows(rows)
}

func formatFloat(row model.Row, field string, decimals int) string {
	v, ok := row.Float(field)
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func (p *ScreenerDeck) ContentLines(_ ViewContext) int {
	lines := len(p.lastResult.Rows) + 3
	if lines < 6 {
		lines = 6
	}
	return lines
}

func (p *ScreenerDeck) Render(ctx ViewContext, width, height int, active bool) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}

	title := deckTitleStyle.Render(deckTitleWithBadges(p.Title(), ctx))

	contentLines := height - 3
	if contentLines < 3 {
		contentLines = 3
	}

	var content string
	hasData := p.loader.State().HasData
	switch {
	case hasData:
		p.table.SetHeight(contentLines - 1)
		p.table.SetWidth(width - 4)
		content = lipgloss.JoinVertical(lipgloss.Left, p.table.View(), p.renderFooter(width-4))
	case ctx.DeckLoading:
		content = renderLoadingPlaceholder(width-2, contentLines)
	case ctx.DeckLastError != "":
		content = errorStyle.Render(ctx.DeckLastError)
	default:
		content = helpStyle.Render("No data available")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (p *ScreenerDeck) renderFooter(width int) string {
	res := p.lastResult
	parts := fmt.Sprintf("page %d/%d · %d markets · size %d",
		res.Page, res.TotalPages, res.Total, p.engine.Page.Size)

	if min := minVolumePresets[p.minVolumeIdx]; min > 0 {
		parts += fmt.Sprintf(" · vol ≥ %.0f", min)
	}
	if q := p.engine.Filters.Contains[model.FieldTicker]; q != "" {
		parts += fmt.Sprintf(" · filter %q", q)
	}

	return helpStyle.MaxWidth(width).Render(parts)
}
