package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quantdeck/quantdeck/internal/apiclient"
	"github.com/quantdeck/quantdeck/internal/chart"
	"github.com/quantdeck/quantdeck/internal/composite"
	"github.com/quantdeck/quantdeck/internal/model"
	"github.com/quantdeck/quantdeck/internal/resource"
)

const pulseHours = 48

// PulseDeck displays the composite market pulse index: volume,
// open-interest, and breadth deltas folded into one series.
type PulseDeck struct {
	loader resource.Loader[[]model.Row]
	nonce  int
}

// NewPulseDeck creates a new pulse deck.
func NewPulseDeck() *PulseDeck {
	return &PulseDeck{}
}

func (p *PulseDeck) ID() string    { return "pulse" }
func (p *PulseDeck) Title() string { return "Market Pulse" }

func (p *PulseDeck) TypeID() string                 { return "pulse" }
func (p *PulseDeck) DefaultInterval() time.Duration { return 30 * time.Second }
func (p *PulseDeck) Loading() bool                  { return p.loader.Loading() }

func (p *PulseDeck) Refresh() { p.nonce++ }

func (p *PulseDeck) FetchCmd(client *apiclient.Client) tea.Cmd {
	gen, ctx := p.loader.Begin(context.Background())
	req := apiclient.NewRequest(model.EndpointBreadth,
		apiclient.Param{Key: model.ParamHours, Value: strconv.Itoa(pulseHours)})
	if p.nonce > 0 {
		req = req.WithRefresh(p.nonce)
	}
	return func() tea.Msg {
		rows, err := client.GetRows(ctx, req)
		return DeckDataMsg{DeckTypeID: "pulse", Gen: gen, Rows: rows, Err: err}
	}
}

func (p *PulseDeck) ApplyData(msg DeckDataMsg) bool {
	return p.loader.Commit(msg.Gen, msg.Rows, msg.Err)
}

func (p *PulseDeck) ContentLines(_ ViewContext) int { return 8 }

func (p *PulseDeck) Render(ctx ViewContext, width, height int, active bool) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}

	samples := composite.Index(p.loader.State().Data)

	leftTitle := deckTitleWithBadges(p.Title(), ctx)
	headerText := leftTitle
	if latest, ok := composite.Latest(samples); ok {
		rightStats := fmt.Sprintf("Index: %.1f", latest)
		spacerWidth := width - 4 - len(leftTitle) - len(rightStats)
		if spacerWidth > 0 {
			headerText = leftTitle + strings.Repeat(" ", spacerWidth) + rightStats
		}
	}

	title := deckTitleStyle.Render(headerText)

	contentLines := height - 3
	if contentLines < 1 {
		contentLines = 1
	}

	var content string
	switch {
	case len(samples) >= 2:
		content = renderSeriesPlot(composite.Values(samples), width-4, contentLines)
	case ctx.DeckLoading:
		content = renderLoadingPlaceholder(width-2, contentLines)
	case ctx.DeckLastError != "":
		content = errorStyle.Render(ctx.DeckLastError)
	default:
		content = helpStyle.Render("No data available")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

// renderSeriesPlot normalizes a series onto the virtual canvas and
// rasterizes the points into a character grid.
func renderSeriesPlot(values []float64, width, height int) string {
	if width < 10 {
		width = 10
	}
	if height < 2 {
		height = 2
	}

	points := chart.Normalize(values, chart.DefaultOptions())
	if len(points) == 0 {
		return helpStyle.Render("No data available")
	}

	opts := chart.DefaultOptions()
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	for _, pt := range points {
		x := int(pt.X / opts.Width * float64(width-1))
		y := int(pt.Y / opts.Height * float64(height-1))
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		grid[y][x] = '•'
	}

	lines := make([]string, height)
	lineStyle := lipgloss.NewStyle().Foreground(ColorAccent)
	for y, row := range grid {
		lines[y] = lineStyle.Render(string(row))
	}
	return strings.Join(lines, "\n")
}
