package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quantdeck/quantdeck/internal/apiclient"
	"github.com/quantdeck/quantdeck/internal/model"
	"github.com/quantdeck/quantdeck/internal/resource"
)

const volIndexPoints = 60

// VolIndexDeck displays the realized-volatility index as a sparkline.
type VolIndexDeck struct {
	loader resource.Loader[[]model.Row]
	nonce  int
}

// NewVolIndexDeck creates a new vol index deck.
func NewVolIndexDeck() *VolIndexDeck {
	return &VolIndexDeck{}
}

func (p *VolIndexDeck) ID() string    { return "volindex" }
func (p *VolIndexDeck) Title() string { return "Vol Index" }

func (p *VolIndexDeck) TypeID() string                 { return "volindex" }
func (p *VolIndexDeck) DefaultInterval() time.Duration { return 15 * time.Second }
func (p *VolIndexDeck) Loading() bool                  { return p.loader.Loading() }

func (p *VolIndexDeck) Refresh() { p.nonce++ }

func (p *VolIndexDeck) FetchCmd(client *apiclient.Client) tea.Cmd {
	gen, ctx := p.loader.Begin(context.Background())
	req := apiclient.NewRequest(model.EndpointVolIndex,
		apiclient.Param{Key: model.ParamPoints, Value: strconv.Itoa(volIndexPoints)})
	if p.nonce > 0 {
		req = req.WithRefresh(p.nonce)
	}
	return func() tea.Msg {
		rows, err := client.GetRows(ctx, req)
		return DeckDataMsg{DeckTypeID: "volindex", Gen: gen, Rows: rows, Err: err}
	}
}

func (p *VolIndexDeck) ApplyData(msg DeckDataMsg) bool {
	return p.loader.Commit(msg.Gen, msg.Rows, msg.Err)
}

func (p *VolIndexDeck) ContentLines(_ ViewContext) int { return 8 }

// values returns the series earliest to latest; the API delivers newest
// first.
func (p *VolIndexDeck) values() []float64 {
	rows := p.loader.State().Data
	values := make([]float64, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		if v, ok := rows[i].Float(model.FieldValue); ok {
			values = append(values, v)
		}
	}
	return values
}

func (p *VolIndexDeck) Render(ctx ViewContext, width, height int, active bool) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}

	values := p.values()
	leftTitle := deckTitleWithBadges(p.Title(), ctx)
	headerText := leftTitle
	if len(values) > 0 {
		latest := values[len(values)-1]
		min, max := values[0], values[0]
		for _, v := range values {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		rightStats := fmt.Sprintf("Last: %.2f | Min: %.2f | Max: %.2f", latest, min, max)
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
	case len(values) >= 2:
		content = p.renderSparkline(values, width-4, contentLines)
	case ctx.DeckLoading:
		content = renderLoadingPlaceholder(width-2, contentLines)
	case ctx.DeckLastError != "":
		content = errorStyle.Render(ctx.DeckLastError)
	default:
		content = helpStyle.Render("No data available")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (p *VolIndexDeck) renderSparkline(values []float64, width, height int) string {
	if width < 10 {
		width = 10
	}
	if height < 2 {
		height = 2
	}

	sl := sparkline.New(width, height, sparkline.WithStyle(lipgloss.NewStyle().Foreground(ColorAccent)))
	start := 0
	if len(values) > width {
		start = len(values) - width
	}
	for _, v := range values[start:] {
		sl.Push(v)
	}
	sl.Draw()
	return sl.View()
}

// deckTitleWithBadges appends pause/error badges to a deck title based on
// ViewContext.
func deckTitleWithBadges(title string, ctx ViewContext) string {
	if ctx.DeckPaused {
		title += " ⏸"
	}
	if ctx.DeckLastError != "" {
		title += " " + badgeStyle.Render("⚠")
	}
	return title
}
