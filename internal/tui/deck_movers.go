package tui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quantdeck/quantdeck/internal/apiclient"
	"github.com/quantdeck/quantdeck/internal/model"
	"github.com/quantdeck/quantdeck/internal/resource"
)

const (
	moversLimit   = 8
	moversMetric  = "volume"
	moversMinPrev = 1000
)

// MoversDeck displays the top movers by volume change as a bar chart with a
// ticker legend.
type MoversDeck struct {
	loader resource.Loader[[]model.Row]
	nonce  int
}

// NewMoversDeck creates a new movers deck.
func NewMoversDeck() *MoversDeck {
	return &MoversDeck{}
}

func (p *MoversDeck) ID() string    { return "movers" }
func (p *MoversDeck) Title() string { return "Top Movers" }

func (p *MoversDeck) TypeID() string                 { return "movers" }
func (p *MoversDeck) DefaultInterval() time.Duration { return 20 * time.Second }
func (p *MoversDeck) Loading() bool                  { return p.loader.Loading() }

func (p *MoversDeck) Refresh() { p.nonce++ }

func (p *MoversDeck) FetchCmd(client *apiclient.Client) tea.Cmd {
	gen, ctx := p.loader.Begin(context.Background())
	req := apiclient.NewRequest(model.EndpointMovers,
		apiclient.Param{Key: model.ParamLimit, Value: strconv.Itoa(moversLimit)},
		apiclient.Param{Key: model.ParamMetric, Value: moversMetric},
		apiclient.Param{Key: model.ParamMinPrevValue, Value: strconv.Itoa(moversMinPrev)},
	)
	if p.nonce > 0 {
		req = req.WithRefresh(p.nonce)
	}
	return func() tea.Msg {
		rows, err := client.GetRows(ctx, req)
		return DeckDataMsg{DeckTypeID: "movers", Gen: gen, Rows: rows, Err: err}
	}
}

func (p *MoversDeck) ApplyData(msg DeckDataMsg) bool {
	return p.loader.Commit(msg.Gen, msg.Rows, msg.Err)
}

func (p *MoversDeck) ContentLines(_ ViewContext) int { return moversLimit + 1 }

func (p *MoversDeck) Render(ctx ViewContext, width, height int, active bool) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}

	title := deckTitleStyle.Render(deckTitleWithBadges(p.Title(), ctx))

	contentLines := height - 3
	if contentLines < 1 {
		contentLines = 1
	}

	rows := p.loader.State().Data
	var content string
	switch {
	case len(rows) > 0:
		content = p.renderContent(rows, width-4, contentLines)
	case ctx.DeckLoading:
		content = renderLoadingPlaceholder(width-2, contentLines)
	case ctx.DeckLastError != "":
		content = errorStyle.Render(ctx.DeckLastError)
	default:
		content = helpStyle.Render("No data available")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (p *MoversDeck) renderContent(rows []model.Row, width, height int) string {
	legendWidth := 24
	chartWidth := width - legendWidth - 2
	if chartWidth < 12 {
		chartWidth = 12
	}

	gainBar := lipgloss.NewStyle().Foreground(ColorGain).Background(ColorGain)
	lossBar := lipgloss.NewStyle().Foreground(ColorLoss).Background(ColorLoss)

	bc := barchart.New(chartWidth, height,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(2),
		barchart.WithNoAxis(),
	)

	var legendLines []string
	for _, row := range rows {
		change, _ := row.Float(model.FieldChangePct)
		barStyle := gainBar
		lineStyle := gainStyle
		if change < 0 {
			barStyle = lossBar
			lineStyle = lossStyle
		}

		magnitude := change
		if magnitude < 0 {
			magnitude = -magnitude
		}
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: row.Str(model.FieldTicker), Value: magnitude, Style: barStyle},
			},
		})

		legendLines = append(legendLines,
			lineStyle.Render(fmt.Sprintf("%-10s %+7.2f%%", row.Str(model.FieldTicker), change)))
	}
	bc.Draw()

	for len(legendLines) < height {
		legendLines = append(legendLines, "")
	}
	if len(legendLines) > height {
		legendLines = legendLines[:height]
	}
	legend := lipgloss.JoinVertical(lipgloss.Left, legendLines...)

	return lipgloss.JoinHorizontal(lipgloss.Top, bc.View(), "  ", legend)
}
