package tui

import tea "github.com/charmbracelet/bubbletea"

// App is the program root. The dashboard is the only screen, so App is a
// thin shell: it exists to keep the tea.Model contract off DashboardModel's
// public surface and to leave room for a second screen later.
type App struct {
	dashboard *DashboardModel
}

// NewApp wraps the dashboard as the running program.
func NewApp(dashboard *DashboardModel) *App {
	return &App{dashboard: dashboard}
}

func (a *App) Init() tea.Cmd {
	return a.dashboard.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := a.dashboard.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.dashboard.View()
}
