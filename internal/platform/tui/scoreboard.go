package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-sim/internal/core"
	"github.com/vovakirdan/flappy-sim/internal/registry"
	"github.com/vovakirdan/flappy-sim/internal/storage"
)

const (
	statsPanelWidth = 26  // Stats panel shown next to the table
	minWidthForPane = 84  // Below this the stats panel moves under the table
	maxScores       = 100 // Max runs to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Clear   key.Binding
	Confirm key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Clear, k.Confirm, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next variant")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev variant")),
		Clear:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear runs")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm clear")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// reasonCounts tallies how the loaded runs ended.
type reasonCounts struct {
	collision   int
	outOfBounds int
	other       int
}

// ScoreboardModel lists the best runs of each variant with aggregate stats.
type ScoreboardModel struct {
	variants []registry.GameInfo
	current  int
	store    *storage.Store

	runs    []storage.RunRecord
	stats   storage.GameStats
	reasons reasonCounts
	loadErr error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	confirmClear  bool
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a new scoreboard model. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    width,
		height:   height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

// wide reports whether the stats panel fits beside the table.
func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForPane
}

func (m ScoreboardModel) newTable() table.Model {
	dateW := 12
	if avail := m.width - 4 - 41; m.wide() {
		dateW = core.Clamp(avail-statsPanelWidth-2, 12, 20)
	} else if avail > 12 {
		dateW = core.Clamp(avail, 12, 20)
	}

	rows := m.height - 9
	if !m.wide() {
		rows -= 4 // stats lines under the table
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 6},
			{Title: "Reason", Width: 13},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(core.Max(rows, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// currentID returns the selected variant ID, or "" when none is registered.
func (m ScoreboardModel) currentID() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.current].ID
}

// reload fetches runs and stats for the selected variant.
func (m *ScoreboardModel) reload() {
	gameID := m.currentID()
	m.runs, m.loadErr = nil, nil
	m.stats = storage.GameStats{GameID: gameID}
	m.reasons = reasonCounts{}

	if m.store != nil && gameID != "" {
		if m.runs, m.loadErr = m.store.TopScores(gameID, maxScores); m.loadErr == nil {
			if stats, err := m.store.Stats(gameID); err == nil {
				m.stats = stats
			}
		}
	}

	for _, r := range m.runs {
		switch r.Reason {
		case "collision":
			m.reasons.collision++
		case "out_of_bounds":
			m.reasons.outOfBounds++
		default:
			m.reasons.other++
		}
	}

	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		reason := r.Reason
		if reason == "" {
			reason = "-"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			reason,
			formatTicks(r.Ticks),
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// cycle moves the variant cursor by delta, wrapping around.
func (m *ScoreboardModel) cycle(delta int) {
	if len(m.variants) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.variants)) % len(m.variants)
	m.confirmClear = false
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			if m.confirmClear {
				m.confirmClear = false
				return m, nil
			}
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.confirmClear = m.store != nil && len(m.runs) > 0
			return m, nil
		case key.Matches(msg, m.keys.Confirm):
			if m.confirmClear {
				m.confirmClear = false
				m.loadErr = m.store.ClearScores(m.currentID())
				if m.loadErr == nil {
					m.reload()
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.reload()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbWarnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	sbActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("22")).Padding(0, 1)
	sbBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(sbTitleStyle.Render(centerText("BEST RUNS", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	runs := sbBoxStyle.Render(m.renderRuns())
	if m.wide() {
		stats := sbBoxStyle.Width(statsPanelWidth).Render(m.renderStats())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, runs, "  ", stats))
	} else {
		b.WriteString(runs)
		b.WriteString("\n")
		b.WriteString(m.renderStats())
	}
	b.WriteString("\n")

	switch {
	case m.confirmClear:
		b.WriteString(sbWarnStyle.Render(fmt.Sprintf("Delete all %s runs? y to confirm, esc to cancel", m.currentID())))
	case m.loadErr != nil:
		b.WriteString(sbWarnStyle.Render("storage error: " + m.loadErr.Error()))
	}
	b.WriteString("\n")
	b.WriteString(sbDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs draws one tab per variant, or just the current one with arrows
// when they do not fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.variants) == 0 {
		return sbDimStyle.Render("no variants registered")
	}

	tabs := make([]string, len(m.variants))
	plain := 0
	for i, v := range m.variants {
		plain += len(v.Title) + 3
		if i == m.current {
			tabs[i] = sbActiveStyle.Render(v.Title)
		} else {
			tabs[i] = sbDimStyle.Render(" " + v.Title + " ")
		}
	}
	if plain > m.width-4 {
		return fmt.Sprintf("< %s >", m.variants[m.current].Title)
	}
	return strings.Join(tabs, " ")
}

// renderRuns renders the table or an empty message.
func (m ScoreboardModel) renderRuns() string {
	if len(m.runs) == 0 {
		return sbDimStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nPlay a round to set a high score!")
	}
	return m.table.View()
}

// renderStats summarises every stored run of the variant, plus how the
// listed runs ended.
func (m ScoreboardModel) renderStats() string {
	if m.stats.RunsCount == 0 {
		return sbDimStyle.Render("no stats yet")
	}
	if !m.wide() {
		return sbDimStyle.Render(fmt.Sprintf("runs %d | best %d | avg %.1f | hits %d | off screen %d",
			m.stats.RunsCount, m.stats.HighScore, m.stats.AvgScore, m.reasons.collision, m.reasons.outOfBounds))
	}

	lines := []string{
		sbTitleStyle.Render("Stats"),
		fmt.Sprintf("runs    %d", m.stats.RunsCount),
		fmt.Sprintf("best    %d", m.stats.HighScore),
		fmt.Sprintf("average %.1f", m.stats.AvgScore),
		fmt.Sprintf("played  %s", formatTicks(int(m.stats.TotalTicks))),
		fmt.Sprintf("last    %s", m.stats.LastPlayed.Format("Jan 02 15:04")),
		"",
		fmt.Sprintf("pipe hits   %d", m.reasons.collision),
		fmt.Sprintf("off screen  %d", m.reasons.outOfBounds),
	}
	if m.reasons.other > 0 {
		lines = append(lines, fmt.Sprintf("unknown     %d", m.reasons.other))
	}
	return strings.Join(lines, "\n")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

// formatTicks renders a run length in seconds at the default tick rate.
func formatTicks(ticks int) string {
	return fmt.Sprintf("%.1fs", float64(ticks)*core.DefaultConfig().TickSeconds())
}
