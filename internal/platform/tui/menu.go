package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-sim/internal/core"
	"github.com/vovakirdan/flappy-sim/internal/registry"
	"github.com/vovakirdan/flappy-sim/internal/storage"
)

// MenuItem is one selectable variant with its stored record.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int
	Runs        int
}

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper

	selected       *MenuItem
	openScoreboard bool
	quitting       bool
}

// NewMenuModel lists every registered variant. store may be nil, in which
// case no records are shown.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var items []MenuItem
	for _, info := range registry.List() {
		item := MenuItem{GameID: info.ID, Title: info.Title, Description: info.Description}
		if store != nil {
			if stats, err := store.Stats(info.ID); err == nil {
				item.Best, item.Runs = stats.HighScore, stats.RunsCount
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	switch action {
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, core.Max(len(m.items)-1, 0))
	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, core.Max(len(m.items)-1, 0))
	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		m.selected = &item
		return m, tea.Quit
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	width := m.config.ScreenW

	lines := []string{
		"",
		menuTitleStyle.Render(centerText("  F L A P P Y  ", width)),
		"",
		centerText("Select a variant", width),
		"",
	}

	for i, item := range m.items {
		record := "no runs yet"
		if item.Runs > 0 {
			record = fmt.Sprintf("best %d in %d runs", item.Best, item.Runs)
		}
		if i == m.cursor {
			lines = append(lines, menuCurStyle.Render(centerText(fmt.Sprintf("> %-20s %s", item.Title, record), width)))
		} else {
			lines = append(lines, centerText(fmt.Sprintf("  %-20s %s", item.Title, record), width))
		}
	}

	if len(m.items) > 0 && m.items[m.cursor].Description != "" {
		lines = append(lines, "", menuDimStyle.Render(centerText(m.items[m.cursor].Description, width)))
	}

	lines = append(lines, "",
		menuDimStyle.Render(centerText("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit", width)),
		"")
	return strings.Join(lines, "\n")
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.GameID = m.Selected().GameID
	}

	return result, nil
}
