package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dynamite-valley/internal/core"
	"github.com/vovakirdan/dynamite-valley/internal/storage"
)

const (
	minWidthForSidebar = 70
	sidebarWidth       = 22
	maxCompletions     = 100
)

// ProgressKeyMap defines the key bindings for the progress screen.
type ProgressKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ProgressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextLevel, k.PrevLevel, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ProgressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextLevel, k.PrevLevel, k.Quit}}
}

// DefaultProgressKeyMap returns default key bindings.
func DefaultProgressKeyMap() ProgressKeyMap {
	return ProgressKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev level"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProgressModel shows the completions recorded for each level.
type ProgressModel struct {
	store       *storage.Store
	stats       []*storage.LevelStats
	cursor      int
	completions []storage.Completion
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ProgressKeyMap
	width       int
	height      int
	showSidebar bool
	quitting    bool
}

// NewProgressModel creates the progress screen.
func NewProgressModel(store *storage.Store, width, height int) ProgressModel {
	m := ProgressModel{
		store:       store,
		keys:        DefaultProgressKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()

	stats, err := store.Stats()
	if err != nil {
		m.loadErr = err
		return m
	}
	for _, s := range stats {
		m.stats = append(m.stats, s)
	}
	sort.Slice(m.stats, func(i, j int) bool { return m.stats[i].Level < m.stats[j].Level })
	m.loadCompletions()
	return m
}

func (m *ProgressModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Ticks", Width: 8},
		{Title: "Bombs", Width: 6},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ProgressModel) loadCompletions() {
	m.completions = nil
	if len(m.stats) > 0 {
		cs, err := m.store.Completions(m.stats[m.cursor].Level, maxCompletions)
		if err != nil {
			m.loadErr = err
		}
		m.completions = cs
	}
	m.updateRows()
}

func (m *ProgressModel) updateRows() {
	rows := make([]table.Row, len(m.completions))
	for i, c := range m.completions {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", c.Ticks),
			fmt.Sprintf("%d", c.BombsUsed),
			c.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			if len(m.stats) > 0 {
				m.cursor = (m.cursor + 1) % len(m.stats)
				m.loadCompletions()
			}
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			if len(m.stats) > 0 {
				m.cursor = (m.cursor - 1 + len(m.stats)) % len(m.stats)
				m.loadCompletions()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress screen.
func (m ProgressModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := "PROGRESS"
	if len(m.stats) > 0 {
		title = "PROGRESS - " + m.stats[m.cursor].Level
	}
	b.WriteString(centerText(theme.Title.Render(title), m.width))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(theme.Error.Render(m.loadErr.Error()))
	case m.showSidebar:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", theme.Panel.Render(m.renderTable())))
	default:
		b.WriteString(centerText(theme.Panel.Render(m.renderTable()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ProgressModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Levels\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, s := range m.stats {
		cursor := "  "
		style := theme.ItemNormal
		if i == m.cursor {
			cursor = "> "
			style = theme.ItemActive
		}
		sb.WriteString(style.Render(fmt.Sprintf("%s%-9s %3d", cursor, s.Level, s.Wins)))
		sb.WriteString("\n")
	}
	return theme.Panel.Width(sidebarWidth).Render(sb.String())
}

func (m ProgressModel) renderTable() string {
	if len(m.completions) == 0 {
		return theme.Description.Italic(true).Padding(2, 4).Render("No levels completed yet.\nBlow up some dams!")
	}
	s := m.stats[m.cursor]
	summary := theme.Description.Render(fmt.Sprintf("wins %d, best %d ticks, fewest bombs %d", s.Wins, s.BestTicks, s.FewestBombs))
	return summary + "\n" + m.table.View()
}

// ShowProgress runs the progress screen until the user quits.
func ShowProgress(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewProgressModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
