package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dynamite-valley/internal/core"
	"github.com/vovakirdan/dynamite-valley/internal/games/dynamite/levels"
)

// PickerModel lets the player choose a level. Files that failed to load
// are listed with their error and cannot be selected.
type PickerModel struct {
	entries      []levels.Entry
	resume       string // last played level, offered first when set
	cursor       int
	scrollOffset int
	width        int
	height       int
	keys         MenuKeyMap
	help         help.Model
	selected     string
	quitting     bool
}

// NewPickerModel creates a level picker over scanned entries.
func NewPickerModel(entries []levels.Entry, resume string, width, height int) PickerModel {
	m := PickerModel{
		entries: entries,
		resume:  resume,
		width:   width,
		height:  height,
		keys:    DefaultMenuKeyMap(),
		help:    help.New(),
	}
	m.help.Width = width
	return m
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateScroll()
	}
	return m, nil
}

// itemCount counts the rows: the resume entry, then every level.
func (m PickerModel) itemCount() int {
	n := len(m.entries)
	if m.resume != "" {
		n++
	}
	return n
}

// entryAt maps a cursor position to an entry; ok is false for the resume row.
func (m PickerModel) entryAt(i int) (levels.Entry, bool) {
	if m.resume != "" {
		if i == 0 {
			return levels.Entry{}, false
		}
		i--
	}
	return m.entries[i], true
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < m.itemCount()-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if m.itemCount() == 0 {
			return m, nil
		}
		e, ok := m.entryAt(m.cursor)
		if !ok {
			m.selected = m.resume
			return m, tea.Quit
		}
		if e.Err != nil {
			return m, nil
		}
		m.selected = e.Name
		return m, tea.Quit
	}
	return m, nil
}

func (m PickerModel) visibleItems() int {
	return core.Max(m.height-10, 3)
}

// updateScroll keeps the cursor visible.
func (m *PickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level list.
func (m PickerModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("D Y N A M I T E   V A L L E Y"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.Subtitle.Render("Choose a level"), m.width))
	b.WriteString("\n\n")

	if m.itemCount() == 0 {
		b.WriteString(centerText(theme.Error.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := core.Min(m.scrollOffset+m.visibleItems(), m.itemCount())
	if m.scrollOffset > 0 {
		b.WriteString(centerText(theme.Description.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(centerText(m.renderItem(i), m.width))
		b.WriteString("\n")
	}
	if end < m.itemCount() {
		b.WriteString(centerText(theme.Description.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	if m.itemCount() > 0 {
		if e, ok := m.entryAt(m.cursor); ok {
			b.WriteString("\n")
			if e.Err != nil {
				b.WriteString(centerText(theme.Error.Render(e.Err.Error()), m.width))
			} else if e.Level.Hint != "" {
				b.WriteString(centerText(theme.Description.Render(e.Level.Hint), m.width))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(theme.Help.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func (m PickerModel) renderItem(i int) string {
	cursor := "  "
	style := theme.ItemNormal
	if i == m.cursor {
		cursor = "> "
		style = theme.ItemActive
	}

	e, ok := m.entryAt(i)
	if !ok {
		return style.Render(cursor + "Continue: " + m.resume)
	}
	if e.Err != nil {
		if i != m.cursor {
			style = theme.ItemBroken
		}
		return style.Render(fmt.Sprintf("%s%s (broken)", cursor, e.Name))
	}
	return style.Render(fmt.Sprintf("%s%s  %s", cursor, e.Name, e.Level.DisplayTitle()))
}

// Selected returns the chosen level name, or "" if none was chosen.
func (m PickerModel) Selected() string {
	return m.selected
}

// PickLevel runs the picker and returns the chosen level, or "" when the
// user backed out.
func PickLevel(entries []levels.Entry, resume string, cfg core.RuntimeConfig) (string, error) {
	p := tea.NewProgram(
		NewPickerModel(entries, resume, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(PickerModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
