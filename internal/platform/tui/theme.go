package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles of the menus around the game screen.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	ItemBroken  lipgloss.Style
	Description lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Panel       lipgloss.Style
}

// DefaultTheme returns the stock theme: river blues with dynamite red.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("202")).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ItemBroken:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
	}
}

// MonochromeTheme returns a theme without color, for terminals that lack it.
func MonochromeTheme() Theme {
	t := DefaultTheme()
	t.Title = lipgloss.NewStyle().Bold(true)
	t.Subtitle = lipgloss.NewStyle()
	t.ItemNormal = lipgloss.NewStyle()
	t.ItemActive = lipgloss.NewStyle().Reverse(true)
	t.ItemBroken = lipgloss.NewStyle().Faint(true)
	t.Description = lipgloss.NewStyle().Faint(true)
	t.Error = lipgloss.NewStyle().Bold(true)
	t.Help = lipgloss.NewStyle().Faint(true)
	return t
}

var theme = DefaultTheme()

// SetTheme replaces the global theme.
func SetTheme(t Theme) {
	theme = t
}
