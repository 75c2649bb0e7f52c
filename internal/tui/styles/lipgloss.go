package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme        Theme
	Title        lipgloss.Style
	Text         lipgloss.Style
	Muted        lipgloss.Style
	Accent       lipgloss.Style
	Panel        lipgloss.Style
	Border       lipgloss.Style
	Focus        lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	Error        lipgloss.Style
	Info         lipgloss.Style
	Label        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Placeholder  lipgloss.Style
	Card         lipgloss.Style
}

// DefaultStyles builds styles from the default theme.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTheme)
}

// StylesForTheme builds styles for a named theme, falling back to the default.
func StylesForTheme(name string) Styles {
	if theme, ok := Themes[name]; ok {
		return BuildStyles(theme)
	}
	return DefaultStyles()
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens
	color := func(value string) lipgloss.Color { return lipgloss.Color(value) }

	return Styles{
		Theme:        theme,
		Title:        lipgloss.NewStyle().Foreground(color(tokens.Text)).Bold(true),
		Text:         lipgloss.NewStyle().Foreground(color(tokens.Text)),
		Muted:        lipgloss.NewStyle().Foreground(color(tokens.TextMuted)),
		Accent:       lipgloss.NewStyle().Foreground(color(tokens.Accent)),
		Panel:        lipgloss.NewStyle().Foreground(color(tokens.Text)).Background(color(tokens.Panel)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(color(tokens.Border)),
		Border:       lipgloss.NewStyle().Foreground(color(tokens.Border)),
		Focus:        lipgloss.NewStyle().Foreground(color(tokens.Focus)).Bold(true),
		Success:      lipgloss.NewStyle().Foreground(color(tokens.Success)),
		Warning:      lipgloss.NewStyle().Foreground(color(tokens.Warning)),
		Error:        lipgloss.NewStyle().Foreground(color(tokens.Error)),
		Info:         lipgloss.NewStyle().Foreground(color(tokens.Info)),
		Label:        lipgloss.NewStyle().Foreground(color(tokens.Accent)).Bold(true),
		Input:        lipgloss.NewStyle().Foreground(color(tokens.Text)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(color(tokens.Border)).Padding(0, 1),
		InputFocused: lipgloss.NewStyle().Foreground(color(tokens.Text)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(color(tokens.Focus)).Padding(0, 1),
		Placeholder:  lipgloss.NewStyle().Foreground(color(tokens.Placeholder)).Bold(true),
		Card:         lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(color(tokens.Border)).Padding(0, 1),
	}
}
