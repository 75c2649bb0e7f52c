// Package styles holds the theme tokens and lipgloss styles used by the TUI.
package styles

// ThemeTokens defines the semantic color roles for the TUI.
type ThemeTokens struct {
	Background  string
	Panel       string
	Text        string
	TextMuted   string
	Border      string
	Accent      string
	Focus       string
	Placeholder string // {{name}} tokens inside template bodies
	Success     string
	Warning     string
	Error       string
	Info        string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	DefaultTheme.Name:      DefaultTheme,
	HighContrastTheme.Name: HighContrastTheme,
}
